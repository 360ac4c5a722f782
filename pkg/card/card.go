package card

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Color is a single mana color letter (WUBRG).
type Color string

const (
	White Color = "W"
	Blue  Color = "U"
	Black Color = "B"
	Red   Color = "R"
	Green Color = "G"
)

// AllColors lists the five colors in canonical WUBRG order.
var AllColors = []Color{White, Blue, Black, Red, Green}

var colorNames = map[Color]string{
	White: "white",
	Blue:  "blue",
	Black: "black",
	Red:   "red",
	Green: "green",
}

// Payload mirrors the subset of the Scryfall card object the generator needs.
// It is what gets persisted in the card and token caches.
type Payload struct {
	Name           string    `json:"name"`
	ManaCost       string    `json:"mana_cost"`
	TypeLine       string    `json:"type_line"`
	OracleText     string    `json:"oracle_text"`
	Colors         []string  `json:"colors"`
	ColorIndicator []string  `json:"color_indicator,omitempty"`
	Power          string    `json:"power,omitempty"`
	Toughness      string    `json:"toughness,omitempty"`
	Loyalty        string    `json:"loyalty,omitempty"`
	Layout         string    `json:"layout,omitempty"`
	FlavorName     string    `json:"flavor_name,omitempty"`
	BorderColor    string    `json:"border_color,omitempty"`
	SecurityStamp  string    `json:"security_stamp,omitempty"`
	CardFaces      []Payload `json:"card_faces,omitempty"`
}

// Card is an immutable view over a card, a card face or a card half.
// It is populated once, either from a remote lookup payload or from an
// inline token spec, and never mutated afterwards.
type Card struct {
	Name           string
	ManaCost       string
	TypeLine       string
	OracleText     string
	Colors         []Color
	ColorIndicator []Color
	Power          string
	Toughness      string
	Loyalty        string
	FlavorName     string

	layout     string
	border     string
	stamp      string
	faces      []Payload
	faceNum    int
	faceSymbol string
	fuseText   string
}

// FromPayload builds a Card from a remote lookup payload.
func FromPayload(p *Payload) *Card {
	c := &Card{
		Name:           p.Name,
		ManaCost:       p.ManaCost,
		TypeLine:       p.TypeLine,
		OracleText:     p.OracleText,
		Colors:         ToColors(p.Colors),
		ColorIndicator: ToColors(p.ColorIndicator),
		Power:          p.Power,
		Toughness:      p.Toughness,
		Loyalty:        p.Loyalty,
		FlavorName:     p.FlavorName,
		layout:         p.Layout,
		border:         p.BorderColor,
		stamp:          p.SecurityStamp,
		faces:          p.CardFaces,
	}

	// Emblems come back from the search endpoint as "Name Emblem".
	if strings.Contains(c.TypeLine, "Emblem") {
		c.Name = strings.TrimSuffix(c.Name, " Emblem")
	}

	// Single-faced tokens carry their colors as a color indicator, since a
	// b/w proxy has no colored frame to show them.
	if strings.Contains(c.TypeLine, "Token") && len(c.faces) == 0 &&
		len(c.Colors) > 0 && len(c.ColorIndicator) == 0 {
		c.ColorIndicator = c.Colors
	}

	return c
}

// ToColors converts raw color letters into typed colors.
func ToColors(ss []string) []Color {
	out := make([]Color, 0, len(ss))
	for _, s := range ss {
		out = append(out, Color(strings.ToUpper(s)))
	}
	return out
}

var manaColorRe = regexp.MustCompile(`[WUBRG]`)

// ExtractColors pulls the distinct colors out of a mana cost string,
// in the order they first appear.
func ExtractColors(manaCost string) []Color {
	var out []Color
	for _, m := range manaColorRe.FindAllString(manaCost, -1) {
		c := Color(m)
		if !containsColor(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func containsColor(cs []Color, c Color) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

// SortColors returns the colors sorted in canonical WUBRG order.
func SortColors(cs []Color) []Color {
	order := map[Color]int{White: 0, Blue: 1, Black: 2, Red: 3, Green: 4}
	out := append([]Color(nil), cs...)
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}

// Layout classifies the card into the frame family driving its geometry.
// Tokens, emblems, basic lands and attraction-style specials are detected
// from the type line rather than the layout string.
func (c *Card) Layout() Layout {
	switch {
	case strings.Contains(c.TypeLine, "Emblem"):
		return LayoutEmblem
	case strings.Contains(c.TypeLine, "Token"):
		return LayoutToken
	case IsBasicLand(c.Name):
		return LayoutLand
	case strings.Contains(c.TypeLine, "Attraction"):
		return LayoutAttraction
	}

	if c.layout == string(LayoutSplit) && len(c.faces) == 2 {
		second := strings.Split(c.faces[1].OracleText, "\n")
		if strings.HasPrefix(second[0], "Aftermath") {
			return LayoutAftermath
		}
		if strings.HasPrefix(second[len(second)-1], "Fuse") {
			return LayoutFuse
		}
	}

	if l := Layout(c.layout); knownLayouts[l] {
		return l
	}
	return LayoutStandard
}

// FuseText is the shared rule printed on the bar spanning both halves of a
// fuse card. It is stripped from the halves' rules text and drawn once.
const FuseText = "Fuse (You may cast one or both halves of this card from your hand.)"

// HasFaces reports whether the card is made of two distinct named objects
// (split halves, adventure parts, transform faces and so on).
func (c *Card) HasFaces() bool { return len(c.faces) == 2 }

// FaceNum is the position of this face within its card: 0 for the main or
// left part, 1 for the other one. Whole cards report 0.
func (c *Card) FaceNum() int { return c.faceNum }

// Faces splits the card into its drawable units, with the layout, colors
// and face indicators each face needs to render standalone. Cards without
// faces yield themselves.
func (c *Card) Faces() []*Card {
	if !c.HasFaces() {
		return []*Card{c}
	}

	layout := c.Layout()
	out := make([]*Card, 2)
	for i := range c.faces {
		p := c.faces[i]
		f := FromPayload(&p)
		f.layout = string(layout)
		f.faceNum = i
		f.border = c.border
		f.stamp = c.stamp
		out[i] = f
	}

	switch layout {
	case LayoutTransform, LayoutModalDFC:
		out[0].faceSymbol = fmt.Sprintf("{%s0}", layout)
		out[1].faceSymbol = fmt.Sprintf("{%s1}", layout)
	case LayoutFlip:
		out[0].faceSymbol = "{flip0}"
		out[1].faceSymbol = "{flip1}"
		// Flip halves share the front face's colors; the back gets an
		// indicator since it has no mana cost of its own.
		out[0].Colors = c.Colors
		out[1].Colors = c.Colors
		out[1].ColorIndicator = c.Colors
	case LayoutSplit, LayoutFuse, LayoutAftermath, LayoutAdventure:
		// Halves report the whole card's colors, so extract each half's
		// own colors from its mana cost.
		out[0].Colors = ExtractColors(out[0].ManaCost)
		out[1].Colors = ExtractColors(out[1].ManaCost)
	}

	if layout == LayoutFuse {
		out[0].OracleText = strings.TrimSuffix(out[0].OracleText, "\n"+FuseText)
		out[1].OracleText = strings.TrimSuffix(out[1].OracleText, "\n"+FuseText)
		out[0].fuseText = FuseText
		out[1].fuseText = FuseText
	}

	return out
}

// FaceSymbol is the indicator glyph drawn left of the title on
// double-faced and flip faces, or the acorn stamp marker. Empty when the
// card has none.
func (c *Card) FaceSymbol() string {
	if c.faceSymbol != "" {
		return c.faceSymbol
	}
	if c.IsAcorn() {
		return "{ACORN}"
	}
	return ""
}

func (c *Card) HasPT() bool      { return c.Power != "" || c.Toughness != "" }
func (c *Card) HasLoyalty() bool { return c.Loyalty != "" }

// BottomText is the content of the bottom right box: power/toughness for
// creatures, loyalty for planeswalkers, empty otherwise.
func (c *Card) BottomText() string {
	switch {
	case c.HasPT():
		return c.Power + "/" + c.Toughness
	case c.HasLoyalty():
		return c.Loyalty
	}
	return ""
}

func (c *Card) IsToken() bool  { return strings.Contains(c.TypeLine, "Token") }
func (c *Card) IsEmblem() bool { return strings.Contains(c.TypeLine, "Emblem") }

func (c *Card) IsTokenOrEmblem() bool { return c.IsToken() || c.IsEmblem() }

// IsAcorn approximates the "not tournament legal" marker: silver-bordered
// cards and cards carrying the acorn security stamp.
func (c *Card) IsAcorn() bool {
	if c.IsTokenOrEmblem() {
		return false
	}
	return c.border == "silver" || c.stamp == "acorn"
}

// ReminderText spells out the color indicator, since the printed proxy
// cannot show it as a colored dot. Empty when there is no indicator.
func (c *Card) ReminderText() string {
	ind := c.ColorIndicator
	if len(ind) == 0 {
		return ""
	}

	var desc string
	if len(ind) == 5 {
		desc = "all colors"
	} else {
		names := make([]string, len(ind))
		for i, col := range SortColors(ind) {
			names[i] = colorNames[col]
		}
		if len(names) == 1 {
			desc = names[0]
		} else {
			desc = strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
		}
	}

	name := c.Name
	if c.IsToken() && strings.Contains(c.TypeLine, c.Name) {
		name = "This token"
	}
	return fmt.Sprintf("(%s is %s.)", name, desc)
}

// RulesLines returns the oracle text as ordered rule paragraphs, with the
// color indicator reminder prepended when present.
func (c *Card) RulesLines() []string {
	var lines []string
	if rem := c.ReminderText(); rem != "" {
		lines = append(lines, rem)
	}
	for _, l := range strings.Split(strings.TrimSpace(c.OracleText), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

var basicLands = map[string]bool{
	"Plains":   true,
	"Island":   true,
	"Swamp":    true,
	"Mountain": true,
	"Forest":   true,
	"Wastes":   true,

	"Snow-Covered Plains":   true,
	"Snow-Covered Island":   true,
	"Snow-Covered Swamp":    true,
	"Snow-Covered Mountain": true,
	"Snow-Covered Forest":   true,
}

// IsBasicLand reports whether the name is one of the basic lands
// (including the snow-covered variants).
func IsBasicLand(name string) bool { return basicLands[name] }

// BasicLandColor maps a basic land to the mana letter drawn as its
// backdrop. Wastes produce colorless mana.
func BasicLandColor(name string) string {
	words := strings.Fields(name)
	switch words[len(words)-1] {
	case "Plains":
		return "W"
	case "Island":
		return "U"
	case "Swamp":
		return "B"
	case "Mountain":
		return "R"
	case "Forest":
		return "G"
	}
	return "C"
}
