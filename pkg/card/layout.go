package card

// Layout is the frame family a card belongs to. It selects which geometry
// table entry drives the frame renderer.
type Layout string

const (
	LayoutStandard        Layout = "standard"
	LayoutSplit           Layout = "split"
	LayoutFuse            Layout = "fuse"
	LayoutAftermath       Layout = "aftermath"
	LayoutAdventure       Layout = "adventure"
	LayoutFlip            Layout = "flip"
	LayoutTransform       Layout = "transform"
	LayoutModalDFC        Layout = "modal_dfc"
	LayoutLand            Layout = "land"
	LayoutAttraction      Layout = "attraction"
	LayoutToken           Layout = "token"
	LayoutEmblem          Layout = "emblem"
	LayoutVanillaToken    Layout = "vanilla_token"
	LayoutVanillaCreature Layout = "vanilla_creature"
)

var knownLayouts = map[Layout]bool{
	LayoutStandard:        true,
	LayoutSplit:           true,
	LayoutFuse:            true,
	LayoutAftermath:       true,
	LayoutAdventure:       true,
	LayoutFlip:            true,
	LayoutTransform:       true,
	LayoutModalDFC:        true,
	LayoutLand:            true,
	LayoutAttraction:      true,
	LayoutToken:           true,
	LayoutEmblem:          true,
	LayoutVanillaToken:    true,
	LayoutVanillaCreature: true,
}

// IsDoubleFaced reports whether the layout prints as two separate card
// images (one per face) rather than two sections on one image.
func (l Layout) IsDoubleFaced() bool {
	return l == LayoutTransform || l == LayoutModalDFC
}

// IsTwoPart reports whether the layout draws two faces on a single image.
func (l Layout) IsTwoPart() bool {
	switch l {
	case LayoutSplit, LayoutFuse, LayoutAftermath, LayoutAdventure, LayoutFlip:
		return true
	}
	return false
}

// PrintOptions are the user choices that change how a resolved card is
// laid out, independent of the card data itself.
type PrintOptions struct {
	// AlternativeFrames folds flip cards into transform frames, aftermath
	// into plain split, and textless tokens/creatures into full-art
	// vanilla frames.
	AlternativeFrames bool
	// Playtest selects the narrow playtest card size.
	Playtest bool
	// FlavorName overrides the printed title; the oracle name is then
	// printed small above the art.
	FlavorName string
}

// LayoutCard pairs an immutable Card with the derived attributes the
// renderer needs. The base record is referenced, not embedded, so both
// sides stay explicit.
type LayoutCard struct {
	Card       *Card
	Frame      Layout
	FlavorName string
	Playtest   bool

	opts PrintOptions
}

// NewLayoutCard derives the frame variant and print attributes for a card.
func NewLayoutCard(c *Card, opts PrintOptions) LayoutCard {
	frame := c.Layout()
	if opts.AlternativeFrames {
		switch {
		case frame == LayoutFlip:
			frame = LayoutTransform
		case frame == LayoutAftermath:
			frame = LayoutSplit
		case frame == LayoutToken && c.OracleText == "":
			frame = LayoutVanillaToken
		case frame == LayoutStandard && c.OracleText == "":
			frame = LayoutVanillaCreature
		}
	}

	flavor := opts.FlavorName
	if flavor == "" {
		flavor = c.FlavorName
	}

	return LayoutCard{
		Card:       c,
		Frame:      frame,
		FlavorName: flavor,
		Playtest:   opts.Playtest,
		opts:       opts,
	}
}

// HasFlavorName reports whether a name other than the oracle name is
// printed on the title line.
func (lc LayoutCard) HasFlavorName() bool { return lc.FlavorName != "" }

// Title is the name printed on the title line.
func (lc LayoutCard) Title() string {
	if lc.FlavorName != "" {
		return lc.FlavorName
	}
	return lc.Card.Name
}

// Faces returns the drawable faces of a two-part card, each wrapped with
// the same print options. Flavor names are only carried on the whole card.
func (lc LayoutCard) Faces() []LayoutCard {
	if !lc.Frame.IsTwoPart() || !lc.Card.HasFaces() {
		return []LayoutCard{lc}
	}

	faces := lc.Card.Faces()
	out := make([]LayoutCard, len(faces))
	opts := lc.opts
	opts.FlavorName = ""
	for i, f := range faces {
		out[i] = NewLayoutCard(f, opts)
		out[i].Frame = lc.Frame
	}
	return out
}

// SplitFaces expands a double-faced card into one LayoutCard per face,
// each printed as a standalone card. Single cards return themselves.
func (lc LayoutCard) SplitFaces() []LayoutCard {
	if !lc.Frame.IsDoubleFaced() || !lc.Card.HasFaces() {
		return []LayoutCard{lc}
	}

	faces := lc.Card.Faces()
	out := make([]LayoutCard, len(faces))
	opts := lc.opts
	opts.FlavorName = ""
	for i, f := range faces {
		out[i] = NewLayoutCard(f, opts)
		out[i].Frame = lc.Frame
	}
	return out
}
