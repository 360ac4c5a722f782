package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutClassification(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    Layout
	}{
		{
			name:    "plain creature",
			payload: Payload{Name: "Grizzly Bears", TypeLine: "Creature — Bear", Layout: "normal"},
			want:    LayoutStandard,
		},
		{
			name:    "token beats layout string",
			payload: Payload{Name: "Squirrel", TypeLine: "Token Creature — Squirrel", Layout: "token"},
			want:    LayoutToken,
		},
		{
			name:    "emblem from type line",
			payload: Payload{Name: "Ob Nixilis Emblem", TypeLine: "Emblem — Ob Nixilis", Layout: "emblem"},
			want:    LayoutEmblem,
		},
		{
			name:    "basic land by name",
			payload: Payload{Name: "Island", TypeLine: "Basic Land — Island", Layout: "normal"},
			want:    LayoutLand,
		},
		{
			name:    "snow basic land",
			payload: Payload{Name: "Snow-Covered Forest", TypeLine: "Basic Snow Land — Forest", Layout: "normal"},
			want:    LayoutLand,
		},
		{
			name: "split stays split",
			payload: Payload{
				Name: "Fire // Ice", Layout: "split",
				CardFaces: []Payload{
					{Name: "Fire", OracleText: "Fire deals 2 damage divided as you choose."},
					{Name: "Ice", OracleText: "Tap target permanent.\nDraw a card."},
				},
			},
			want: LayoutSplit,
		},
		{
			name: "aftermath detected from second face",
			payload: Payload{
				Name: "Dusk // Dawn", Layout: "split",
				CardFaces: []Payload{
					{Name: "Dusk", OracleText: "Destroy all creatures with power 3 or greater."},
					{Name: "Dawn", OracleText: "Aftermath (Cast this spell only from your graveyard. Then exile it.)\nReturn all creature cards with power 2 or less from your graveyard to your hand."},
				},
			},
			want: LayoutAftermath,
		},
		{
			name: "fuse detected from second face",
			payload: Payload{
				Name: "Wear // Tear", Layout: "split",
				CardFaces: []Payload{
					{Name: "Wear", OracleText: "Destroy target artifact.\n" + FuseText},
					{Name: "Tear", OracleText: "Destroy target enchantment.\n" + FuseText},
				},
			},
			want: LayoutFuse,
		},
		{
			name:    "attraction from type line",
			payload: Payload{Name: "Trash Bin", TypeLine: "Artifact — Attraction", Layout: "normal"},
			want:    LayoutAttraction,
		},
		{
			name:    "unknown layout falls back to standard",
			payload: Payload{Name: "Weird", TypeLine: "Sorcery", Layout: "planar"},
			want:    LayoutStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromPayload(&tt.payload)
			assert.Equal(t, tt.want, c.Layout())
		})
	}
}

func TestEmblemNameTrimmed(t *testing.T) {
	c := FromPayload(&Payload{Name: "Chandra Emblem", TypeLine: "Emblem — Chandra"})
	assert.Equal(t, "Chandra", c.Name)
}

func TestTokenColorsBecomeIndicator(t *testing.T) {
	c := FromPayload(&Payload{
		Name:     "Soldier",
		TypeLine: "Token Creature — Soldier",
		Colors:   []string{"W"},
	})
	assert.Equal(t, []Color{White}, c.ColorIndicator)
}

func TestExtractColors(t *testing.T) {
	assert.Equal(t, []Color{Red}, ExtractColors("{1}{R}{R}"))
	assert.Empty(t, ExtractColors("{3}"))
	assert.ElementsMatch(t, []Color{White, Blue}, ExtractColors("{W/U}{W}"))
}

func TestSortColors(t *testing.T) {
	got := SortColors([]Color{Green, White, Black})
	assert.Equal(t, []Color{White, Black, Green}, got)
}

func TestSplitFacesOwnColors(t *testing.T) {
	c := FromPayload(&Payload{
		Name: "Fire // Ice", Layout: "split",
		Colors: []string{"U", "R"},
		CardFaces: []Payload{
			{Name: "Fire", ManaCost: "{1}{R}", OracleText: "Fire deals 2 damage divided as you choose."},
			{Name: "Ice", ManaCost: "{1}{U}", OracleText: "Tap target permanent.\nDraw a card."},
		},
	})
	faces := c.Faces()
	require.Len(t, faces, 2)
	assert.Equal(t, []Color{Red}, faces[0].Colors)
	assert.Equal(t, []Color{Blue}, faces[1].Colors)
	assert.Equal(t, 0, faces[0].FaceNum())
	assert.Equal(t, 1, faces[1].FaceNum())
}

func TestFuseFacesStripSharedRule(t *testing.T) {
	c := FromPayload(&Payload{
		Name: "Wear // Tear", Layout: "split",
		CardFaces: []Payload{
			{Name: "Wear", ManaCost: "{1}{R}", OracleText: "Destroy target artifact.\n" + FuseText},
			{Name: "Tear", ManaCost: "{W}", OracleText: "Destroy target enchantment.\n" + FuseText},
		},
	})
	require.Equal(t, LayoutFuse, c.Layout())
	faces := c.Faces()
	assert.Equal(t, "Destroy target artifact.", faces[0].OracleText)
	assert.Equal(t, "Destroy target enchantment.", faces[1].OracleText)
}

func TestFlipFacesShareColors(t *testing.T) {
	c := FromPayload(&Payload{
		Name: "Nezumi Graverobber // Nighteyes the Desecrator", Layout: "flip",
		Colors: []string{"B"},
		CardFaces: []Payload{
			{Name: "Nezumi Graverobber", ManaCost: "{1}{B}"},
			{Name: "Nighteyes the Desecrator"},
		},
	})
	faces := c.Faces()
	assert.Equal(t, []Color{Black}, faces[1].Colors)
	assert.Equal(t, []Color{Black}, faces[1].ColorIndicator)
	assert.Equal(t, "{flip0}", faces[0].FaceSymbol())
	assert.Equal(t, "{flip1}", faces[1].FaceSymbol())
}

func TestTransformFaceSymbols(t *testing.T) {
	c := FromPayload(&Payload{
		Name: "Delver of Secrets // Insectile Aberration", Layout: "transform",
		CardFaces: []Payload{
			{Name: "Delver of Secrets", ManaCost: "{U}"},
			{Name: "Insectile Aberration", ColorIndicator: []string{"U"}},
		},
	})
	faces := c.Faces()
	assert.Equal(t, "{transform0}", faces[0].FaceSymbol())
	assert.Equal(t, "{transform1}", faces[1].FaceSymbol())
}

func TestBottomText(t *testing.T) {
	creature := &Card{Power: "2", Toughness: "2"}
	assert.Equal(t, "2/2", creature.BottomText())

	walker := &Card{Loyalty: "4"}
	assert.Equal(t, "4", walker.BottomText())

	spell := &Card{}
	assert.Equal(t, "", spell.BottomText())
}

func TestIsAcorn(t *testing.T) {
	silver := FromPayload(&Payload{Name: "Chicken", TypeLine: "Creature — Bird", BorderColor: "silver"})
	assert.True(t, silver.IsAcorn())

	stamped := FromPayload(&Payload{Name: "Gnome", TypeLine: "Creature — Gnome", SecurityStamp: "acorn"})
	assert.True(t, stamped.IsAcorn())
	assert.Equal(t, "{ACORN}", stamped.FaceSymbol())

	token := FromPayload(&Payload{Name: "Acorn", TypeLine: "Token", BorderColor: "silver"})
	assert.False(t, token.IsAcorn())
}

func TestReminderText(t *testing.T) {
	tests := []struct {
		name string
		card *Card
		want string
	}{
		{
			name: "no indicator",
			card: &Card{Name: "Grizzly Bears"},
			want: "",
		},
		{
			name: "single color",
			card: &Card{Name: "Nighteyes", ColorIndicator: []Color{Black}},
			want: "(Nighteyes is black.)",
		},
		{
			name: "two colors in canonical order",
			card: &Card{Name: "Hybrid", ColorIndicator: []Color{Green, White}},
			want: "(Hybrid is white and green.)",
		},
		{
			name: "all five",
			card: &Card{Name: "Prism", ColorIndicator: []Color{White, Blue, Black, Red, Green}},
			want: "(Prism is all colors.)",
		},
		{
			name: "token named by its type",
			card: &Card{Name: "Marit Lage", TypeLine: "Token Legendary Creature — Avatar", ColorIndicator: []Color{Black}},
			want: "(Marit Lage is black.)",
		},
		{
			name: "generic token",
			card: &Card{Name: "Soldier", TypeLine: "Token Creature — Soldier", ColorIndicator: []Color{White}},
			want: "(This token is white.)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.ReminderText())
		})
	}
}

func TestRulesLinesPrependReminder(t *testing.T) {
	c := &Card{
		Name:           "Marit Lage",
		TypeLine:       "Token Legendary Creature — Avatar",
		OracleText:     "Flying, indestructible.",
		ColorIndicator: []Color{Black},
	}
	lines := c.RulesLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "(Marit Lage is black.)", lines[0])
	assert.Equal(t, "Flying, indestructible.", lines[1])
}

func TestBasicLandColor(t *testing.T) {
	assert.Equal(t, "W", BasicLandColor("Plains"))
	assert.Equal(t, "U", BasicLandColor("Snow-Covered Island"))
	assert.Equal(t, "C", BasicLandColor("Wastes"))
	assert.True(t, IsBasicLand("Mountain"))
	assert.False(t, IsBasicLand("Command Tower"))
}
