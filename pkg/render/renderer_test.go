package render

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indiecore/bwproxy/pkg/card"
)

func layoutCard(t *testing.T, p *card.Payload, opts card.PrintOptions) card.LayoutCard {
	t.Helper()
	return card.NewLayoutCard(card.FromPayload(p), opts)
}

func shock() *card.Payload {
	return &card.Payload{
		Name:       "Shock",
		ManaCost:   "{R}",
		TypeLine:   "Instant",
		OracleText: "Shock deals 2 damage to any target.",
		Colors:     []string{"R"},
	}
}

func hasInk(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				return true
			}
		}
	}
	return false
}

func TestRenderStandardCard(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	img, warnings := r.Render(layoutCard(t, shock(), card.PrintOptions{}))
	assert.Empty(t, warnings)
	assert.Equal(t, image.Rect(0, 0, 750, 1050), img.Bounds())
	assert.True(t, hasInk(img))
}

func TestRenderPlaytestSize(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	img, _ := r.Render(layoutCard(t, shock(), card.PrintOptions{Playtest: true}))
	assert.Equal(t, image.Rect(0, 0, 600, 1050), img.Bounds())
}

func TestRenderWarnsOnClippedRules(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	p := shock()
	p.OracleText = strings.TrimSpace(strings.Repeat("Exile the top card of your library. ", 400))

	_, warnings := r.Render(layoutCard(t, p, card.PrintOptions{}))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Shock")
	assert.Contains(t, warnings[0], "clipped")
}

func TestRenderTwoPartCardMakesOneImage(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	p := &card.Payload{
		Name:   "Fire // Ice",
		Layout: "split",
		CardFaces: []card.Payload{
			{Name: "Fire", ManaCost: "{1}{R}", TypeLine: "Instant",
				OracleText: "Fire deals 2 damage divided as you choose among one or two targets."},
			{Name: "Ice", ManaCost: "{1}{U}", TypeLine: "Instant",
				OracleText: "Tap target permanent.\nDraw a card."},
		},
	}

	lc := layoutCard(t, p, card.PrintOptions{})
	require.Equal(t, card.LayoutSplit, lc.Frame)

	img, warnings := r.Render(lc)
	assert.Empty(t, warnings)
	assert.Equal(t, image.Rect(0, 0, 750, 1050), img.Bounds())
	assert.True(t, hasInk(img))
}

func TestRenderFuseCard(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	p := &card.Payload{
		Name:   "Turn // Burn",
		Layout: "split",
		CardFaces: []card.Payload{
			{Name: "Turn", ManaCost: "{2}{U}", TypeLine: "Instant",
				OracleText: "Until end of turn, target creature loses all abilities.\n" + card.FuseText},
			{Name: "Burn", ManaCost: "{1}{R}", TypeLine: "Instant",
				OracleText: "Burn deals 2 damage to any target.\n" + card.FuseText},
		},
	}

	lc := layoutCard(t, p, card.PrintOptions{})
	require.Equal(t, card.LayoutFuse, lc.Frame)

	img, warnings := r.Render(lc)
	assert.Empty(t, warnings)
	assert.Equal(t, image.Rect(0, 0, 750, 1050), img.Bounds())
}

func TestRenderAttractionCard(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	p := &card.Payload{
		Name:       "Squirrel Stack",
		ManaCost:   "{3}",
		TypeLine:   "Artifact — Attraction",
		OracleText: "Visit — Create a 1/1 green Squirrel creature token.",
	}
	lc := layoutCard(t, p, card.PrintOptions{})
	require.Equal(t, card.LayoutAttraction, lc.Frame)

	img, warnings := r.Render(lc)
	assert.Empty(t, warnings)
	assert.Equal(t, image.Rect(0, 0, 750, 1050), img.Bounds())

	// The visit-number column on the right of the rules box carries ink.
	g := r.table.Geometry(card.LayoutAttraction, 0, false)
	rgba, ok := img.(*image.RGBA)
	require.True(t, ok)
	assert.True(t, hasInk(rgba.SubImage(g.Attraction)))
}

func TestRenderBasicLand(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	p := &card.Payload{Name: "Forest", TypeLine: "Basic Land — Forest"}
	lc := layoutCard(t, p, card.PrintOptions{})
	require.Equal(t, card.LayoutLand, lc.Frame)

	img, warnings := r.Render(lc)
	assert.Empty(t, warnings)
	assert.True(t, hasInk(img))
}

func TestRenderColoredFrameStaysOnWhite(t *testing.T) {
	opts := DefaultOptions()
	opts.Color = true
	r := newTestRenderer(t, opts)

	img, _ := r.Render(layoutCard(t, shock(), card.PrintOptions{}))

	// The paper inside the art area stays white even when the ink is tinted.
	rr, gg, bb, _ := img.At(375, 300).RGBA()
	assert.Equal(t, uint32(0xffff), rr)
	assert.Equal(t, uint32(0xffff), gg)
	assert.Equal(t, uint32(0xffff), bb)
	assert.True(t, hasInk(img))
}

func TestRenderFlavorName(t *testing.T) {
	r := newTestRenderer(t, DefaultOptions())

	lc := layoutCard(t, shock(), card.PrintOptions{FlavorName: "Static Discharge"})
	assert.Equal(t, "Static Discharge", lc.Title())

	img, warnings := r.Render(lc)
	assert.Empty(t, warnings)
	assert.True(t, hasInk(img))
}
