package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indiecore/bwproxy/pkg/card"
)

func TestCardDimensions(t *testing.T) {
	assert.Equal(t, image.Pt(750, 1050), CardDimensions(false))
	assert.Equal(t, image.Pt(600, 1050), CardDimensions(true))
}

func TestStackedSectionsAreContiguous(t *testing.T) {
	table := NewTable()
	frames := []card.Layout{
		card.LayoutStandard,
		card.LayoutToken,
		card.LayoutEmblem,
		card.LayoutLand,
		card.LayoutVanillaToken,
		card.LayoutVanillaCreature,
		card.LayoutTransform,
		card.LayoutModalDFC,
	}
	for _, playtest := range []bool{false, true} {
		for _, frame := range frames {
			g := table.Geometry(frame, 0, playtest)

			assert.Equal(t, 0, g.Title.Min.Y, "%s title", frame)
			assert.Equal(t, g.Title.Max.Y, g.ArtTop, "%s art top", frame)
			assert.Equal(t, g.Type.Max.Y, g.Rules.Min.Y, "%s rules", frame)
			assert.Equal(t, g.Rules.Max.Y, g.Credits.Min.Y, "%s credits", frame)
			assert.Equal(t, g.Face.Y, g.Credits.Max.Y, "%s bottom edge", frame)
			assert.Equal(t, CardDimensions(playtest), g.Face, "%s face size", frame)
			assert.Zero(t, g.Turns, "%s turns", frame)
		}
	}
}

func TestLandFramesHaveNoRulesBox(t *testing.T) {
	table := NewTable()
	for _, frame := range []card.Layout{card.LayoutLand, card.LayoutVanillaToken, card.LayoutVanillaCreature} {
		g := table.Geometry(frame, 0, false)
		assert.Zero(t, g.Rules.Dy(), "%s", frame)
	}
}

func TestSplitHalvesArePlacedSideways(t *testing.T) {
	table := NewTable()
	for _, frame := range []card.Layout{card.LayoutSplit, card.LayoutFuse} {
		left := table.Geometry(frame, 0, false)
		right := table.Geometry(frame, 1, false)

		// Each half is drawn upright on half the rotated card.
		assert.Equal(t, image.Pt(525, 750), left.Face, "%s", frame)
		assert.Equal(t, 1, left.Turns)
		assert.Equal(t, image.Pt(0, 0), left.Place)
		assert.Equal(t, image.Pt(0, 525), right.Place)
	}
}

func TestFuseBarSegment(t *testing.T) {
	g := NewTable().Geometry(card.LayoutFuse, 0, false)
	require.False(t, g.Fuse.Empty())
	assert.Equal(t, g.Rules.Max.Y, g.Fuse.Min.Y)
	assert.Equal(t, g.Fuse.Max.Y, g.Credits.Min.Y)
	assert.Equal(t, fuseBarHeight, g.Fuse.Dy())

	plain := NewTable().Geometry(card.LayoutSplit, 0, false)
	assert.True(t, plain.Fuse.Empty())
}

func TestFlipSecondFaceIsUpsideDown(t *testing.T) {
	table := NewTable()
	top := table.Geometry(card.LayoutFlip, 0, false)
	bottom := table.Geometry(card.LayoutFlip, 1, false)

	assert.Zero(t, top.Turns)
	assert.Equal(t, 2, bottom.Turns)
	// Sections pack at the top; the shared art sits below the credits.
	assert.Equal(t, top.Credits.Max.Y, top.ArtTop)
	assert.Equal(t, top.Face, bottom.Face)
}

func TestAdventureHalfSitsInRulesBox(t *testing.T) {
	table := NewTable()
	main := table.Geometry(card.LayoutAdventure, 0, false)
	half := table.Geometry(card.LayoutAdventure, 1, false)

	assert.Equal(t, image.Pt(0, main.Rules.Min.Y), half.Place)
	assert.Equal(t, main.Face.X/2, half.Face.X)
	assert.Equal(t, main.Rules.Dy(), half.Face.Y)
	assert.False(t, half.HasCredits)
	assert.False(t, half.HasIconSlot)
	// The main face keeps only the right part of its rules box.
	assert.Equal(t, main.Face.X/2, main.Rules.Min.X)
}

func TestAttractionColumnCarvedFromRules(t *testing.T) {
	g := NewTable().Geometry(card.LayoutAttraction, 0, false)

	require.False(t, g.Attraction.Empty())
	assert.Equal(t, g.Face.X, g.Attraction.Max.X)
	assert.Equal(t, attractionColWidth, g.Attraction.Dx())
	assert.Equal(t, g.Rules.Max.X, g.Attraction.Min.X)
	// The column spans exactly the rules band.
	assert.Equal(t, g.Rules.Min.Y, g.Attraction.Min.Y)
	assert.Equal(t, g.Rules.Max.Y, g.Attraction.Max.Y)
	assert.Equal(t, rulesAttraction, g.Rules.Dy())
}

func TestDoubleFacedFramesArePrecomputed(t *testing.T) {
	table := NewTable()
	for _, frame := range []card.Layout{card.LayoutTransform, card.LayoutModalDFC} {
		back, ok := table.geos[geomKey{frame, 1, false}]
		require.True(t, ok, "%s", frame)
		assert.Equal(t, table.Geometry(frame, 1, false), back, "%s", frame)
	}
}

func TestTitleArcFrames(t *testing.T) {
	table := NewTable()
	arched := map[card.Layout]bool{
		card.LayoutToken:        true,
		card.LayoutEmblem:       true,
		card.LayoutVanillaToken: true,
	}
	for frame := range knownFrames {
		g := table.Geometry(frame, 0, false)
		assert.Equal(t, arched[frame], g.TitleArc, "%s", frame)
	}
}

func TestUnknownFrameFallsBackToStandard(t *testing.T) {
	table := NewTable()
	assert.Equal(t,
		table.Geometry(card.LayoutStandard, 0, false),
		table.Geometry(card.Layout("prototype"), 0, false),
	)
}

func TestDedupeCuts(t *testing.T) {
	assert.Equal(t, []int{90, 655, 1050}, dedupeCuts(90, 655, 655, 0, 1050))
}
