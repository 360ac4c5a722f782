// Package render draws the stylized card faces: structural frame, color
// overlay, set icon and fitted text.
package render

import (
	"image"

	"github.com/indiecore/bwproxy/pkg/card"
)

// Canvas dimensions are pixels at print resolution.
const (
	DPI = 300

	cardWidth         = int(2.5 * DPI)
	cardHeight        = int(3.5 * DPI)
	playtestCardWidth = 2 * DPI

	borderWidth = 5
	separator   = 15

	titleHeight   = 90
	typeHeight    = 55
	creditsHeight = 55

	bottomBoxWidth  = 160
	bottomBoxHeight = 60

	iconSize     = 40
	backdropSize = 600
	titleArcRise = 600

	fuseBarHeight = 50
)

// Rules box heights per frame family.
const (
	rulesStandard   = 303
	rulesToken      = 250
	rulesFlip       = 200
	rulesAftermath  = 175
	rulesSplit      = 280
	rulesAttraction = 500
)

// Attractions carry a column of circled visit numbers on the right of
// the rules box.
const (
	attractionColWidth  = 100
	attractionInterline = 15
	attractionNumbers   = 6
)

// SizeClass selects the output scale preset.
type SizeClass string

const (
	SizeStandard SizeClass = "standard"
	SizeSmall    SizeClass = "small"
	SizePlaytest SizeClass = "playtest"
)

// SmallResizeFactor scales standard card bitmaps down for the small class;
// the shrink happens at pagination, geometry is shared with standard.
const SmallResizeFactor = 0.75

// CardDimensions is the rendered bitmap size for a card.
func CardDimensions(playtest bool) image.Point {
	if playtest {
		return image.Pt(playtestCardWidth, cardHeight)
	}
	return image.Pt(cardWidth, cardHeight)
}

// Geometry positions every section of one card face in face-local upright
// coordinates, plus the placement of the face on the card canvas.
type Geometry struct {
	// Face is the upright drawing canvas size for this face.
	Face image.Point
	// Place is the top-left position of the (rotated) face on the card.
	Place image.Point
	// Turns is the number of clockwise quarter turns applied when the
	// face is placed onto the card canvas.
	Turns int

	// Cuts are the rectangle bottoms of the structural frame: one
	// rectangle is stroked from the face origin down to each cut.
	Cuts []int

	Title   image.Rectangle
	Type    image.Rectangle
	Rules   image.Rectangle
	Credits image.Rectangle
	// Bottom is the power/toughness (or loyalty) box; drawn only when
	// the face carries bottom data.
	Bottom image.Rectangle
	// Fuse is this face's segment of the shared fuse bar; zero when the
	// frame has none.
	Fuse image.Rectangle
	// Attraction is the visit-number column; zero for other frames.
	Attraction image.Rectangle

	// ArtTop is where the art section begins; the oracle name goes just
	// below it when a flavor name takes over the title.
	ArtTop int

	IconCenter     image.Point
	BackdropCenter image.Point

	// TitleArc arches the title separator, marking tokens and emblems.
	TitleArc bool
	// HasIconSlot is false for faces without a set icon position, like
	// the adventure half.
	HasIconSlot bool
	HasCredits  bool
}

type geomKey struct {
	frame    card.Layout
	face     int
	playtest bool
}

// Table is the read-only layout table. It is computed once at startup and
// shared by every render; nothing mutates it afterwards.
type Table struct {
	geos map[geomKey]Geometry
}

// NewTable precomputes the geometry of every frame variant for both the
// standard and playtest card sizes.
func NewTable() *Table {
	t := &Table{geos: make(map[geomKey]Geometry)}
	for _, playtest := range []bool{false, true} {
		for frame := range knownFrames {
			faces := 1
			if frame.IsTwoPart() || frame.IsDoubleFaced() {
				faces = 2
			}
			for f := 0; f < faces; f++ {
				t.geos[geomKey{frame, f, playtest}] = computeGeometry(frame, f, playtest)
			}
		}
	}
	return t
}

var knownFrames = map[card.Layout]bool{
	card.LayoutStandard:        true,
	card.LayoutSplit:           true,
	card.LayoutFuse:            true,
	card.LayoutAftermath:       true,
	card.LayoutAdventure:       true,
	card.LayoutFlip:            true,
	card.LayoutTransform:       true,
	card.LayoutModalDFC:        true,
	card.LayoutLand:            true,
	card.LayoutAttraction:      true,
	card.LayoutToken:           true,
	card.LayoutEmblem:          true,
	card.LayoutVanillaToken:    true,
	card.LayoutVanillaCreature: true,
}

// Geometry returns the layout for one face of a frame variant. Unknown
// variants fall back to the standard frame.
func (t *Table) Geometry(frame card.Layout, face int, playtest bool) Geometry {
	if g, ok := t.geos[geomKey{frame, face, playtest}]; ok {
		return g
	}
	return t.geos[geomKey{card.LayoutStandard, 0, playtest}]
}

// computeGeometry derives all section boxes from the section heights so
// the values stay internally consistent: title, art, type line, rules box
// and credits always sum to the face height.
func computeGeometry(frame card.Layout, face int, playtest bool) Geometry {
	cardSize := CardDimensions(playtest)

	switch frame {
	case card.LayoutSplit, card.LayoutFuse:
		return sidewaysHalf(frame, face, cardSize)
	case card.LayoutAftermath:
		if face == 1 {
			return sidewaysHalf(card.LayoutSplit, 1, cardSize)
		}
		g := stacked(cardSize.X, cardSize.Y/2, rulesAftermath, frame)
		return g
	case card.LayoutAdventure:
		if face == 1 {
			return adventureHalf(cardSize)
		}
		g := stacked(cardSize.X, cardSize.Y, rulesStandard, frame)
		// The adventure half covers the left part of the rules box.
		g.Rules.Min.X = cardSize.X / 2
		return g
	case card.LayoutFlip:
		g := flipFace(cardSize)
		if face == 1 {
			g.Turns = 2
		}
		return g
	case card.LayoutAttraction:
		g := stacked(cardSize.X, cardSize.Y, rulesAttraction, frame)
		// The number column takes the right edge of the rules box.
		g.Attraction = image.Rect(
			g.Rules.Max.X-attractionColWidth, g.Rules.Min.Y,
			g.Rules.Max.X, g.Rules.Max.Y,
		)
		g.Rules.Max.X -= attractionColWidth
		return g
	}

	rules := rulesStandard
	switch frame {
	case card.LayoutToken, card.LayoutEmblem:
		rules = rulesToken
	case card.LayoutLand, card.LayoutVanillaToken, card.LayoutVanillaCreature:
		rules = 0
	}

	g := stacked(cardSize.X, cardSize.Y, rules, frame)
	g.TitleArc = frame == card.LayoutToken || frame == card.LayoutEmblem ||
		frame == card.LayoutVanillaToken
	return g
}

// stacked lays out the common top-to-bottom face: title, art, type line,
// rules box, credits. The art soaks up whatever height the fixed sections
// leave over.
func stacked(w, h, rulesH int, frame card.Layout) Geometry {
	artH := h - titleHeight - typeHeight - rulesH - creditsHeight

	titleBottom := titleHeight
	artBottom := titleBottom + artH
	typeBottom := artBottom + typeHeight
	rulesBottom := typeBottom + rulesH

	g := Geometry{
		Face:        image.Pt(w, h),
		Title:       image.Rect(0, 0, w, titleBottom),
		Rules:       image.Rect(0, typeBottom, w, rulesBottom),
		Type:        image.Rect(0, artBottom, w, typeBottom),
		Credits:     image.Rect(0, rulesBottom, w, h),
		ArtTop:      titleBottom,
		Cuts:        dedupeCuts(titleBottom, artBottom, typeBottom, rulesBottom, h),
		HasIconSlot: true,
		HasCredits:  true,
	}
	g.Bottom = bottomBox(w, h)
	g.IconCenter = image.Pt(w-separator-iconSize/2, artBottom+typeHeight/2)
	g.BackdropCenter = image.Pt(w/2, titleBottom+artH/2)

	if frame == card.LayoutFuse {
		g.Rules.Max.Y -= fuseBarHeight
		g.Fuse = image.Rect(0, g.Rules.Max.Y, w, rulesBottom)
		g.Cuts = dedupeCuts(append(g.Cuts, g.Rules.Max.Y)...)
	}
	return g
}

// sidewaysHalf is one half of a split or fuse card: drawn upright on half
// the rotated card, then turned a quarter clockwise into place.
func sidewaysHalf(frame card.Layout, face int, cardSize image.Point) Geometry {
	w, h := cardSize.Y/2, cardSize.X
	g := stacked(w, h, rulesSplit, frame)
	g.Turns = 1
	g.Place = image.Pt(0, face*w)
	return g
}

// adventureHalf is the small second face drawn inside the left part of
// the main face's rules box.
func adventureHalf(cardSize image.Point) Geometry {
	main := stacked(cardSize.X, cardSize.Y, rulesStandard, card.LayoutAdventure)
	w := cardSize.X / 2
	h := main.Rules.Dy()

	titleBottom := titleHeight
	typeBottom := titleBottom + typeHeight

	return Geometry{
		Face:       image.Pt(w, h),
		Place:      image.Pt(0, main.Rules.Min.Y),
		Title:      image.Rect(0, 0, w, titleBottom),
		Type:       image.Rect(0, titleBottom, w, typeBottom),
		Rules:      image.Rect(0, typeBottom, w, h),
		Credits:    image.Rectangle{},
		ArtTop:     titleBottom,
		Cuts:       dedupeCuts(titleBottom, typeBottom, h),
		HasCredits: false,
	}
}

// flipFace is a full-card face with the sections packed at the top and
// the shared art in the leftover middle; the second face is the same
// geometry turned upside down.
func flipFace(cardSize image.Point) Geometry {
	w, h := cardSize.X, cardSize.Y
	sections := titleHeight + typeHeight + rulesFlip + creditsHeight

	titleBottom := titleHeight
	typeBottom := titleBottom + typeHeight
	rulesBottom := typeBottom + rulesFlip
	creditsBottom := rulesBottom + creditsHeight
	artH := h - 2*sections

	g := Geometry{
		Face:        image.Pt(w, h),
		Title:       image.Rect(0, 0, w, titleBottom),
		Type:        image.Rect(0, titleBottom, w, typeBottom),
		Rules:       image.Rect(0, typeBottom, w, rulesBottom),
		Credits:     image.Rect(0, rulesBottom, w, creditsBottom),
		ArtTop:      creditsBottom,
		Cuts:        dedupeCuts(titleBottom, typeBottom, rulesBottom, creditsBottom, h),
		HasIconSlot: true,
		HasCredits:  true,
	}
	g.Bottom = image.Rect(
		w-separator-bottomBoxWidth, creditsBottom-bottomBoxHeight,
		w-separator, creditsBottom,
	)
	g.IconCenter = image.Pt(w-separator-iconSize/2, titleBottom+typeHeight/2)
	g.BackdropCenter = image.Pt(w/2, creditsBottom+artH/2)
	return g
}

// bottomBox anchors the power/toughness box to the bottom right corner.
func bottomBox(w, h int) image.Rectangle {
	return image.Rect(
		w-separator-bottomBoxWidth, h-bottomBoxHeight,
		w-separator, h,
	)
}

func dedupeCuts(ys ...int) []int {
	seen := make(map[int]bool, len(ys))
	out := make([]int, 0, len(ys))
	for _, y := range ys {
		if y > 0 && !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	return out
}
