package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
)

// drawFrame strokes the structural skeleton of a face: one nested
// rectangle per section cut, arched for tokens, plus the fuse segment
// when present.
func (r *Renderer) drawFrame(dc *gg.Context, g Geometry) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(borderWidth)

	inset := float64(borderWidth) / 2
	for _, cut := range g.Cuts {
		if g.TitleArc && cut == g.Title.Max.Y {
			continue
		}
		dc.DrawRectangle(inset, inset, float64(g.Face.X)-2*inset, float64(cut)-2*inset)
		dc.Stroke()
	}
	if g.TitleArc {
		r.drawTitleArc(dc, g)
	}
	if !g.Fuse.Empty() {
		dc.DrawRectangle(
			float64(g.Fuse.Min.X), float64(g.Fuse.Min.Y),
			float64(g.Fuse.Dx()), float64(g.Fuse.Dy()),
		)
		dc.Stroke()
	}
	if !g.Attraction.Empty() {
		dc.DrawRectangle(
			float64(g.Attraction.Min.X), float64(g.Attraction.Min.Y),
			float64(g.Attraction.Dx()), float64(g.Attraction.Dy()),
		)
		dc.Stroke()
	}
}

// drawAttractionColumn stamps the circled visit numbers 1 to 6 down the
// attraction column. The numbers are never tinted or randomized; a
// printed proxy stays deterministic.
func (r *Renderer) drawAttractionColumn(dc *gg.Context, g Geometry) {
	col := g.Attraction
	side := float64(col.Dy()-(attractionNumbers-1)*attractionInterline) / attractionNumbers
	cx := float64(col.Min.X) + float64(col.Dx())/2

	dc.SetRGB(0, 0, 0)
	for i := 0; i < attractionNumbers; i++ {
		cy := float64(col.Min.Y) + side/2 + float64(i)*(side+attractionInterline)
		r.drawSymbol(dc, fmt.Sprint(i+1), cx, cy, side)
	}
}

// drawTitleArc replaces the straight title separator with the top half
// of a wide ellipse whose apex touches the title bottom.
func (r *Renderer) drawTitleArc(dc *gg.Context, g Geometry) {
	cx := float64(g.Face.X) / 2
	cy := float64(g.Title.Max.Y) + titleArcRise/2
	rx := float64(g.Face.X) / 2
	ry := float64(titleArcRise) / 2
	dc.DrawEllipticalArc(cx, cy, rx, ry, math.Pi, 2*math.Pi)
	dc.Stroke()
}

// drawBottomBox paints the power/toughness (or loyalty) box over the
// credits corner and writes its text.
func (r *Renderer) drawBottomBox(dc *gg.Context, g Geometry, text string) {
	box := g.Bottom
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(
		float64(box.Min.X), float64(box.Min.Y),
		float64(box.Dx()), float64(box.Dy()),
	)
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(borderWidth)
	dc.DrawRectangle(
		float64(box.Min.X), float64(box.Min.Y),
		float64(box.Dx()), float64(box.Dy()),
	)
	dc.Stroke()

	r.drawFittedLine(dc, StyleTitle, plainPieces(text), box, sizeType, anchorCenter)
}

// drawBackdrop stamps a large watermark glyph behind the art area, used
// for basic land mana symbols and the emblem mark.
func (r *Renderer) drawBackdrop(dc *gg.Context, g Geometry, label string) {
	dc.SetRGB(0, 0, 0)
	r.drawSymbol(dc, label, float64(g.BackdropCenter.X), float64(g.BackdropCenter.Y), backdropSize)
}

// drawIcon places the set icon into its slot on the type line, or a
// small default glyph when no icon image is configured.
func (r *Renderer) drawIcon(dc *gg.Context, g Geometry, symbol string) {
	if !g.HasIconSlot {
		return
	}
	if r.icon != nil {
		dc.DrawImageAnchored(r.icon, g.IconCenter.X, g.IconCenter.Y, 0.5, 0.5)
		return
	}
	label := "M"
	if symbol != "" {
		label = symbol
	}
	dc.SetRGB(0, 0, 0)
	r.drawSymbol(dc, label, float64(g.IconCenter.X), float64(g.IconCenter.Y), iconSize)
}

// multiplyInto darkens dst by src per channel. Faces are ink on white,
// so combining layers this way never lightens what is already drawn.
func multiplyInto(dst, src *image.RGBA) {
	if len(dst.Pix) != len(src.Pix) {
		return
	}
	for i := range dst.Pix {
		if src.Pix[i] < dst.Pix[i] {
			dst.Pix[i] = src.Pix[i]
		}
	}
}
