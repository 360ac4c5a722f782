package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/indiecore/bwproxy/pkg/card"
)

// generatorCredit is printed in the credits strip of every card.
const generatorCredit = "bwproxy proxy generator"

// Options are the rendering choices shared by every card of a run.
type Options struct {
	// Color tints the frame ink with the card's color identity instead
	// of leaving it black.
	Color bool
	// TextSymbols draws {W}-style costs as circled glyphs; when false
	// the braces are printed literally.
	TextSymbols bool
	// FullArtLands draws the basic land watermark across the whole art
	// area instead of a half-size mark.
	FullArtLands bool
	// AcornStamp marks non-tournament-legal cards with an acorn glyph
	// next to the name.
	AcornStamp bool
	// IconPath optionally points at an image used as the set icon.
	IconPath string
}

// DefaultOptions are the choices used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TextSymbols: true,
		AcornStamp:  true,
	}
}

// Renderer draws cards. It is not safe for concurrent use: the font face
// cache and the drawing contexts are unsynchronized.
type Renderer struct {
	table *Table
	fonts *FontSet
	opts  Options
	icon  image.Image
}

// New builds a renderer, parsing the embedded fonts and loading the set
// icon when one is configured.
func New(opts Options) (*Renderer, error) {
	fonts, err := NewFontSet()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		table: NewTable(),
		fonts: fonts,
		opts:  opts,
	}
	if opts.IconPath != "" {
		img, err := imaging.Open(opts.IconPath)
		if err != nil {
			return nil, fmt.Errorf("loading set icon: %w", err)
		}
		r.icon = imaging.Fit(img, iconSize, iconSize, imaging.Lanczos)
	}
	return r, nil
}

// Render draws one card image. Warnings report text that had to be
// clipped; the image is always produced.
func (r *Renderer) Render(lc card.LayoutCard) (image.Image, []string) {
	size := CardDimensions(lc.Playtest)
	out := whiteCanvas(size)

	var warnings []string
	for _, face := range lc.Faces() {
		g := r.table.Geometry(lc.Frame, face.Card.FaceNum(), lc.Playtest)
		layer, warn := r.renderFaceLayer(face, g, size)
		multiplyInto(out, layer)
		warnings = append(warnings, warn...)
	}

	if lc.Frame == card.LayoutFuse {
		multiplyInto(out, r.fuseBarLayer(lc, size))
	}
	return out, warnings
}

// renderFaceLayer draws one face upright, recolors it, then rotates and
// positions it on a card-sized layer.
func (r *Renderer) renderFaceLayer(face card.LayoutCard, g Geometry, cardSize image.Point) (*image.RGBA, []string) {
	dc := gg.NewContext(g.Face.X, g.Face.Y)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	c := face.Card
	var warnings []string

	if label := r.backdropLabel(face); label != "" {
		size := float64(backdropSize)
		if !r.opts.FullArtLands && lcIsLand(face) {
			size /= 2
		}
		r.drawSymbol(dc, label, float64(g.BackdropCenter.X), float64(g.BackdropCenter.Y), size)
	}

	r.drawFrame(dc, g)
	r.drawTitleLine(dc, face, g)
	r.drawTypeLine(dc, c, g)

	if g.Rules.Dy() > 0 {
		if !r.drawRules(dc, face, g) {
			warnings = append(warnings, fmt.Sprintf("rules text of %q clipped to fit", c.Name))
		}
	}
	if !g.Attraction.Empty() {
		r.drawAttractionColumn(dc, g)
	}
	if face.HasFlavorName() {
		oracleBox := image.Rect(0, g.ArtTop, g.Face.X, g.ArtTop+creditsHeight)
		r.drawFittedLine(dc, StyleText, plainPieces(c.Name), oracleBox, sizeCredits, anchorCenter)
	}
	if g.HasCredits {
		size := sizeCredits
		if face.Playtest {
			size = sizeCreditsPlaytest
		}
		r.drawFittedLine(dc, StyleText, plainPieces(generatorCredit), g.Credits, size, anchorLeft)
	}
	if text := c.BottomText(); text != "" && !g.Bottom.Empty() {
		r.drawBottomBox(dc, g, text)
	}

	img := dc.Image().(*image.RGBA)
	if r.opts.Color {
		applyColorField(img, colorField(faceColors(face), g.Face))
	}
	return placeFace(img, g, cardSize), warnings
}

// drawTitleLine writes the mana cost right-aligned, then fits the name
// (with its face or acorn marker) into the remaining width. Arched
// titles are centered instead.
func (r *Renderer) drawTitleLine(dc *gg.Context, face card.LayoutCard, g Geometry) {
	box := g.Title
	rightEdge := box.Max.X - separator

	if cost := face.Card.ManaCost; cost != "" {
		pieces := r.textPieces(cost)
		size, _ := r.fitSize(StyleTitle, pieces, float64(box.Dx()/2), sizeTitle)
		f := r.fonts.Face(StyleTitle, size)
		width := measurePieces(f, pieces, size)
		r.drawPieces(dc, StyleTitle, pieces, float64(rightEdge)-width, baselineCentered(f, box), size)
		rightEdge -= int(width) + separator
	}

	var pieces []piece
	if sym := face.Card.FaceSymbol(); sym != "" && (sym != "{ACORN}" || r.opts.AcornStamp) {
		pieces = append(pieces, splitSymbols(sym)...)
		pieces = append(pieces, piece{text: " "})
	}
	pieces = append(pieces, plainPieces(face.Title())...)

	anchor := anchorLeft
	if g.TitleArc {
		anchor = anchorCenter
	}
	nameBox := image.Rect(box.Min.X, box.Min.Y, rightEdge, box.Max.Y)
	r.drawFittedLine(dc, StyleTitle, pieces, nameBox, sizeTitle, anchor)
}

// drawTypeLine writes the type line left of the set icon slot.
func (r *Renderer) drawTypeLine(dc *gg.Context, c *card.Card, g Geometry) {
	box := g.Type
	if g.HasIconSlot {
		r.drawIcon(dc, g, "")
		box.Max.X -= separator + iconSize
	}
	r.drawFittedLine(dc, StyleTitle, plainPieces(c.TypeLine), box, sizeType, anchorLeft)
}

// drawRules writes the oracle paragraphs, reporting false on clipping.
func (r *Renderer) drawRules(dc *gg.Context, face card.LayoutCard, g Geometry) bool {
	lines := face.Card.RulesLines()
	paragraphs := make([][]piece, 0, len(lines))
	for _, l := range lines {
		paragraphs = append(paragraphs, r.textPieces(l))
	}
	return r.drawFittedParagraphs(dc, StyleText, paragraphs, g.Rules, sizeRules)
}

// fuseBarLayer draws the shared fuse rule across both halves on a
// sideways canvas, then turns it into card orientation.
func (r *Renderer) fuseBarLayer(lc card.LayoutCard, cardSize image.Point) *image.RGBA {
	dc := gg.NewContext(cardSize.Y, cardSize.X)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	g := r.table.Geometry(card.LayoutFuse, 0, lc.Playtest)
	band := image.Rect(0, g.Fuse.Min.Y, cardSize.Y, g.Fuse.Max.Y)
	r.drawFittedLine(dc, StyleText, r.textPieces(card.FuseText), band, sizeRules, anchorLeft)

	img := dc.Image().(*image.RGBA)
	if r.opts.Color {
		applyColorField(img, colorField(faceColors(lc), image.Pt(cardSize.Y, cardSize.X)))
	}
	layer := whiteCanvas(cardSize)
	drawOnto(layer, imaging.Rotate270(img), image.Point{})
	return layer
}

// backdropLabel is the watermark glyph for the face, if any.
func (r *Renderer) backdropLabel(face card.LayoutCard) string {
	c := face.Card
	switch {
	case lcIsLand(face):
		return card.BasicLandColor(c.Name)
	case face.Frame == card.LayoutEmblem:
		return "E"
	case face.Frame == card.LayoutVanillaToken:
		if len(c.ColorIndicator) == 1 {
			return string(c.ColorIndicator[0])
		}
	}
	return ""
}

func lcIsLand(face card.LayoutCard) bool {
	return face.Frame == card.LayoutLand && card.IsBasicLand(face.Card.Name)
}

// faceColors is the identity used for the color overlay.
func faceColors(face card.LayoutCard) []card.Color {
	c := face.Card
	if lcIsLand(face) {
		letter := card.BasicLandColor(c.Name)
		for _, col := range card.AllColors {
			if string(col) == letter {
				return []card.Color{col}
			}
		}
		return nil
	}
	if len(c.Colors) > 0 {
		return c.Colors
	}
	return c.ColorIndicator
}

func (r *Renderer) textPieces(s string) []piece {
	if r.opts.TextSymbols {
		return splitSymbols(s)
	}
	return plainPieces(s)
}

// placeFace rotates the upright face by its quarter turns and pastes it
// onto a white card-sized layer at its placement offset.
func placeFace(faceImg *image.RGBA, g Geometry, cardSize image.Point) *image.RGBA {
	var rotated image.Image = faceImg
	switch g.Turns % 4 {
	case 1:
		rotated = imaging.Rotate270(faceImg)
	case 2:
		rotated = imaging.Rotate180(faceImg)
	case 3:
		rotated = imaging.Rotate90(faceImg)
	}
	layer := whiteCanvas(cardSize)
	drawOnto(layer, rotated, g.Place)
	return layer
}

func whiteCanvas(size image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func drawOnto(dst *image.RGBA, src image.Image, at image.Point) {
	b := src.Bounds()
	target := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	draw.Draw(dst, target, src, b.Min, draw.Src)
}
