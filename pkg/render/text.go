package render

import (
	"image"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// fitSize shrinks a starting point size until the pieces fit the width,
// stepping down and stopping at the floor. The returned flag is false
// when the text still does not fit at the minimum size.
func (r *Renderer) fitSize(style FontStyle, pieces []piece, maxWidth float64, size float64) (float64, bool) {
	for {
		face := r.fonts.Face(style, size)
		if measurePieces(face, pieces, size) <= maxWidth {
			return size, true
		}
		if size-fitStep < fitMinSize {
			return size, false
		}
		size -= fitStep
	}
}

// lineAnchor is the horizontal alignment of a fitted single line.
type lineAnchor int

const (
	anchorLeft lineAnchor = iota
	anchorCenter
)

// drawFittedLine draws one line of pieces inside the box, shrinking the
// font until the line fits the box width minus the side margins. The
// baseline is chosen from the face ascent so the lowercase body sits at
// the optical center of the box.
func (r *Renderer) drawFittedLine(dc *gg.Context, style FontStyle, pieces []piece, box image.Rectangle, size float64, anchor lineAnchor) {
	if len(pieces) == 0 {
		return
	}
	maxWidth := float64(box.Dx() - 2*separator)
	size, _ = r.fitSize(style, pieces, maxWidth, size)
	face := r.fonts.Face(style, size)

	width := measurePieces(face, pieces, size)
	x := float64(box.Min.X + separator)
	if anchor == anchorCenter {
		x = float64(box.Min.X) + (float64(box.Dx())-width)/2
	}
	baseline := baselineCentered(face, box)
	r.drawPieces(dc, style, pieces, x, baseline, size)
}

// baselineCentered puts the baseline so that the cap height band sits in
// the middle of the box.
func baselineCentered(face font.Face, box image.Rectangle) float64 {
	ascent := fixedToFloat(face.Metrics().Ascent)
	return float64(box.Min.Y) + (float64(box.Dy())+ascent*0.72)/2
}

// paragraphLine is one wrapped display line; gap lines separate oracle
// paragraphs.
type paragraphLine struct {
	pieces []piece
	gap    bool
}

// wrapParagraphs greedily wraps each paragraph to the width at the given
// size, splitting on spaces. Words wider than the box get their own line
// and overflow horizontally rather than being broken mid-word.
func (r *Renderer) wrapParagraphs(style FontStyle, paragraphs [][]piece, maxWidth, size float64) []paragraphLine {
	face := r.fonts.Face(style, size)
	spaceWidth := fixedToFloat(font.MeasureString(face, " "))

	var lines []paragraphLine
	for i, para := range paragraphs {
		if i > 0 {
			lines = append(lines, paragraphLine{gap: true})
		}
		var current []piece
		var width float64
		for _, word := range splitWords(para) {
			wordWidth := measurePieces(face, word, size)
			if len(current) > 0 && width+spaceWidth+wordWidth > maxWidth {
				lines = append(lines, paragraphLine{pieces: current})
				current, width = nil, 0
			}
			if len(current) > 0 {
				current = append(current, piece{text: " "})
				width += spaceWidth
			}
			current = append(current, word...)
			width += wordWidth
		}
		if len(current) > 0 {
			lines = append(lines, paragraphLine{pieces: current})
		}
	}
	return lines
}

// splitWords cuts a paragraph of pieces into space-separated words, each
// word itself a piece run. Symbols never contain spaces.
func splitWords(para []piece) [][]piece {
	var words [][]piece
	var current []piece
	flush := func() {
		if len(current) > 0 {
			words = append(words, current)
			current = nil
		}
	}
	for _, p := range para {
		if p.symbol != "" {
			current = append(current, p)
			continue
		}
		parts := strings.Split(p.text, " ")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			if part != "" {
				current = append(current, piece{text: part})
			}
		}
	}
	flush()
	return words
}

// drawFittedParagraphs wraps and draws rules paragraphs inside the box,
// shrinking the font until the wrapped block fits the box height. At the
// minimum size the block is drawn anyway and clipped by the box; the
// returned flag reports that overflow.
func (r *Renderer) drawFittedParagraphs(dc *gg.Context, style FontStyle, paragraphs [][]piece, box image.Rectangle, size float64) bool {
	if len(paragraphs) == 0 {
		return true
	}
	maxWidth := float64(box.Dx() - 2*separator)
	maxHeight := float64(box.Dy() - 2*separator)

	var lines []paragraphLine
	var lineHeight float64
	for {
		face := r.fonts.Face(style, size)
		lineHeight = fixedToFloat(face.Metrics().Height)
		lines = r.wrapParagraphs(style, paragraphs, maxWidth, size)
		if lineHeight*float64(len(lines)) <= maxHeight {
			break
		}
		if size-fitStep < fitMinSize {
			break
		}
		size -= fitStep
	}

	fits := lineHeight*float64(len(lines)) <= maxHeight

	dc.Push()
	dc.DrawRectangle(
		float64(box.Min.X), float64(box.Min.Y),
		float64(box.Dx()), float64(box.Dy()),
	)
	dc.Clip()

	ascent := fixedToFloat(r.fonts.Face(style, size).Metrics().Ascent)
	y := float64(box.Min.Y+separator) + ascent
	x := float64(box.Min.X + separator)
	for _, line := range lines {
		if !line.gap {
			r.drawPieces(dc, style, line.pieces, x, y, size)
		}
		y += lineHeight
	}

	dc.ResetClip()
	dc.Pop()
	return fits
}
