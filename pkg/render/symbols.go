package render

import (
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// piece is one run of a text line: either plain text or a single mana,
// tap or similar symbol to be drawn as a glyph.
type piece struct {
	text   string
	symbol string
}

// splitSymbols cuts a string into text runs and {X}-style symbol runs.
// Unterminated braces are kept as plain text.
func splitSymbols(s string) []piece {
	var out []piece
	for len(s) > 0 {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			out = append(out, piece{text: s})
			break
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			out = append(out, piece{text: s})
			break
		}
		if open > 0 {
			out = append(out, piece{text: s[:open]})
		}
		out = append(out, piece{symbol: s[open+1 : open+end]})
		s = s[open+end+1:]
	}
	return out
}

// plainPieces wraps a string as a single text run, for when symbol
// rendering is disabled and braces stay literal.
func plainPieces(s string) []piece {
	if s == "" {
		return nil
	}
	return []piece{{text: s}}
}

// measurePieces is the advance width of a run of pieces. Symbols are
// square, one side per point of font size.
func measurePieces(face font.Face, pieces []piece, size float64) float64 {
	var w float64
	for _, p := range pieces {
		if p.symbol != "" {
			w += size
			continue
		}
		w += fixedToFloat(font.MeasureString(face, p.text))
	}
	return w
}

// drawPieces renders a run of pieces left to right from x at the given
// baseline. Symbols are vertically centered on the lowercase body.
func (r *Renderer) drawPieces(dc *gg.Context, style FontStyle, pieces []piece, x, baseline, size float64) {
	face := r.fonts.Face(style, size)
	dc.SetFontFace(face)
	for _, p := range pieces {
		if p.symbol != "" {
			r.drawSymbol(dc, p.symbol, x+size/2, baseline-0.35*size, size)
			dc.SetFontFace(face)
			x += size
			continue
		}
		dc.DrawString(p.text, x, baseline)
		x += fixedToFloat(font.MeasureString(face, p.text))
	}
}

// symbolLabels shortens the multi-character face markers to something
// that fits inside a circled glyph.
var symbolLabels = map[string]string{
	"transform0": "I",
	"transform1": "II",
	"modal_dfc0": "I",
	"modal_dfc1": "II",
	"flip0":      "I",
	"flip1":      "II",
	"ACORN":      "A",
}

// drawSymbol draws one circled symbol glyph centered on (cx, cy).
func (r *Renderer) drawSymbol(dc *gg.Context, label string, cx, cy, side float64) {
	if short, ok := symbolLabels[label]; ok {
		label = short
	}
	radius := side/2 - 1
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()

	labelSize := side * 0.62
	if len(label) > 1 {
		labelSize = side * 0.42
	}
	dc.SetFontFace(r.fonts.Face(StyleTitle, labelSize))
	dc.DrawStringAnchored(label, cx, cy, 0.5, 0.42)
}
