package render

import (
	"image"
	"image/color"

	"github.com/indiecore/bwproxy/pkg/card"
)

// Frame template colors, one per mana color plus the colorless and
// multicolor fallbacks.
var frameColors = map[card.Color]color.RGBA{
	card.White: {R: 0xff, G: 0xf5, B: 0x3f, A: 0xff},
	card.Blue:  {R: 0x12, G: 0x7d, B: 0xb4, A: 0xff},
	card.Black: {R: 0x43, G: 0x01, B: 0x63, A: 0xff},
	card.Red:   {R: 0xe1, G: 0x3c, B: 0x32, A: 0xff},
	card.Green: {R: 0x00, G: 0x67, B: 0x32, A: 0xff},
}

var (
	colorlessFrame = color.RGBA{R: 0x91, G: 0x97, B: 0x99, A: 0xff}
	multicolorGold = color.RGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff}
)

// colorField paints the template for a color identity: a flat fill for
// zero or one color, gold for five, and a left-to-right gradient through
// the identity in canonical order for two to four.
func colorField(colors []card.Color, size image.Point) *image.RGBA {
	field := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))

	switch len(colors) {
	case 0:
		fill(field, colorlessFrame)
	case 1:
		fill(field, frameColors[colors[0]])
	case 5:
		fill(field, multicolorGold)
	default:
		gradient(field, card.SortColors(colors))
	}
	return field
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// gradient blends horizontally between the stops; the first color holds
// the left edge and the last the right.
func gradient(img *image.RGBA, colors []card.Color) {
	b := img.Bounds()
	w := b.Dx()
	segments := len(colors) - 1
	segWidth := float64(w) / float64(segments)

	for x := 0; x < w; x++ {
		idx := int(float64(x) / segWidth)
		if idx >= segments {
			idx = segments - 1
		}
		t := (float64(x) - float64(idx)*segWidth) / segWidth
		c := lerpRGBA(frameColors[colors[idx]], frameColors[colors[idx+1]], t)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			img.SetRGBA(b.Min.X+x, y, c)
		}
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: 0xff,
	}
}

// applyColorField recolors the ink of a monochrome face in place: each
// pixel is blended toward the field color in proportion to its darkness,
// so white stays white and solid black becomes exactly the field color.
func applyColorField(face *image.RGBA, field *image.RGBA) {
	b := face.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := face.PixOffset(x, y)
			// Rec. 601 luma.
			lum := (299*int(face.Pix[i]) + 587*int(face.Pix[i+1]) + 114*int(face.Pix[i+2])) / 1000
			if lum == 255 {
				continue
			}
			t := float64(255-lum) / 255
			fc := field.RGBAAt(x, y)
			face.Pix[i] = lerpChannel(face.Pix[i], fc.R, t)
			face.Pix[i+1] = lerpChannel(face.Pix[i+1], fc.G, t)
			face.Pix[i+2] = lerpChannel(face.Pix[i+2], fc.B, t)
		}
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + t*(float64(b)-float64(a))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
