// Package page arranges rendered cards onto printable sheets and writes
// them out as numbered images or a single PDF.
package page

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/indiecore/bwproxy/pkg/render"
)

// Format is the paper size of the output sheets.
type Format string

const (
	A4     Format = "a4"
	Letter Format = "letter"
)

// ParseFormat accepts the paper format names used on the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case A4, Letter:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown page format %q (want a4 or letter)", s)
}

// Size is the sheet size in pixels at print resolution. A4 is 8.25 by
// 11.75 inches, letter 8.5 by 11.
func (f Format) Size() image.Point {
	if f == Letter {
		return image.Pt(int(8.5*render.DPI), 11*render.DPI)
	}
	return image.Pt(int(8.25*render.DPI), int(11.75*render.DPI))
}

// Card gaps in pixels; the tight one leaves just enough to cut along.
const (
	cardGap      = 40
	cardGapTight = 3
)

// Options control the sheet layout.
type Options struct {
	Format Format
	// Small shrinks cards to three quarters and packs a 4x4 grid per
	// sheet instead of 3x3.
	Small bool
	// TightSpacing collapses the gap between cards to a cutting line.
	TightSpacing bool
}

// Paginate lays the card images out on sheets, in input order, row by
// row. All images are expected to share the size of the first.
func Paginate(cards []image.Image, opts Options) []image.Image {
	if len(cards) == 0 {
		return nil
	}

	grid := image.Pt(3, 3)
	cardSize := cards[0].Bounds().Size()
	if opts.Small {
		grid = image.Pt(4, 4)
		cardSize = image.Pt(
			int(float64(cardSize.X)*render.SmallResizeFactor),
			int(float64(cardSize.Y)*render.SmallResizeFactor),
		)
		resized := make([]image.Image, len(cards))
		for i, c := range cards {
			resized[i] = imaging.Resize(c, cardSize.X, cardSize.Y, imaging.Lanczos)
		}
		cards = resized
	}

	gap := cardGap
	if opts.TightSpacing {
		gap = cardGapTight
	}

	pageSize := opts.Format.Size()
	perPage := grid.X * grid.Y

	var pages []image.Image
	for start := 0; start < len(cards); start += perPage {
		end := start + perPage
		if end > len(cards) {
			end = len(cards)
		}

		sheet := image.NewRGBA(image.Rectangle{Max: pageSize})
		draw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, draw.Src)

		for i, c := range cards[start:end] {
			at := cellOrigin(i, grid, pageSize, cardSize, gap)
			target := image.Rectangle{Min: at, Max: at.Add(cardSize)}
			draw.Draw(sheet, target, c, c.Bounds().Min, draw.Src)
		}
		pages = append(pages, sheet)
	}
	return pages
}

// cellOrigin is the top-left corner of the n-th cell, with the whole
// grid centered on the sheet.
func cellOrigin(n int, grid, pageSize, cardSize image.Point, gap int) image.Point {
	marginH := pageSize.X - (gap + (cardSize.X+gap)*grid.X)
	marginV := pageSize.Y - (gap + (cardSize.Y+gap)*grid.Y)
	return image.Pt(
		marginH/2+gap+(cardSize.X+gap)*(n%grid.X),
		marginV/2+gap+(cardSize.Y+gap)*(n/grid.X),
	)
}
