package page

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indiecore/bwproxy/pkg/render"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("a4")
	require.NoError(t, err)
	assert.Equal(t, A4, f)

	f, err = ParseFormat("letter")
	require.NoError(t, err)
	assert.Equal(t, Letter, f)

	_, err = ParseFormat("legal")
	assert.ErrorContains(t, err, "legal")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, image.Pt(2475, 3525), A4.Size())
	assert.Equal(t, image.Pt(2550, 3300), Letter.Size())
}

// cardStack builds n card images, each filled with a distinct shade so
// the placement order is visible on the sheet.
func cardStack(n int) []image.Image {
	size := render.CardDimensions(false)
	cards := make([]image.Image, n)
	for i := range cards {
		img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		shade := color.RGBA{R: uint8(i + 1), G: uint8(i + 1), B: uint8(i + 1), A: 0xff}
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				img.SetRGBA(x, y, shade)
			}
		}
		cards[i] = img
	}
	return cards
}

func TestPaginateFillsThreeByThree(t *testing.T) {
	pages := Paginate(cardStack(10), Options{Format: A4})
	require.Len(t, pages, 2)
	for _, p := range pages {
		assert.Equal(t, A4.Size(), p.Bounds().Size())
	}
}

func TestPaginateEmpty(t *testing.T) {
	assert.Nil(t, Paginate(nil, Options{Format: A4}))
}

func TestPaginateSmallPacksSixteen(t *testing.T) {
	pages := Paginate(cardStack(16), Options{Format: A4, Small: true})
	assert.Len(t, pages, 1)

	pages = Paginate(cardStack(17), Options{Format: A4, Small: true})
	assert.Len(t, pages, 2)
}

func TestPaginatePlacesInRowOrder(t *testing.T) {
	pages := Paginate(cardStack(9), Options{Format: A4})
	require.Len(t, pages, 1)
	sheet := pages[0]

	size := render.CardDimensions(false)
	grid := image.Pt(3, 3)
	for i := 0; i < 9; i++ {
		at := cellOrigin(i, grid, A4.Size(), size, cardGap)
		center := at.Add(size.Div(2))
		r, _, _, _ := sheet.At(center.X, center.Y).RGBA()
		assert.Equal(t, uint32(i+1)*0x101, r, "cell %d", i)
	}
}

func TestPaginateGridIsCentered(t *testing.T) {
	size := render.CardDimensions(false)
	grid := image.Pt(3, 3)
	pageSize := A4.Size()

	first := cellOrigin(0, grid, pageSize, size, cardGap)
	last := cellOrigin(8, grid, pageSize, size, cardGap)

	leftMargin := first.X - cardGap
	rightMargin := pageSize.X - (last.X + size.X + cardGap)
	assert.InDelta(t, leftMargin, rightMargin, 1)

	topMargin := first.Y - cardGap
	bottomMargin := pageSize.Y - (last.Y + size.Y + cardGap)
	assert.InDelta(t, topMargin, bottomMargin, 1)
}

func TestPaginateTightSpacing(t *testing.T) {
	size := render.CardDimensions(false)
	grid := image.Pt(3, 3)

	looseGap := cellOrigin(1, grid, A4.Size(), size, cardGap).X -
		cellOrigin(0, grid, A4.Size(), size, cardGap).X - size.X
	tightGap := cellOrigin(1, grid, A4.Size(), size, cardGapTight).X -
		cellOrigin(0, grid, A4.Size(), size, cardGapTight).X - size.X

	assert.Equal(t, cardGap, looseGap)
	assert.Equal(t, cardGapTight, tightGap)
}

func TestPaginateSurroundsCardsWithWhite(t *testing.T) {
	pages := Paginate(cardStack(1), Options{Format: A4})
	require.Len(t, pages, 1)

	r, g, b, _ := pages[0].At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}
