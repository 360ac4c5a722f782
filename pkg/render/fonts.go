package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle picks one of the two embedded typefaces.
type FontStyle int

const (
	// StyleTitle is the bold face used for names, type lines and the
	// power/toughness box.
	StyleTitle FontStyle = iota
	// StyleText is the regular face used for rules text and credits.
	StyleText
)

// Base point sizes before any fitting shrinks them.
const (
	sizeTitle           = 60.0
	sizeType            = 50.0
	sizeRules           = 40.0
	sizeCredits         = 30.0
	sizeCreditsPlaytest = 23.0

	// fitStep is how much a fitted size shrinks per attempt; fitMinSize
	// is the floor below which text is clipped instead of shrunk.
	fitStep    = 3.0
	fitMinSize = 12.0
)

type faceKey struct {
	style FontStyle
	size  float64
}

// FontSet parses the embedded typefaces once and hands out sized faces,
// caching each size on first use.
type FontSet struct {
	title *opentype.Font
	text  *opentype.Font
	faces map[faceKey]font.Face
}

// NewFontSet parses the embedded fonts. It only fails if the embedded
// data is corrupt, which would be a packaging defect.
func NewFontSet() (*FontSet, error) {
	title, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing title font: %w", err)
	}
	text, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing text font: %w", err)
	}
	return &FontSet{
		title: title,
		text:  text,
		faces: make(map[faceKey]font.Face),
	}, nil
}

// Face returns the typeface at the given point size.
func (fs *FontSet) Face(style FontStyle, size float64) font.Face {
	key := faceKey{style, size}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	src := fs.text
	if style == StyleTitle {
		src = fs.title
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// The parsed fonts never fail to instantiate at positive sizes.
		panic(fmt.Sprintf("render: sizing font: %v", err))
	}
	fs.faces[key] = f
	return f
}
