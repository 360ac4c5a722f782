package services

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indiecore/bwproxy/pkg/card"
	"github.com/indiecore/bwproxy/pkg/page"
)

type stubRenderer struct {
	warnings []string
	rendered []string
}

func (s *stubRenderer) Render(lc card.LayoutCard) (image.Image, []string) {
	s.rendered = append(s.rendered, lc.Title())
	img := image.NewRGBA(image.Rect(0, 0, 10, 14))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Black)
	return img, s.warnings
}

func testGenerator(t *testing.T, source Source, renderer CardRenderer) *Generator {
	t.Helper()
	g := NewGenerator(NewResolver(source, newMockCache()), renderer)
	t.Cleanup(g.Close)
	return g
}

func TestGenerateWritesSheets(t *testing.T) {
	source := &mockSource{namedFunc: namedFromMap(map[string]*card.Payload{
		"Shock": {Name: "Shock", TypeLine: "Instant"},
		"Opt":   {Name: "Opt", TypeLine: "Instant"},
	})}
	renderer := &stubRenderer{}
	g := testGenerator(t, source, renderer)

	dir := t.TempDir()
	output := filepath.Join(dir, "deck.png")
	summary, err := g.Generate(
		strings.NewReader("4 Shock\n6 Opt"),
		GenerateOptions{Page: page.Options{Format: page.A4}, Output: output},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Cards)
	assert.Equal(t, 10, summary.Images)
	assert.Equal(t, 2, summary.Sheets)
	assert.Empty(t, summary.Diagnostics)
	assert.Equal(t, []string{"Shock", "Opt"}, renderer.rendered)

	_, err = os.Stat(filepath.Join(dir, "deck001.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "deck002.png"))
	assert.NoError(t, err)
}

func TestGenerateNothingToPrint(t *testing.T) {
	g := testGenerator(t, &mockSource{}, &stubRenderer{})

	dir := t.TempDir()
	output := filepath.Join(dir, "deck.png")
	summary, err := g.Generate(
		strings.NewReader("1 Not A Real Card"),
		GenerateOptions{Page: page.Options{Format: page.A4}, Output: output},
	)
	require.NoError(t, err)

	assert.Zero(t, summary.Images)
	assert.Zero(t, summary.Sheets)
	require.Len(t, summary.Diagnostics, 1)
	assert.Equal(t, DiagLookupMiss, summary.Diagnostics[0].Kind)

	// Nothing printable, nothing written.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateCollectsRenderWarnings(t *testing.T) {
	source := &mockSource{namedFunc: namedFromMap(map[string]*card.Payload{
		"Shock": {Name: "Shock", TypeLine: "Instant"},
	})}
	renderer := &stubRenderer{warnings: []string{"rules text of \"Shock\" clipped to fit"}}
	g := testGenerator(t, source, renderer)

	summary, err := g.Generate(
		strings.NewReader("1 Shock"),
		GenerateOptions{
			Page:   page.Options{Format: page.A4},
			Output: filepath.Join(t.TempDir(), "deck.png"),
		},
	)
	require.NoError(t, err)
	require.Len(t, summary.Diagnostics, 1)
	assert.Equal(t, DiagRenderOverflow, summary.Diagnostics[0].Kind)
	assert.Contains(t, summary.Diagnostics[0].Message, "clipped")
}

func TestGenerateReportsProgressPhases(t *testing.T) {
	source := &mockSource{namedFunc: namedFromMap(map[string]*card.Payload{
		"Shock": {Name: "Shock", TypeLine: "Instant"},
	})}
	g := testGenerator(t, source, &stubRenderer{})

	_, err := g.Generate(
		strings.NewReader("1 Shock"),
		GenerateOptions{
			Page:   page.Options{Format: page.A4},
			Output: filepath.Join(t.TempDir(), "deck.png"),
		},
	)
	require.NoError(t, err)

	seen := make(map[string]bool)
drain:
	for {
		select {
		case p := <-g.ProgressChannel():
			seen[p.Phase] = true
		default:
			break drain
		}
	}
	for _, phase := range []string{"resolving", "rendering", "paginating", "writing", "complete"} {
		assert.True(t, seen[phase], "missing phase %q", phase)
	}
}

func TestGenerateExportError(t *testing.T) {
	source := &mockSource{namedFunc: namedFromMap(map[string]*card.Payload{
		"Shock": {Name: "Shock", TypeLine: "Instant"},
	})}
	g := testGenerator(t, source, &stubRenderer{})

	// A regular file where the output directory should go makes the
	// export fail after rendering succeeded.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := g.Generate(
		strings.NewReader("1 Shock"),
		GenerateOptions{
			Page:   page.Options{Format: page.A4},
			Output: filepath.Join(blocker, "deck.png"),
		},
	)
	assert.Error(t, err)
}
