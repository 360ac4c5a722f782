package services

import (
	"fmt"
	"image"
	"io"

	"github.com/indiecore/bwproxy/pkg/card"
	"github.com/indiecore/bwproxy/pkg/decklist"
	"github.com/indiecore/bwproxy/pkg/page"
)

// Progress reports pipeline advancement for the interactive display.
type Progress struct {
	Phase   string // "resolving", "rendering", "paginating", "writing", "complete", "error"
	Name    string
	Current int
	Total   int
	Error   error
}

// CardRenderer is what the pipeline needs from the frame renderer.
type CardRenderer interface {
	Render(lc card.LayoutCard) (image.Image, []string)
}

// GenerateOptions bundle the choices of one generation run.
type GenerateOptions struct {
	Resolve ResolveOptions
	Page    page.Options
	// Output is the sheet destination; a .pdf extension selects a
	// single document, anything else numbered PNG files.
	Output string
}

// Summary is what a finished run reports back.
type Summary struct {
	Cards       int
	Images      int
	Sheets      int
	Diagnostics []Diagnostic
}

// Generator runs the whole pipeline: parse, resolve, render, paginate,
// export. Per-card failures become diagnostics; only an unreadable list
// or an unwritable output aborts the run.
type Generator struct {
	resolver *Resolver
	renderer CardRenderer
	progress chan Progress
}

func NewGenerator(resolver *Resolver, renderer CardRenderer) *Generator {
	return &Generator{
		resolver: resolver,
		renderer: renderer,
		progress: make(chan Progress, 100),
	}
}

// ProgressChannel returns the channel carrying progress updates.
func (g *Generator) ProgressChannel() <-chan Progress {
	return g.progress
}

// Generate turns a decklist into printed sheets at opts.Output.
func (g *Generator) Generate(list io.Reader, opts GenerateOptions) (*Summary, error) {
	parsed, err := decklist.Parse(list)
	if err != nil {
		return nil, fmt.Errorf("reading decklist: %w", err)
	}

	g.sendProgress(Progress{Phase: "resolving", Total: len(parsed.Requests)})
	prints, diags := g.resolver.Resolve(parsed, opts.Resolve)

	var images []image.Image
	for i, p := range prints {
		g.sendProgress(Progress{
			Phase:   "rendering",
			Name:    p.Card.Title(),
			Current: i + 1,
			Total:   len(prints),
		})

		img, warnings := g.renderer.Render(p.Card)
		for _, w := range warnings {
			diags = append(diags, Diagnostic{Kind: DiagRenderOverflow, Message: w})
		}
		for n := 0; n < p.Count; n++ {
			images = append(images, img)
		}
	}

	summary := &Summary{
		Cards:       len(prints),
		Images:      len(images),
		Diagnostics: diags,
	}
	if len(images) == 0 {
		g.sendProgress(Progress{Phase: "complete"})
		return summary, nil
	}

	g.sendProgress(Progress{Phase: "paginating", Total: len(images)})
	sheets := page.Paginate(images, opts.Page)
	summary.Sheets = len(sheets)

	g.sendProgress(Progress{Phase: "writing", Name: opts.Output, Total: len(sheets)})
	if err := page.Export(sheets, opts.Output, opts.Page.Format); err != nil {
		g.sendProgress(Progress{Phase: "error", Error: err})
		return summary, err
	}

	g.sendProgress(Progress{Phase: "complete", Total: len(sheets)})
	return summary, nil
}

// sendProgress never blocks; a full channel drops the update.
func (g *Generator) sendProgress(p Progress) {
	select {
	case g.progress <- p:
	default:
	}
}

// Close releases the progress channel.
func (g *Generator) Close() {
	close(g.progress)
}
