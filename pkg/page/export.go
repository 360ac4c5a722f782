package page

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/indiecore/bwproxy/pkg/render"
)

// Export writes the sheets to the output path. A .pdf extension produces
// one multi-page document; anything else produces numbered PNG files
// next to the given base name.
func Export(pages []image.Image, output string, format Format) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to export")
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if strings.EqualFold(filepath.Ext(output), ".pdf") {
		return exportPDF(pages, output, format)
	}
	return exportPNG(pages, output)
}

func exportPNG(pages []image.Image, output string) error {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	for i, p := range pages {
		path := fmt.Sprintf("%s%03d.png", base, i+1)
		if err := imaging.Save(p, path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// exportPDF embeds each sheet at print resolution, so the physical page
// size matches the paper format exactly.
func exportPDF(pages []image.Image, output string, format Format) error {
	size := format.Size()
	wpt := float64(size.X) / render.DPI * 72
	hpt := float64(size.Y) / render.DPI * 72

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wpt, Ht: hpt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, p := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, p); err != nil {
			return fmt.Errorf("encoding page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%03d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, wpt, hpt, false, opts, 0, "")
	}
	if err := pdf.OutputFileAndClose(output); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}
