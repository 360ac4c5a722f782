package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/indiecore/bwproxy/pkg/app"
	"github.com/indiecore/bwproxy/pkg/data"
	"github.com/indiecore/bwproxy/pkg/page"
	"github.com/indiecore/bwproxy/pkg/render"
	"github.com/indiecore/bwproxy/pkg/scryfall"
	"github.com/indiecore/bwproxy/pkg/services"
)

var generateCmd = &cobra.Command{
	Use:     "generate [decklist]",
	Aliases: []string{"gen"},
	Short:   "Render a decklist into printable proxy sheets",
	Long:    "Parse a decklist file ('-' for stdin), look the cards up, and write proxy sheets as a PDF or numbered PNG files",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		flags := cmd.Flags()

		renderOpts := render.Options{
			Color:        cfg.Render.Color,
			TextSymbols:  cfg.Render.TextSymbols,
			FullArtLands: cfg.Render.FullArtLands,
			AcornStamp:   cfg.Render.AcornStamp,
			IconPath:     cfg.Render.IconPath,
		}
		if flags.Changed("color") {
			renderOpts.Color, _ = flags.GetBool("color")
		}
		if v, _ := flags.GetBool("no-symbols"); v {
			renderOpts.TextSymbols = false
		}
		if v, _ := flags.GetBool("no-acorn"); v {
			renderOpts.AcornStamp = false
		}
		if flags.Changed("full-art-lands") {
			renderOpts.FullArtLands, _ = flags.GetBool("full-art-lands")
		}
		if v, _ := flags.GetString("icon"); v != "" {
			renderOpts.IconPath = v
		}

		formatName := cfg.Page.Format
		if flags.Changed("page") {
			formatName, _ = flags.GetString("page")
		}
		format, err := page.ParseFormat(formatName)
		cobra.CheckErr(err)

		pageOpts := page.Options{
			Format:       format,
			Small:        cfg.Page.Small,
			TightSpacing: cfg.Page.TightSpacing,
		}
		if flags.Changed("small") {
			pageOpts.Small, _ = flags.GetBool("small")
		}
		if flags.Changed("no-space") {
			pageOpts.TightSpacing, _ = flags.GetBool("no-space")
		}

		playtest := cfg.Render.Playtest
		if flags.Changed("playtest") {
			playtest, _ = flags.GetBool("playtest")
		}

		altFrames, _ := flags.GetBool("alternative-frames")
		skipLands, _ := flags.GetBool("ignore-basic-lands")
		resolveOpts := services.ResolveOptions{
			SkipBasicLands:    skipLands,
			AlternativeFrames: altFrames,
			Playtest:          playtest,
		}

		listPath := args[0]
		var input io.Reader = os.Stdin
		deckName := "deck"
		if listPath != "-" {
			f, err := os.Open(listPath)
			cobra.CheckErr(err)
			defer f.Close()
			input = f
			deckName = strings.TrimSuffix(filepath.Base(listPath), filepath.Ext(listPath))
		}

		output, _ := flags.GetString("output")
		if output == "" {
			output = filepath.Join(cfg.OutputDir, deckName+".pdf")
		}

		cachePath, _ := flags.GetString("cache")
		if cachePath == "" {
			cachePath = cfg.CachePath
		}
		if cachePath == "" {
			cachePath = data.DefaultPath()
		}
		repo, err := data.Open(cachePath)
		cobra.CheckErr(err)
		defer repo.Close()

		client := scryfall.NewClient()
		defer client.Close()

		renderer, err := render.New(renderOpts)
		cobra.CheckErr(err)

		gen := services.NewGenerator(services.NewResolver(client, repo), renderer)
		genOpts := services.GenerateOptions{
			Resolve: resolveOpts,
			Page:    pageOpts,
			Output:  output,
		}
		run := func() (*services.Summary, error) {
			defer gen.Close()
			return gen.Generate(input, genOpts)
		}

		var summary *services.Summary
		if plain, _ := flags.GetBool("plain"); plain {
			go func() {
				for p := range gen.ProgressChannel() {
					if p.Phase == "rendering" {
						fmt.Printf("  rendering %s (%d/%d)\n", p.Name, p.Current, p.Total)
					} else {
						fmt.Printf("  %s\n", p.Phase)
					}
				}
			}()
			summary, err = run()
		} else {
			summary, err = app.NewGeneration(run, gen.ProgressChannel()).Run()
		}

		if summary != nil {
			for _, d := range summary.Diagnostics {
				color.Yellow("! %s", d)
			}
		}
		cobra.CheckErr(err)

		fmt.Printf("✅ %d cards (%d images) on %d sheets -> %s\n",
			summary.Cards, summary.Images, summary.Sheets, output)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringP("output", "o", "", "Output path (.pdf for one document, anything else for numbered PNGs)")
	f.String("page", "", "Page format: a4 or letter")
	f.Bool("small", false, "Shrink cards and pack a 4x4 grid per sheet")
	f.Bool("no-space", false, "Collapse the gap between cards to a cutting line")
	f.Bool("color", false, "Tint frames with the card's color identity")
	f.Bool("no-symbols", false, "Print {W}-style costs literally instead of glyphs")
	f.Bool("full-art-lands", false, "Draw the basic land watermark across the whole art area")
	f.Bool("no-acorn", false, "Skip the acorn marker on non-tournament-legal cards")
	f.Bool("playtest", false, "Use the narrow playtest card size")
	f.BoolP("alternative-frames", "a", false, "Fold flip into transform, aftermath into split, and textless cards into full-art frames")
	f.Bool("ignore-basic-lands", false, "Skip basic land entries")
	f.String("cache", "", "Card cache database path")
	f.String("icon", "", "Set icon image path")
	f.Bool("plain", false, "Plain progress output instead of the interactive display")
}
