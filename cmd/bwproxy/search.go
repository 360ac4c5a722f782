package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/indiecore/bwproxy/pkg/app/components"
	"github.com/indiecore/bwproxy/pkg/scryfall"
)

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search token and emblem candidates",
	Long:  "Show every token (or emblem) matching a name, to check what a decklist entry would resolve to",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		emblem, _ := cmd.Flags().GetBool("emblem")

		client := scryfall.NewClient()
		defer client.Close()

		results, err := client.SearchTokens(name, emblem)
		cobra.CheckErr(err)

		if len(results) == 0 {
			fmt.Printf("No matches for %q\n", name)
			return
		}

		rows := make([][]string, 0, len(results))
		for _, p := range results {
			text := p.OracleText
			if len(text) > 60 {
				text = text[:57] + "..."
			}
			pt := ""
			if p.Power != "" || p.Toughness != "" {
				pt = p.Power + "/" + p.Toughness
			}
			rows = append(rows, []string{
				p.Name,
				p.TypeLine,
				strings.Join(p.Colors, ""),
				pt,
				strings.ReplaceAll(text, "\n", " "),
			})
		}

		fmt.Println(components.CardTable(
			[]string{"Name", "Type", "Colors", "P/T", "Text"},
			rows, 120,
		))
		fmt.Printf("%d candidates; decklists pick the first one\n", len(results))
	},
}

func init() {
	searchCmd.Flags().BoolP("emblem", "e", false, "Search emblems instead of tokens")
}
