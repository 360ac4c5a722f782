package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/indiecore/bwproxy/pkg/app/components"
	"github.com/indiecore/bwproxy/pkg/data"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the card lookup cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached cards and tokens",
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := openCache(cmd)
		cobra.CheckErr(err)
		defer repo.Close()

		cards, err := repo.ListCards()
		cobra.CheckErr(err)
		tokens, err := repo.ListTokens()
		cobra.CheckErr(err)

		if len(cards) > 0 {
			fmt.Println("Cards:")
			fmt.Println(components.CardTable(
				[]string{"Key", "Name", "Type"}, entryRows(cards), 100,
			))
		}
		if len(tokens) > 0 {
			fmt.Println("Tokens:")
			fmt.Println(components.CardTable(
				[]string{"Key", "Name", "Type"}, entryRows(tokens), 100,
			))
		}
		fmt.Printf("%d cards, %d tokens cached\n", len(cards), len(tokens))
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached entry",
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := openCache(cmd)
		cobra.CheckErr(err)
		defer repo.Close()

		cobra.CheckErr(repo.Clear())
		fmt.Println("cache cleared")
	},
}

func openCache(cmd *cobra.Command) (*data.Repository, error) {
	path, _ := cmd.Flags().GetString("cache")
	if path == "" {
		if cfg := loadConfig(); cfg.CachePath != "" {
			path = cfg.CachePath
		} else {
			path = data.DefaultPath()
		}
	}
	return data.Open(path)
}

func entryRows(entries []data.Entry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Key, e.CardName, e.TypeLine}
	}
	return rows
}

func init() {
	cacheCmd.PersistentFlags().String("cache", "", "Card cache database path")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
