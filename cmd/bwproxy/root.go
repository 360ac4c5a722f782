package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/indiecore/bwproxy/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:     "bwproxy",
	Short:   "Black and white proxy sheet generator",
	Long:    "Turn a decklist into printable black and white proxy sheets, with token and emblem support",
	Version: "2.0.0",
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(cacheCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the user config, falling back to defaults with a
// warning when the file is unreadable.
func loadConfig() config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		color.Yellow("! cannot locate config directory: %v", err)
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		color.Yellow("! %v, using defaults", err)
		return config.Default()
	}
	return cfg
}
