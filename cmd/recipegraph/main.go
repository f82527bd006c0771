package main

import (
	"os"

	"github.com/spf13/cobra"

	"recipegraph/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "recipegraph",
	Short: "Extract item transformations from cached wiki pages",
	Long: `recipegraph reads pre-fetched wiki pages, extracts crafting, smelting,
trading, drop and other recipes, and stores the resulting item graph in
sqlite and xlsx.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
