package main

import (
	"os"

	"github.com/spf13/cobra"

	"recipegraph/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule table as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := config.LoadRules(cfg.RulesPath)
		if err != nil {
			return err
		}
		blob, err := rules.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(blob)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
