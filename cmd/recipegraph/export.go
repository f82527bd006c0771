package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipegraph/internal/pipeline"
	"recipegraph/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a stored run to xlsx without re-extracting",
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, _ := cmd.Flags().GetString("run")
		out, _ := cmd.Flags().GetString("out")
		if strings.TrimSpace(out) == "" {
			return fmt.Errorf("--out is required")
		}

		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if strings.TrimSpace(runID) == "" {
			runID, err = db.LatestRun()
			if err != nil {
				return err
			}
			if runID == "" {
				return fmt.Errorf("no stored runs in %s", cfg.DBPath)
			}
		}

		items, ts, err := db.Records(runID)
		if err != nil {
			return err
		}
		if err := pipeline.ExportXLSX(items, ts, out); err != nil {
			return err
		}
		fmt.Printf("exported run %s: items=%d transformations=%d to %s\n", runID, len(items), len(ts), out)
		return nil
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.ListRuns()
		if err != nil {
			return err
		}
		for _, r := range runs {
			counts, err := db.CountByType(r.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s  items=%d transformations=%d warnings=%d %v\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Items, r.Transformations, r.Warnings, counts)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("run", "", "run id (default: latest run)")
	exportCmd.Flags().String("out", "", "output xlsx path")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runsCmd)
}
