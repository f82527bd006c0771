package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"recipegraph/internal/config"
	"recipegraph/internal/logging"
	"recipegraph/internal/pipeline"
	"recipegraph/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract recipes from the cached pages and store the run",
	RunE: func(cmd *cobra.Command, args []string) error {
		pagesDir, _ := cmd.Flags().GetString("pages")
		out, _ := cmd.Flags().GetString("out")
		if strings.TrimSpace(pagesDir) == "" {
			pagesDir = cfg.PagesDir
		}

		rules, err := config.LoadRules(cfg.RulesPath)
		if err != nil {
			return err
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		runner, err := pipeline.NewRunner(cfg, rules, pipeline.DirLoader{Dir: pagesDir}, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		res, err := runner.Run(ctx, nil)
		if err != nil {
			return err
		}

		items, ts, err := pipeline.Encode(res.Items, res.Transformations)
		if err != nil {
			return err
		}

		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.ReplaceRun(res.Summary, items, ts); err != nil {
			return err
		}

		if strings.TrimSpace(out) == "" {
			out = filepath.Join(cfg.OutputDir, "recipes-"+res.Summary.ID+".xlsx")
		}
		if err := pipeline.ExportXLSX(items, ts, out); err != nil {
			return err
		}

		s := res.Summary
		fmt.Printf("run %s: pages=%d missing=%d elements=%d excluded=%d malformed=%d\n",
			s.ID, s.Pages, s.MissingPages, s.Elements, s.Excluded, s.Malformed)
		fmt.Printf("items=%d transformations=%d duplicates=%d warnings=%d\n",
			s.Items, s.Transformations, s.Duplicates, s.Warnings)
		fmt.Printf("exported to %s\n", out)
		return nil
	},
}

func init() {
	runCmd.Flags().String("pages", "", "directory of cached page HTML (default PAGES_DIR)")
	runCmd.Flags().String("out", "", "output xlsx path (default OUTPUT_DIR/recipes-<run>.xlsx)")

	rootCmd.AddCommand(runCmd)
}
