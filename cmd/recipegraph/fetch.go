package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"recipegraph/internal/config"
	"recipegraph/internal/fetch"
	"recipegraph/internal/logging"
	"recipegraph/internal/storage"
	"recipegraph/internal/watch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [pages...]",
	Short: "Download source pages into the page cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		pages := args
		if len(pages) == 0 {
			rules, err := config.LoadRules(cfg.RulesPath)
			if err != nil {
				return err
			}
			pages = rules.Pages()
		}

		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		svc := fetch.NewSyncService(db, cfg)
		res, err := svc.Sync(ctx, pages, force)
		if err != nil {
			return err
		}
		cached, err := svc.CachedPages()
		if err != nil {
			return err
		}
		fmt.Printf("fetch done fetched=%d fresh=%d missing=%d cached=%d\n", res.Fetched, res.Fresh, len(res.Missing), len(cached))
		if len(res.Missing) > 0 {
			fmt.Printf("missing pages: %s\n", strings.Join(res.Missing, ", "))
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh pages and rebuild the graph every WATCH_INTERVAL_SEC",
	RunE: func(cmd *cobra.Command, args []string) error {
		offline, _ := cmd.Flags().GetBool("offline")

		rules, err := config.LoadRules(cfg.RulesPath)
		if err != nil {
			return err
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watch.NewService(db, cfg, rules, !offline, logger).Run(ctx)
	},
}

func init() {
	fetchCmd.Flags().Bool("force", false, "re-download pages that are still fresh")
	watchCmd.Flags().Bool("offline", false, "use the page cache as is, never fetch")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(watchCmd)
}
