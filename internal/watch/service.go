// Package watch keeps the page cache and the stored graph up to date by
// repeating fetch, run and export on an interval.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"recipegraph/internal"
	"recipegraph/internal/config"
	"recipegraph/internal/fetch"
	"recipegraph/internal/pipeline"
	"recipegraph/internal/storage"
)

type Service struct {
	db    *storage.DB
	cfg   config.Config
	rules config.Rules
	sync  *fetch.SyncService
	log   *slog.Logger
}

// NewService builds a watcher. With fetchPages unset the cache is used as is.
func NewService(db *storage.DB, cfg config.Config, rules config.Rules, fetchPages bool, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{db: db, cfg: cfg, rules: rules, log: log}
	if fetchPages {
		s.sync = fetch.NewSyncService(db, cfg)
	}
	return s
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.WatchIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Hour
	}
	for {
		if _, err := s.RunCycle(ctx); err != nil {
			s.log.Error("watch cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// RunCycle refreshes stale pages, runs the pipeline over the cache, stores
// the run and exports it.
func (s *Service) RunCycle(ctx context.Context) (internal.RunSummary, error) {
	if s.sync != nil {
		res, err := s.sync.Sync(ctx, s.rules.Pages(), false)
		if err != nil {
			return internal.RunSummary{}, err
		}
		s.log.Info("pages refreshed", "fetched", res.Fetched, "fresh", res.Fresh, "missing", len(res.Missing))
	}

	runner, err := pipeline.NewRunner(s.cfg, s.rules, pipeline.DirLoader{Dir: s.cfg.PagesDir}, s.log)
	if err != nil {
		return internal.RunSummary{}, err
	}
	res, err := runner.Run(ctx, nil)
	if err != nil {
		return internal.RunSummary{}, err
	}

	items, ts, err := pipeline.Encode(res.Items, res.Transformations)
	if err != nil {
		return internal.RunSummary{}, err
	}
	if err := s.db.ReplaceRun(res.Summary, items, ts); err != nil {
		return internal.RunSummary{}, err
	}

	out := filepath.Join(s.cfg.OutputDir, "watch", "recipes-"+res.Summary.ID+".xlsx")
	if err := pipeline.ExportXLSX(items, ts, out); err != nil {
		return internal.RunSummary{}, err
	}
	s.log.Info("watch cycle done", "run", res.Summary.ID, "transformations", res.Summary.Transformations, "out", out)
	return res.Summary, nil
}
