package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"recipegraph/internal/config"
	"recipegraph/internal/pipeline"
)

// MetadataStore keeps the last fetch time per page.
type MetadataStore interface {
	SetMetadata(key, value string) error
	GetMetadata(key string) (*string, error)
}

type SyncService struct {
	store  MetadataStore
	client *Client
	cfg    config.Config
}

func NewSyncService(store MetadataStore, cfg config.Config) *SyncService {
	return &SyncService{store: store, client: NewClient(cfg), cfg: cfg}
}

type SyncResult struct {
	Fetched int
	Fresh   int
	Missing []string
}

// Sync refreshes the cached copy of every page. Pages fetched within
// FetchMaxAgeHrs are left alone unless force is set; pages the wiki does not
// have are reported, not fatal.
func (s *SyncService) Sync(ctx context.Context, pages []string, force bool) (SyncResult, error) {
	var res SyncResult
	if err := os.MkdirAll(s.cfg.PagesDir, 0o755); err != nil {
		return res, err
	}

	for _, title := range pages {
		key := "fetch.last." + title
		path := pipeline.PageFile(s.cfg.PagesDir, title)
		if !force && s.fresh(key, path) {
			res.Fresh++
			continue
		}

		body, err := s.client.Page(ctx, title)
		if errors.Is(err, ErrNotFound) {
			res.Missing = append(res.Missing, title)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("fetch %s: %w", title, err)
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return res, err
		}
		if err := s.store.SetMetadata(key, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return res, err
		}
		res.Fetched++
	}
	return res, nil
}

func (s *SyncService) fresh(key, path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	last, err := s.store.GetMetadata(key)
	if err != nil || last == nil {
		return false
	}
	parsed, err := time.Parse(time.RFC3339, *last)
	if err != nil {
		return false
	}
	return time.Since(parsed) < time.Duration(s.cfg.FetchMaxAgeHrs)*time.Hour
}

// CachedPages lists the pages already present in the cache directory.
func (s *SyncService) CachedPages() ([]string, error) {
	if _, err := os.Stat(s.cfg.PagesDir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return pipeline.ListPages(filepath.Clean(s.cfg.PagesDir))
}
