package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipegraph/internal/config"
	"recipegraph/internal/logging"
	"recipegraph/internal/pipeline"
	"recipegraph/internal/storage"
)

const smeltingPage = `<h2><span class="mw-headline">Ores</span></h2>
<div class="mcui mcui-Furnace">
  <span class="mcui-input"><span class="invslot"><span class="invslot-item"><a href="/w/Iron_Ore" title="Iron Ore"></a></span></span></span>
  <span class="mcui-fuel"><span class="invslot"><span class="invslot-item"><a href="/w/Coal" title="Coal"></a></span></span></span>
  <span class="mcui-output"><span class="invslot"><span class="invslot-item"><a href="/w/Iron_Ingot" title="Iron Ingot"></a></span></span></span>
</div>`

func TestRunCycleFromCache(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Config{
		DBPath:        filepath.Join(tmp, "recipes.db"),
		PagesDir:      filepath.Join(tmp, "pages"),
		OutputDir:     filepath.Join(tmp, "out"),
		WikiBaseURL:   "https://minecraft.wiki",
		Workers:       2,
		MaxExpansions: 100,
	}
	require.NoError(t, os.MkdirAll(cfg.PagesDir, 0o755))
	require.NoError(t, os.WriteFile(pipeline.PageFile(cfg.PagesDir, "Smelting"), []byte(smeltingPage), 0o644))

	rules, err := config.ParseRules([]byte("sources:\n  - page: Smelting\n    type: SMELTING\n"))
	require.NoError(t, err)

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, cfg, rules, false, logging.Discard())
	summary, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Transformations)
	assert.Equal(t, 2, summary.Items)

	latest, err := db.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, summary.ID, latest)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "watch", "recipes-"+summary.ID+".xlsx"))
}
