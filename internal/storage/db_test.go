package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipegraph/internal"
	"recipegraph/internal/util"
)

func sampleRun(id string) (internal.RunSummary, []internal.ItemRecord, []internal.TransformationRecord) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	run := internal.RunSummary{ID: id, StartedAt: started, FinishedAt: started.Add(time.Second), Pages: 2, Transformations: 2, Items: 3}
	items := []internal.ItemRecord{{Name: "Iron Ore", URL: "https://minecraft.wiki/w/Iron_Ore"}, {Name: "Iron Ingot"}, {Name: "Zombie Drop"}}
	ts := []internal.TransformationRecord{
		{Type: "SMELTING", Inputs: `[{"name":"Iron Ore","url":""}]`, Outputs: `[{"name":"Iron Ingot","url":""}]`, Category: util.StringPtr("ores"), Metadata: `{}`},
		{Type: "MOB_DROP", Inputs: `[]`, Outputs: `[{"name":"Iron Ingot","url":""}]`, Metadata: `{"mob":"Zombie"}`},
	}
	return run, items, ts
}

func TestReplaceRunRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "recipes.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	run, items, ts := sampleRun("run-1")
	require.NoError(t, db.ReplaceRun(run, items, ts))
	require.NoError(t, db.ReplaceRun(run, items[:1], ts[:1]), "replacing a run is allowed")

	gotItems, gotTs, err := db.Records("run-1")
	require.NoError(t, err)
	assert.Equal(t, items[:1], gotItems)
	require.Len(t, gotTs, 1)
	require.NotNil(t, gotTs[0].Category)
	assert.Equal(t, "ores", *gotTs[0].Category)

	run2, items2, ts2 := sampleRun("run-2")
	run2.StartedAt = run2.StartedAt.Add(time.Hour)
	require.NoError(t, db.ReplaceRun(run2, items2, ts2))
	_, gotTs, err = db.Records("run-2")
	require.NoError(t, err)
	assert.Nil(t, gotTs[1].Category)

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.True(t, run2.StartedAt.Equal(runs[0].StartedAt))

	latest, err := db.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, "run-2", latest)

	counts, err := db.CountByType("run-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"SMELTING": 1, "MOB_DROP": 1}, counts)

	_, _, err = db.Records("missing")
	assert.Error(t, err)
}

func TestOpenIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.db")
	db, err := Open(path)
	require.NoError(t, err)

	_, err = Open(path)
	assert.True(t, errors.Is(err, ErrLocked))

	require.NoError(t, db.Close())
	again, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}

func TestLatestRunEmpty(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	defer db.Close()

	latest, err := db.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, "", latest)
}

func TestMetadata(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	defer db.Close()

	v, err := db.GetMetadata("fetch.last.Crafting")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.SetMetadata("fetch.last.Crafting", "a"))
	require.NoError(t, db.SetMetadata("fetch.last.Crafting", "b"))
	v, err = db.GetMetadata("fetch.last.Crafting")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "b", *v)
}
