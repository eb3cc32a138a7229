package check_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/navcorpus/internal/app/check"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/geofence"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func loadSnapshot(t *testing.T, dir string) *corpus.Snapshot {
	t.Helper()
	snap, err := corpus.LoadSnapshot(dir, corpus.Filter{Suffix: ".json"}, log.Noop)
	require.NoError(t, err)
	return snap
}

func TestServiceRun(t *testing.T) {
	dir := t.TempDir()

	// Consistent task.
	writeFile(t, dir, "nav_0001_kfc.json", `{"task_id": "nav_0001_kfc", "geofence": "gf-known"}`)
	// Declared id doesn't match the filename stem.
	writeFile(t, dir, "nav_0002_park.json", `{"task_id": "nav_0099_other", "geofence": "gf-known"}`)
	// Unresolved geofence and negative scalar.
	writeFile(t, dir, "dis_0003_mall.json", `{"task_id": "dis_0003_mall", "geofence": "gf-missing", "ground_truth": {"distance_between_pois_m": -5}}`)
	// The 0001 pair exists, 0002 has no vis sibling.
	writeFile(t, dir, "vis_0001_kfc.json", `{"task_id": "vis_0001_kfc", "geofence": "gf-known"}`)

	registry, err := geofence.NewRegistry(map[string][]string{"gf-known": {"P1"}})
	require.NoError(t, err)

	svc, err := check.NewService(check.ServiceConfig{})
	require.NoError(t, err)

	report, err := svc.Run(context.TODO(), check.Request{
		Snapshots: []*corpus.Snapshot{loadSnapshot(t, dir)},
		FromType:  model.TaskTypeNav,
		ToType:    model.TaskTypeVis,
		Registry:  registry,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Tasks)
	assert.False(t, report.Clean())

	// Mismatch reported iff task_id != filename stem.
	require.Len(t, report.IDMismatches, 1)
	assert.Equal(t, model.IDMismatch{
		Dir:        dir,
		File:       "nav_0002_park.json",
		DeclaredID: "nav_0099_other",
	}, report.IDMismatches[0])

	assert.Equal(t, []string{"0002"}, report.MissingSiblings)

	require.Len(t, report.UnresolvedGeofences, 1)
	assert.Equal(t, "gf-missing", report.UnresolvedGeofences[0].Geofence)

	require.Len(t, report.NegativeScalars, 1)
	assert.Equal(t, "distance_between_pois_m", report.NegativeScalars[0].Field)
}

func TestServiceRunCleanCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nav_0001_kfc.json", `{"task_id": "nav_0001_kfc"}`)
	writeFile(t, dir, "vis_0001_kfc.json", `{"task_id": "vis_0001_kfc"}`)

	svc, err := check.NewService(check.ServiceConfig{})
	require.NoError(t, err)

	report, err := svc.Run(context.TODO(), check.Request{
		Snapshots: []*corpus.Snapshot{loadSnapshot(t, dir)},
		FromType:  model.TaskTypeNav,
		ToType:    model.TaskTypeVis,
	})
	require.NoError(t, err)

	assert.True(t, report.Clean())
}

func TestServiceRunSiblingsAcrossDirectories(t *testing.T) {
	navDir := t.TempDir()
	visDir := t.TempDir()
	writeFile(t, navDir, "nav_0001_kfc.json", `{"task_id": "nav_0001_kfc"}`)
	writeFile(t, visDir, "vis_0001_kfc.json", `{"task_id": "vis_0001_kfc"}`)

	svc, err := check.NewService(check.ServiceConfig{})
	require.NoError(t, err)

	report, err := svc.Run(context.TODO(), check.Request{
		Snapshots: []*corpus.Snapshot{loadSnapshot(t, navDir), loadSnapshot(t, visDir)},
		FromType:  model.TaskTypeNav,
		ToType:    model.TaskTypeVis,
	})
	require.NoError(t, err)

	assert.Empty(t, report.MissingSiblings)
}

func TestServiceRunInvalidRequest(t *testing.T) {
	svc, err := check.NewService(check.ServiceConfig{})
	require.NoError(t, err)

	tests := map[string]check.Request{
		"no snapshots":       {},
		"only from type set": {Snapshots: []*corpus.Snapshot{{}}, FromType: model.TaskTypeNav},
		"unknown type":       {Snapshots: []*corpus.Snapshot{{}}, FromType: "route", ToType: model.TaskTypeVis},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Run(context.TODO(), req)
			assert.Error(t, err)
		})
	}
}
