package corpus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "nav_0001_kfc.json", `{"task_id": "nav_0001_kfc", "geofence": "gf-a"}`)
	writeFile(t, dir, "vis_0001_kfc.json", `{"task_id": "vis_0001_kfc", "geofence": "gf-a", "agent_verification": "YES"}`)
	writeFile(t, dir, "nav_0002_park.json", `{"task_id": "nav_0002_park", "geofence": "gf-b"}`)
	writeFile(t, dir, "nav_0003_bad.json", `not json at all`)
	writeFile(t, dir, "readme.txt", `ignored by suffix filter`)

	snap, err := corpus.LoadSnapshot(dir, corpus.Filter{Suffix: ".json"}, log.Noop)
	require.NoError(t, err)

	assert.Equal(t, dir, snap.Dir)
	assert.Len(t, snap.Tasks, 3)
	assert.Equal(t, []string{"nav_0003_bad.json"}, snap.Skipped)

	// Tasks keep the directory's filename order.
	assert.Equal(t, "nav_0001_kfc", snap.Tasks[0].ID)
	assert.Equal(t, "nav_0002_park", snap.Tasks[1].ID)
	assert.Equal(t, "vis_0001_kfc", snap.Tasks[2].ID)

	// Indices.
	assert.Contains(t, snap.ByID, "nav_0001_kfc")
	assert.Len(t, snap.BySibling["0001"], 2)
	assert.Len(t, snap.ByGeofence["gf-a"], 2)
	assert.Len(t, snap.ByGeofence["gf-b"], 1)
	assert.Len(t, snap.ByType[model.TaskTypeNav], 2)
	assert.Len(t, snap.ByType[model.TaskTypeVis], 1)
}

func TestLoadSnapshotPrefixFilter(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "dis_0001_a.json", `{"task_id": "dis_0001_a"}`)
	writeFile(t, dir, "angle_0001_a.json", `{"task_id": "angle_0001_a"}`)

	snap, err := corpus.LoadSnapshot(dir, corpus.Filter{Prefix: "dis_", Suffix: ".json"}, log.Noop)
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, model.TaskTypeDis, snap.Tasks[0].Type)
}

func TestLoadSnapshotMissingDir(t *testing.T) {
	_, err := corpus.LoadSnapshot(filepath.Join(t.TempDir(), "nope"), corpus.Filter{}, log.Noop)
	assert.Error(t, err)
}
