package sample_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/navcorpus/internal/app/sample"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func writeVerifiedTasks(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("vis_%04d_poi.json", i)
		content := fmt.Sprintf(`{"task_id": "vis_%04d_poi", "geofence": "gf-%d", "agent_verification": "YES"}`, i, i)
		writeFile(t, dir, name, content)
	}
}

func loadSnapshot(t *testing.T, dir string) *corpus.Snapshot {
	t.Helper()
	snap, err := corpus.LoadSnapshot(dir, corpus.Filter{Prefix: "vis_", Suffix: ".json"}, log.Noop)
	require.NoError(t, err)
	return snap
}

func TestServicePlanShortfall(t *testing.T) {
	dir := t.TempDir()
	writeVerifiedTasks(t, dir, 40)

	svc, err := sample.NewService(sample.ServiceConfig{})
	require.NoError(t, err)

	// Requesting more than the eligible pool takes everything and warns, it
	// is not an error.
	plan, err := svc.Plan(context.TODO(), sample.PlanRequest{
		Snapshot:        loadSnapshot(t, dir),
		K:               100,
		RequireVerified: true,
		UniqueGeofence:  true,
	})
	require.NoError(t, err)

	assert.True(t, plan.Shortfall)
	assert.Equal(t, 40, plan.Candidates)
	assert.Len(t, plan.Selected, 40)
}

func TestServicePlanSubsetLaw(t *testing.T) {
	dir := t.TempDir()
	writeVerifiedTasks(t, dir, 20)

	svc, err := sample.NewService(sample.ServiceConfig{})
	require.NoError(t, err)

	snap := loadSnapshot(t, dir)
	candidateFiles := map[string]struct{}{}
	for _, task := range snap.Tasks {
		candidateFiles[task.File] = struct{}{}
	}

	for _, seed := range []int64{1, 42, 12345} {
		plan, err := svc.Plan(context.TODO(), sample.PlanRequest{
			Snapshot:        snap,
			K:               5,
			Seed:            seed,
			RequireVerified: true,
		})
		require.NoError(t, err)

		// Output is always a subset of the predicate-passing candidates and
		// has size min(k, candidates).
		assert.False(t, plan.Shortfall)
		assert.Len(t, plan.Selected, 5)
		for _, sel := range plan.Selected {
			assert.Contains(t, candidateFiles, sel.File)
		}
	}
}

func TestServicePlanDeterministicSeed(t *testing.T) {
	dir := t.TempDir()
	writeVerifiedTasks(t, dir, 20)

	svc, err := sample.NewService(sample.ServiceConfig{})
	require.NoError(t, err)

	snap := loadSnapshot(t, dir)

	req := sample.PlanRequest{Snapshot: snap, K: 5, Seed: 42, RequireVerified: true}
	plan1, err := svc.Plan(context.TODO(), req)
	require.NoError(t, err)
	plan2, err := svc.Plan(context.TODO(), req)
	require.NoError(t, err)

	assert.Equal(t, plan1.Selected, plan2.Selected)
}

func TestServicePlanFilters(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "vis_0001_a.json", `{"task_id": "vis_0001_a", "geofence": "gf-1", "agent_verification": "YES", "agent_refined_route": "A->B->C"}`)
	// Not verified.
	writeFile(t, dir, "vis_0002_b.json", `{"task_id": "vis_0002_b", "geofence": "gf-2", "agent_verification": "NO"}`)
	// Route too long.
	writeFile(t, dir, "vis_0003_c.json", `{"task_id": "vis_0003_c", "geofence": "gf-3", "agent_verification": "YES", "agent_refined_route": "A->B->C->D->E->F"}`)
	// Duplicate geofence of 0001.
	writeFile(t, dir, "vis_0004_d.json", `{"task_id": "vis_0004_d", "geofence": "gf-1", "agent_verification": "YES"}`)

	svc, err := sample.NewService(sample.ServiceConfig{})
	require.NoError(t, err)

	plan, err := svc.Plan(context.TODO(), sample.PlanRequest{
		Snapshot:        loadSnapshot(t, dir),
		K:               10,
		RequireVerified: true,
		MaxRouteSteps:   4,
		UniqueGeofence:  true,
	})
	require.NoError(t, err)

	require.Len(t, plan.Selected, 1)
	assert.Equal(t, "vis_0001_a", plan.Selected[0].TaskID)

	// No two selections share a geofence.
	seen := map[string]struct{}{}
	for _, sel := range plan.Selected {
		if sel.Geofence == "" {
			continue
		}
		_, dup := seen[sel.Geofence]
		assert.False(t, dup)
		seen[sel.Geofence] = struct{}{}
	}
}

func TestServicePlanMissingSibling(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "vis_0001_a.json", `{"task_id": "vis_0001_a", "agent_verification": "YES"}`)
	writeFile(t, dir, "vis_0002_b.json", `{"task_id": "vis_0002_b", "agent_verification": "YES"}`)
	// Only 0002 has its nav counterpart.
	writeFile(t, dir, "nav_0002_b.json", `{"task_id": "nav_0002_b"}`)

	svc, err := sample.NewService(sample.ServiceConfig{})
	require.NoError(t, err)

	plan, err := svc.Plan(context.TODO(), sample.PlanRequest{
		Snapshot:        loadSnapshot(t, dir),
		K:               10,
		RequireVerified: true,
		SiblingType:     model.TaskTypeNav,
	})
	require.NoError(t, err)

	// The selection without a sibling is excluded and reported, never copied
	// as a mismatched pair.
	require.Len(t, plan.Selected, 1)
	assert.Equal(t, "vis_0002_b", plan.Selected[0].TaskID)
	assert.Equal(t, "nav_0002_b.json", plan.Selected[0].SiblingFile)
	assert.Equal(t, []string{"nav_0001_a.json"}, plan.MissingSiblings)
}

func TestServiceApplyIdempotence(t *testing.T) {
	dir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "sampled")

	writeFile(t, dir, "vis_0001_a.json", `{"task_id": "vis_0001_a", "agent_verification": "YES"}`)
	writeFile(t, dir, "nav_0001_a.json", `{"task_id": "nav_0001_a"}`)

	svc, err := sample.NewService(sample.ServiceConfig{})
	require.NoError(t, err)

	plan, err := svc.Plan(context.TODO(), sample.PlanRequest{
		Snapshot:        loadSnapshot(t, dir),
		K:               1,
		RequireVerified: true,
		SiblingType:     model.TaskTypeNav,
	})
	require.NoError(t, err)

	first, err := svc.Apply(context.TODO(), plan, destDir)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Copied)

	// Copies are non-destructive.
	assert.FileExists(t, filepath.Join(dir, "vis_0001_a.json"))
	assert.FileExists(t, filepath.Join(destDir, "vis_0001_a.json"))
	assert.FileExists(t, filepath.Join(destDir, "nav_0001_a.json"))

	// Re-running against the populated destination copies nothing new.
	second, err := svc.Apply(context.TODO(), plan, destDir)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Copied)
	assert.Equal(t, 2, second.Skipped)
}

func TestServiceInvalidRequests(t *testing.T) {
	svc, err := sample.NewService(sample.ServiceConfig{})
	require.NoError(t, err)

	_, err = svc.Plan(context.TODO(), sample.PlanRequest{K: 1})
	assert.Error(t, err)

	_, err = svc.Plan(context.TODO(), sample.PlanRequest{Snapshot: &corpus.Snapshot{}, K: 0})
	assert.Error(t, err)

	_, err = svc.Apply(context.TODO(), nil, "dest")
	assert.Error(t, err)

	_, err = svc.Apply(context.TODO(), &model.SamplePlan{}, "")
	assert.Error(t, err)
}
