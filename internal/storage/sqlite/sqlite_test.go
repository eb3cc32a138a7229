package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
	"github.com/slok/navcorpus/internal/storage/sqlite"
)

func runFixture(id, command string, startedAt time.Time) model.Run {
	return model.Run{
		ID:         id,
		Command:    command,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(2 * time.Second),
		Successes:  10,
		Skips:      1,
		Errors:     0,
		Detail:     `{"moved": 2}`,
	}
}

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryRunRoundtrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	now := time.Now().UTC().Truncate(time.Second)
	run := runFixture("run-1", "quarantine", now)
	require.NoError(t, repo.SaveRun(ctx, run))

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "quarantine", got.Command)
	assert.Equal(t, now, got.StartedAt)
	assert.Equal(t, 10, got.Successes)
	assert.Equal(t, `{"moved": 2}`, got.Detail)
}

func TestRepositorySaveRunAlreadyExists(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	run := runFixture("run-1", "check", time.Now().UTC())
	require.NoError(t, repo.SaveRun(ctx, run))

	err := repo.SaveRun(ctx, run)
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))
}

func TestRepositoryGetRunNotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.GetRun(context.Background(), "nope")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestRepositoryListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.SaveRun(ctx, runFixture("run-old", "check", base.Add(-time.Hour))))
	require.NoError(t, repo.SaveRun(ctx, runFixture("run-new", "sample", base)))

	runs, err := repo.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)
}

func TestRepositorySaveRunInvalid(t *testing.T) {
	repo := newRepo(t)

	err := repo.SaveRun(context.Background(), model.Run{Command: "check"})
	assert.True(t, errors.Is(err, model.ErrNotValid))
}
