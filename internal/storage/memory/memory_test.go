package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/navcorpus/internal/model"
	"github.com/slok/navcorpus/internal/storage/memory"
)

func TestRepositoryRuns(t *testing.T) {
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	run1 := model.Run{
		ID:        "01RUN1",
		Command:   "quarantine",
		StartedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Successes: 2,
	}
	run2 := model.Run{
		ID:        "01RUN2",
		Command:   "sample",
		StartedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		Successes: 40,
	}

	require.NoError(t, repo.SaveRun(context.TODO(), run1))
	require.NoError(t, repo.SaveRun(context.TODO(), run2))

	// Duplicate ids are rejected.
	err = repo.SaveRun(context.TODO(), run1)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	// Invalid runs are rejected.
	err = repo.SaveRun(context.TODO(), model.Run{Command: "check"})
	assert.ErrorIs(t, err, model.ErrNotValid)

	got, err := repo.GetRun(context.TODO(), "01RUN1")
	require.NoError(t, err)
	assert.Equal(t, run1, *got)

	_, err = repo.GetRun(context.TODO(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Newest first.
	runs, err := repo.ListRuns(context.TODO())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "01RUN2", runs[0].ID)
	assert.Equal(t, "01RUN1", runs[1].ID)
}
