package storage

import (
	"context"

	"github.com/slok/navcorpus/internal/model"
)

// RunRepository is the interface for run-report persistence.
type RunRepository interface {
	SaveRun(ctx context.Context, r model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context) ([]model.Run, error)
}
