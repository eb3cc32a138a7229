// Package storagemock holds testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/navcorpus/internal/model"
)

// MockRunRepository is a mock implementation of storage.RunRepository.
type MockRunRepository struct {
	mock.Mock
}

// SaveRun satisfies storage.RunRepository.
func (m *MockRunRepository) SaveRun(ctx context.Context, r model.Run) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// GetRun satisfies storage.RunRepository.
func (m *MockRunRepository) GetRun(ctx context.Context, id string) (*model.Run, error) {
	args := m.Called(ctx, id)
	run, _ := args.Get(0).(*model.Run)
	return run, args.Error(1)
}

// ListRuns satisfies storage.RunRepository.
func (m *MockRunRepository) ListRuns(ctx context.Context) ([]model.Run, error) {
	args := m.Called(ctx)
	runs, _ := args.Get(0).([]model.Run)
	return runs, args.Error(1)
}
