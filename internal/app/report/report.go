// Package report implements access to persisted run reports.
package report

import (
	"context"
	"fmt"

	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
	"github.com/slok/navcorpus/internal/storage"
)

// ServiceConfig is the configuration for the report service.
type ServiceConfig struct {
	Repository storage.RunRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service exposes the persisted run reports.
type Service struct {
	repo   storage.RunRepository
	logger log.Logger
}

// NewService creates a new report service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// ListRequest represents the list request parameters.
type ListRequest struct {
	// Command is an optional filter to only show runs of this command.
	Command string
}

// List returns the stored runs, newest first, optionally filtered by command.
func (s *Service) List(ctx context.Context, req ListRequest) ([]model.Run, error) {
	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list runs: %w", err)
	}

	if req.Command != "" {
		filtered := make([]model.Run, 0, len(runs))
		for _, r := range runs {
			if r.Command == req.Command {
				filtered = append(filtered, r)
			}
		}
		runs = filtered
	}

	s.logger.Debugf("Found %d runs", len(runs))
	return runs, nil
}

// Get returns one stored run by id.
func (s *Service) Get(ctx context.Context, id string) (*model.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("run id is required: %w", model.ErrNotValid)
	}

	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get run: %w", err)
	}

	return run, nil
}
