// Package stats summarizes corpus directories so a human can decide on
// remediation after a run.
package stats

import (
	"context"
	"fmt"

	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
)

// ServiceConfig is the configuration for the stats service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service computes corpus summary statistics.
type Service struct {
	logger log.Logger
}

// NewService creates a new stats service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// Request represents the stats request parameters.
type Request struct {
	Snapshots []*corpus.Snapshot
}

// Run summarizes each snapshot: per-type, per-geofence and verification
// counts plus parse skips.
func (s *Service) Run(ctx context.Context, req Request) (*model.StatsReport, error) {
	if len(req.Snapshots) == 0 {
		return nil, fmt.Errorf("at least one snapshot is required: %w", model.ErrNotValid)
	}

	report := &model.StatsReport{}

	for _, snap := range req.Snapshots {
		ds := model.DirStats{
			Dir:          snap.Dir,
			Tasks:        len(snap.Tasks),
			Skipped:      len(snap.Skipped),
			ByType:       map[model.TaskType]int{},
			ByGeofence:   map[string]int{},
			Verification: map[model.Verification]int{},
		}

		for _, task := range snap.Tasks {
			ds.ByType[task.Type]++
			if task.Geofence != "" {
				ds.ByGeofence[task.Geofence]++
			}
			ds.Verification[task.Verification]++
		}

		report.Dirs = append(report.Dirs, ds)
	}

	s.logger.Debugf("Computed stats for %d directories", len(report.Dirs))

	return report, nil
}
