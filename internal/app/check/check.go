// Package check implements the read-only corpus consistency checks.
package check

import (
	"context"
	"fmt"
	"sort"

	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/geofence"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
)

// ServiceConfig is the configuration for the check service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service runs consistency checks over corpus snapshots. It is read-only and
// side-effect free, remediation is the caller's decision.
type Service struct {
	logger log.Logger
}

// NewService creates a new check service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// Request represents the check request parameters.
type Request struct {
	// Snapshots are the corpus snapshots to check, built once per run.
	Snapshots []*corpus.Snapshot

	// FromType/ToType enable the cross-type completeness check: every task of
	// FromType must have a ToType sibling with the same key. Both empty
	// disables the check.
	FromType model.TaskType
	ToType   model.TaskType

	// Registry enables the geofence reference check when set.
	Registry *geofence.Registry
}

func (r Request) validate() error {
	if len(r.Snapshots) == 0 {
		return fmt.Errorf("at least one snapshot is required: %w", model.ErrNotValid)
	}

	if (r.FromType == "") != (r.ToType == "") {
		return fmt.Errorf("from and to types must be set together: %w", model.ErrNotValid)
	}

	if r.FromType != "" && (!r.FromType.Valid() || !r.ToType.Valid()) {
		return fmt.Errorf("unknown task type in %q -> %q: %w", r.FromType, r.ToType, model.ErrNotValid)
	}

	return nil
}

// Run executes the consistency checks and returns the report.
func (s *Service) Run(ctx context.Context, req Request) (*model.CheckReport, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	report := &model.CheckReport{
		FromType: req.FromType,
		ToType:   req.ToType,
	}

	// Sibling keys present on the target type, across all snapshots.
	toKeys := map[string]struct{}{}
	if req.ToType != "" {
		for _, snap := range req.Snapshots {
			for _, t := range snap.ByType[req.ToType] {
				toKeys[t.SiblingKey] = struct{}{}
			}
		}
	}

	missing := map[string]struct{}{}

	for _, snap := range req.Snapshots {
		report.Dirs = append(report.Dirs, snap.Dir)
		report.Tasks += len(snap.Tasks)
		report.Skipped += len(snap.Skipped)

		for _, task := range snap.Tasks {
			if task.ID != task.Stem {
				report.IDMismatches = append(report.IDMismatches, model.IDMismatch{
					Dir:        snap.Dir,
					File:       task.File,
					DeclaredID: task.ID,
				})
			}

			if req.Registry != nil && task.Geofence != "" {
				if _, ok := req.Registry.Get(task.Geofence); !ok {
					report.UnresolvedGeofences = append(report.UnresolvedGeofences, model.GeofenceRef{
						TaskID:   task.ID,
						Geofence: task.Geofence,
					})
				}
			}

			fields := make([]string, 0, len(task.GroundTruth))
			for f := range task.GroundTruth {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				if v := task.GroundTruth[f]; v < 0 {
					report.NegativeScalars = append(report.NegativeScalars, model.ScalarViolation{
						TaskID: task.ID,
						Field:  f,
						Value:  v,
					})
				}
			}

			if req.FromType != "" && task.Type == req.FromType {
				if _, ok := toKeys[task.SiblingKey]; !ok {
					missing[task.SiblingKey] = struct{}{}
				}
			}
		}
	}

	for key := range missing {
		report.MissingSiblings = append(report.MissingSiblings, key)
	}
	sort.Strings(report.MissingSiblings)

	s.logger.Debugf("Checked %d tasks: %d id mismatches, %d missing siblings, %d unresolved geofences",
		report.Tasks, len(report.IDMismatches), len(report.MissingSiblings), len(report.UnresolvedGeofences))

	return report, nil
}
