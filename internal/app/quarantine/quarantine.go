// Package quarantine implements threshold-based quarantine of task files and
// their paired siblings.
package quarantine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
	"github.com/slok/navcorpus/internal/utils/file"
)

// ServiceConfig is the configuration for the quarantine service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service partitions tasks into kept/quarantined by a ground-truth threshold.
// The plan is computed read-only; applying it is a separate explicit step so
// the report can be inspected and tested without touching the filesystem.
type Service struct {
	logger log.Logger
}

// NewService creates a new quarantine service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// PlanRequest represents the quarantine planning parameters.
type PlanRequest struct {
	Snapshot *corpus.Snapshot

	// Field is the ground-truth scalar to test, Threshold the value above
	// which a task is quarantined.
	Field     string
	Threshold float64

	// SiblingType resolves the paired counterpart by filename prefix
	// substitution (e.g. dis -> angle). Empty disables pairing.
	SiblingType model.TaskType
}

func (r PlanRequest) validate() error {
	if r.Snapshot == nil {
		return fmt.Errorf("snapshot is required: %w", model.ErrNotValid)
	}

	if r.Field == "" {
		return fmt.Errorf("ground-truth field is required: %w", model.ErrNotValid)
	}

	if r.SiblingType != "" && !r.SiblingType.Valid() {
		return fmt.Errorf("unknown sibling type %q: %w", r.SiblingType, model.ErrNotValid)
	}

	return nil
}

// Plan computes the quarantine moves without performing them. Tasks missing
// the tested field are skipped; a missing sibling file is an unresolved
// pairing, not a failure.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*model.QuarantinePlan, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	plan := &model.QuarantinePlan{
		Dir:       req.Snapshot.Dir,
		Field:     req.Field,
		Threshold: req.Threshold,
	}

	for _, task := range req.Snapshot.Tasks {
		v, ok := task.GroundTruth.Scalar(req.Field)
		if !ok {
			plan.Skipped++
			continue
		}

		if v <= req.Threshold {
			continue
		}

		move := model.QuarantineMove{
			TaskID: task.ID,
			File:   task.File,
			Value:  v,
		}

		if req.SiblingType != "" {
			siblingFile, err := corpus.SiblingFilename(task.File, req.SiblingType)
			if err != nil {
				return nil, fmt.Errorf("could not derive sibling filename for %q: %w", task.File, err)
			}

			if file.Exists(filepath.Join(req.Snapshot.Dir, siblingFile)) {
				move.SiblingFile = siblingFile
			} else {
				plan.UnresolvedPairings = append(plan.UnresolvedPairings, siblingFile)
			}
		}

		plan.Moves = append(plan.Moves, move)
	}

	s.logger.Debugf("Quarantine plan for %q: %d moves, %d unresolved pairings",
		plan.Dir, len(plan.Moves), len(plan.UnresolvedPairings))

	return plan, nil
}

// Apply performs the planned moves into the quarantine directory. Moves are
// destructive and attempted at most once per source path; per-file I/O errors
// are accumulated and the batch proceeds. A quarantine directory that can't
// be created is fatal.
func (s *Service) Apply(ctx context.Context, plan *model.QuarantinePlan, quarantineDir string) (*model.QuarantineResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is required: %w", model.ErrNotValid)
	}
	if quarantineDir == "" {
		return nil, fmt.Errorf("quarantine directory is required: %w", model.ErrNotValid)
	}

	if err := file.EnsureDir(quarantineDir); err != nil {
		return nil, fmt.Errorf("could not prepare quarantine directory: %w", err)
	}

	result := &model.QuarantineResult{
		QuarantineDir:      quarantineDir,
		UnresolvedPairings: plan.UnresolvedPairings,
	}

	moved := map[string]struct{}{}

	moveOne := func(name string) {
		src := filepath.Join(plan.Dir, name)
		if _, done := moved[src]; done {
			return
		}
		moved[src] = struct{}{}

		// Already quarantined on a previous run, nothing to do.
		if !file.Exists(src) {
			result.Skipped++
			return
		}

		if err := file.Move(src, filepath.Join(quarantineDir, name)); err != nil {
			s.logger.Errorf("Could not quarantine %q: %s", name, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", name, err))
			return
		}

		result.Moved++
	}

	for _, m := range plan.Moves {
		moveOne(m.File)
		if m.SiblingFile != "" {
			moveOne(m.SiblingFile)
		}
	}

	s.logger.Infof("Quarantined %d files into %q (%d skipped, %d errors)",
		result.Moved, quarantineDir, result.Skipped, len(result.Errors))

	return result, nil
}
