// Package sample implements constrained random sampling of verified tasks
// and their siblings into an output set.
package sample

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"
	"time"

	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
	"github.com/slok/navcorpus/internal/utils/file"
)

// ServiceConfig is the configuration for the sample service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service draws bounded, constraint-respecting random subsets of tasks. Like
// quarantine, planning is read-only and applying (copying) is explicit.
type Service struct {
	logger log.Logger
}

// NewService creates a new sample service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// PlanRequest represents the sampling parameters.
type PlanRequest struct {
	Snapshot *corpus.Snapshot

	// K is the target sample size.
	K int

	// Seed seeds the random subset draw. 0 means time-seeded; tests use a
	// fixed seed for reproducible plans.
	Seed int64

	// RequireVerified keeps only tasks with agent verification YES.
	RequireVerified bool

	// MaxRouteSteps drops tasks whose refined route has more steps. 0
	// disables the cap.
	MaxRouteSteps int

	// UniqueGeofence keeps at most one task per distinct geofence.
	UniqueGeofence bool

	// SiblingType resolves each selection's counterpart file by prefix
	// substitution. Empty disables sibling resolution.
	SiblingType model.TaskType

	// SiblingDir is where sibling files live. Defaults to the snapshot dir.
	SiblingDir string
}

func (r *PlanRequest) validate() error {
	if r.Snapshot == nil {
		return fmt.Errorf("snapshot is required: %w", model.ErrNotValid)
	}

	if r.K <= 0 {
		return fmt.Errorf("sample size must be positive: %w", model.ErrNotValid)
	}

	if r.SiblingType != "" && !r.SiblingType.Valid() {
		return fmt.Errorf("unknown sibling type %q: %w", r.SiblingType, model.ErrNotValid)
	}

	if r.SiblingDir == "" {
		r.SiblingDir = r.Snapshot.Dir
	}

	return nil
}

// Plan filters the candidate set and draws the sample without touching the
// destination. Selections whose required sibling file is missing are excluded
// and reported rather than producing a mismatched pair.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*model.SamplePlan, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	// Filters apply in order over the filename-sorted snapshot, so the
	// candidate set is deterministic for a given corpus state.
	seenGeofences := map[string]struct{}{}
	var candidates []model.Task
	for _, task := range req.Snapshot.Tasks {
		if req.RequireVerified && task.Verification != model.VerificationYes {
			continue
		}

		if req.MaxRouteSteps > 0 && task.RouteSteps() > req.MaxRouteSteps {
			continue
		}

		if req.UniqueGeofence && task.Geofence != "" {
			if _, seen := seenGeofences[task.Geofence]; seen {
				continue
			}
			seenGeofences[task.Geofence] = struct{}{}
		}

		candidates = append(candidates, task)
	}

	plan := &model.SamplePlan{
		Dir:        req.Snapshot.Dir,
		SiblingDir: req.SiblingDir,
		K:          req.K,
		Candidates: len(candidates),
	}

	selected := candidates
	if len(candidates) > req.K {
		seed := req.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		idxs := rng.Perm(len(candidates))[:req.K]
		sort.Ints(idxs)

		selected = make([]model.Task, 0, req.K)
		for _, i := range idxs {
			selected = append(selected, candidates[i])
		}
	} else if len(candidates) < req.K {
		plan.Shortfall = true
		s.logger.Warningf("Sample shortfall: requested %d, only %d candidates", req.K, len(candidates))
	}

	for _, task := range selected {
		selection := model.SampleSelection{
			TaskID:   task.ID,
			File:     task.File,
			Geofence: task.Geofence,
		}

		if req.SiblingType != "" {
			siblingFile, err := corpus.SiblingFilename(task.File, req.SiblingType)
			if err != nil {
				return nil, fmt.Errorf("could not derive sibling filename for %q: %w", task.File, err)
			}

			if !file.Exists(filepath.Join(req.SiblingDir, siblingFile)) {
				plan.MissingSiblings = append(plan.MissingSiblings, siblingFile)
				continue
			}
			selection.SiblingFile = siblingFile
		}

		plan.Selected = append(plan.Selected, selection)
	}

	s.logger.Debugf("Sample plan for %q: %d/%d selected (%d candidates, %d missing siblings)",
		plan.Dir, len(plan.Selected), req.K, plan.Candidates, len(plan.MissingSiblings))

	return plan, nil
}

// Apply copies the selected files (siblings included) into the destination.
// Copies are non-destructive; destination paths that already exist are
// skipped so re-runs perform no redundant work. A destination directory that
// can't be created is fatal.
func (s *Service) Apply(ctx context.Context, plan *model.SamplePlan, destDir string) (*model.SampleResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is required: %w", model.ErrNotValid)
	}
	if destDir == "" {
		return nil, fmt.Errorf("destination directory is required: %w", model.ErrNotValid)
	}

	if err := file.EnsureDir(destDir); err != nil {
		return nil, fmt.Errorf("could not prepare destination directory: %w", err)
	}

	result := &model.SampleResult{DestDir: destDir}

	copyOne := func(srcDir, name string) {
		dst := filepath.Join(destDir, name)
		if file.Exists(dst) {
			result.Skipped++
			return
		}

		if err := file.Copy(filepath.Join(srcDir, name), dst); err != nil {
			s.logger.Errorf("Could not copy %q: %s", name, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", name, err))
			return
		}

		result.Copied++
	}

	for _, sel := range plan.Selected {
		copyOne(plan.Dir, sel.File)
		if sel.SiblingFile != "" {
			copyOne(plan.SiblingDir, sel.SiblingFile)
		}
	}

	s.logger.Infof("Sampled %d files into %q (%d skipped, %d errors)",
		result.Copied, destDir, result.Skipped, len(result.Errors))

	return result, nil
}
