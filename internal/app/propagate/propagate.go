// Package propagate implements defect propagation: deriving which geofences,
// and therefore which tasks, are affected by defective panoramas.
package propagate

import (
	"context"
	"fmt"
	"sort"

	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/geofence"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
)

// maxBadSample bounds the per-task sample of defective panorama ids in the
// report, enough for a human to spot-check.
const maxBadSample = 5

// ServiceConfig is the configuration for the propagate service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service computes defect propagation reports. It performs no file mutation,
// acting on the report is a separate deliberate step.
type Service struct {
	logger log.Logger
}

// NewService creates a new propagate service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// Request represents the propagation request parameters.
type Request struct {
	// DefectiveIDs are the panorama ids flagged by the external image-defect
	// classifier, possibly carrying variant suffixes.
	DefectiveIDs []string

	Registry  *geofence.Registry
	Snapshots []*corpus.Snapshot
}

func (r Request) validate() error {
	if r.Registry == nil {
		return fmt.Errorf("geofence registry is required: %w", model.ErrNotValid)
	}

	if len(r.Snapshots) == 0 {
		return fmt.Errorf("at least one snapshot is required: %w", model.ErrNotValid)
	}

	return nil
}

// Run propagates the defective panorama set through geofence membership to
// the tasks that depend on it. Propagation is monotonic: growing the
// defective set can only grow the affected-task set.
func (s *Service) Run(ctx context.Context, req Request) (*model.PropagationReport, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	defective := make(map[string]struct{}, len(req.DefectiveIDs))
	for _, id := range req.DefectiveIDs {
		defective[model.NormalizePanoramaID(id)] = struct{}{}
	}

	report := &model.PropagationReport{DefectiveIDs: len(defective)}

	// Intersect every geofence's membership with the defective set.
	affected := map[string][]string{}
	for _, name := range req.Registry.Names() {
		panoramas, _ := req.Registry.Panoramas(name)

		var bad []string
		for id := range panoramas {
			if _, ok := defective[id]; ok {
				bad = append(bad, id)
			}
		}
		if len(bad) == 0 {
			continue
		}

		sort.Strings(bad)
		affected[name] = bad
		report.Geofences = append(report.Geofences, model.AffectedGeofence{
			Name:         name,
			BadPanoramas: bad,
		})
	}

	// Every task anchored to an affected geofence is affected. Snapshots are
	// already sorted by filename, so the report groups by source directory
	// deterministically.
	for _, snap := range req.Snapshots {
		for _, task := range snap.Tasks {
			bad, ok := affected[task.Geofence]
			if !ok {
				continue
			}

			sample := bad
			if len(sample) > maxBadSample {
				sample = sample[:maxBadSample]
			}

			report.Tasks = append(report.Tasks, model.AffectedTask{
				TaskID:    task.ID,
				Dir:       snap.Dir,
				Geofence:  task.Geofence,
				BadCount:  len(bad),
				BadSample: sample,
			})
		}
	}

	s.logger.Debugf("Propagated %d defective panoramas to %d geofences and %d tasks",
		len(defective), len(report.Geofences), len(report.Tasks))

	return report, nil
}
