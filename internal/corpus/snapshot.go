package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
)

// Filter selects directory entries by file name.
type Filter struct {
	Prefix string
	Suffix string
}

// Match returns true when the file name passes the filter. Empty filter
// fields match everything.
func (f Filter) Match(name string) bool {
	return strings.HasPrefix(name, f.Prefix) && strings.HasSuffix(name, f.Suffix)
}

// Snapshot is an immutable set of indices over one corpus directory, built in
// a single pass at load time. Components never re-scan the filesystem
// mid-pipeline, they share the snapshot instead.
type Snapshot struct {
	Dir string

	// Tasks holds every parsed task sorted by filename, so anything derived
	// from the snapshot is reproducible across runs.
	Tasks []model.Task

	ByID       map[string]model.Task
	BySibling  map[string][]model.Task
	ByGeofence map[string][]model.Task
	ByType     map[model.TaskType][]model.Task

	// Skipped are the entries that matched the filter but failed parsing.
	Skipped []string
}

// LoadSnapshot scans one directory and builds the corpus indices. Parse
// failures are counted and skipped; an unreadable directory is fatal for the
// run.
func LoadSnapshot(dir string, filter Filter, logger log.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = log.Noop
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read corpus directory %q: %w", dir, err)
	}

	snap := &Snapshot{
		Dir:        dir,
		ByID:       map[string]model.Task{},
		BySibling:  map[string][]model.Task{},
		ByGeofence: map[string][]model.Task{},
		ByType:     map[model.TaskType][]model.Task{},
	}

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		if entry.IsDir() || !filter.Match(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warningf("Could not read %q: %s", entry.Name(), err)
			snap.Skipped = append(snap.Skipped, entry.Name())
			continue
		}

		task, err := ParseRecord(entry.Name(), data)
		if err != nil {
			logger.Warningf("Could not parse %q: %s", entry.Name(), err)
			snap.Skipped = append(snap.Skipped, entry.Name())
			continue
		}

		snap.Tasks = append(snap.Tasks, task)
		snap.ByID[task.ID] = task
		snap.BySibling[task.SiblingKey] = append(snap.BySibling[task.SiblingKey], task)
		if task.Geofence != "" {
			snap.ByGeofence[task.Geofence] = append(snap.ByGeofence[task.Geofence], task)
		}
		snap.ByType[task.Type] = append(snap.ByType[task.Type], task)
	}

	logger.Debugf("Loaded %d tasks from %q (%d skipped)", len(snap.Tasks), dir, len(snap.Skipped))

	return snap, nil
}
