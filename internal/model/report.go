package model

// IDMismatch reports a task whose declared id differs from its filename stem.
type IDMismatch struct {
	Dir        string
	File       string
	DeclaredID string
}

// GeofenceRef reports a task referencing a geofence missing from the registry.
type GeofenceRef struct {
	TaskID   string
	Geofence string
}

// ScalarViolation reports a ground-truth scalar breaking the non-negativity
// invariant.
type ScalarViolation struct {
	TaskID string
	Field  string
	Value  float64
}

// CheckReport is the outcome of the consistency checks over a corpus snapshot.
// It is a report only, remediation is the caller's decision.
type CheckReport struct {
	Dirs    []string
	Tasks   int
	Skipped int

	FromType TaskType
	ToType   TaskType

	IDMismatches        []IDMismatch
	MissingSiblings     []string
	UnresolvedGeofences []GeofenceRef
	NegativeScalars     []ScalarViolation
}

// Clean returns true when no inconsistency was found.
func (r CheckReport) Clean() bool {
	return len(r.IDMismatches) == 0 &&
		len(r.MissingSiblings) == 0 &&
		len(r.UnresolvedGeofences) == 0 &&
		len(r.NegativeScalars) == 0
}

// AffectedGeofence is a geofence with at least one defective member panorama.
type AffectedGeofence struct {
	Name         string
	BadPanoramas []string
}

// AffectedTask is a task whose geofence contains defective panoramas.
type AffectedTask struct {
	TaskID   string
	Dir      string
	Geofence string
	BadCount int
	// BadSample is a bounded sample of the defective panorama ids, enough
	// for a human to spot-check without dumping whole geofences.
	BadSample []string
}

// PropagationReport is the outcome of propagating a defect list through
// geofence membership to tasks. It performs no file mutation.
type PropagationReport struct {
	DefectiveIDs int
	Geofences    []AffectedGeofence
	Tasks        []AffectedTask
}

// QuarantineMove is one planned quarantine relocation: the offending file and
// its paired sibling file when the pairing convention resolves one.
type QuarantineMove struct {
	TaskID      string
	File        string
	Value       float64
	SiblingFile string
}

// QuarantinePlan is the read-only quarantine computation. Applying it is a
// separate explicit step.
type QuarantinePlan struct {
	Dir       string
	Field     string
	Threshold float64

	Moves              []QuarantineMove
	UnresolvedPairings []string
	Skipped            int
}

// QuarantineResult is the outcome of applying a quarantine plan.
type QuarantineResult struct {
	QuarantineDir      string
	Moved              int
	Skipped            int
	UnresolvedPairings []string
	Errors             []string
}

// SampleSelection is one task drawn by the sampler, with its resolved sibling
// file when one is required.
type SampleSelection struct {
	TaskID      string
	File        string
	Geofence    string
	SiblingFile string
}

// SamplePlan is the read-only sampling computation.
type SamplePlan struct {
	Dir        string
	SiblingDir string
	K          int
	Candidates int
	Shortfall  bool

	Selected        []SampleSelection
	MissingSiblings []string
}

// SampleResult is the outcome of applying a sample plan.
type SampleResult struct {
	DestDir string
	Copied  int
	Skipped int
	Errors  []string
}

// DirStats summarizes one corpus directory.
type DirStats struct {
	Dir     string
	Tasks   int
	Skipped int

	ByType       map[TaskType]int
	ByGeofence   map[string]int
	Verification map[Verification]int
}

// StatsReport summarizes a set of corpus directories.
type StatsReport struct {
	Dirs []DirStats
}
