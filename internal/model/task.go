package model

import (
	"strings"
)

// TaskType represents the kind of benchmark task, derived from the filename prefix.
type TaskType string

const (
	// TaskTypeNav is a navigation task.
	TaskTypeNav TaskType = "nav"
	// TaskTypeDis is a distance-between-POIs perception task.
	TaskTypeDis TaskType = "dis"
	// TaskTypeAngle is a bearing/angle perception task.
	TaskTypeAngle TaskType = "angle"
	// TaskTypeVis is a visual-verification task.
	TaskTypeVis TaskType = "vis"
	// TaskTypeHeight is a building-height estimation task.
	TaskTypeHeight TaskType = "height"
)

// AllTaskTypes lists every known task type.
var AllTaskTypes = []TaskType{TaskTypeNav, TaskTypeDis, TaskTypeAngle, TaskTypeVis, TaskTypeHeight}

// Valid returns true when the type is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeNav, TaskTypeDis, TaskTypeAngle, TaskTypeVis, TaskTypeHeight:
		return true
	}
	return false
}

// Verification is the agent-assigned acceptance label on a task.
type Verification string

const (
	VerificationYes     Verification = "YES"
	VerificationNo      Verification = "NO"
	VerificationUnknown Verification = "UNKNOWN"
)

// NormalizeVerification maps a free-form verification string to the enum.
// Absent or unrecognized values are UNKNOWN.
func NormalizeVerification(s string) Verification {
	switch Verification(strings.ToUpper(strings.TrimSpace(s))) {
	case VerificationYes:
		return VerificationYes
	case VerificationNo:
		return VerificationNo
	}
	return VerificationUnknown
}

// GroundTruth is the open mapping of type-specific scalar fields of a task.
// Only some keys are present depending on the task type.
type GroundTruth map[string]float64

// Scalar returns the named ground-truth field, with presence flag instead of
// a zero value the caller can't distinguish from a real measurement.
func (g GroundTruth) Scalar(field string) (float64, bool) {
	if g == nil {
		return 0, false
	}
	v, ok := g[field]
	return v, ok
}

// Task represents one benchmark item loaded from a task file.
type Task struct {
	ID           string
	Type         TaskType
	SiblingKey   string
	Geofence     string
	GroundTruth  GroundTruth
	Verification Verification
	RefinedRoute string

	// File is the basename the task was loaded from, Stem the basename
	// without extension. Kept so the id/filename invariant can be checked.
	File string
	Stem string
}

// RouteSteps counts the non-empty trimmed segments of the agent refined route.
// An absent or empty route yields 0.
func (t Task) RouteSteps() int {
	if strings.TrimSpace(t.RefinedRoute) == "" {
		return 0
	}

	steps := 0
	for _, s := range strings.Split(t.RefinedRoute, "->") {
		if strings.TrimSpace(s) != "" {
			steps++
		}
	}
	return steps
}
