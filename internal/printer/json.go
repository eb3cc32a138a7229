package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/navcorpus/internal/model"
)

// JSONPrinter prints pipeline reports in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

func (j *JSONPrinter) print(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type idMismatchOutput struct {
	Dir        string `json:"dir"`
	File       string `json:"file"`
	DeclaredID string `json:"declared_id"`
}

type geofenceRefOutput struct {
	TaskID   string `json:"task_id"`
	Geofence string `json:"geofence"`
}

type scalarViolationOutput struct {
	TaskID string  `json:"task_id"`
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
}

type checkOutput struct {
	Dirs                []string                `json:"dirs"`
	Tasks               int                     `json:"tasks"`
	Skipped             int                     `json:"skipped"`
	FromType            string                  `json:"from_type,omitempty"`
	ToType              string                  `json:"to_type,omitempty"`
	IDMismatches        []idMismatchOutput      `json:"id_mismatches"`
	MissingSiblings     []string                `json:"missing_siblings"`
	UnresolvedGeofences []geofenceRefOutput     `json:"unresolved_geofences"`
	NegativeScalars     []scalarViolationOutput `json:"negative_scalars"`
}

// PrintCheck prints the consistency check report in JSON format.
func (j *JSONPrinter) PrintCheck(r model.CheckReport) error {
	out := checkOutput{
		Dirs:                r.Dirs,
		Tasks:               r.Tasks,
		Skipped:             r.Skipped,
		FromType:            string(r.FromType),
		ToType:              string(r.ToType),
		IDMismatches:        []idMismatchOutput{},
		MissingSiblings:     r.MissingSiblings,
		UnresolvedGeofences: []geofenceRefOutput{},
		NegativeScalars:     []scalarViolationOutput{},
	}
	if out.MissingSiblings == nil {
		out.MissingSiblings = []string{}
	}
	for _, m := range r.IDMismatches {
		out.IDMismatches = append(out.IDMismatches, idMismatchOutput(m))
	}
	for _, g := range r.UnresolvedGeofences {
		out.UnresolvedGeofences = append(out.UnresolvedGeofences, geofenceRefOutput(g))
	}
	for _, v := range r.NegativeScalars {
		out.NegativeScalars = append(out.NegativeScalars, scalarViolationOutput(v))
	}

	return j.print(out)
}

type affectedGeofenceOutput struct {
	Name         string   `json:"name"`
	BadPanoramas []string `json:"bad_panoramas"`
}

type affectedTaskOutput struct {
	TaskID    string   `json:"task_id"`
	Dir       string   `json:"dir"`
	Geofence  string   `json:"geofence"`
	BadCount  int      `json:"bad_count"`
	BadSample []string `json:"bad_sample"`
}

type propagationOutput struct {
	DefectiveIDs int                      `json:"defective_ids"`
	Geofences    []affectedGeofenceOutput `json:"geofences"`
	Tasks        []affectedTaskOutput     `json:"tasks"`
}

// PrintPropagation prints the defect propagation report in JSON format.
func (j *JSONPrinter) PrintPropagation(r model.PropagationReport) error {
	out := propagationOutput{
		DefectiveIDs: r.DefectiveIDs,
		Geofences:    []affectedGeofenceOutput{},
		Tasks:        []affectedTaskOutput{},
	}
	for _, g := range r.Geofences {
		out.Geofences = append(out.Geofences, affectedGeofenceOutput(g))
	}
	for _, task := range r.Tasks {
		out.Tasks = append(out.Tasks, affectedTaskOutput(task))
	}

	return j.print(out)
}

type quarantineMoveOutput struct {
	TaskID      string  `json:"task_id"`
	File        string  `json:"file"`
	Value       float64 `json:"value"`
	SiblingFile string  `json:"sibling_file,omitempty"`
}

type quarantinePlanOutput struct {
	Dir                string                 `json:"dir"`
	Field              string                 `json:"field"`
	Threshold          float64                `json:"threshold"`
	Moves              []quarantineMoveOutput `json:"moves"`
	UnresolvedPairings []string               `json:"unresolved_pairings"`
	Skipped            int                    `json:"skipped"`
}

// PrintQuarantinePlan prints the quarantine plan in JSON format.
func (j *JSONPrinter) PrintQuarantinePlan(p model.QuarantinePlan) error {
	out := quarantinePlanOutput{
		Dir:                p.Dir,
		Field:              p.Field,
		Threshold:          p.Threshold,
		Moves:              []quarantineMoveOutput{},
		UnresolvedPairings: p.UnresolvedPairings,
		Skipped:            p.Skipped,
	}
	if out.UnresolvedPairings == nil {
		out.UnresolvedPairings = []string{}
	}
	for _, m := range p.Moves {
		out.Moves = append(out.Moves, quarantineMoveOutput(m))
	}

	return j.print(out)
}

type quarantineResultOutput struct {
	QuarantineDir      string   `json:"quarantine_dir"`
	Moved              int      `json:"moved"`
	Skipped            int      `json:"skipped"`
	UnresolvedPairings []string `json:"unresolved_pairings"`
	Errors             []string `json:"errors"`
}

// PrintQuarantineResult prints the quarantine result in JSON format.
func (j *JSONPrinter) PrintQuarantineResult(r model.QuarantineResult) error {
	out := quarantineResultOutput(r)
	if out.UnresolvedPairings == nil {
		out.UnresolvedPairings = []string{}
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}

	return j.print(out)
}

type sampleSelectionOutput struct {
	TaskID      string `json:"task_id"`
	File        string `json:"file"`
	Geofence    string `json:"geofence,omitempty"`
	SiblingFile string `json:"sibling_file,omitempty"`
}

type samplePlanOutput struct {
	Dir             string                  `json:"dir"`
	SiblingDir      string                  `json:"sibling_dir,omitempty"`
	K               int                     `json:"k"`
	Candidates      int                     `json:"candidates"`
	Shortfall       bool                    `json:"shortfall"`
	Selected        []sampleSelectionOutput `json:"selected"`
	MissingSiblings []string                `json:"missing_siblings"`
}

// PrintSamplePlan prints the sample plan in JSON format.
func (j *JSONPrinter) PrintSamplePlan(p model.SamplePlan) error {
	out := samplePlanOutput{
		Dir:             p.Dir,
		SiblingDir:      p.SiblingDir,
		K:               p.K,
		Candidates:      p.Candidates,
		Shortfall:       p.Shortfall,
		Selected:        []sampleSelectionOutput{},
		MissingSiblings: p.MissingSiblings,
	}
	if out.MissingSiblings == nil {
		out.MissingSiblings = []string{}
	}
	for _, sel := range p.Selected {
		out.Selected = append(out.Selected, sampleSelectionOutput(sel))
	}

	return j.print(out)
}

type sampleResultOutput struct {
	DestDir string   `json:"dest_dir"`
	Copied  int      `json:"copied"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// PrintSampleResult prints the sample result in JSON format.
func (j *JSONPrinter) PrintSampleResult(r model.SampleResult) error {
	out := sampleResultOutput(r)
	if out.Errors == nil {
		out.Errors = []string{}
	}

	return j.print(out)
}

type dirStatsOutput struct {
	Dir          string         `json:"dir"`
	Tasks        int            `json:"tasks"`
	Skipped      int            `json:"skipped"`
	ByType       map[string]int `json:"by_type"`
	Geofences    int            `json:"geofences"`
	Verification map[string]int `json:"verification"`
}

// PrintStats prints corpus summary statistics in JSON format.
func (j *JSONPrinter) PrintStats(r model.StatsReport) error {
	out := make([]dirStatsOutput, 0, len(r.Dirs))
	for _, ds := range r.Dirs {
		o := dirStatsOutput{
			Dir:          ds.Dir,
			Tasks:        ds.Tasks,
			Skipped:      ds.Skipped,
			ByType:       map[string]int{},
			Geofences:    len(ds.ByGeofence),
			Verification: map[string]int{},
		}
		for taskType, n := range ds.ByType {
			o.ByType[string(taskType)] = n
		}
		for v, n := range ds.Verification {
			o.Verification[string(v)] = n
		}
		out = append(out, o)
	}

	return j.print(out)
}

type runOutput struct {
	ID         string          `json:"id"`
	Command    string          `json:"command"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Successes  int             `json:"successes"`
	Skips      int             `json:"skips"`
	Errors     int             `json:"errors"`
	Detail     json.RawMessage `json:"detail,omitempty"`
}

func newRunOutput(r model.Run) runOutput {
	out := runOutput{
		ID:         r.ID,
		Command:    r.Command,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Successes:  r.Successes,
		Skips:      r.Skips,
		Errors:     r.Errors,
	}
	if r.Detail != "" {
		out.Detail = json.RawMessage(r.Detail)
	}
	return out
}

// PrintRunList prints persisted runs in JSON format.
func (j *JSONPrinter) PrintRunList(runs []model.Run) error {
	out := make([]runOutput, 0, len(runs))
	for _, r := range runs {
		// List output stays compact, the full detail is in `report show`.
		o := newRunOutput(r)
		o.Detail = nil
		out = append(out, o)
	}

	return j.print(out)
}

// PrintRun prints one persisted run in JSON format.
func (j *JSONPrinter) PrintRun(r model.Run) error {
	return j.print(newRunOutput(r))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.print(map[string]string{"message": msg})
}
