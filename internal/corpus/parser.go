package corpus

import (
	"encoding/json"
	"fmt"

	"github.com/slok/navcorpus/internal/model"
)

// taskRecord is the raw JSON structure of a task file. Everything except
// task_id is optional, so every field access after decoding is safe.
type taskRecord struct {
	TaskID            string                 `json:"task_id"`
	Geofence          string                 `json:"geofence"`
	GroundTruth       map[string]interface{} `json:"ground_truth"`
	AgentVerification string                 `json:"agent_verification"`
	AgentRefinedRoute string                 `json:"agent_refined_route"`
}

// ParseRecord parses one task file's raw content into a task. Failures are
// per-file and non-fatal, the caller logs and skips them.
func ParseRecord(filename string, data []byte) (model.Task, error) {
	info, err := ParseFilename(filename)
	if err != nil {
		return model.Task{}, err
	}

	var record taskRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.Task{}, fmt.Errorf("could not parse task record: %w", err)
	}

	if record.TaskID == "" {
		return model.Task{}, fmt.Errorf("task record misses task_id: %w", model.ErrNotValid)
	}

	return model.Task{
		ID:           record.TaskID,
		Type:         info.Type,
		SiblingKey:   info.SiblingKey,
		Geofence:     record.Geofence,
		GroundTruth:  numericFields(record.GroundTruth),
		Verification: model.NormalizeVerification(record.AgentVerification),
		RefinedRoute: record.AgentRefinedRoute,
		File:         filename,
		Stem:         info.Stem,
	}, nil
}

// numericFields keeps the scalar entries of the open ground-truth mapping.
// Non-numeric values are dropped, not errors: the mapping is loosely schema'd
// and only the scalar fields take part in the pipeline.
func numericFields(raw map[string]interface{}) model.GroundTruth {
	if len(raw) == 0 {
		return nil
	}

	gt := model.GroundTruth{}
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			gt[k] = f
		}
	}

	if len(gt) == 0 {
		return nil
	}
	return gt
}
