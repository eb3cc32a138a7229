package model

import (
	"fmt"
	"time"
)

// Run is the persisted record of one pipeline run: what command ran, when,
// and the summary counts a human needs to decide on remediation. Detail holds
// the full report JSON encoded.
type Run struct {
	ID         string
	Command    string
	StartedAt  time.Time
	FinishedAt time.Time

	Successes int
	Skips     int
	Errors    int

	Detail string
}

// Validate validates the run record.
func (r Run) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("run id is required: %w", ErrNotValid)
	}

	if r.Command == "" {
		return fmt.Errorf("run command is required: %w", ErrNotValid)
	}

	return nil
}
