package batch

import (
	"time"

	"classcheck/internal/reconcile"
)

// SkippedInput records one file or table left out of the batch.
type SkippedInput struct {
	Role  string `json:"role"`
	Path  string `json:"path"`
	Table string `json:"table,omitempty"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Report summarises a batch run.
type Report struct {
	RunID           string          `json:"run_id"`
	StartedAt       time.Time       `json:"started_at"`
	FinishedAt      time.Time       `json:"finished_at"`
	RosterFiles     int             `json:"roster_files"`
	SubmissionFiles int             `json:"submission_files"`
	Skipped         []SkippedInput  `json:"skipped,omitempty"`
	RosterEntries   int             `json:"roster_entries"`
	Rooms           []string        `json:"rooms"`
	Claims          int             `json:"claims"`
	AmbiguousRows   int             `json:"ambiguous_rows"`
	Reconcile       reconcile.Stats `json:"reconcile"`
	Error           string          `json:"error,omitempty"`
	ErrorKind       string          `json:"error_kind,omitempty"`
}

// Duration returns the wall time of the run.
func (r Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// SkippedByKind counts skipped inputs per error kind.
func (r Report) SkippedByKind() map[string]int {
	counts := make(map[string]int)
	for _, s := range r.Skipped {
		counts[s.Kind]++
	}
	return counts
}
