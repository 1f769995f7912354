package domain

import "time"

// Unit outcome values.
const (
	// OutcomeSuccess marks a tag or feed that was fetched and mapped.
	OutcomeSuccess = "success"
	// OutcomeFailed marks a tag or feed that errored and contributed
	// zero records.
	OutcomeFailed = "failed"
)

// UnitOutcome records the result of fetching one unit of work (one topic
// tag or one feed URL) within a source adapter. Failures never escape the
// adapter; they surface here instead, so partial-failure behavior can be
// asserted without parsing log output.
type UnitOutcome struct {
	// Adapter is the adapter name (e.g. "devto", "hashnode").
	Adapter string `json:"adapter"`
	// Unit identifies the tag or feed URL this outcome belongs to.
	Unit string `json:"unit"`
	// Outcome is OutcomeSuccess or OutcomeFailed.
	Outcome string `json:"outcome"`
	// Records is the number of records the unit contributed.
	Records int `json:"records"`
	// Duration is the wall time spent on the unit, including pacing.
	Duration time.Duration `json:"duration"`
	// Err holds the failure, nil on success.
	Err error `json:"-"`
}

// RunSummary aggregates the result of one full pipeline run.
type RunSummary struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// AdapterCounts maps adapter name to the number of records it
	// yielded before deduplication.
	AdapterCounts map[string]int `json:"adapter_counts"`
	// SourceCounts maps the source slug to the number of records in the
	// final batch, grouped on the Source field after deduplication.
	SourceCounts map[string]int `json:"source_counts"`
	// Total is the number of unique records in the final batch.
	Total int `json:"total"`
	// Units holds the per-unit outcomes from every adapter.
	Units []UnitOutcome `json:"units"`
	// Duration is the wall time of the whole run.
	Duration time.Duration `json:"duration"`
}

// FailedUnits returns the outcomes of units that errored.
func (s *RunSummary) FailedUnits() []UnitOutcome {
	var failed []UnitOutcome
	for _, u := range s.Units {
		if u.Outcome == OutcomeFailed {
			failed = append(failed, u)
		}
	}
	return failed
}
