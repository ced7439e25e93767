package runner

import "github.com/xiaolushuo/verify-project/internal/checklist"

// Summary status values.
const (
	StatusReady             = "ready"
	StatusReadyWithWarnings = "ready_with_warnings"
	StatusFailed            = "failed"
)

// Summary aggregates every routine result of one run, in execution order.
// Counts are derived from Results so they cannot drift from it.
type Summary struct {
	Results []checklist.CheckResult
}

// TotalCount returns the number of routines that ran.
func (s Summary) TotalCount() int {
	return len(s.Results)
}

// PassedCount returns the number of routines that passed.
func (s Summary) PassedCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Passed {
			n++
		}
	}
	return n
}

// Passed is the overall verdict: every routine passed.
func (s Summary) Passed() bool {
	return s.PassedCount() == s.TotalCount()
}

// Warnings returns the number of warning items across all routines.
func (s Summary) Warnings() int {
	n := 0
	for _, r := range s.Results {
		n += r.Warnings()
	}
	return n
}

// Status returns "ready", "ready_with_warnings" or "failed".
func (s Summary) Status() string {
	if !s.Passed() {
		return StatusFailed
	}
	if s.Warnings() > 0 {
		return StatusReadyWithWarnings
	}
	return StatusReady
}

// Outcomes returns the pass/fail boolean of each routine, in order.
func (s Summary) Outcomes() []bool {
	out := make([]bool, len(s.Results))
	for i, r := range s.Results {
		out[i] = r.Passed
	}
	return out
}
