package checklist

import "fmt"

// Outcome is the result of inspecting a single checklist item.
type Outcome int

const (
	// Success indicates the item is present and well-formed.
	Success Outcome = iota
	// Warning indicates the item is present but likely a placeholder.
	Warning
	// Failure indicates the item is missing or broken.
	Failure
)

// String returns the string representation of an Outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "PASS"
	case Warning:
		return "WARN"
	case Failure:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the outcome as "pass", "warn" or "fail".
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case Success:
		return []byte("pass"), nil
	case Warning:
		return []byte("warn"), nil
	case Failure:
		return []byte("fail"), nil
	default:
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
}

// UnmarshalText decodes the form produced by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*o = Success
	case "warn":
		*o = Warning
	case "fail":
		*o = Failure
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// ItemResult is one detail line of a routine: a single artifact, marker or
// heuristic and how it fared.
type ItemResult struct {
	Outcome     Outcome `json:"outcome"`
	Description string  `json:"description"`
	Subject     string  `json:"subject"`
	Detail      string  `json:"detail,omitempty"`
}

// CheckResult holds the outcome of one routine.
type CheckResult struct {
	Name   string       `json:"name"`
	Title  string       `json:"title"`
	Passed bool         `json:"passed"`
	Items  []ItemResult `json:"items"`

	// Err is set when the routine itself faulted rather than an item failing.
	Err error `json:"-"`
}

// Warnings returns the number of items with a Warning outcome.
func (r CheckResult) Warnings() int {
	return r.count(Warning)
}

// Failures returns the number of items with a Failure outcome.
func (r CheckResult) Failures() int {
	return r.count(Failure)
}

func (r CheckResult) count(o Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}
	return n
}

// Reduce folds item outcomes into a routine verdict: false if any item
// failed. Warnings count as success.
func Reduce(items []ItemResult) bool {
	for _, item := range items {
		if item.Outcome == Failure {
			return false
		}
	}
	return true
}
