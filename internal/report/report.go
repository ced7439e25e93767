// Package report renders a run summary for people (styled text) and for
// machines (JSON). It never decides the verdict; it only presents it.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xiaolushuo/verify-project/internal/checklist"
	perrors "github.com/xiaolushuo/verify-project/internal/errors"
	"github.com/xiaolushuo/verify-project/internal/runner"
	"github.com/xiaolushuo/verify-project/internal/ui"
)

// Title is printed at the top of every text report.
const Title = "Desktop Badminton Game Project Verification"

const ruleWidth = 50

// Hints are printed after a failed run.
var Hints = []string{
	"Make sure every required file has been created",
	"Prepare the image asset files",
	"Check the Godot project configuration",
	"Install Godot 4.3 or newer",
}

// Reporter writes reports to an output stream.
type Reporter struct {
	out    io.Writer
	styles *ui.Styles
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(r *Reporter) {
		r.out = w
	}
}

// WithStyles sets the text styles.
func WithStyles(s ui.Styles) Option {
	return func(r *Reporter) {
		r.styles = &s
	}
}

// New creates a Reporter writing unstyled text to stdout unless configured
// otherwise.
func New(opts ...Option) *Reporter {
	r := &Reporter{out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	if r.styles == nil {
		plain := ui.NoColorStyles(r.out)
		r.styles = &plain
	}
	return r
}

// Header prints the report title and rule.
func (r *Reporter) Header() {
	r.println(r.styles.Header.Render(Title))
	r.println(r.styles.Separator.Render(strings.Repeat("=", ruleWidth)))
}

// Print writes one section per routine followed by the summary, and returns
// the overall verdict.
func (r *Reporter) Print(s runner.Summary) bool {
	for _, res := range s.Results {
		r.section(res)
	}

	r.println()
	r.println(r.styles.Separator.Render(strings.Repeat("=", ruleWidth)))
	r.println(r.styles.Section.Render("Summary:"))
	r.printf("Checks passed: %d/%d\n", s.PassedCount(), s.TotalCount())

	passed := s.Passed()
	if passed {
		r.println(r.styles.Success.Render(ui.IconSuccess + " Project is complete, ready for development!"))
		return true
	}

	r.println(r.styles.Error.Render(ui.IconFailure + " Project is incomplete, review the problems above"))
	r.println()
	r.println("Suggestions:")
	for i, hint := range Hints {
		r.printf("%d. %s\n", i+1, hint)
	}
	return false
}

// Changed announces a rerun triggered by file changes.
func (r *Reporter) Changed(paths []string) {
	r.println()
	r.println(r.styles.Dim.Render("Change detected: " + strings.Join(paths, ", ")))
}

// Fatal prints a precondition or setup error.
func (r *Reporter) Fatal(err error) {
	msg := strings.TrimRight(perrors.FormatForCLI(err), "\n")
	for _, line := range strings.Split(msg, "\n") {
		r.println(r.styles.Error.Render(line))
	}
}

func (r *Reporter) section(res checklist.CheckResult) {
	r.println()
	r.println(r.styles.Section.Render("=== " + res.Title + " ==="))

	for _, item := range res.Items {
		r.println(r.item(item))
	}

	if res.Err != nil {
		r.println(r.styles.Error.Render(ui.IconFailure+" Routine aborted: ") + res.Err.Error())
	}
}

func (r *Reporter) item(item checklist.ItemResult) string {
	var icon string
	switch item.Outcome {
	case checklist.Success:
		icon = r.styles.Success.Render(ui.IconSuccess)
	case checklist.Warning:
		icon = r.styles.Warning.Render(ui.IconWarning)
	default:
		icon = r.styles.Error.Render(ui.IconFailure)
	}

	line := fmt.Sprintf("%s %s: %s", icon, item.Description, item.Subject)
	if item.Detail != "" {
		line += " " + r.styles.Dim.Render("("+item.Detail+")")
	}
	return line
}

func (r *Reporter) println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

func (r *Reporter) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// JSONOutput is the structure for JSON output.
type JSONOutput struct {
	Status      string        `json:"status"`
	Passed      bool          `json:"passed"`
	PassedCount int           `json:"passed_count"`
	TotalCount  int           `json:"total_count"`
	Routines    []JSONRoutine `json:"routines"`
	Hints       []string      `json:"hints,omitempty"`
}

// JSONRoutine is a single routine result for JSON output.
type JSONRoutine struct {
	Name   string                 `json:"name"`
	Title  string                 `json:"title"`
	Passed bool                   `json:"passed"`
	Error  string                 `json:"error,omitempty"`
	Items  []checklist.ItemResult `json:"items"`
}

// NewJSONOutput converts a summary to its JSON form.
func NewJSONOutput(s runner.Summary) JSONOutput {
	out := JSONOutput{
		Status:      s.Status(),
		Passed:      s.Passed(),
		PassedCount: s.PassedCount(),
		TotalCount:  s.TotalCount(),
		Routines:    make([]JSONRoutine, len(s.Results)),
	}

	for i, res := range s.Results {
		items := res.Items
		if items == nil {
			items = []checklist.ItemResult{}
		}
		out.Routines[i] = JSONRoutine{
			Name:   res.Name,
			Title:  res.Title,
			Passed: res.Passed,
			Items:  items,
		}
		if res.Err != nil {
			out.Routines[i].Error = res.Err.Error()
		}
	}

	if !out.Passed {
		out.Hints = Hints
	}
	return out
}

// PrintJSON writes the summary as indented JSON and returns the verdict.
func (r *Reporter) PrintJSON(s runner.Summary) (bool, error) {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewJSONOutput(s)); err != nil {
		return false, perrors.Wrap(perrors.ErrCodeInternal, err)
	}
	return s.Passed(), nil
}
