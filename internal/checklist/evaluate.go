package checklist

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xiaolushuo/verify-project/internal/probe"
)

// Evaluate runs a single routine against p. Every artifact is inspected even
// after an earlier one failed, so the result always lists every problem.
func Evaluate(p probe.Probe, r Routine) CheckResult {
	var items []ItemResult

	switch r.Verify {
	case VerifyDirectory:
		items = checkDirectories(p, r.Artifacts)
	case VerifyExists:
		items = checkExistence(p, r.Artifacts)
	case VerifySize:
		items = checkSizes(p, r.Artifacts)
	case VerifyMarkers, VerifySource:
		items = checkContent(p, r)
	default:
		items = []ItemResult{{
			Outcome:     Failure,
			Description: r.Title,
			Subject:     r.Name,
			Detail:      fmt.Sprintf("unknown verification %d", int(r.Verify)),
		}}
	}

	return CheckResult{
		Name:   r.Name,
		Title:  r.Title,
		Passed: Reduce(items),
		Items:  items,
	}
}

func checkDirectories(p probe.Probe, artifacts []ArtifactSpec) []ItemResult {
	items := make([]ItemResult, 0, len(artifacts))
	for _, a := range artifacts {
		if p.Exists(a.Path) && p.IsDirectory(a.Path) {
			items = append(items, present(a))
		} else {
			items = append(items, missing(a))
		}
	}
	return items
}

// checkExistence accepts a directory where a file is expected.
func checkExistence(p probe.Probe, artifacts []ArtifactSpec) []ItemResult {
	items := make([]ItemResult, 0, len(artifacts))
	for _, a := range artifacts {
		if p.Exists(a.Path) {
			items = append(items, present(a))
		} else {
			items = append(items, missing(a))
		}
	}
	return items
}

func checkSizes(p probe.Probe, artifacts []ArtifactSpec) []ItemResult {
	items := make([]ItemResult, 0, len(artifacts))
	for _, a := range artifacts {
		if !p.Exists(a.Path) {
			items = append(items, missing(a))
			continue
		}

		size, err := p.SizeOf(a.Path)
		if err != nil {
			slog.Warn("asset size unavailable",
				slog.String("path", a.Path),
				slog.String("error", err.Error()))
			items = append(items, ItemResult{
				Outcome:     Failure,
				Description: a.Description,
				Subject:     a.Path,
				Detail:      fmt.Sprintf("size unavailable: %v", err),
			})
			continue
		}

		if size > a.MinSize {
			items = append(items, ItemResult{
				Outcome:     Success,
				Description: a.Description,
				Subject:     a.Path,
				Detail:      fmt.Sprintf("%d bytes", size),
			})
			continue
		}

		items = append(items, ItemResult{
			Outcome:     Warning,
			Description: a.Description,
			Subject:     a.Path,
			Detail:      fmt.Sprintf("%d bytes, possibly a placeholder", size),
		})
	}
	return items
}

// checkContent handles text artifacts. A missing file yields one failure
// item and none of its markers are evaluated.
func checkContent(p probe.Probe, r Routine) []ItemResult {
	var items []ItemResult
	for _, a := range r.Artifacts {
		if !p.Exists(a.Path) {
			items = append(items, missing(a))
			continue
		}
		items = append(items, present(a))

		text, err := p.ReadText(a.Path)
		if err != nil {
			slog.Warn("read failed",
				slog.String("routine", r.Name),
				slog.String("path", a.Path),
				slog.String("error", err.Error()))
			items = append(items, ItemResult{
				Outcome:     Failure,
				Description: a.Description,
				Subject:     a.Path,
				Detail:      fmt.Sprintf("read failed: %v", err),
			})
			continue
		}

		for _, m := range r.markersFor(a.Path) {
			item := ItemResult{
				Outcome:     Success,
				Description: m.Description,
				Subject:     m.Text,
			}
			if !strings.Contains(text, m.Text) {
				item.Outcome = Failure
				item.Detail = "missing"
			}
			items = append(items, item)
		}

		if r.Verify == VerifySource {
			items = append(items, braceBalance(a.Path, text))
		}
	}
	return items
}

// braceBalance compares counts of '{' and '}'. It is a heuristic, not a parser:
// braces inside strings and comments are counted too.
func braceBalance(path, text string) ItemResult {
	open := strings.Count(text, "{")
	closed := strings.Count(text, "}")

	item := ItemResult{
		Outcome:     Success,
		Description: "Brace balance",
		Subject:     path,
		Detail:      fmt.Sprintf("%d open, %d close", open, closed),
	}
	if open != closed {
		item.Outcome = Failure
	}
	return item
}

func present(a ArtifactSpec) ItemResult {
	return ItemResult{Outcome: Success, Description: a.Description, Subject: a.Path}
}

func missing(a ArtifactSpec) ItemResult {
	return ItemResult{Outcome: Failure, Description: a.Description, Subject: a.Path, Detail: "missing"}
}
