package checklist

import "fmt"

// ArtifactKind distinguishes expected files from expected directories.
type ArtifactKind int

const (
	// KindFile is a regular file.
	KindFile ArtifactKind = iota
	// KindDirectory is a directory.
	KindDirectory
)

// ArtifactSpec is an expected filesystem entry.
type ArtifactSpec struct {
	Path        string
	Description string
	Kind        ArtifactKind

	// MinSize is the byte threshold at or below which the artifact is
	// flagged as a placeholder. Only consulted by VerifySize.
	MinSize int64
}

// ConfigMarker is a literal that must appear in the text of FilePath.
type ConfigMarker struct {
	FilePath    string
	Text        string
	Description string
}

// Verification selects how a routine's artifacts are inspected.
type Verification int

const (
	// VerifyDirectory requires each artifact to exist and be a directory.
	VerifyDirectory Verification = iota
	// VerifyExists requires each artifact to exist, file or directory.
	VerifyExists
	// VerifySize requires each artifact to exist and warns at or below MinSize.
	VerifySize
	// VerifyMarkers reads each artifact once and looks for its markers.
	VerifyMarkers
	// VerifySource is VerifyMarkers plus a brace-balance heuristic.
	VerifySource
)

// String returns the verification name.
func (v Verification) String() string {
	switch v {
	case VerifyDirectory:
		return "directory"
	case VerifyExists:
		return "existence"
	case VerifySize:
		return "size-threshold"
	case VerifyMarkers:
		return "substring"
	case VerifySource:
		return "brace-balance"
	default:
		return "unknown"
	}
}

// Routine is one independently evaluated group of related checks.
type Routine struct {
	Name      string
	Title     string
	Verify    Verification
	Artifacts []ArtifactSpec
	Markers   []ConfigMarker
}

// markersFor returns the markers that target path, in declaration order.
func (r Routine) markersFor(path string) []ConfigMarker {
	var out []ConfigMarker
	for _, m := range r.Markers {
		if m.FilePath == path {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks that the routine is internally consistent.
func (r Routine) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("routine has no name")
	}
	if len(r.Artifacts) == 0 {
		return fmt.Errorf("routine %s: no artifacts", r.Name)
	}

	paths := make(map[string]bool, len(r.Artifacts))
	for _, a := range r.Artifacts {
		if a.Path == "" {
			return fmt.Errorf("routine %s: artifact with empty path", r.Name)
		}
		paths[a.Path] = true
	}

	switch r.Verify {
	case VerifyMarkers, VerifySource:
		for _, m := range r.Markers {
			if !paths[m.FilePath] {
				return fmt.Errorf("routine %s: marker %q targets %s, which is not an artifact", r.Name, m.Text, m.FilePath)
			}
		}
	case VerifyDirectory, VerifyExists, VerifySize:
		if len(r.Markers) > 0 {
			return fmt.Errorf("routine %s: %s verification takes no markers", r.Name, r.Verify)
		}
	default:
		return fmt.Errorf("routine %s: unknown verification %d", r.Name, int(r.Verify))
	}

	return nil
}
