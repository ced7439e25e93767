// Package probe answers primitive questions about a project tree: whether an
// entry exists, whether it is a directory, how large it is, and what text it
// holds. It never writes to the filesystem and carries no policy; deciding
// what a missing or small file means is left to the checklist.
package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	perrors "github.com/xiaolushuo/verify-project/internal/errors"
)

// Probe is the read-only filesystem oracle consulted by check routines.
// Paths are slash-separated and relative to the probe's root.
type Probe interface {
	// Exists reports whether a file or directory is present at path.
	Exists(path string) bool

	// IsDirectory reports whether path is present and is a directory.
	IsDirectory(path string) bool

	// SizeOf returns the byte length of the entry at path.
	// Callers are expected to check Exists first.
	SizeOf(path string) (int64, error)

	// ReadText returns the full UTF-8 content of the file at path.
	// Missing, unreadable and non-UTF-8 files return a *errors.ProjectError.
	ReadText(path string) (string, error)
}

// FS is a Probe backed by the local filesystem.
type FS struct {
	root string
}

// Ensure FS implements Probe.
var _ Probe = (*FS)(nil)

// New creates a filesystem probe rooted at root.
func New(root string) *FS {
	return &FS{root: root}
}

// Root returns the directory all relative paths resolve against.
func (f *FS) Root() string {
	return f.root
}

// Exists implements Probe.
func (f *FS) Exists(path string) bool {
	_, err := os.Stat(f.resolve(path))
	return err == nil
}

// IsDirectory implements Probe.
func (f *FS) IsDirectory(path string) bool {
	info, err := os.Stat(f.resolve(path))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// SizeOf implements Probe.
func (f *FS) SizeOf(path string) (int64, error) {
	info, err := os.Stat(f.resolve(path))
	if err != nil {
		return 0, classify(path, "stat", err)
	}
	return info.Size(), nil
}

// ReadText implements Probe.
func (f *FS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(f.resolve(path))
	if err != nil {
		return "", classify(path, "read", err)
	}

	if !utf8.Valid(data) {
		return "", perrors.New(perrors.ErrCodeFileNotText,
			fmt.Sprintf("%s is not valid UTF-8 text", path), nil).
			WithDetail("path", path)
	}

	return string(data), nil
}

func (f *FS) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.root, filepath.FromSlash(path))
}

// classify maps an os error to the matching ProjectError code.
func classify(path, op string, err error) error {
	code := perrors.ErrCodeFileRead
	switch {
	case os.IsNotExist(err):
		code = perrors.ErrCodeFileNotFound
	case os.IsPermission(err):
		code = perrors.ErrCodeFilePermission
	}
	return perrors.New(code, fmt.Sprintf("%s %s: %v", op, path, err), err).
		WithDetail("path", path)
}
