package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.verify-project/logs/).
// Falls back to temp directory if home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".verify-project", "logs")
	}
	return filepath.Join(home, ".verify-project", "logs")
}

// DefaultLogPath returns the default debug log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "verify.log")
}

// RotatedPaths lists the rotated siblings of path that exist, newest first.
func RotatedPaths(path string, maxFiles int) []string {
	var out []string
	for i := 1; i <= maxFiles; i++ {
		p := rotatedName(path, i)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
