package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	perrors "github.com/xiaolushuo/verify-project/internal/errors"
)

// LockSuffix names the lock file next to the user config.
const LockSuffix = ".lock"

// FileLock is a cross-process lock held while a config file is rewritten.
type FileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// LockUserConfig takes the user config lock without blocking. It fails with
// a config error when another process holds it.
func LockUserConfig() (*FileLock, error) {
	return lockFile(GetUserConfigPath() + LockSuffix)
}

func lockFile(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	l := &FileLock{path: path, flock: flock.New(path)}
	acquired, err := l.flock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return nil, perrors.ConfigError("configuration is being updated by another process", nil).
			WithDetail("lock", path).
			WithSuggestion("Wait for the other verify-project to finish and retry")
	}
	l.locked = true
	return l, nil
}

// Unlock releases the lock. Safe to call more than once.
func (l *FileLock) Unlock() error {
	if l == nil || !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}
