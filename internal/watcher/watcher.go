package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation represents a file system operation type.
type Operation int

const (
	// OpCreate indicates a new file or directory was created.
	OpCreate Operation = iota
	// OpModify indicates an existing file was modified.
	OpModify
	// OpDelete indicates a file or directory was deleted.
	OpDelete
	// OpRename indicates a file or directory was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// FileEvent represents a file system event.
type FileEvent struct {
	// Path is relative to the watched root, slash-separated.
	Path      string
	Operation Operation
	IsDir     bool
	Timestamp time.Time
}

// Paths returns the paths of a batch.
func Paths(batch []FileEvent) []string {
	out := make([]string, len(batch))
	for i, e := range batch {
		out[i] = e.Path
	}
	return out
}

// Options configures the watcher behavior.
type Options struct {
	// DebounceWindow is the quiet period before a batch is emitted.
	// Default: 300ms
	DebounceWindow time.Duration

	// BatchBuffer is how many batches may wait for the consumer.
	// Default: 4
	BatchBuffer int

	// Exclude lists directory names that are never watched, at any depth.
	Exclude []string

	// Logger receives diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultExclude holds directories Godot, .NET and git write to on their own.
var DefaultExclude = []string{".git", ".godot", ".import", ".mono", "bin", "obj"}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow: 300 * time.Millisecond,
		BatchBuffer:    4,
		Exclude:        slices.Clone(DefaultExclude),
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = defaults.DebounceWindow
	}
	if o.BatchBuffer <= 0 {
		o.BatchBuffer = defaults.BatchBuffer
	}
	if o.Exclude == nil {
		o.Exclude = defaults.Exclude
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Watcher watches a project tree with fsnotify.
type Watcher struct {
	root      string
	opts      Options
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger

	closeOnce sync.Once
}

// New creates a watcher for root. Call Run to start delivering events.
func New(root string, opts Options) (*Watcher, error) {
	opts = opts.WithDefaults()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		root:      abs,
		opts:      opts,
		fsw:       fsw,
		debouncer: NewDebouncer(opts.DebounceWindow, opts.BatchBuffer),
		logger:    opts.Logger,
	}, nil
}

// Events returns debounced batches. It is closed when Run returns.
func (w *Watcher) Events() <-chan []FileEvent {
	return w.debouncer.Output()
}

// Run registers every non-excluded directory and forwards events until ctx
// is cancelled or fsnotify fails. A cancelled context is not an error.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("add directories to watcher: %w", err)
	}
	w.logger.Debug("watching project", slog.String("root", w.root))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			// Overflow and similar errors are not fatal; the next event
			// still triggers a full rerun.
			w.logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) close() {
	w.closeOnce.Do(func() {
		_ = w.fsw.Close()
		w.debouncer.Stop()
	})
}

func (w *Watcher) handle(event fsnotify.Event) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	rel = filepath.ToSlash(rel)
	if w.excluded(rel) {
		return
	}

	isDir := false
	if info, err := os.Stat(event.Name); err == nil {
		isDir = info.IsDir()
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
		if isDir {
			// New directories need their own registration.
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory",
					slog.String("path", rel),
					slog.String("error", err.Error()))
			}
		}
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0:
		op = OpDelete
	case event.Op&fsnotify.Rename != 0:
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(FileEvent{
		Path:      rel,
		Operation: op,
		IsDir:     isDir,
		Timestamp: time.Now(),
	})
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries we can't access
		}
		if !d.IsDir() {
			return nil
		}

		rel, _ := filepath.Rel(w.root, path)
		if rel != "." && w.excluded(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// excluded reports whether any segment of rel is an excluded name.
func (w *Watcher) excluded(rel string) bool {
	if rel == "." || rel == "" {
		return true
	}
	for _, segment := range strings.Split(rel, "/") {
		if slices.Contains(w.opts.Exclude, segment) {
			return true
		}
	}
	return false
}
