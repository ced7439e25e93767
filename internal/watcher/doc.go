// Package watcher reports changes under a project tree in debounced batches.
//
// It wraps fsnotify with recursive directory registration, skips
// engine-generated and VCS directories by name, and coalesces bursts of
// events so an editor save or an export produces a single batch.
//
// Usage:
//
//	w, err := watcher.New(root, watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	go func() { _ = w.Run(ctx) }()
//
//	for batch := range w.Events() {
//	    // rerun the checklist
//	}
package watcher
