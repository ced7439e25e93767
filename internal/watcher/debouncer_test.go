package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, d *Debouncer, timeout time.Duration) []FileEvent {
	t.Helper()
	select {
	case batch := <-d.Output():
		return batch
	case <-time.After(timeout):
		t.Fatal("timeout waiting for debounced batch")
		return nil
	}
}

func TestDebouncer_SingleEvent_PassesThrough(t *testing.T) {
	// Given: a debouncer with short window
	d := NewDebouncer(50*time.Millisecond, 1)
	defer d.Stop()

	// When: a single event is added
	d.Add(FileEvent{Path: "src/Main.cs", Operation: OpModify})

	// Then: it arrives after the window
	batch := receive(t, d, time.Second)
	require.Len(t, batch, 1)
	assert.Equal(t, "src/Main.cs", batch[0].Path)
	assert.Equal(t, OpModify, batch[0].Operation)
}

func TestDebouncer_Burst_EmitsOneSortedBatch(t *testing.T) {
	// Given: a debouncer
	d := NewDebouncer(80*time.Millisecond, 1)
	defer d.Stop()

	// When: a burst of events for several files arrives within the window
	for i := 0; i < 3; i++ {
		d.Add(FileEvent{Path: "src/Shuttlecock.cs", Operation: OpModify})
		d.Add(FileEvent{Path: "project.godot", Operation: OpModify})
		d.Add(FileEvent{Path: "assets/icon.png", Operation: OpModify})
		time.Sleep(10 * time.Millisecond)
	}

	// Then: one batch, one entry per path, sorted
	batch := receive(t, d, time.Second)
	assert.Equal(t, []string{"assets/icon.png", "project.godot", "src/Shuttlecock.cs"}, Paths(batch))
}

func TestDebouncer_CreateThenDelete_NoEvent(t *testing.T) {
	d := NewDebouncer(30*time.Millisecond, 1)
	defer d.Stop()

	d.Add(FileEvent{Path: "scenes/tmp.tscn", Operation: OpCreate})
	d.Add(FileEvent{Path: "scenes/tmp.tscn", Operation: OpDelete})

	select {
	case batch := <-d.Output():
		t.Fatalf("expected no batch, got %v", batch)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		first Operation
		next  Operation
		want  Operation
		keep  bool
	}{
		{"create then modify", OpCreate, OpModify, OpCreate, true},
		{"create then delete", OpCreate, OpDelete, 0, false},
		{"delete then create", OpDelete, OpCreate, OpModify, true},
		{"modify then delete", OpModify, OpDelete, OpDelete, true},
		{"modify then modify", OpModify, OpModify, OpModify, true},
		{"rename then create", OpRename, OpCreate, OpCreate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := merge(
				FileEvent{Path: "a", Operation: tt.first},
				FileEvent{Path: "a", Operation: tt.next},
			)

			assert.Equal(t, tt.keep, keep)
			if keep {
				assert.Equal(t, tt.want, got.Operation)
			}
		})
	}
}

func TestDebouncer_FullOutputDropsBatch(t *testing.T) {
	// Given: an unread output with room for one batch
	d := NewDebouncer(10*time.Millisecond, 1)
	defer d.Stop()

	d.Add(FileEvent{Path: "a"})
	time.Sleep(60 * time.Millisecond)
	d.Add(FileEvent{Path: "b"})
	time.Sleep(60 * time.Millisecond)

	// Then: only the first batch is buffered
	assert.Equal(t, []string{"a"}, Paths(receive(t, d, time.Second)))
	select {
	case batch := <-d.Output():
		t.Fatalf("expected dropped batch, got %v", batch)
	default:
	}
}

func TestDebouncer_Stop(t *testing.T) {
	// Given: a pending event
	d := NewDebouncer(time.Hour, 1)
	d.Add(FileEvent{Path: "a"})

	// When: stopping twice
	d.Stop()
	d.Stop()

	// Then: output is closed and later adds are ignored
	_, ok := <-d.Output()
	assert.False(t, ok)
	d.Add(FileEvent{Path: "b"})
}
