package cmd

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/xiaolushuo/verify-project/internal/errors"
	"github.com/xiaolushuo/verify-project/internal/testutil"
)

// syncBuffer is a bytes.Buffer safe for one writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// startWatch runs `watch` in dir until the returned cancel is called.
func startWatch(t *testing.T, dir string) (*syncBuffer, context.CancelFunc, <-chan error) {
	t.Helper()
	chdir(t, dir)
	t.Setenv("VERIFY_PROJECT_WATCH_DEBOUNCE", "50ms")

	cmd, s := newRootCmd()
	out := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(&syncBuffer{})
	cmd.SetArgs([]string{"watch"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		err := cmd.ExecuteContext(ctx)
		_ = s.finish()
		done <- err
	}()
	t.Cleanup(cancel)

	return out, cancel, done
}

func waitFor(t *testing.T, out *syncBuffer, substr string, count int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Count(out.String(), substr) >= count
	}, 5*time.Second, 20*time.Millisecond, "waiting for %q x%d in:\n%s", substr, count, out)
}

func TestWatch_RerunsAfterChange(t *testing.T) {
	// Given: a watched complete project
	isolateEnv(t)
	root := testutil.NewProject(t)
	out, cancel, done := startWatch(t, root)
	waitFor(t, out, "Checks passed: 6/6", 1)
	time.Sleep(200 * time.Millisecond)

	// When: a build script is deleted
	testutil.Remove(t, root, "build.bat")

	// Then: the change is announced and the rerun fails
	waitFor(t, out, "Change detected: build.bat", 1)
	waitFor(t, out, "Checks passed: 5/6", 1)

	// When: stopping the watch
	cancel()

	// Then: the exit reflects the last run
	select {
	case err := <-done:
		require.Error(t, err)
		assert.Equal(t, perrors.ErrCodeVerificationFailed, perrors.GetCode(err))
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_StopAfterPassingRun(t *testing.T) {
	isolateEnv(t)
	root := testutil.NewProject(t)
	out, cancel, done := startWatch(t, root)
	waitFor(t, out, "Checks passed: 6/6", 1)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_IgnoresEngineCache(t *testing.T) {
	// Given: a watched project
	isolateEnv(t)
	root := testutil.NewProject(t)
	testutil.Mkdir(t, root, ".godot")
	out, cancel, done := startWatch(t, root)
	waitFor(t, out, "Checks passed: 6/6", 1)
	time.Sleep(200 * time.Millisecond)

	// When: only the engine cache changes, then a real file
	testutil.WriteFile(t, root, ".godot/uid_cache.bin", "cache")
	time.Sleep(200 * time.Millisecond)
	testutil.WriteFile(t, root, "README.md", "# Desktop Badminton Game\n\nUpdated.\n")

	// Then: only the real change triggers a rerun
	waitFor(t, out, "Change detected: README.md", 1)
	assert.NotContains(t, out.String(), "uid_cache")

	cancel()
	<-done
}

func TestWatch_MissingProjectFile(t *testing.T) {
	isolateEnv(t)

	res := execute(t, t.TempDir(), "watch")

	require.Error(t, res.err)
	assert.Equal(t, perrors.ErrCodeProjectNotFound, perrors.GetCode(res.err))
	assert.Contains(t, res.stdout, "project.godot not found")
}
