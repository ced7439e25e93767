package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/xiaolushuo/verify-project/internal/errors"
)

func TestLockUserConfig_Exclusive(t *testing.T) {
	// Given: a held user config lock
	isolate(t)
	first, err := LockUserConfig()
	require.NoError(t, err)
	assert.Equal(t, GetUserConfigPath()+LockSuffix, first.Path())

	// When: a second caller tries to lock
	_, err = LockUserConfig()

	// Then: it is refused with a config error
	require.Error(t, err)
	assert.Equal(t, perrors.ErrCodeConfigInvalid, perrors.GetCode(err))

	// And: after unlocking the lock is available again
	require.NoError(t, first.Unlock())
	second, err := LockUserConfig()
	require.NoError(t, err)
	assert.NoError(t, second.Unlock())
}

func TestFileLock_UnlockTwice(t *testing.T) {
	l, err := lockFile(filepath.Join(t.TempDir(), "nested", "config.yaml.lock"))
	require.NoError(t, err)

	require.NoError(t, l.Unlock())
	assert.NoError(t, l.Unlock())

	var nilLock *FileLock
	assert.NoError(t, nilLock.Unlock())
}
