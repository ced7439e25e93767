package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/xiaolushuo/verify-project/internal/errors"
)

func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "Main.cs"), []byte("using Godot;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), []byte{0xff, 0xfe, 0x00, 0xc3}, 0o644))
	return root
}

func TestFS_Exists(t *testing.T) {
	p := New(newTree(t))

	assert.True(t, p.Exists("src"))
	assert.True(t, p.Exists("src/Main.cs"))
	assert.False(t, p.Exists("src/Missing.cs"))
}

func TestFS_IsDirectory(t *testing.T) {
	p := New(newTree(t))

	assert.True(t, p.IsDirectory("src"))
	assert.False(t, p.IsDirectory("src/Main.cs"))
	assert.False(t, p.IsDirectory("nope"))
}

func TestFS_SizeOf(t *testing.T) {
	p := New(newTree(t))

	size, err := p.SizeOf("src/Main.cs")
	require.NoError(t, err)
	assert.Equal(t, int64(len("using Godot;\n")), size)

	_, err = p.SizeOf("missing.png")
	require.Error(t, err)
	assert.Equal(t, perrors.ErrCodeFileNotFound, perrors.GetCode(err))
}

func TestFS_ReadText(t *testing.T) {
	p := New(newTree(t))

	text, err := p.ReadText("src/Main.cs")
	require.NoError(t, err)
	assert.Equal(t, "using Godot;\n", text)
}

func TestFS_ReadText_Errors(t *testing.T) {
	p := New(newTree(t))

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", "nope.cs", perrors.ErrCodeFileNotFound},
		{"invalid utf-8", "blob.bin", perrors.ErrCodeFileNotText},
		{"directory", "src", perrors.ErrCodeFileRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ReadText(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.code, perrors.GetCode(err))
		})
	}
}

func TestFS_ReadText_PermissionDenied(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping permission test when running as root")
	}

	root := newTree(t)
	locked := filepath.Join(root, "locked.cfg")
	require.NoError(t, os.WriteFile(locked, []byte("x"), 0o000))

	_, err := New(root).ReadText("locked.cfg")
	require.Error(t, err)
	assert.Equal(t, perrors.ErrCodeFilePermission, perrors.GetCode(err))
}

func TestFS_AbsolutePathBypassesRoot(t *testing.T) {
	root := newTree(t)
	other := t.TempDir()
	p := New(other)

	assert.Equal(t, other, p.Root())
	assert.True(t, p.Exists(filepath.Join(root, "src", "Main.cs")))
	assert.False(t, p.Exists("src/Main.cs"))
}
