package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/fsutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.swift")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "let a = 1\n")
	content, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1\n", string(content))
	assert.Equal(t, path, snap.Path)
	assert.Equal(t, int64(10), snap.Size)
	assert.Equal(t, os.FileMode(0o600), snap.Mode.Perm())
	assert.NotEqual(t, [32]byte{}, snap.Hash)
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, _, err := fsutil.Read(ctx, filepath.Join(t.TempDir(), "missing.swift"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.Read(ctx, t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.Read(cancelled, writeFile(t, "x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSnapshot_Changed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a")
		_, snap, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		for _, strict := range []bool{false, true} {
			changed, err := snap.Changed(ctx, strict)
			require.NoError(t, err)
			assert.False(t, changed)
		}
	})

	t.Run("same size and mod time, different content", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a")
		_, snap, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("b"), 0o600))
		require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

		quick, err := snap.Changed(ctx, false)
		require.NoError(t, err)
		assert.False(t, quick)

		strict, err := snap.Changed(ctx, true)
		require.NoError(t, err)
		assert.True(t, strict)
	})

	t.Run("size changed", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a")
		_, snap, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o600))
		changed, err := snap.Changed(ctx, false)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a")
		_, snap, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))
		changed, err := snap.Changed(ctx, true)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		var snap *fsutil.Snapshot
		_, err := snap.Changed(ctx, true)
		require.ErrorIs(t, err, fsutil.ErrNilSnapshot)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "old")

	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new"), 0o640))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteAtomic_DefaultMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "new.swift")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "a.swift")
	require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.swift.swiftfmt.bak", fsutil.BackupPath("a.swift", fsutil.BackupModeSidecar))
	assert.Empty(t, fsutil.BackupPath("a.swift", fsutil.BackupModeNone))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	path := writeFile(t, "original")
	created, err := fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	backup, err := os.ReadFile(fsutil.BackupPath(path, cfg.Mode))
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))

	// An existing backup is never overwritten.
	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
	created, err = fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	backup, err = os.ReadFile(fsutil.BackupPath(path, cfg.Mode))
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))
}

func TestCreateBackup_Disabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "x")

	for _, cfg := range []fsutil.BackupConfig{
		fsutil.DefaultBackupConfig(),
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.False(t, created)
	}
	_, err := os.Stat(path + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

