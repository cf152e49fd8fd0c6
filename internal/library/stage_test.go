package library

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/boardci/internal/errors"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func TestStage_CopiesTree(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "RAK_SDI12.h"), "#pragma once\n", 0o644)
	writeFile(t, filepath.Join(src, "RAK_SDI12.cpp"), "// impl\n", 0o644)
	writeFile(t, filepath.Join(src, "utility", "crc.c"), "// crc\n", 0o600)

	dest := InstallDir(filepath.Join(t.TempDir(), "Arduino", "libraries"), "RAK13010-SDI12")
	require.NoError(t, Stage(src, dest))

	got, err := os.ReadFile(filepath.Join(dest, "utility", "crc.c"))
	require.NoError(t, err)
	assert.Equal(t, "// crc\n", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dest, "utility", "crc.c"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestStage_OverwritesAndKeepsExtra(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "lib.h"), "new\n", 0o644)

	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "lib.h"), "old contents that are longer\n", 0o644)
	writeFile(t, filepath.Join(dest, "keep.txt"), "keep\n", 0o644)

	require.NoError(t, Stage(src, dest))

	got, err := os.ReadFile(filepath.Join(dest, "lib.h"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))
	assert.FileExists(t, filepath.Join(dest, "keep.txt"))
}

func TestStage_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "real.h"), "x\n", 0o644)
	require.NoError(t, os.Symlink("real.h", filepath.Join(src, "alias.h")))

	dest := t.TempDir()
	require.NoError(t, Stage(src, dest))
	// Staging twice replaces the existing link.
	require.NoError(t, Stage(src, dest))

	target, err := os.Readlink(filepath.Join(dest, "alias.h"))
	require.NoError(t, err)
	assert.Equal(t, "real.h", target)
}

func TestStage_MissingSource(t *testing.T) {
	err := Stage(filepath.Join(t.TempDir(), "src"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func TestStage_SourceIsFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	writeFile(t, src, "", 0o644)

	err := Stage(src, t.TempDir())
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}
