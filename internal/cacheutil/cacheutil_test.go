// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JCHECK_CACHE_DIR", dir)
	t.Setenv("JCHECK_CACHE", "")
	return dir
}

func TestDir(t *testing.T) {
	dir := withCacheDir(t)

	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, dir, got)

	t.Setenv("JCHECK_CACHE_DIR", "")
	if got, ok := Dir(); ok {
		assert.Equal(t, "jcheck", filepath.Base(got))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
		{"FALSE", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("JCHECK_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	dir := filepath.Join(withCacheDir(t), "nested", "base")

	t.Setenv("JCHECK_CACHE_DIR", dir)
	got, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.DirExists(t, got)

	t.Setenv("JCHECK_CACHE", "0")
	_, ok, err = EnsureBaseDir()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteRead(t *testing.T) {
	dir := withCacheDir(t)
	subdirs := []string{"s3", "bucket"}
	key := Key("bucket", "docs/a.json", "v1")

	_, ok := Read(subdirs, key)
	assert.False(t, ok)

	require.NoError(t, Write(subdirs, key, []byte(`{"a":1}`)))

	e, ok := Read(subdirs, key)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(e.Data))
	assert.Equal(t, key, e.Key)
	assert.Equal(t, encodeKey(key), e.EncodedKey)
	assert.Equal(t, filepath.Join(dir, "s3", "bucket", e.EncodedKey), e.Path)

	require.NoError(t, Write(subdirs, key, []byte(`{"a":2}`)))
	e, ok = Read(subdirs, key)
	require.True(t, ok)
	assert.Equal(t, `{"a":2}`, string(e.Data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "s3", "bucket", ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteRead_Disabled(t *testing.T) {
	dir := withCacheDir(t)
	t.Setenv("JCHECK_CACHE", "false")

	require.NoError(t, Write(nil, "k", []byte("x")))
	_, ok := Read(nil, "k")
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemember(t *testing.T) {
	withCacheDir(t)

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	for i := 0; i < 3; i++ {
		got, err := Remember([]string{"run"}, "script", fetch)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(got))
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := Remember([]string{"run"}, "other", func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := Read([]string{"run"}, "other")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	withCacheDir(t)

	require.NoError(t, Write([]string{"a"}, "old", []byte("x")))
	require.NoError(t, Write([]string{"a", "b"}, "new", []byte("y")))

	oldPath, _ := EntryPath([]string{"a"}, "old")
	stale := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	require.NoError(t, Purge(0))
	assert.FileExists(t, oldPath)

	require.NoError(t, Purge(2))
	assert.NoFileExists(t, oldPath)

	newPath, ok := EntryPath([]string{"a", "b"}, "new")
	assert.True(t, ok)
	assert.FileExists(t, newPath)
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("same")
	assert.Equal(t, a, encodeKey("same"))
	assert.NotEqual(t, a, encodeKey("other"))
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]+$", a)
	assert.NotEqual(t, encodeKey(Key("a", "bc")), encodeKey(Key("ab", "c")))
}
