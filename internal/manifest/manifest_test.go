package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SkanUJkod/SkanUJkod/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyManifest(t *testing.T) {
	m, err := manifest.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, m.Analyses)
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyses:\n  cfg: cfg::build\n"), 0o644))

	m, err := manifest.Load(path)
	require.NoError(t, err)

	q, ok, err := m.Resolve("cfg")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cfg::build", q.String())

	_, ok, err = m.Resolve("nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveRejectsMalformedQID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyses:\n  bad: not-a-qid\n"), 0o644))

	m, err := manifest.Load(path)
	require.NoError(t, err)

	_, _, err = m.Resolve("bad")
	assert.Error(t, err)
}
