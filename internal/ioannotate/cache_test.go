package ioannotate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCache_RoundTrip verifies stored gene names survive reopening
// the cache.
func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genes.db")

	cm, err := NewCacheManager(path)
	require.NoError(t, err)

	err = cm.Store(map[string]string{
		"P1": "GENEA",
		"P2": "GENEB",
	})
	require.NoError(t, err)
	require.NoError(t, cm.Close())

	cm, err = NewCacheManager(path)
	require.NoError(t, err)
	defer cm.Close()

	got, err := cm.Lookup(map[string]struct{}{
		"P1": {}, "P2": {}, "P9": {},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"P1": "GENEA",
		"P2": "GENEB",
	}, got, "Unknown accessions are absent, not errors")
}

// TestCache_ReplaceStale verifies a new resolution overwrites the old
// one.
func TestCache_ReplaceStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genes.db")

	cm, err := NewCacheManager(path)
	require.NoError(t, err)
	defer cm.Close()

	require.NoError(t, cm.Store(map[string]string{"P1": "OLD"}))
	require.NoError(t, cm.Store(map[string]string{"P1": "NEW"}))

	got, err := cm.Lookup(map[string]struct{}{"P1": {}})
	require.NoError(t, err)
	assert.Equal(t, "NEW", got["P1"])
}

// TestCache_CreatesParentDir verifies the cache directory is created
// on demand.
func TestCache_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "genes.db")

	cm, err := NewCacheManager(path)
	require.NoError(t, err)
	defer cm.Close()

	require.NoError(t, cm.Store(map[string]string{"P1": "GENEA"}))
}
