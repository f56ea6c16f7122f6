package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	snap, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().User.MinNameLength, snap.User.MinNameLength)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	snap, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Service.MinSecondsBetweenPosts, snap.Service.MinSecondsBetweenPosts)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("user:\n  minNameLength: 5\nservice:\n  minSecondsBetweenPosts: 30\n")
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.User.MinNameLength)
	assert.Equal(t, 30, snap.Service.MinSecondsBetweenPosts)
	// Fields not present in the file keep their defaults.
	assert.Equal(t, Default().User.MaxNameLength, snap.User.MaxNameLength)
}

func TestStoreSwapReturnsPrevious(t *testing.T) {
	s := NewStore(Default())
	next := Default()
	next.User.MinNameLength = 99

	prev := s.Swap(next)
	assert.Equal(t, Default().User.MinNameLength, prev.User.MinNameLength)
	assert.Equal(t, 99, s.Load().User.MinNameLength)
}
