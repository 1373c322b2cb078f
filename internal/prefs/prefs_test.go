package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/bitacora/internal/prefs"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := prefs.Open(prefs.FilePath(t.TempDir()))
	require.NoError(t, err)

	_, ok := s.Get(prefs.KeyDefaultProject)
	assert.False(t, ok)
	assert.Empty(t, s.All())
}

func TestSetPersists(t *testing.T) {
	path := prefs.FilePath(filepath.Join(t.TempDir(), "nested"))

	s, err := prefs.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(prefs.KeyDefaultProject, "Pomelo"))
	require.NoError(t, s.Set(prefs.KeyDefaultActivity, "Development"))

	reopened, err := prefs.Open(path)
	require.NoError(t, err)
	v, ok := reopened.Get(prefs.KeyDefaultProject)
	assert.True(t, ok)
	assert.Equal(t, "Pomelo", v)
	assert.Equal(t, map[string]string{
		prefs.KeyDefaultProject:  "Pomelo",
		prefs.KeyDefaultActivity: "Development",
	}, reopened.All())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestDelete(t *testing.T) {
	path := prefs.FilePath(t.TempDir())
	s, err := prefs.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(prefs.KeyDefaultProject, "Pomelo"))

	require.NoError(t, s.Delete(prefs.KeyDefaultProject))
	require.NoError(t, s.Delete("missing"))

	reopened, err := prefs.Open(path)
	require.NoError(t, err)
	_, ok := reopened.Get(prefs.KeyDefaultProject)
	assert.False(t, ok)
}

func TestOpenCorruptFile(t *testing.T) {
	path := prefs.FilePath(t.TempDir())
	require.NoError(t, os.WriteFile(path, []byte("{bad json"), 0o600))

	_, err := prefs.Open(path)
	require.Error(t, err)

	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr, "expected backup file to exist after corrupt JSON")
}
