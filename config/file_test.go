package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIniFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileDefaultsAppliesDefaultThreadsWhenUnset(t *testing.T) {
	path := writeIniFile(t, "[fathom]\n")
	c := &Common{}
	require.NoError(t, LoadFileDefaults(path, c))
	assert.Equal(t, DefaultThreads, c.Threads)
}

func TestLoadFileDefaultsAppliesIniThreadsOverride(t *testing.T) {
	path := writeIniFile(t, "[fathom]\nthreads = 25\n")
	c := &Common{}
	require.NoError(t, LoadFileDefaults(path, c))
	assert.Equal(t, 25, c.Threads)
}

func TestLoadFileDefaultsFlagWinsOverIniThreads(t *testing.T) {
	path := writeIniFile(t, "[fathom]\nthreads = 25\n")
	c := &Common{Threads: 5}
	require.NoError(t, LoadFileDefaults(path, c))
	assert.Equal(t, 5, c.Threads)
}
