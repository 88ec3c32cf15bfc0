package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	// GIVEN
	home, err := homedir.Dir()
	require.NoError(t, err)

	// WHEN
	result, err := ExpandPath("~/xu4fan.yaml")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "xu4fan.yaml"), result)
}

func TestExpandPath_Absolute(t *testing.T) {
	// WHEN
	result, err := ExpandPath("/etc/xu4fan/xu4fan.yaml")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/etc/xu4fan/xu4fan.yaml", result)
}

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "max_state")
	require.NoError(t, os.WriteFile(path, []byte("3\n"), 0o644))

	// WHEN
	result, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 3, result)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "max_state")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestReadStringFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "type")
	require.NoError(t, os.WriteFile(path, []byte("cpu0-thermal\n"), 0o644))

	// WHEN
	result, err := ReadStringFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "cpu0-thermal", result)
}

func TestWriteFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "nested", "xu4fan.yaml")

	// WHEN
	err := WriteFileAtomic(path, []byte("highTemp: 60\n"))
	require.NoError(t, err)
	err = WriteFileAtomic(path, []byte("highTemp: 65\n"))
	require.NoError(t, err)

	// THEN
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "highTemp: 65\n", string(content))
}
