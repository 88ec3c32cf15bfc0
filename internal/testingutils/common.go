package testingutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/xu4fan/internal/fans"
	"github.com/stretchr/testify/require"
)

// MockSensor returns a fixed value and counts how often it was read.
type MockSensor struct {
	ID    string
	Value float64
	Err   error
	Reads int
}

func (sensor *MockSensor) GetId() string {
	return sensor.ID
}

func (sensor *MockSensor) GetValue() (float64, error) {
	sensor.Reads++
	return sensor.Value, sensor.Err
}

// MockFan records every command it receives.
type MockFan struct {
	ID       string
	Commands []fans.State
	Err      error
}

func (fan *MockFan) GetId() string {
	return fan.ID
}

func (fan *MockFan) SetState(state fans.State) error {
	if fan.Err != nil {
		return fan.Err
	}
	fan.Commands = append(fan.Commands, state)
	return nil
}

// WriteFile creates path including its parent directories and returns it.
func WriteFile(t *testing.T, path string, content string) string {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
