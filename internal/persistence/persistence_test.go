package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func createJournal(t *testing.T, maxEntries int) *journal {
	j := NewJournal(filepath.Join(t.TempDir(), "nested", "journal.db"), maxEntries).(*journal)
	require.NoError(t, j.Init())
	return j
}

func TestJournal_AppendAndRecent(t *testing.T) {
	// GIVEN
	j := createJournal(t, 100)
	for i := 0; i < 3; i++ {
		require.NoError(t, j.Append(Actuation{
			Time:     start.Add(time.Duration(i) * time.Second),
			Mean:     60 + float64(i),
			Decision: "on",
		}))
	}

	// WHEN
	result, err := j.Recent(2)

	// THEN
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 62.0, result[0].Mean)
	assert.Equal(t, 61.0, result[1].Mean)
	assert.True(t, result[0].Time.Equal(start.Add(2*time.Second)))
}

func TestJournal_Prunes(t *testing.T) {
	// GIVEN
	j := createJournal(t, 2)

	// WHEN
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Append(Actuation{
			Time:     start.Add(time.Duration(i) * time.Minute),
			Mean:     float64(i),
			Decision: "off",
		}))
	}

	// THEN
	result, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 4.0, result[0].Mean)
	assert.Equal(t, 3.0, result[1].Mean)
}

func TestJournal_ObserveCycle_SkipsHold(t *testing.T) {
	// GIVEN
	j := createJournal(t, 10)

	// WHEN
	require.NoError(t, j.ObserveCycle(controller.Cycle{Time: start, Mean: 55, Decision: control_loop.DecisionHold}))
	require.NoError(t, j.ObserveCycle(controller.Cycle{Time: start.Add(time.Second), Mean: 45, Decision: control_loop.DecisionOff}))

	// THEN
	result, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "off", result[0].Decision)
	assert.Equal(t, 45.0, result[0].Mean)
}

func TestJournal_Reopen(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "journal.db")
	j := NewJournal(path, 10).(*journal)
	require.NoError(t, j.Init())
	require.NoError(t, j.Append(Actuation{Time: start, Mean: 70, Decision: "on"}))

	// WHEN
	reopened := NewJournal(path, 10)
	require.NoError(t, reopened.Init())
	result, err := reopened.Recent(10)

	// THEN
	require.NoError(t, err)
	assert.Len(t, result, 1)
}
