package status

import (
	"testing"
	"time"

	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var thresholds = control_loop.Thresholds{High: 60, Low: 50}

func createCycle(t time.Time, decision control_loop.Decision, values ...float64) controller.Cycle {
	var readings []controller.Reading
	sum := 0.0
	for i, value := range values {
		readings = append(readings, controller.Reading{SensorId: string(rune('a' + i)), Value: value})
		sum += value
	}
	return controller.Cycle{
		Time:       t,
		Readings:   readings,
		Mean:       sum / float64(len(values)),
		Thresholds: thresholds,
		Decision:   decision,
	}
}

func TestStore_EmptySnapshot(t *testing.T) {
	// GIVEN
	store := NewStore("cooling_device2", 10)

	// WHEN
	_, ok := store.Snapshot()

	// THEN
	assert.False(t, ok)
	assert.Equal(t, FanStateUnknown, store.FanStatus().State)
	assert.Empty(t, store.Readings())
}

func TestStore_ObserveCycle(t *testing.T) {
	// GIVEN
	store := NewStore("cooling_device2", 10)
	t1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Second)

	// WHEN
	require.NoError(t, store.ObserveCycle(createCycle(t1, control_loop.DecisionOn, 70, 80)))
	require.NoError(t, store.ObserveCycle(createCycle(t2, control_loop.DecisionHold, 55, 55)))

	// THEN
	snapshot, ok := store.Snapshot()
	require.True(t, ok)
	assert.Equal(t, t2, snapshot.Time)
	assert.Equal(t, 55.0, snapshot.Mean)
	assert.Equal(t, 65.0, snapshot.MeanAvg)
	assert.Equal(t, 55.0, snapshot.MeanMin)
	assert.Equal(t, 75.0, snapshot.MeanMax)
	assert.Equal(t, 2, snapshot.MeanSamples)
	assert.Equal(t, "hold", snapshot.Decision)
	assert.Equal(t, uint64(2), snapshot.Cycles)
	assert.Equal(t, FanStateOn, snapshot.Fan.State)
	require.NotNil(t, snapshot.Fan.LastActuation)
	assert.Equal(t, t1, *snapshot.Fan.LastActuation)
	assert.Equal(t, map[string]int{FanStateOn: 1, FanStateOff: 0}, snapshot.Fan.Actuations)

	reading, ok := store.Reading("a")
	assert.True(t, ok)
	assert.Equal(t, 55.0, reading.Value)
	assert.Len(t, store.Readings(), 2)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	// GIVEN
	store := NewStore("fan", 10)
	_ = store.ObserveCycle(createCycle(time.Now(), control_loop.DecisionOff, 40))

	// WHEN
	snapshot, _ := store.Snapshot()
	snapshot.Readings[0].Value = 1000
	snapshot.Fan.Actuations[FanStateOff] = 1000

	// THEN
	again, _ := store.Snapshot()
	assert.Equal(t, 40.0, again.Readings[0].Value)
	assert.Equal(t, 1, again.Fan.Actuations[FanStateOff])
}

func TestStore_MeanSamplesCappedAtWindowSize(t *testing.T) {
	// GIVEN
	store := NewStore("fan", 2)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// WHEN
	for i, mean := range []float64{40, 50, 60} {
		require.NoError(t, store.ObserveCycle(createCycle(start.Add(time.Duration(i)*time.Second), control_loop.DecisionHold, mean)))
	}

	// THEN
	snapshot, ok := store.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 2, snapshot.MeanSamples)
	assert.Equal(t, 55.0, snapshot.MeanAvg)
}
