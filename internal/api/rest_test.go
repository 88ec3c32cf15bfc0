package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/markusressel/xu4fan/internal/status"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createService(t *testing.T, cycles ...controller.Cycle) *echo.Echo {
	store := status.NewStore("cooling_device2", 10)
	for _, cycle := range cycles {
		require.NoError(t, store.ObserveCycle(cycle))
	}
	registry := prometheus.NewRegistry()
	return CreateRestService(store, registry, registry)
}

func hotCycle() controller.Cycle {
	return controller.Cycle{
		Time: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Readings: []controller.Reading{
			{SensorId: "thermal_zone0", Value: 68},
			{SensorId: "thermal_zone1", Value: 72},
		},
		Mean:       70,
		Thresholds: control_loop.Thresholds{High: 60, Low: 50},
		Decision:   control_loop.DecisionOn,
	}
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	e := createService(t)

	// WHEN
	rec := get(e, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus_NotReady(t *testing.T) {
	// GIVEN
	e := createService(t)

	// WHEN
	rec := get(e, "/status")

	// THEN
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatus(t *testing.T) {
	// GIVEN
	e := createService(t, hotCycle())

	// WHEN
	rec := get(e, "/status/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result status.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 70.0, result.Mean)
	assert.Equal(t, 70.0, result.MeanAvg)
	assert.Equal(t, "on", result.Decision)
	assert.Equal(t, status.FanStateOn, result.Fan.State)
	assert.Len(t, result.Readings, 2)
}

func TestSensors(t *testing.T) {
	// GIVEN
	e := createService(t, hotCycle())

	// WHEN
	rec := get(e, "/sensor/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]controller.Reading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 68.0, result["thermal_zone0"].Value)
	assert.Equal(t, 72.0, result["thermal_zone1"].Value)
}

func TestSensor(t *testing.T) {
	// GIVEN
	e := createService(t, hotCycle())

	// WHEN
	rec := get(e, "/sensor/thermal_zone1")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result controller.Reading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, controller.Reading{SensorId: "thermal_zone1", Value: 72}, result)
}

func TestSensor_NotFound(t *testing.T) {
	// GIVEN
	e := createService(t, hotCycle())

	// WHEN
	rec := get(e, "/sensor/thermal_zone7/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "thermal_zone7")
}

func TestFan(t *testing.T) {
	// GIVEN
	e := createService(t)

	// WHEN
	rec := get(e, "/fan/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result status.FanStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "cooling_device2", result.Id)
	assert.Equal(t, status.FanStateUnknown, result.State)
	assert.Nil(t, result.LastActuation)
}

func TestMetrics(t *testing.T) {
	// GIVEN
	e := createService(t, hotCycle())
	_ = get(e, "/alive/")

	// WHEN
	rec := get(e, "/metrics")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "xu4fan_api_requests_total")
}
