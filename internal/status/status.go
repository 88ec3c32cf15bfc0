package status

import (
	"sync"
	"time"

	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/markusressel/xu4fan/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	FanStateOn      = "on"
	FanStateOff     = "off"
	FanStateUnknown = "unknown"
)

// Snapshot is a copy of the state after the most recent cycle.
type Snapshot struct {
	Time    time.Time `json:"time"`
	Mean    float64   `json:"mean"`
	MeanAvg float64   `json:"meanAvg"`
	MeanMin float64   `json:"meanMin"`
	MeanMax float64   `json:"meanMax"`
	// MeanSamples is the number of cycles covered by MeanAvg, MeanMin and MeanMax
	MeanSamples int                     `json:"meanSamples"`
	Thresholds  control_loop.Thresholds `json:"thresholds"`
	Decision    string                  `json:"decision"`
	Fan         FanStatus               `json:"fan"`
	Cycles      uint64                  `json:"cycles"`
	Readings    []controller.Reading    `json:"readings"`
}

type FanStatus struct {
	Id string `json:"id"`
	// State is the last commanded state, which is "unknown" until the first actuation
	State         string         `json:"state"`
	LastActuation *time.Time     `json:"lastActuation,omitempty"`
	Actuations    map[string]int `json:"actuations"`
}

// Store records the outcome of every cycle for read-only consumers
// (REST api, metrics). It never touches sensor or fan handles.
type Store struct {
	readings cmap.ConcurrentMap[string, controller.Reading]
	window   *util.RollingWindow

	mu            sync.RWMutex
	fanId         string
	last          *controller.Cycle
	fanState      string
	lastActuation *time.Time
	actuations    map[string]int
	cycles        uint64
}

func NewStore(fanId string, windowSize int) *Store {
	return &Store{
		readings:   cmap.New[controller.Reading](),
		window:     util.CreateRollingWindow(windowSize),
		fanId:      fanId,
		fanState:   FanStateUnknown,
		actuations: map[string]int{FanStateOn: 0, FanStateOff: 0},
	}
}

func (s *Store) ObserveCycle(cycle controller.Cycle) error {
	for _, reading := range cycle.Readings {
		s.readings.Set(reading.SensorId, reading)
	}
	s.window.Append(cycle.Mean)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = &cycle
	s.cycles++
	if state, ok := fanStateOf(cycle.Decision); ok {
		s.fanState = state
		s.actuations[state]++
		t := cycle.Time
		s.lastActuation = &t
	}
	return nil
}

func fanStateOf(decision control_loop.Decision) (string, bool) {
	switch decision {
	case control_loop.DecisionOn:
		return FanStateOn, true
	case control_loop.DecisionOff:
		return FanStateOff, true
	}
	return "", false
}

// Snapshot returns the state after the last cycle, false if no cycle completed yet.
func (s *Store) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return Snapshot{}, false
	}

	readings := make([]controller.Reading, len(s.last.Readings))
	copy(readings, s.last.Readings)

	return Snapshot{
		Time:        s.last.Time,
		Mean:        s.last.Mean,
		MeanAvg:     s.window.Avg(),
		MeanMin:     s.window.Min(),
		MeanMax:     s.window.Max(),
		MeanSamples: s.window.Len(),
		Thresholds:  s.last.Thresholds,
		Decision:    s.last.Decision.String(),
		Fan:         s.fanStatusLocked(),
		Cycles:      s.cycles,
		Readings:    readings,
	}, true
}

func (s *Store) FanStatus() FanStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fanStatusLocked()
}

func (s *Store) fanStatusLocked() FanStatus {
	actuations := make(map[string]int, len(s.actuations))
	for k, v := range s.actuations {
		actuations[k] = v
	}
	var lastActuation *time.Time
	if s.lastActuation != nil {
		t := *s.lastActuation
		lastActuation = &t
	}
	return FanStatus{
		Id:            s.fanId,
		State:         s.fanState,
		LastActuation: lastActuation,
		Actuations:    actuations,
	}
}

// Readings returns the latest reading of every sensor, keyed by sensor id.
func (s *Store) Readings() map[string]controller.Reading {
	return s.readings.Items()
}

func (s *Store) Reading(sensorId string) (controller.Reading, bool) {
	return s.readings.Get(sensorId)
}
