package controller

import (
	"context"
	"io"
	"time"

	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/errcode"
	"github.com/markusressel/xu4fan/internal/fans"
	"github.com/markusressel/xu4fan/internal/sensors"
	"github.com/markusressel/xu4fan/internal/ui"
)

const DefaultInterval = 1 * time.Second

// Reading is a single sensor value taken during a cycle.
type Reading struct {
	SensorId string  `json:"sensorId"`
	Value    float64 `json:"value"`
}

// Cycle describes one completed control cycle.
type Cycle struct {
	Time       time.Time               `json:"time"`
	Readings   []Reading               `json:"readings"`
	Mean       float64                 `json:"mean"`
	Thresholds control_loop.Thresholds `json:"thresholds"`
	Decision   control_loop.Decision   `json:"decision"`
}

// Observer is notified after every successful cycle. Errors are logged and
// never abort the cycle.
type Observer interface {
	ObserveCycle(cycle Cycle) error
}

// FanController owns one fan and a fixed, ordered set of sensors and drives the
// fan from the mean sensor temperature using a hysteresis band.
type FanController struct {
	fan     fans.Fan
	sensors []sensors.Sensor
	loop    *control_loop.HysteresisControlLoop

	interval         time.Duration
	observers        []Observer
	thresholdUpdates chan control_loop.Thresholds
	now              func() time.Time
}

// New opens fanPath write-only and every sensor path read-only, in order.
// If any path cannot be opened, all handles opened so far are closed again
// and no controller is returned.
func New(highTemp float64, lowTemp float64, fanPath string, sensorPaths []string) (*FanController, error) {
	fan, err := fans.OpenFileFan(fanPath)
	if err != nil {
		return nil, err
	}

	sensorList := make([]sensors.Sensor, 0, len(sensorPaths))
	for _, path := range sensorPaths {
		sensor, err := sensors.OpenFileSensor(path)
		if err != nil {
			closeAll(fan, sensorList)
			return nil, err
		}
		sensorList = append(sensorList, sensor)
	}

	thresholds := control_loop.Thresholds{High: highTemp, Low: lowTemp}
	return NewFanController(thresholds, fan, sensorList, DefaultInterval), nil
}

func NewFanController(
	thresholds control_loop.Thresholds,
	fan fans.Fan,
	sensorList []sensors.Sensor,
	interval time.Duration,
) *FanController {
	return &FanController{
		fan:              fan,
		sensors:          sensorList,
		loop:             control_loop.NewHysteresisControlLoop(thresholds),
		interval:         interval,
		thresholdUpdates: make(chan control_loop.Thresholds, 1),
		now:              time.Now,
	}
}

func (f *FanController) GetFanId() string {
	return f.fan.GetId()
}

func (f *FanController) GetSensors() []sensors.Sensor {
	return f.sensors
}

func (f *FanController) GetThresholds() control_loop.Thresholds {
	return f.loop.Thresholds
}

func (f *FanController) AddObserver(observer Observer) {
	f.observers = append(f.observers, observer)
}

// UpdateThresholds hands new thresholds to the control loop, they are applied
// right before the next cycle. Safe to call from any goroutine; only the most
// recent pending update is kept.
func (f *FanController) UpdateThresholds(thresholds control_loop.Thresholds) {
	for {
		select {
		case f.thresholdUpdates <- thresholds:
			return
		default:
		}
		select {
		case <-f.thresholdUpdates:
		default:
		}
	}
}

// GetMeanCpuTemp reads every sensor once and returns the unweighted mean.
func (f *FanController) GetMeanCpuTemp() (float64, error) {
	_, mean, err := f.readSensors()
	return mean, err
}

func (f *FanController) readSensors() ([]Reading, float64, error) {
	if len(f.sensors) <= 0 {
		return nil, 0, errcode.NewEmptyInput("mean temperature")
	}

	readings := make([]Reading, 0, len(f.sensors))
	sum := 0.0
	for _, sensor := range f.sensors {
		value, err := sensor.GetValue()
		if err != nil {
			return nil, 0, err
		}
		readings = append(readings, Reading{SensorId: sensor.GetId(), Value: value})
		sum += value
	}

	return readings, sum / float64(len(readings)), nil
}

func (f *FanController) SetFanOn() error {
	return f.fan.SetState(fans.StateOn)
}

func (f *FanController) SetFanOff() error {
	return f.fan.SetState(fans.StateOff)
}

// RunLoopOnce samples all sensors and switches the fan if the mean
// temperature is outside the hysteresis band.
func (f *FanController) RunLoopOnce() error {
	_, err := f.runCycle()
	return err
}

func (f *FanController) runCycle() (Cycle, error) {
	readings, mean, err := f.readSensors()
	if err != nil {
		return Cycle{}, err
	}

	decision := f.loop.Loop(mean)
	switch decision {
	case control_loop.DecisionOn:
		err = f.SetFanOn()
	case control_loop.DecisionOff:
		err = f.SetFanOff()
	}
	if err != nil {
		return Cycle{}, err
	}

	cycle := Cycle{
		Time:       f.now(),
		Readings:   readings,
		Mean:       mean,
		Thresholds: f.loop.Thresholds,
		Decision:   decision,
	}
	f.notifyObservers(cycle)
	return cycle, nil
}

func (f *FanController) notifyObservers(cycle Cycle) {
	for _, observer := range f.observers {
		if err := observer.ObserveCycle(cycle); err != nil {
			ui.Warning("Cycle observer failed: %v", err)
		}
	}
}

func (f *FanController) applyPendingThresholds() {
	select {
	case thresholds := <-f.thresholdUpdates:
		if thresholds != f.loop.Thresholds {
			ui.Info("Applying new thresholds: high %.1f°C, low %.1f°C", thresholds.High, thresholds.Low)
		}
		f.loop.Thresholds = thresholds
	default:
	}
}

// RunCycles runs n cycles back to back without waiting in between.
func (f *FanController) RunCycles(n int) error {
	for i := 0; i < n; i++ {
		f.applyPendingThresholds()
		if _, err := f.runCycle(); err != nil {
			return err
		}
	}
	return nil
}

// Run executes a cycle every interval until ctx is done. The first failing
// cycle stops the loop and its error is returned.
func (f *FanController) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		f.applyPendingThresholds()
		if _, err := f.runCycle(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Close releases every handle owned by this controller.
func (f *FanController) Close() error {
	return closeAll(f.fan, f.sensors)
}

func closeAll(fan fans.Fan, sensorList []sensors.Sensor) (err error) {
	if c, ok := fan.(io.Closer); ok {
		err = c.Close()
	}
	for _, sensor := range sensorList {
		if c, ok := sensor.(io.Closer); ok {
			if closeErr := c.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}
	}
	return err
}
