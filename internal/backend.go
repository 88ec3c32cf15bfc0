package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/xu4fan/internal/api"
	"github.com/markusressel/xu4fan/internal/configuration"
	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/markusressel/xu4fan/internal/errcode"
	"github.com/markusressel/xu4fan/internal/fans"
	"github.com/markusressel/xu4fan/internal/mqtt"
	"github.com/markusressel/xu4fan/internal/persistence"
	"github.com/markusressel/xu4fan/internal/sensors"
	"github.com/markusressel/xu4fan/internal/statistics"
	"github.com/markusressel/xu4fan/internal/status"
	"github.com/markusressel/xu4fan/internal/thermal"
	"github.com/markusressel/xu4fan/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Warning("xu4fan is not running as root, writing the fan control file may fail")
	}

	config := configuration.CurrentConfig

	fanController, err := NewController(config)
	if err != nil {
		ui.Fatal("Unable to initialize fan controller: %v", err)
	}
	defer func() {
		if err := fanController.Close(); err != nil {
			ui.Warning("Error closing fan controller: %v", err)
		}
	}()

	store := status.NewStore(fanController.GetFanId(), config.TempRollingWindowSize)
	fanController.AddObserver(store)
	fanController.AddObserver(&cycleLogger{})

	if config.Journal.Enabled {
		journal := persistence.NewJournal(config.Journal.DbPath, config.Journal.MaxEntries)
		if err := journal.Init(); err != nil {
			ui.Fatal("Unable to open journal %s: %v", config.Journal.DbPath, err)
		}
		fanController.AddObserver(journal)
	}

	if config.Mqtt.Enabled {
		publisher, err := mqtt.Connect(config.Mqtt)
		if err != nil {
			ui.Fatal("Unable to connect to MQTT broker: %v", err)
		}
		defer publisher.Close()
		fanController.AddObserver(publisher)
	}

	statistics.Register(statistics.NewSensorCollector(store))
	statistics.Register(statistics.NewControllerCollector(store))

	configuration.WatchThresholds(func(highTemp float64, lowTemp float64) {
		fanController.UpdateThresholds(control_loop.Thresholds{High: highTemp, Low: lowTemp})
	})

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Serving metrics on :%d/metrics", port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			rest := api.CreateRestService(store, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Serving REST api on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start REST api (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		// === fan controller
		g.Add(func() error {
			err := fanController.Run(ctx)
			if err != nil {
				ui.ErrorAndNotify("Fan control failed", "Fan %s: %v", fanController.GetFanId(), err)
			}
			ui.Info("Fan controller for fan %s stopped.", fanController.GetFanId())
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		done := make(chan struct{})

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-done:
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			close(done)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	} else {
		ui.Info("Done.")
	}
}

// exitCode is read by the command layer once RunDaemon has released all handles
var exitCode = 0

func ExitCode() int {
	return exitCode
}

// NewController opens the configured fan and sensors. Nothing stays open
// if any of them fails.
func NewController(config configuration.Configuration) (*controller.FanController, error) {
	fan, err := OpenFan(config.Fan)
	if err != nil {
		return nil, err
	}

	sensorList, err := OpenSensors(config.Sensors)
	if err != nil {
		closeQuietly(fan)
		return nil, err
	}

	thresholds := control_loop.Thresholds{High: config.HighTemp, Low: config.LowTemp}
	interval := config.Interval
	if interval <= 0 {
		interval = controller.DefaultInterval
	}
	return controller.NewFanController(thresholds, fan, sensorList, interval), nil
}

func OpenFan(config configuration.FanConfig) (fans.Fan, error) {
	switch {
	case config.Gpio != nil:
		return fans.OpenGpioFan(config.Gpio.Pin, config.Gpio.ActiveLow)
	case config.File != nil:
		return fans.OpenFileFan(config.File.Path)
	default:
		return nil, errors.New("no fan configured")
	}
}

// OpenSensors opens glob matches and explicit paths in order, followed by
// any 1-wire probes.
func OpenSensors(config configuration.SensorsConfig) ([]sensors.Sensor, error) {
	paths, err := thermal.SensorPaths(config.Glob, config.Paths)
	if err != nil {
		return nil, err
	}

	var result []sensors.Sensor
	ids := map[string]int{}
	for _, path := range paths {
		sensor, err := sensors.OpenFileSensor(path)
		if err != nil {
			for _, s := range result {
				closeQuietly(s)
			}
			return nil, err
		}
		sensor.ID = uniqueId(ids, sensor.ID)
		result = append(result, sensor)
	}

	if config.Ds18b20 {
		w1Sensors, err := sensors.DetectW1Sensors()
		if err != nil {
			ui.Warning("Unable to detect 1-wire sensors: %v", err)
		}
		result = append(result, w1Sensors...)
	}

	if len(result) == 0 {
		return nil, errcode.NewEmptyInput("open sensors")
	}
	return result, nil
}

// uniqueId appends a counter to ids that were seen before, e.g. "thermal_zone0-2"
func uniqueId(seen map[string]int, id string) string {
	seen[id]++
	if seen[id] == 1 {
		return id
	}
	candidate := fmt.Sprintf("%s-%d", id, seen[id])
	for seen[candidate] > 0 {
		seen[id]++
		candidate = fmt.Sprintf("%s-%d", id, seen[id])
	}
	seen[candidate]++
	return candidate
}

func closeQuietly(value any) {
	if c, ok := value.(io.Closer); ok {
		_ = c.Close()
	}
}

// cycleLogger prints the mean of every cycle and every switch.
type cycleLogger struct{}

func (l *cycleLogger) ObserveCycle(cycle controller.Cycle) error {
	ui.Info("It's currently %.1f°C here", cycle.Mean)
	switch cycle.Decision {
	case control_loop.DecisionOn:
		ui.Info("%.1f°C is above %.1f°C, turning fan on", cycle.Mean, cycle.Thresholds.High)
	case control_loop.DecisionOff:
		ui.Info("%.1f°C is below %.1f°C, turning fan off", cycle.Mean, cycle.Thresholds.Low)
	}
	return nil
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Warning("Error checking process owner: %v", err)
		return ""
	}
	return strings.TrimSpace(string(stdout))
}
