package statistics

import (
	"github.com/markusressel/xu4fan/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	store *status.Store

	meanTemperature    *prometheus.Desc
	meanTemperatureAvg *prometheus.Desc
	highTemperature    *prometheus.Desc
	lowTemperature     *prometheus.Desc
	fanState           *prometheus.Desc
	actuations         *prometheus.Desc
	cycles             *prometheus.Desc
}

func NewControllerCollector(store *status.Store) *ControllerCollector {
	return &ControllerCollector{
		store: store,
		meanTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "mean_temperature"),
			"Mean temperature of all sensors in the last cycle in °C",
			nil, nil,
		),
		meanTemperatureAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "mean_temperature_avg"),
			"Rolling average of the mean temperature in °C",
			nil, nil,
		),
		highTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "high_temperature"),
			"Upper bound of the hysteresis band in °C",
			nil, nil,
		),
		lowTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "low_temperature"),
			"Lower bound of the hysteresis band in °C",
			nil, nil,
		),
		fanState: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "fan_state"),
			"Last commanded fan state (1 = on, 0 = off, -1 = not commanded yet)",
			[]string{"id"}, nil,
		),
		actuations: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "actuations_total"),
			"Number of fan commands issued",
			[]string{"id", "state"}, nil,
		),
		cycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycles_total"),
			"Number of completed control cycles",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.meanTemperature
	ch <- collector.meanTemperatureAvg
	ch <- collector.highTemperature
	ch <- collector.lowTemperature
	ch <- collector.fanState
	ch <- collector.actuations
	ch <- collector.cycles
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	fan := collector.store.FanStatus()

	fanState := -1.0
	switch fan.State {
	case status.FanStateOn:
		fanState = 1
	case status.FanStateOff:
		fanState = 0
	}
	ch <- prometheus.MustNewConstMetric(collector.fanState, prometheus.GaugeValue, fanState, fan.Id)
	for state, count := range fan.Actuations {
		ch <- prometheus.MustNewConstMetric(collector.actuations, prometheus.CounterValue, float64(count), fan.Id, state)
	}

	snapshot, ok := collector.store.Snapshot()
	if !ok {
		return
	}
	ch <- prometheus.MustNewConstMetric(collector.meanTemperature, prometheus.GaugeValue, snapshot.Mean)
	ch <- prometheus.MustNewConstMetric(collector.meanTemperatureAvg, prometheus.GaugeValue, snapshot.MeanAvg)
	ch <- prometheus.MustNewConstMetric(collector.highTemperature, prometheus.GaugeValue, snapshot.Thresholds.High)
	ch <- prometheus.MustNewConstMetric(collector.lowTemperature, prometheus.GaugeValue, snapshot.Thresholds.Low)
	ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(snapshot.Cycles))
}
