package statistics

import (
	"github.com/markusressel/xu4fan/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	store *status.Store
	value *prometheus.Desc
}

func NewSensorCollector(store *status.Store) *SensorCollector {
	return &SensorCollector{
		store: store,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Temperature of the sensor in °C, as read in the last cycle",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for sensorId, reading := range collector.store.Readings() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, reading.Value, sensorId)
	}
}
