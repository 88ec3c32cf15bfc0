package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "xu4fan"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
