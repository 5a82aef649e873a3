package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus returns a registry with runtime and process collectors, a
// constant version_info gauge labeled with the running version, and any
// extra collectors (e.g. the db pool one).
func SetupPrometheus(namespace, version string, extraCollectors ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	versionInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "version_info",
		Help:        "Always 1, labeled with the running version.",
		ConstLabels: prometheus.Labels{"version": version},
	})
	versionInfo.Set(1)

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versionInfo,
	)
	promRegistry.MustRegister(extraCollectors...)

	return promRegistry
}
