package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "health_insights"

// Describe sends nothing. Counters are created lazily, which makes the
// registry an unchecked collector.
func (r *Registry) Describe(_ chan<- *prometheus.Desc) {}

// Collect exports every counter as a prometheus counter.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	snap := r.Snapshot()

	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		desc := prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", k),
			"health insights counter "+k,
			nil, nil,
		)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(snap[k]))
	}
}

// SetupPrometheus builds a prometheus registry with go/process collectors and
// the given counter registry.
func SetupPrometheus(reg *Registry) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		reg,
	)

	return promRegistry
}
