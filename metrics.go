package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const metricsJobName = "vls_data_collector"

var (
	invocationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vls_collector_invocations_total",
			Help: "Total count of invocations by outcome",
		},
		[]string{"outcome"},
	)
	upstreamLatencyHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vls_collector_upstream_request_duration_seconds",
			Help:    "Duration of the request to the VLS stations API, including reading the body",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)
	lastStationCountGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vls_collector_station_count",
			Help: "Number of stations in the last snapshot retrieved for a contract",
		},
		[]string{"contract"},
	)
	archivedBytesCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vls_collector_archived_bytes_total",
			Help: "Total bytes written to the object store",
		},
	)
)

// pushMetrics sends the default registry to a pushgateway, used when the
// process exits right after a single invocation.
func pushMetrics(url, instance string) error {
	err := push.New(url, metricsJobName).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("instance", instance).
		Push()
	if err != nil {
		return fmt.Errorf("error pushing metrics to [%s]: %w", url, err)
	}

	return nil
}
