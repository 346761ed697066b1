// Package telemetry exposes the run's live state as Prometheus gauges and
// counters, grounded on the metrics-registry style of obs.metrics in the
// broader example pack: package-level collectors registered once, updated
// from a single snapshot call per tick.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	TickCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blisfleet_ticks_total",
		Help: "Total simulation ticks advanced.",
	})
	DriversIdle = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "blisfleet_drivers_idle",
		Help: "Number of drivers with an empty route this tick.",
	})
	RequestsWaiting = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "blisfleet_requests_waiting",
		Help: "Number of requests currently in the pool.",
	})
	RequestsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blisfleet_requests_delivered_total",
		Help: "Total requests delivered to destination.",
	})
	RequestsAbandoned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blisfleet_requests_abandoned_total",
		Help: "Total requests abandoned after missing their deadline.",
	})
	TotalToHeadDistance = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "blisfleet_total_to_head_distance",
		Help: "Sum over drivers of Manhattan distance to the next route stop.",
	})
)

func init() {
	prometheus.MustRegister(TickCounter, DriversIdle, RequestsWaiting, RequestsDelivered, RequestsAbandoned, TotalToHeadDistance)
}
