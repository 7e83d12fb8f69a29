// Package metrics holds the Prometheus instrumentation for the website.
// Metrics live on a private registry exposed through Handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sanatorium"

var (
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "booking",
		Name:      "created_total",
		Help:      "Booking requests persisted.",
	})

	bookingFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "failures_total",
			Help:      "Booking submissions that were rejected or failed, by kind.",
		},
		[]string{"kind"},
	)
)

// Registry is the registry every website metric is registered on.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestDuration,
		requestTotal,
		bookingsCreated,
		bookingFailures,
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request. route should be the
// router pattern, not the raw path.
func ObserveRequest(method, route string, status int, start time.Time) {
	code := strconv.Itoa(status)
	requestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
	requestTotal.WithLabelValues(method, route, code).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingFailure(kind string) {
	bookingFailures.WithLabelValues(kind).Inc()
}
