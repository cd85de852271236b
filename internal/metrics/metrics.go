package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wishify/wishify/internal/health"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wishify",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wishify",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Dispatcher metrics

	GreetingsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wishify",
		Name:      "greetings_sent_total",
		Help:      "Greeting emails attempted, by outcome.",
	}, []string{"outcome"})

	DispatchCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wishify",
		Name:      "dispatch_cycle_duration_seconds",
		Help:      "Time taken for one dispatch cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	DispatcherLastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wishify",
		Name:      "dispatcher_last_run_seconds",
		Help:      "Unix timestamp of the last dispatch cycle.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		GreetingsSentTotal,
		DispatchCycleDuration,
		DispatcherLastRun,
	)
}

// NewServer serves /metrics plus the liveness/readiness probes on a port
// separate from the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, status int, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
