package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeneratorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_generator_requests_total",
			Help: "Total number of generator calls by operation, backend and outcome",
		},
		[]string{"operation", "backend", "status"},
	)

	GeneratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interview_generator_request_duration_seconds",
			Help:    "Duration of generator calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 90},
		},
		[]string{"operation", "backend"},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interview_sessions_started_total",
			Help: "Total number of interview sessions created",
		},
	)

	SessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interview_sessions_completed_total",
			Help: "Total number of sessions that finished the SITUATION round",
		},
	)

	AnswersEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_answers_evaluated_total",
			Help: "Total number of answers recorded in session history",
		},
		[]string{"round"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interview_sessions_active",
			Help: "Number of sessions held in memory",
		},
	)
)

// ObserveGeneration records one generator call.
func ObserveGeneration(operation, backend string, started time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	GeneratorRequests.WithLabelValues(operation, backend, status).Inc()
	GeneratorDuration.WithLabelValues(operation, backend).Observe(time.Since(started).Seconds())
}
