package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Entity store metrics
	EntitiesTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "forumcore_entities_total",
			Help: "Total live entities by kind (user, thread, message, tag, category, comment, privateMessage, attachment)",
		},
		[]string{"kind"},
	)

	// Pipeline metrics
	PipelineDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forumcore_pipeline_queue_depth",
			Help: "Number of encoded event blobs currently buffered in the append pipeline",
		},
	)

	PipelineFullTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forumcore_pipeline_queue_full_total",
			Help: "Total number of times a producer found the pipeline queue full",
		},
	)

	// Persistence metrics
	AppenderFramesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forumcore_appender_frames_total",
			Help: "Total number of event frames written to the durable log",
		},
	)

	AppenderBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forumcore_appender_bytes_total",
			Help: "Total number of bytes written to the durable log",
		},
	)

	AppenderRotationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forumcore_appender_rotations_total",
			Help: "Total number of times the appender rotated to a new log file",
		},
	)

	AppendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forumcore_append_duration_seconds",
			Help:    "Time taken to append and fsync a batch of frames",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Replay metrics
	ReplayFramesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forumcore_replay_frames_total",
			Help: "Total number of frames applied during log replay",
		},
	)

	ReplayDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forumcore_replay_duration_seconds",
			Help:    "Time taken to replay the full durable log on startup",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	// Repository operation metrics
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forumcore_operations_total",
			Help: "Total number of repository operations by event type and outcome",
		},
		[]string{"event", "status"},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forumcore_operation_duration_seconds",
			Help:    "Repository operation duration in seconds by event type",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"event"},
	)

	// Vote metrics
	VotesCastTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forumcore_votes_cast_total",
			Help: "Total number of votes cast by direction (up, down, reset)",
		},
		[]string{"direction"},
	)
)

func init() {
	prometheus.MustRegister(EntitiesTotal)
	prometheus.MustRegister(PipelineDepth)
	prometheus.MustRegister(PipelineFullTotal)
	prometheus.MustRegister(AppenderFramesTotal)
	prometheus.MustRegister(AppenderBytesTotal)
	prometheus.MustRegister(AppenderRotationsTotal)
	prometheus.MustRegister(AppendDuration)
	prometheus.MustRegister(ReplayFramesTotal)
	prometheus.MustRegister(ReplayDuration)
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(OperationDuration)
	prometheus.MustRegister(VotesCastTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
