package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run metrics
var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "getthumb_runs_total",
			Help: "Total number of contact sheet runs",
		},
		[]string{"status"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "getthumb_run_duration_seconds",
			Help:    "Wall time of a full contact sheet run",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120, 300, 600},
		},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "getthumb_last_run_timestamp",
			Help: "Timestamp of the last completed run",
		},
	)
)

// Stage metrics
var (
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "getthumb_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"stage"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "getthumb_stage_failures_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage"},
	)

	StageItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "getthumb_stage_items_total",
			Help: "Total number of items completed by a stage (frames, rows, images)",
		},
		[]string{"stage"},
	)
)

// External tool metrics
var (
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "getthumb_tool_invocations_total",
			Help: "Total number of ffmpeg and ffprobe invocations",
		},
		[]string{"tool", "status"},
	)

	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "getthumb_tool_duration_seconds",
			Help:    "Duration of a single ffmpeg or ffprobe invocation",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)
)

// Source video metrics
var (
	SourceDurationSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "getthumb_source_duration_seconds",
			Help: "Duration of the last probed video",
		},
	)

	SourceSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "getthumb_source_size_bytes",
			Help: "File size of the last probed video",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "getthumb_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// RecordSource records the size and duration of the probed video.
func RecordSource(durationSeconds float64, sizeBytes int64) {
	SourceDurationSeconds.Set(durationSeconds)
	SourceSizeBytes.Set(float64(sizeBytes))
}

// RecordRun records the outcome of one full run.
func RecordRun(durationSeconds float64, err error) {
	RunsTotal.WithLabelValues(status(err)).Inc()
	RunDuration.Observe(durationSeconds)
	LastRunTimestamp.SetToCurrentTime()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
