// Package metrics provides Prometheus instrumentation for getthumb.
//
// getthumb is a one-shot command, so nothing is scraped. Metrics are
// collected in the default registry during a run and, when a metrics file is
// configured, written once at exit in the text exposition format for
// node_exporter's textfile collector. All metrics are prefixed with
// "getthumb_".
//
// # Metric Categories
//
// ## Run Metrics
//   - RunsTotal: Counter of runs by status (success/error)
//   - RunDuration: Histogram of full run wall time
//   - LastRunTimestamp: Gauge of last run completion time
//
// ## Stage Metrics
//   - StageDuration: Histogram of stage duration by stage
//   - StageFailures: Counter of failed stages by stage
//   - StageItemsTotal: Counter of frames, rows and images completed by stage
//
// ## Tool Metrics
//   - ToolInvocationsTotal: Counter of ffmpeg/ffprobe calls by tool and status
//   - ToolDuration: Histogram of single call duration by tool
//
// ## Source Metrics
//   - SourceDurationSeconds, SourceSizeBytes: the last probed video
//
// # Usage
//
// Call [InitializeMetrics] once at startup, pass [NewCommandObserver] to the
// ffmpeg runner and [NewStageObserver] to the pipeline, then call
// [WriteTextfile] before exiting.
package metrics
