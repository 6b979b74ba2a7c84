package metrics

// Stages and tools known ahead of time, used to pre-populate labels.
var (
	stages = []string{"probe", "workspace", "extract", "compose", "banner", "preview"}
	tools  = []string{"ffmpeg", "ffprobe"}
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric appears in the exported file even when it stayed at zero.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, s := range []string{"success", "error"} {
		RunsTotal.WithLabelValues(s)
	}

	for _, stage := range stages {
		StageDuration.WithLabelValues(stage)
		StageFailures.WithLabelValues(stage)
		StageItemsTotal.WithLabelValues(stage)
	}

	for _, tool := range tools {
		ToolDuration.WithLabelValues(tool)
		ToolInvocationsTotal.WithLabelValues(tool, "success")
		ToolInvocationsTotal.WithLabelValues(tool, "error")
	}
}
