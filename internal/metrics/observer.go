package metrics

import (
	"time"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/thumb"
)

// commandObserver implements ffmpeg.Observer using the Prometheus metrics
// declared in this package.
type commandObserver struct{}

// NewCommandObserver creates an observer that records every external tool
// invocation.
func NewCommandObserver() ffmpeg.Observer {
	return &commandObserver{}
}

func (o *commandObserver) ObserveCommand(tool string, durationSeconds float64, err error) {
	ToolInvocationsTotal.WithLabelValues(tool, status(err)).Inc()
	ToolDuration.WithLabelValues(tool).Observe(durationSeconds)
}

// stageObserver implements thumb.Observer.
type stageObserver struct {
	lastDone map[thumb.Stage]int
}

// NewStageObserver creates an observer that records pipeline stage timings,
// failures and completed items.
func NewStageObserver() thumb.Observer {
	return &stageObserver{lastDone: make(map[thumb.Stage]int)}
}

func (o *stageObserver) StageStarted(stage thumb.Stage, _ int) {
	o.lastDone[stage] = 0
}

func (o *stageObserver) ItemDone(stage thumb.Stage, done, _ int) {
	if delta := done - o.lastDone[stage]; delta > 0 {
		StageItemsTotal.WithLabelValues(string(stage)).Add(float64(delta))
	}
	o.lastDone[stage] = done
}

func (o *stageObserver) StageFinished(stage thumb.Stage, elapsed time.Duration, err error) {
	StageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	if err != nil {
		StageFailures.WithLabelValues(string(stage)).Inc()
	}
}
