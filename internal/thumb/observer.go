package thumb

import "time"

// Observer receives progress events from a pipeline run. Calls happen on the
// goroutine running the pipeline.
type Observer interface {
	StageStarted(stage Stage, items int)
	ItemDone(stage Stage, done, total int)
	StageFinished(stage Stage, elapsed time.Duration, err error)
}

// Observers fans events out to several observers in order.
type Observers []Observer

func (obs Observers) StageStarted(stage Stage, items int) {
	for _, o := range obs {
		o.StageStarted(stage, items)
	}
}

func (obs Observers) ItemDone(stage Stage, done, total int) {
	for _, o := range obs {
		o.ItemDone(stage, done, total)
	}
}

func (obs Observers) StageFinished(stage Stage, elapsed time.Duration, err error) {
	for _, o := range obs {
		o.StageFinished(stage, elapsed, err)
	}
}

type nopObserver struct{}

func (nopObserver) StageStarted(Stage, int)                   {}
func (nopObserver) ItemDone(Stage, int, int)                  {}
func (nopObserver) StageFinished(Stage, time.Duration, error) {}
