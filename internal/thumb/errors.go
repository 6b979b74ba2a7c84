package thumb

import (
	"errors"
	"fmt"
	"os"

	"getthumb/internal/ffmpeg"
)

// Stage names a pipeline step.
type Stage string

const (
	StageProbe     Stage = "probe"
	StageWorkspace Stage = "workspace"
	StageExtract   Stage = "extract"
	StageCompose   Stage = "compose"
	StageBanner    Stage = "banner"
	StagePreview   Stage = "preview"
)

var (
	ErrProbe       = errors.New("probe failed")
	ErrWorkspace   = errors.New("workspace failed")
	ErrExtraction  = errors.New("frame extraction failed")
	ErrComposition = errors.New("grid composition failed")
	ErrOverlay     = errors.New("banner overlay failed")
	ErrPreview     = errors.New("preview failed")

	// ErrMissingOutput means a command exited cleanly but left no file behind.
	ErrMissingOutput = errors.New("output file missing")
)

var stageSentinels = map[Stage]error{
	StageProbe:     ErrProbe,
	StageWorkspace: ErrWorkspace,
	StageExtract:   ErrExtraction,
	StageCompose:   ErrComposition,
	StageBanner:    ErrOverlay,
	StagePreview:   ErrPreview,
}

// StageError is returned for any pipeline failure.
type StageError struct {
	Stage Stage
	// Detail says which item failed, e.g. "frame 3 at 0:00:36".
	Detail string
	// Command is the external command line, when one was involved.
	Command string
	// Output is the tail of the command's stderr, when it ran.
	Output string
	Err    error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Stage, e.Err)
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s: %v", e.Stage, e.Detail, e.Err)
	}
	if e.Command != "" {
		msg += " (command: " + e.Command + ")"
	}
	return msg
}

// Unwrap exposes both the stage sentinel and the underlying cause.
func (e *StageError) Unwrap() []error {
	errs := []error{e.Err}
	if s, ok := stageSentinels[e.Stage]; ok {
		errs = append(errs, s)
	}
	return errs
}

// stageError wraps err for stage, lifting the command line and captured
// output out of an *ffmpeg.ExitError when there is one.
func stageError(stage Stage, detail string, cmd ffmpeg.Command, err error) *StageError {
	se := &StageError{Stage: stage, Detail: detail, Err: err}
	if cmd.Name != "" {
		se.Command = cmd.String()
	}
	var ee *ffmpeg.ExitError
	if errors.As(err, &ee) {
		se.Output = ee.Stderr
	}
	return se
}

// requireFile fails when a command reported success without writing path.
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingOutput, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrMissingOutput, path)
	}
	return nil
}
