package thumb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/logging"
	"getthumb/internal/probe"
)

// ErrVideoTooShort is returned when the video is too short to space the
// requested number of frames at least a whole second apart in total.
var ErrVideoTooShort = errors.New("video too short for frame extraction")

// Frame is one planned still.
type Frame struct {
	Index     int
	Timestamp float64
	Path      string
}

// Clock renders the frame timestamp as H:MM:SS.
func (f Frame) Clock() string {
	return probe.FormatClock(f.Timestamp)
}

// PlanFrames spaces n frames evenly over the whole seconds of the video. The
// interval is floor(duration)/(n+1) and frame i (1-based) sits at interval*i,
// so no frame lands on the very start or end. Frames are named
// {stem}_{runID}_{i}.png inside dir.
func PlanFrames(meta *probe.Metadata, dir, runID string, n int) ([]Frame, error) {
	if n < 1 {
		return nil, fmt.Errorf("frame count must be positive, got %d", n)
	}
	interval := math.Floor(meta.Duration) / float64(n+1)
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %.3fs", ErrVideoTooShort, meta.Duration)
	}

	frames := make([]Frame, n)
	for i := range frames {
		idx := i + 1
		frames[i] = Frame{
			Index:     idx,
			Timestamp: interval * float64(idx),
			Path:      filepath.Join(dir, fmt.Sprintf("%s_%s_%d.png", meta.Stem, runID, idx)),
		}
	}
	return frames, nil
}

// Extractor grabs single timestamped frames from a video.
type Extractor struct {
	Binary string
	Runner ffmpeg.Runner
	// Font is the font file used for the time stamp.
	Font string
	// Debug raises ffmpeg's log level and asks it for a -report file.
	Debug bool
	// Progress, when set, is called after each frame is written.
	Progress func(done, total int)
}

// Command builds the ffmpeg call for one frame.
func (e *Extractor) Command(video string, f Frame) ffmpeg.Command {
	stamp := ffmpeg.NewFilter("drawtext").
		Set("fontfile", e.Font).
		Set("fontsize", "h/20").
		Set("fontcolor", "yellow").
		Set("x", "5").
		Set("y", "5").
		Text("text", "Time: "+f.Clock())

	return ffmpeg.New(binaryOr(e.Binary, "ffmpeg")).
		HideBanner().
		LogLevel(toolLogLevel(e.Debug)).
		Overwrite().
		Report(e.Debug).
		Flag("-start_at_zero", "-copyts").
		Seek(f.Timestamp).
		Input(video).
		VideoFilter(stamp).
		Frames(1).
		Output(f.Path).
		Build()
}

// Extract writes every planned frame, one ffmpeg call at a time and in plan
// order. The first failure aborts the rest.
func (e *Extractor) Extract(ctx context.Context, video string, frames []Frame) error {
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return stageError(StageExtract, "", ffmpeg.Command{}, err)
		}

		cmd := e.Command(video, f)
		detail := fmt.Sprintf("frame %d at %s", f.Index, f.Clock())
		if _, err := e.Runner.Run(ctx, cmd); err != nil {
			return stageError(StageExtract, detail, cmd, err)
		}
		if err := requireFile(f.Path); err != nil {
			return stageError(StageExtract, detail, cmd, err)
		}

		logging.Debug("Extracted %s -> %s", detail, f.Path)
		if e.Progress != nil {
			e.Progress(i+1, len(frames))
		}
	}
	return nil
}

func binaryOr(binary, fallback string) string {
	if binary == "" {
		return fallback
	}
	return binary
}

func toolLogLevel(debug bool) string {
	if debug {
		return "info"
	}
	return "error"
}
