package thumb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/logging"
	"getthumb/internal/media"
	"getthumb/internal/probe"

	"github.com/google/uuid"
)

// State is the position of a Thumb in its lifecycle.
type State int

const (
	StateConstructed State = iota
	StateProbed
	StateFramesExtracted
	StateGridComposed
	StateBannerApplied
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateProbed:
		return "probed"
	case StateFramesExtracted:
		return "frames-extracted"
	case StateGridComposed:
		return "grid-composed"
	case StateBannerApplied:
		return "banner-applied"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config controls one pipeline.
type Config struct {
	// OutputDir receives the finished sheet, and the persistent workspace
	// when Keep is set.
	OutputDir string
	// TempDir is the parent of ephemeral workspaces; empty means os.TempDir.
	TempDir string
	// Keep retains intermediate frames and rows under OutputDir/{stem}.
	Keep  bool
	Debug bool

	FFmpeg  string
	FFprobe string

	Banner BannerConfig

	// PreviewSize, when positive, also writes a JPEG preview that fits in a
	// PreviewSize x PreviewSize box.
	PreviewSize int
}

// Option customizes a Thumb.
type Option func(*Thumb)

// WithObserver sets the progress observer.
func WithObserver(o Observer) Option {
	return func(t *Thumb) {
		if o != nil {
			t.observer = o
		}
	}
}

// WithRunID replaces the generator for the per-run id used in frame names.
func WithRunID(fn func() string) Option {
	return func(t *Thumb) {
		t.newRunID = fn
	}
}

// Thumb builds contact sheets for one video.
type Thumb struct {
	video    string
	cfg      Config
	runner   ffmpeg.Runner
	observer Observer
	newRunID func() string

	meta  *probe.Metadata
	state State
}

// New probes video and returns a Thumb ready to Create sheets. The video is
// probed exactly once.
func New(ctx context.Context, video string, cfg Config, runner ffmpeg.Runner, opts ...Option) (*Thumb, error) {
	t := &Thumb{
		video:    video,
		cfg:      cfg,
		runner:   runner,
		observer: nopObserver{},
		newRunID: shortRunID,
		state:    StateConstructed,
	}
	for _, opt := range opts {
		opt(t)
	}

	prober := &probe.Prober{Binary: cfg.FFprobe, Runner: runner}
	err := t.stage(StageProbe, 1, func() error {
		meta, err := prober.Probe(ctx, video)
		if err != nil {
			return stageError(StageProbe, video, ffmpeg.Command{}, err)
		}
		t.meta = meta
		t.observer.ItemDone(StageProbe, 1, 1)
		return nil
	})
	if err != nil {
		t.state = StateFailed
		return nil, err
	}

	t.state = StateProbed
	logging.Info("Probed %s: %s, %s @ %.3g fps, %s, %s, video %s, audio %s",
		t.meta.FileName, t.meta.FormatName, t.meta.Resolution, t.meta.FrameRate,
		t.meta.DurationText, t.meta.SizeText, t.meta.VideoCodec, t.meta.AudioCodec)
	return t, nil
}

// Metadata returns the probed metadata.
func (t *Thumb) Metadata() *probe.Metadata {
	return t.meta
}

// State returns the current lifecycle state.
func (t *Thumb) State() State {
	return t.state
}

// Create extracts horizontal*vertical frames, tiles them and renders the
// banner. It returns the path of the finished sheet. An ephemeral workspace
// is removed before Create returns, whether or not it succeeded.
func (t *Thumb) Create(ctx context.Context, horizontal, vertical int) (path string, err error) {
	g := Grid{Horizontal: horizontal, Vertical: vertical}
	if err := g.Validate(); err != nil {
		return "", err
	}

	defer func() {
		if err != nil {
			t.state = StateFailed
		}
	}()

	meta := t.meta
	var ws *Workspace
	err = t.stage(StageWorkspace, 1, func() error {
		if err := os.MkdirAll(t.cfg.OutputDir, 0o755); err != nil {
			return stageError(StageWorkspace, "", ffmpeg.Command{}, fmt.Errorf("create output directory: %w", err))
		}
		var err error
		ws, err = OpenWorkspace(t.cfg.OutputDir, meta.Stem, t.cfg.Keep, t.cfg.TempDir)
		if err != nil {
			return stageError(StageWorkspace, "", ffmpeg.Command{}, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			if err == nil {
				path, err = "", stageError(StageWorkspace, "cleanup", ffmpeg.Command{}, cerr)
				return
			}
			logging.Warn("Failed to clean up workspace after error: %v", cerr)
		}
	}()

	logging.Info("Creating %s contact sheet for %s", g, meta.FileName)

	extractor := &Extractor{
		Binary:   t.cfg.FFmpeg,
		Runner:   t.runner,
		Font:     t.cfg.Banner.Font,
		Debug:    t.cfg.Debug,
		Progress: t.progress(StageExtract),
	}
	var frames []Frame
	if err = t.stage(StageExtract, g.Count(), func() error {
		var err error
		frames, err = PlanFrames(meta, ws.Dir, t.newRunID(), g.Count())
		if err != nil {
			return stageError(StageExtract, "", ffmpeg.Command{}, err)
		}
		return extractor.Extract(ctx, t.video, frames)
	}); err != nil {
		return "", err
	}
	t.state = StateFramesExtracted

	compositor := &Compositor{
		Binary:   t.cfg.FFmpeg,
		Runner:   t.runner,
		Debug:    t.cfg.Debug,
		Progress: t.progress(StageCompose),
	}
	var grid string
	if err = t.stage(StageCompose, g.Vertical+1, func() error {
		var err error
		grid, err = compositor.Compose(ctx, frames, ws, meta.Stem, g)
		return err
	}); err != nil {
		return "", err
	}
	t.state = StateGridComposed

	overlay := &Overlay{
		Binary: t.cfg.FFmpeg,
		Runner: t.runner,
		Banner: t.cfg.Banner,
		Debug:  t.cfg.Debug,
	}
	output := OutputPath(t.cfg.OutputDir, meta.Stem, t.cfg.Keep)
	if err = t.stage(StageBanner, 1, func() error {
		if err := overlay.Apply(ctx, meta, grid, output); err != nil {
			return err
		}
		t.observer.ItemDone(StageBanner, 1, 1)
		return nil
	}); err != nil {
		return "", err
	}
	t.state = StateBannerApplied

	if t.cfg.PreviewSize > 0 {
		preview := PreviewPath(output)
		if err = t.stage(StagePreview, 1, func() error {
			if err := media.WritePreview(output, preview, t.cfg.PreviewSize); err != nil {
				return stageError(StagePreview, preview, ffmpeg.Command{}, err)
			}
			t.observer.ItemDone(StagePreview, 1, 1)
			return nil
		}); err != nil {
			return "", err
		}
		logging.Info("Preview written: %s", preview)
	}

	t.state = StateDone
	logging.Info("Contact sheet written: %s", output)
	return output, nil
}

// PreviewPath derives the preview file name from a finished sheet path.
func PreviewPath(sheet string) string {
	dir, name := filepath.Split(sheet)
	name = strings.TrimSuffix(strings.TrimSuffix(name, filepath.Ext(name)), "_full")
	return filepath.Join(dir, name+"_preview.jpg")
}

func (t *Thumb) stage(s Stage, items int, fn func() error) error {
	t.observer.StageStarted(s, items)
	start := time.Now()
	err := fn()
	t.observer.StageFinished(s, time.Since(start), err)
	if err != nil {
		logging.Debug("Stage %s failed after %s: %v", s, time.Since(start).Round(time.Millisecond), err)
	}
	return err
}

func (t *Thumb) progress(s Stage) func(done, total int) {
	return func(done, total int) {
		t.observer.ItemDone(s, done, total)
	}
}

// shortRunID returns the first eight hex digits of a random UUID.
func shortRunID() string {
	return uuid.NewString()[:8]
}
