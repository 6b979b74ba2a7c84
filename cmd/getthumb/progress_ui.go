package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"getthumb/internal/thumb"

	"golang.org/x/term"
)

var _ thumb.Observer = (*progressUI)(nil)

// progressUI prints one line per stage and per completed item to an
// interactive terminal. It never writes to stdout, which carries only the
// result path.
type progressUI struct {
	w io.Writer
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

// pickProgressWriter returns stderr when it is a terminal.
func pickProgressWriter(stderr io.Writer) (io.Writer, bool) {
	f, ok := stderr.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, false
	}
	return f, true
}

var stageLabels = map[thumb.Stage]string{
	thumb.StageProbe:     "Probing video",
	thumb.StageWorkspace: "Preparing workspace",
	thumb.StageExtract:   "Extracting frames",
	thumb.StageCompose:   "Composing grid",
	thumb.StageBanner:    "Rendering banner",
	thumb.StagePreview:   "Writing preview",
}

func stageLabel(stage thumb.Stage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return string(stage)
}

func (p *progressUI) StageStarted(stage thumb.Stage, items int) {
	label := stageLabel(stage)
	if items > 1 {
		fmt.Fprintf(p.w, "[%s] %s (%d)\n", p.clock(), label, items)
		return
	}
	fmt.Fprintf(p.w, "[%s] %s\n", p.clock(), label)
}

func (p *progressUI) ItemDone(_ thumb.Stage, done, total int) {
	if total <= 1 {
		return
	}
	fmt.Fprintf(p.w, "  [%d/%d]\n", done, total)
}

func (p *progressUI) StageFinished(stage thumb.Stage, elapsed time.Duration, err error) {
	if err != nil {
		fmt.Fprintf(p.w, "[%s] %s FAILED (%s)\n", p.clock(), stageLabel(stage), formatShortDuration(elapsed))
		return
	}
	fmt.Fprintf(p.w, "[%s] %s done (%s)\n", p.clock(), stageLabel(stage), formatShortDuration(elapsed))
}

func (p *progressUI) clock() string {
	return time.Now().Format(time.TimeOnly)
}

func formatShortDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
