package thumb

import (
	"context"
	"errors"
	"fmt"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/logging"
)

// ErrFrameCount is returned when the frames do not fill the grid exactly.
var ErrFrameCount = errors.New("frame count does not match grid")

// Grid is the contact sheet layout: Horizontal frames per row, Vertical rows.
type Grid struct {
	Horizontal int
	Vertical   int
}

// Count is the number of frames the grid holds.
func (g Grid) Count() int {
	return g.Horizontal * g.Vertical
}

// Validate rejects grids with an empty dimension.
func (g Grid) Validate() error {
	if g.Horizontal < 1 || g.Vertical < 1 {
		return fmt.Errorf("invalid grid %dx%d: both dimensions must be at least 1", g.Horizontal, g.Vertical)
	}
	return nil
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Horizontal, g.Vertical)
}

// GridRows splits frames row-major into g.Vertical rows of g.Horizontal
// frames: row 0 gets frames [0,H), row 1 gets [H,2H) and so on.
func GridRows(frames []Frame, g Grid) ([][]Frame, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(frames) != g.Count() {
		return nil, fmt.Errorf("%w: have %d frames for a %s grid", ErrFrameCount, len(frames), g)
	}
	rows := make([][]Frame, g.Vertical)
	for r := range rows {
		rows[r] = frames[r*g.Horizontal : (r+1)*g.Horizontal]
	}
	return rows, nil
}

// RowName is the file name of row r inside the workspace.
func RowName(r int) string {
	return fmt.Sprintf("row_%d.png", r)
}

// Compositor tiles frames into one grid image.
type Compositor struct {
	Binary string
	Runner ffmpeg.Runner
	Debug  bool
	// Progress, when set, is called after each row and after the final stack.
	Progress func(done, total int)
}

// stackCommand stacks inputs into output with hstack or vstack. A single
// input is copied through, since the stack filters need at least two.
func (c *Compositor) stackCommand(dir, filter string, inputs []string, output string) ffmpeg.Command {
	b := ffmpeg.New(binaryOr(c.Binary, "ffmpeg")).
		HideBanner().
		LogLevel(toolLogLevel(c.Debug)).
		Overwrite().
		Report(c.Debug).
		In(dir).
		Inputs(inputs...)
	if len(inputs) > 1 {
		b.FilterComplex(ffmpeg.NewFilter(filter).Setf("inputs", "%d", len(inputs)))
	}
	return b.Frames(1).Output(output).Build()
}

// Compose builds one row image per grid row and stacks the rows into
// {stem}.png inside the workspace. It returns the composite path. All
// commands run inside the workspace with relative names.
func (c *Compositor) Compose(ctx context.Context, frames []Frame, ws *Workspace, stem string, g Grid) (string, error) {
	rows, err := GridRows(frames, g)
	if err != nil {
		return "", stageError(StageCompose, "", ffmpeg.Command{}, err)
	}

	total := len(rows) + 1
	rowNames := make([]string, len(rows))
	for r, row := range rows {
		inputs := make([]string, len(row))
		for i, f := range row {
			inputs[i] = ws.Rel(f.Path)
		}
		rowNames[r] = RowName(r)

		cmd := c.stackCommand(ws.Dir, "hstack", inputs, rowNames[r])
		if err := c.run(ctx, cmd, ws.Path(rowNames[r]), fmt.Sprintf("row %d", r)); err != nil {
			return "", err
		}
		c.progress(r+1, total)
	}

	name := stem + ".png"
	cmd := c.stackCommand(ws.Dir, "vstack", rowNames, name)
	if err := c.run(ctx, cmd, ws.Path(name), "grid"); err != nil {
		return "", err
	}
	c.progress(total, total)

	logging.Debug("Composed %s grid -> %s", g, ws.Path(name))
	return ws.Path(name), nil
}

func (c *Compositor) run(ctx context.Context, cmd ffmpeg.Command, output, detail string) error {
	if err := ctx.Err(); err != nil {
		return stageError(StageCompose, detail, ffmpeg.Command{}, err)
	}
	if _, err := c.Runner.Run(ctx, cmd); err != nil {
		return stageError(StageCompose, detail, cmd, err)
	}
	if err := requireFile(output); err != nil {
		return stageError(StageCompose, detail, cmd, err)
	}
	return nil
}

func (c *Compositor) progress(done, total int) {
	if c.Progress != nil {
		c.Progress(done, total)
	}
}
