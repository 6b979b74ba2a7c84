package thumb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func framesIn(dir string, n int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = Frame{Index: i + 1, Timestamp: float64(i + 1), Path: filepath.Join(dir, fmt.Sprintf("f_%d.png", i+1))}
	}
	return frames
}

func TestGridRows(t *testing.T) {
	frames := framesIn("/ws", 6)

	rows, err := GridRows(frames, Grid{Horizontal: 3, Vertical: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for r, row := range rows {
		require.Len(t, row, 3)
		for c, f := range row {
			assert.Equal(t, frames[r*3+c], f)
		}
	}

	rows, err = GridRows(frames, Grid{Horizontal: 2, Vertical: 3})
	require.NoError(t, err)
	assert.Equal(t, []Frame{frames[4], frames[5]}, rows[2])
}

func TestGridRowsMismatch(t *testing.T) {
	for _, n := range []int{0, 5, 7} {
		_, err := GridRows(framesIn("/ws", n), Grid{Horizontal: 3, Vertical: 2})
		assert.ErrorIs(t, err, ErrFrameCount, "n=%d", n)
	}

	_, err := GridRows(nil, Grid{Horizontal: 0, Vertical: 0})
	assert.Error(t, err)
}

func TestGridValidate(t *testing.T) {
	assert.NoError(t, Grid{Horizontal: 1, Vertical: 1}.Validate())
	assert.Error(t, Grid{Horizontal: 0, Vertical: 3}.Validate())
	assert.Error(t, Grid{Horizontal: 3, Vertical: -1}.Validate())
	assert.Equal(t, 12, Grid{Horizontal: 4, Vertical: 3}.Count())
	assert.Equal(t, "4x3", Grid{Horizontal: 4, Vertical: 3}.String())
}

func TestComposeCommands(t *testing.T) {
	ws := &Workspace{Dir: t.TempDir()}
	frames := framesIn(ws.Dir, 4)
	runner := &fakeRunner{}
	c := &Compositor{Runner: runner}

	out, err := c.Compose(context.Background(), frames, ws, "movie", Grid{Horizontal: 2, Vertical: 2})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.Dir, "movie.png"), out)
	assert.FileExists(t, out)

	require.Len(t, runner.cmds, 3)
	for _, cmd := range runner.cmds {
		assert.Equal(t, ws.Dir, cmd.Dir)
	}
	assert.Equal(t, []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", "f_1.png", "-i", "f_2.png",
		"-filter_complex", "hstack=inputs=2",
		"-frames:v", "1", "row_0.png",
	}, runner.cmds[0].Args)
	assert.Equal(t, []string{"f_3.png", "f_4.png"}, argAfter(runner.cmds[1].Args, "-i"))
	assert.Equal(t, []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", "row_0.png", "-i", "row_1.png",
		"-filter_complex", "vstack=inputs=2",
		"-frames:v", "1", "movie.png",
	}, runner.cmds[2].Args)
}

func TestComposeSingleColumnAndRow(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{name: "single column", grid: Grid{Horizontal: 1, Vertical: 3}},
		{name: "single row", grid: Grid{Horizontal: 3, Vertical: 1}},
		{name: "single frame", grid: Grid{Horizontal: 1, Vertical: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := &Workspace{Dir: t.TempDir()}
			runner := &fakeRunner{}
			c := &Compositor{Runner: runner}

			_, err := c.Compose(context.Background(), framesIn(ws.Dir, tt.grid.Count()), ws, "movie", tt.grid)
			require.NoError(t, err)
			require.Len(t, runner.cmds, tt.grid.Vertical+1)

			for _, cmd := range runner.cmds {
				inputs := argAfter(cmd.Args, "-i")
				if len(inputs) == 1 {
					assert.Empty(t, argAfter(cmd.Args, "-filter_complex"))
				} else {
					assert.Len(t, argAfter(cmd.Args, "-filter_complex"), 1)
				}
			}
		})
	}
}

func TestComposeProgress(t *testing.T) {
	ws := &Workspace{Dir: t.TempDir()}
	var done []int
	c := &Compositor{Runner: &fakeRunner{}, Progress: func(d, total int) {
		assert.Equal(t, 4, total)
		done = append(done, d)
	}}

	_, err := c.Compose(context.Background(), framesIn(ws.Dir, 6), ws, "movie", Grid{Horizontal: 2, Vertical: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, done)
}

func TestComposeFailure(t *testing.T) {
	ws := &Workspace{Dir: t.TempDir()}
	runner := &fakeRunner{failAt: 2}
	c := &Compositor{Runner: runner}

	_, err := c.Compose(context.Background(), framesIn(ws.Dir, 4), ws, "movie", Grid{Horizontal: 2, Vertical: 2})

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageCompose, se.Stage)
	assert.Equal(t, "row 1", se.Detail)
	assert.ErrorIs(t, err, ErrComposition)
	assert.Len(t, runner.cmds, 2)

	_, err = c.Compose(context.Background(), framesIn(ws.Dir, 3), ws, "movie", Grid{Horizontal: 2, Vertical: 2})
	assert.ErrorIs(t, err, ErrComposition)
	assert.ErrorIs(t, err, ErrFrameCount)
}
