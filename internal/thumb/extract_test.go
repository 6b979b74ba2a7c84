package thumb

import (
	"context"
	"path/filepath"
	"testing"

	"getthumb/internal/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFrames(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		n        int
		want     []float64
	}{
		{name: "two minutes, nine frames", duration: 120, n: 9, want: []float64{12, 24, 36, 48, 60, 72, 84, 96, 108}},
		{name: "fraction is truncated", duration: 120.9, n: 3, want: []float64{30, 60, 90}},
		{name: "single frame is centered", duration: 61, n: 1, want: []float64{30.5}},
		{name: "one second", duration: 1, n: 1, want: []float64{0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &probe.Metadata{Stem: "movie", Duration: tt.duration}
			frames, err := PlanFrames(meta, "/ws", "abcd1234", tt.n)
			require.NoError(t, err)
			require.Len(t, frames, tt.n)

			for i, f := range frames {
				assert.Equal(t, i+1, f.Index)
				assert.InDelta(t, tt.want[i], f.Timestamp, 1e-9)
				assert.Less(t, f.Timestamp, tt.duration)
				if i > 0 {
					assert.Greater(t, f.Timestamp, frames[i-1].Timestamp)
				}
			}
			assert.Equal(t, filepath.Join("/ws", "movie_abcd1234_1.png"), frames[0].Path)
		})
	}
}

func TestPlanFramesErrors(t *testing.T) {
	_, err := PlanFrames(&probe.Metadata{Stem: "m", Duration: 0.99}, "/ws", "id", 4)
	assert.ErrorIs(t, err, ErrVideoTooShort)

	_, err = PlanFrames(&probe.Metadata{Stem: "m", Duration: 60}, "/ws", "id", 0)
	assert.Error(t, err)
}

func TestFrameClock(t *testing.T) {
	assert.Equal(t, "0:00:12", Frame{Timestamp: 12}.Clock())
	assert.Equal(t, "1:01:01", Frame{Timestamp: 3661.9}.Clock())
}

func TestExtractorCommand(t *testing.T) {
	e := &Extractor{Binary: "/usr/bin/ffmpeg", Font: "C:/Windows/Fonts/arial.ttf"}
	cmd := e.Command("/videos/movie.mp4", Frame{Index: 2, Timestamp: 24, Path: "/ws/movie_x_2.png"})

	assert.Equal(t, "/usr/bin/ffmpeg", cmd.Name)
	assert.Empty(t, cmd.Dir)
	assert.Equal(t, []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-start_at_zero", "-copyts", "-ss", "24.000", "-i", "/videos/movie.mp4",
		"-vf", `drawtext=fontfile=C\\:/Windows/Fonts/arial.ttf:fontsize=h/20:fontcolor=yellow:x=5:y=5:text=Time\\: 0\\:00\\:24`,
		"-frames:v", "1", "/ws/movie_x_2.png",
	}, cmd.Args)
}

func TestExtractorCommandDebug(t *testing.T) {
	e := &Extractor{Debug: true, Font: "f.ttf"}
	cmd := e.Command("in.mp4", Frame{Index: 1, Timestamp: 1, Path: "out.png"})
	assert.Equal(t, "ffmpeg", cmd.Name)
	assert.Equal(t, []string{"-hide_banner", "-loglevel", "info", "-y", "-report"}, cmd.Args[:5])
}

func TestExtractReportsProgressInOrder(t *testing.T) {
	dir := t.TempDir()
	meta := &probe.Metadata{Stem: "movie", Duration: 40}
	frames, err := PlanFrames(meta, dir, "id", 3)
	require.NoError(t, err)

	var done []int
	runner := &fakeRunner{}
	e := &Extractor{Runner: runner, Font: "f.ttf", Progress: func(d, total int) {
		assert.Equal(t, 3, total)
		done = append(done, d)
	}}
	require.NoError(t, e.Extract(context.Background(), "movie.mp4", frames))

	assert.Equal(t, []int{1, 2, 3}, done)
	for i, c := range runner.cmds {
		assert.Equal(t, frames[i].Path, c.Args[len(c.Args)-1])
		assert.FileExists(t, frames[i].Path)
	}
}

func TestExtractStopsAtFirstFailure(t *testing.T) {
	meta := &probe.Metadata{Stem: "movie", Duration: 40}
	frames, err := PlanFrames(meta, t.TempDir(), "id", 3)
	require.NoError(t, err)

	runner := &fakeRunner{failAt: 2}
	err = (&Extractor{Runner: runner}).Extract(context.Background(), "movie.mp4", frames)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageExtract, se.Stage)
	assert.Equal(t, "frame 2 at 0:00:20", se.Detail)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.Len(t, runner.cmds, 2)
}
