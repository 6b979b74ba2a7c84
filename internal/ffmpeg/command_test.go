package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderPutsGlobalOptionsFirst(t *testing.T) {
	cmd := New("ffmpeg").
		Seek(12).
		Input("in.mp4").
		HideBanner().
		Overwrite().
		Report(true).
		Frames(1).
		Output("out.png").
		In("/tmp/work").
		Build()

	assert.Equal(t, "ffmpeg", cmd.Name)
	assert.Equal(t, "/tmp/work", cmd.Dir)
	assert.Equal(t, []string{
		"-hide_banner", "-y", "-report",
		"-ss", "12.000", "-i", "in.mp4", "-frames:v", "1", "out.png",
	}, cmd.Args)
}

func TestBuilderReportDisabled(t *testing.T) {
	cmd := New("ffmpeg").Report(false).Output("x.png").Build()
	assert.Equal(t, []string{"x.png"}, cmd.Args)
}

func TestBuilderFilters(t *testing.T) {
	cmd := New("ffmpeg").
		Inputs("a.png", "b.png").
		FilterComplex(NewFilter("hstack").Set("inputs", "2")).
		Map("out").
		Build()

	assert.Equal(t, []string{
		"-i", "a.png", "-i", "b.png",
		"-filter_complex", "hstack=inputs=2",
		"-map", "[out]",
	}, cmd.Args)
}

func TestCommandTool(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ffmpeg", "ffmpeg"},
		{"/usr/local/bin/ffprobe", "ffprobe"},
		{"ffmpeg.exe", "ffmpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Command{Name: tt.name}.Tool())
		})
	}
}

func TestCommandStringQuotesSpaces(t *testing.T) {
	cmd := Command{Name: "ffmpeg", Args: []string{"-i", "my video.mp4", ""}}
	assert.Equal(t, `ffmpeg -i "my video.mp4" ""`, cmd.String())
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.000", FormatSeconds(0))
	assert.Equal(t, "13.333", FormatSeconds(40.0/3))
	assert.Equal(t, "108.000", FormatSeconds(108))
}

func TestBuilderGuardsDashPaths(t *testing.T) {
	cmd := New("ffmpeg").Input("-odd.png").Output("-out.png").Build()
	assert.Equal(t, []string{"-i", "./-odd.png", "./-out.png"}, cmd.Args[:3])
}
