package thumb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"getthumb/internal/ffmpeg"

	"github.com/stretchr/testify/assert"
)

func TestStageErrorMatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	exit := &ffmpeg.ExitError{Command: ffmpeg.Command{Name: "ffmpeg"}, Stderr: "No such filter", Err: cause}
	cmd := ffmpeg.Command{Name: "ffmpeg", Args: []string{"-i", "a b.png", "out.png"}}

	err := stageError(StageCompose, "row 0", cmd, exit)

	assert.ErrorIs(t, err, ErrComposition)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrOverlay)
	assert.Equal(t, `ffmpeg -i "a b.png" out.png`, err.Command)
	assert.Equal(t, "No such filter", err.Output)
	assert.Equal(t, `compose: row 0: ffmpeg failed: exit status 1 - No such filter (command: ffmpeg -i "a b.png" out.png)`, err.Error())

	var got *ffmpeg.ExitError
	assert.ErrorAs(t, err, &got)
}

func TestStageErrorSentinels(t *testing.T) {
	tests := []struct {
		stage    Stage
		sentinel error
	}{
		{StageProbe, ErrProbe},
		{StageWorkspace, ErrWorkspace},
		{StageExtract, ErrExtraction},
		{StageCompose, ErrComposition},
		{StageBanner, ErrOverlay},
		{StagePreview, ErrPreview},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			err := stageError(tt.stage, "", ffmpeg.Command{}, errors.New("x"))
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Empty(t, err.Command)
			assert.Equal(t, string(tt.stage)+": x", err.Error())
		})
	}
}

func TestStageErrorNamesCommandForMissingOutput(t *testing.T) {
	cmd := ffmpeg.Command{Name: "ffmpeg", Args: []string{"-i", "in.png", "out.png"}}

	err := stageError(StageBanner, "", cmd, requireFile(filepath.Join(t.TempDir(), "out.png")))

	assert.ErrorIs(t, err, ErrMissingOutput)
	assert.ErrorIs(t, err, ErrOverlay)
	assert.Empty(t, err.Output)
	assert.Contains(t, err.Error(), "banner: output file missing")
	assert.Contains(t, err.Error(), "(command: ffmpeg -i in.png out.png)")
}

func TestRequireFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.png")
	full := filepath.Join(dir, "full.png")
	assert.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.NoError(t, os.WriteFile(full, []byte("png"), 0o644))

	assert.NoError(t, requireFile(full))
	assert.ErrorIs(t, requireFile(empty), ErrMissingOutput)
	assert.ErrorIs(t, requireFile(filepath.Join(dir, "missing.png")), ErrMissingOutput)
}
