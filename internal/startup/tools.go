package startup

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/logging"
)

// versionTimeout bounds the -version probe of each tool.
const versionTimeout = 5 * time.Second

// CheckTools verifies that ffmpeg and ffprobe can be run, and resolves both
// to absolute paths in c.
func CheckTools(ctx context.Context, c *Config) error {
	ffmpegPath, err := checkTool(ctx, c.FFmpeg)
	if err != nil {
		return err
	}
	ffprobePath, err := checkTool(ctx, c.FFprobe)
	if err != nil {
		return err
	}
	c.FFmpeg, c.FFprobe = ffmpegPath, ffprobePath
	return nil
}

func checkTool(ctx context.Context, binary string) (string, error) {
	path, err := ffmpeg.LookPath(binary)
	if err != nil {
		return "", err
	}
	logging.Debug("  %s path: %s", binary, path)

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get %s version: %w", binary, err)
	}

	if line := firstLine(output); line != "" {
		logging.Debug("  %s version: %s", binary, line)
	}
	return path, nil
}

func firstLine(output []byte) string {
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
