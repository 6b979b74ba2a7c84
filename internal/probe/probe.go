// Package probe reads container and stream metadata from a video file with
// ffprobe and turns it into a typed Metadata value.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/logging"
	"getthumb/internal/mediatypes"
)

const (
	mebibyte = 1024 * 1024
	gibibyte = 1024 * mebibyte
)

var (
	// ErrNoVideoStream is returned when ffprobe reports no video stream.
	ErrNoVideoStream = errors.New("no video stream")
	// ErrNoAudioStream is returned when ffprobe reports no audio stream.
	ErrNoAudioStream = errors.New("no audio stream")
	// ErrBadDuration is returned when the container duration is missing or not positive.
	ErrBadDuration = errors.New("invalid duration")
)

// Metadata describes a probed video. It is filled once and never modified.
type Metadata struct {
	Path     string
	FileName string
	Stem     string

	Duration     float64
	DurationText string

	SizeBytes int64
	SizeText  string

	Width      int
	Height     int
	Resolution string

	VideoCodec string
	AudioCodec string
	FormatName string
	FrameRate  float64
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	RFrameRate string `json:"r_frame_rate,omitempty"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

// Prober runs ffprobe through a Runner.
type Prober struct {
	Binary string
	Runner ffmpeg.Runner
}

// Probe inspects the video at path. The file size is taken from the
// filesystem, everything else from a single ffprobe call.
func (p *Prober) Probe(ctx context.Context, path string) (*Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat video: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("stat video: %s is a directory", path)
	}
	if mediatypes.ClassifyPath(path) != mediatypes.FileTypeVideo {
		logging.Warn("%s does not have a known video extension, probing anyway", filepath.Base(path))
	}

	binary := p.Binary
	if binary == "" {
		binary = "ffprobe"
	}
	cmd := ffmpeg.New(binary).
		LogLevel("quiet").
		HideBanner().
		Flag("-print_format", "json", "-show_format", "-show_streams").
		Output(path).
		Build()

	out, err := p.Runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if logging.IsDebugEnabled() {
		logging.Debug("ffprobe output for %s: %s", path, out)
	}

	return Parse(path, out, info.Size())
}

// Parse builds Metadata from ffprobe JSON output and the file size in bytes.
func Parse(path string, data []byte, size int64) (*Metadata, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	video, audio, err := pickStreams(raw.Streams)
	if err != nil {
		return nil, err
	}
	if video.Width <= 0 || video.Height <= 0 {
		return nil, fmt.Errorf("video stream has no dimensions (%dx%d)", video.Width, video.Height)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(raw.Format.Duration), 64)
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrBadDuration, raw.Format.Duration)
	}

	name := filepath.Base(path)
	return &Metadata{
		Path:         path,
		FileName:     name,
		Stem:         strings.TrimSuffix(name, filepath.Ext(name)),
		Duration:     duration,
		DurationText: FormatClock(duration),
		SizeBytes:    size,
		SizeText:     FormatSize(size),
		Width:        video.Width,
		Height:       video.Height,
		Resolution:   fmt.Sprintf("%d x %d", video.Width, video.Height),
		VideoCodec:   strings.ToUpper(video.CodecName),
		AudioCodec:   strings.ToUpper(audio.CodecName),
		FormatName:   raw.Format.FormatName,
		FrameRate:    parseRate(video.RFrameRate),
	}, nil
}

// pickStreams selects the first video and first audio stream by codec_type.
// Streams without a codec_type fall back to position: 0 is video, 1 is audio.
func pickStreams(streams []ffprobeStream) (video, audio ffprobeStream, err error) {
	var haveVideo, haveAudio bool
	for _, s := range streams {
		switch s.CodecType {
		case "video":
			if !haveVideo {
				video, haveVideo = s, true
			}
		case "audio":
			if !haveAudio {
				audio, haveAudio = s, true
			}
		}
	}

	if !haveVideo && len(streams) > 0 && streams[0].CodecType == "" {
		video, haveVideo = streams[0], true
	}
	if !haveAudio && len(streams) > 1 && streams[1].CodecType == "" {
		audio, haveAudio = streams[1], true
	}

	switch {
	case !haveVideo:
		return video, audio, ErrNoVideoStream
	case !haveAudio:
		return video, audio, ErrNoAudioStream
	}
	return video, audio, nil
}

// FormatClock renders seconds as H:MM:SS, truncating the fractional part.
func FormatClock(seconds float64) string {
	total := int64(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}

// FormatSize renders a byte count in MiB below 1024 MiB and in GiB otherwise.
func FormatSize(size int64) string {
	mib := float64(size) / mebibyte
	if mib < 1024.0 {
		return fmt.Sprintf("%.2f MiB", mib)
	}
	return fmt.Sprintf("%.2f GiB", float64(size)/gibibyte)
}

func parseRate(rate string) float64 {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		v, _ := strconv.ParseFloat(rate, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
