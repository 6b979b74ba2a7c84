package thumb

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/logging"
	"getthumb/internal/probe"
)

// SheetHeight is the height of the finished contact sheet in pixels.
const SheetHeight = 1080

// BannerConfig selects the banner image and the font for the metadata block.
type BannerConfig struct {
	Path string
	// Default is set when Path is the bundled banner, which uses its own layout.
	Default bool
	Font    string
}

// Layout returns the text placement matching the banner.
func (c BannerConfig) Layout() BannerLayout {
	if c.Default {
		return DefaultBannerLayout
	}
	return CustomBannerLayout
}

// BannerLayout positions the metadata block. The banner is padded below by
// PadScale/W*H+PadOffset pixels, W and H being the video resolution, and the
// grid is overlaid onto the bottom of the padded area.
type BannerLayout struct {
	PadScale  int
	PadOffset int
	TextX     int
	TextY     int
	FontColor string
}

var (
	// DefaultBannerLayout fits the bundled banner artwork.
	DefaultBannerLayout = BannerLayout{PadScale: 4168, PadOffset: 1000, TextX: 200, TextY: 640, FontColor: "0xD5246B"}
	// CustomBannerLayout is used for any user supplied banner.
	CustomBannerLayout = BannerLayout{PadScale: 4184, PadOffset: 520, TextX: 550, TextY: 100, FontColor: "black"}
)

// MetadataText is the block drawn onto the banner. Lines are aligned with
// tabs.
func MetadataText(meta *probe.Metadata) string {
	lines := []string{
		"File Name\t: " + meta.FileName,
		"File Size\t\t: " + meta.SizeText,
		"Resolution\t: " + meta.Resolution,
		fmt.Sprintf("Codec\t\t\t: Video %s, Audio %s", meta.VideoCodec, meta.AudioCodec),
		"Duration\t\t: " + meta.DurationText,
	}
	return strings.Join(lines, "\n")
}

// BannerGraph builds the filtergraph that scales the banner to the grid
// width, pads it, draws the metadata and overlays the grid at the bottom.
// Input 0 is the banner and input 1 the grid.
func BannerGraph(meta *probe.Metadata, cfg BannerConfig) *ffmpeg.Graph {
	l := cfg.Layout()
	g := &ffmpeg.Graph{}
	g.Chain([]string{"1:v", "0:v"},
		ffmpeg.NewFilter("scale2ref").Set("w", "iw").Set("h", "iw/mdar"),
		[]string{"input1", "input0"})
	g.Chain([]string{"input0"},
		ffmpeg.NewFilter("pad").
			Set("x", "0").
			Set("y", "0").
			Set("w", "in_w").
			Setf("h", "%d/%d*%d+%d", l.PadScale, meta.Width, meta.Height, l.PadOffset),
		[]string{"out0"})
	g.Chain([]string{"out0"},
		ffmpeg.NewFilter("drawtext").
			Set("bordercolor", "black@0.2").
			Set("fontsize", "50").
			Set("fontcolor", l.FontColor).
			Set("fontfile", cfg.Font).
			Setf("x", "%d", l.TextX).
			Setf("y", "%d", l.TextY).
			Set("line_spacing", "20").
			Text("text", MetadataText(meta)),
		[]string{"out1"})
	g.Chain([]string{"out1", "input1"},
		ffmpeg.NewFilter("overlay").Set("x", "0").Set("y", "H-h"),
		[]string{"out2"})
	g.Chain([]string{"out2"},
		ffmpeg.NewFilter("scale").Set("w", "-1").Setf("h", "%d", SheetHeight),
		[]string{"out"})
	return g
}

// OutputPath is where the finished sheet for stem is written: inside the
// persistent workspace when intermediates are kept, directly in outputDir
// otherwise.
func OutputPath(outputDir, stem string, keep bool) string {
	name := stem + "_full.png"
	if keep {
		return filepath.Join(outputDir, stem, name)
	}
	return filepath.Join(outputDir, name)
}

// Overlay renders the banner onto a composed grid.
type Overlay struct {
	Binary string
	Runner ffmpeg.Runner
	Banner BannerConfig
	Debug  bool
}

// Command builds the overlay call.
func (o *Overlay) Command(meta *probe.Metadata, grid, output string) ffmpeg.Command {
	return ffmpeg.New(binaryOr(o.Binary, "ffmpeg")).
		HideBanner().
		LogLevel(toolLogLevel(o.Debug)).
		Overwrite().
		Report(o.Debug).
		Input(o.Banner.Path).
		Input(grid).
		FilterComplex(BannerGraph(meta, o.Banner)).
		Map("out").
		Frames(1).
		Output(output).
		Build()
}

// Apply writes the finished sheet to output.
func (o *Overlay) Apply(ctx context.Context, meta *probe.Metadata, grid, output string) error {
	cmd := o.Command(meta, grid, output)
	if err := ctx.Err(); err != nil {
		return stageError(StageBanner, "", ffmpeg.Command{}, err)
	}
	if _, err := o.Runner.Run(ctx, cmd); err != nil {
		return stageError(StageBanner, "", cmd, err)
	}
	if err := requireFile(output); err != nil {
		return stageError(StageBanner, "", cmd, err)
	}
	logging.Debug("Banner applied -> %s", output)
	return nil
}
