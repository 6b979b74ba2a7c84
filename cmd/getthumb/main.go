package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"getthumb/internal/ffmpeg"
	"getthumb/internal/logging"
	"getthumb/internal/metrics"
	"getthumb/internal/startup"
	"getthumb/internal/thumb"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := startup.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(stderr, "getthumb: %v\n", err)
		return exitFailure
	}

	cfg, err := startup.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "getthumb: %v\n", err)
		return exitUsage
	}

	opts, err := parseFlags(args, cfg, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case err != nil:
		fmt.Fprintf(stderr, "getthumb: %v\n", err)
		return exitUsage
	}
	if opts.version {
		fmt.Fprintln(stdout, startup.GetBuildInfo())
		return exitOK
	}

	logging.SetOutput(stderr)
	defer logging.SetOutput(nil)
	if cfg.Debug {
		logging.SetLevel(logging.LevelDebug)
	}

	if err := cfg.Resolve(); err != nil {
		fmt.Fprintf(stderr, "getthumb: configuration: %v\n", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := startup.CheckTools(ctx, cfg); err != nil {
		fmt.Fprintf(stderr, "getthumb: %v\n", err)
		return exitFailure
	}
	startup.LogConfig(cfg)

	metrics.InitializeMetrics()
	info := startup.GetBuildInfo()
	metrics.SetAppInfo(info.Version, info.Commit, info.GoVersion)

	runner := &ffmpeg.ExecRunner{
		Debug:    cfg.Debug,
		Output:   stdout,
		Observer: metrics.NewCommandObserver(),
	}

	path, err := createSheet(ctx, opts, cfg, runner, stderr)

	if cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsFile); werr != nil {
			logging.Warn("Failed to write metrics file: %v", werr)
		} else {
			logging.Debug("Metrics written to %s", cfg.MetricsFile)
		}
	}

	if err != nil {
		reportFailure(stderr, err)
		return exitFailure
	}

	fmt.Fprintln(stdout, path)
	return exitOK
}

func createSheet(ctx context.Context, opts *options, cfg *startup.Config, runner ffmpeg.Runner, stderr io.Writer) (path string, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordRun(time.Since(start).Seconds(), err)
	}()

	observers := thumb.Observers{metrics.NewStageObserver()}
	if w, ok := pickProgressWriter(stderr); ok {
		observers = append(observers, newProgressUI(w))
	}

	th, err := thumb.New(ctx, opts.file, thumb.Config{
		OutputDir:   cfg.OutputDir,
		TempDir:     cfg.TempDir,
		Keep:        cfg.Keep,
		Debug:       cfg.Debug,
		FFmpeg:      cfg.FFmpeg,
		FFprobe:     cfg.FFprobe,
		PreviewSize: cfg.PreviewSize,
		Banner: thumb.BannerConfig{
			Path:    cfg.Banner,
			Default: cfg.BannerDefault,
			Font:    cfg.Font,
		},
	}, runner, thumb.WithObserver(observers))
	if err != nil {
		return "", err
	}

	meta := th.Metadata()
	metrics.RecordSource(meta.Duration, meta.SizeBytes)

	return th.Create(ctx, opts.cols, opts.rows)
}

// reportFailure prints the error, which carries the stage, the failing
// command line and any captured stderr.
func reportFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "getthumb: %v\n", err)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "getthumb: interrupted")
	}
}
