package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"getthumb/internal/startup"
)

// errUsage marks command line mistakes, which exit with status 2.
var errUsage = errors.New("usage error")

type options struct {
	file    string
	cols    int
	rows    int
	version bool
}

const usageHeader = `Usage: getthumb -f VIDEO [options]

Builds a contact sheet for VIDEO: evenly spaced frames in a grid under a
banner that shows the file's metadata. The path of the finished image is
printed on standard output.

Options:
`

// parseFlags applies command line flags on top of cfg, which already holds
// the environment configuration.
func parseFlags(args []string, cfg *startup.Config, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("getthumb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}

	stringVar(fs, &opts.file, "", "video file to process (required)", "f", "file")
	stringVar(fs, &cfg.OutputDir, cfg.OutputDir, "output directory", "o", "output")
	stringVar(fs, &cfg.Banner, cfg.Banner, "banner image (default: bundled assets/banner.png)", "b", "banner")
	stringVar(fs, &cfg.Font, cfg.Font, "font file for the metadata text", "t", "font")
	boolVar(fs, &cfg.Debug, cfg.Debug, "show ffmpeg output and write ffmpeg -report logs", "d", "debug")
	boolVar(fs, &cfg.Keep, cfg.Keep, "keep frames and rows in OUTPUT/STEM", "k", "keep")
	fs.IntVar(&opts.cols, "cols", 3, "frames per row")
	fs.IntVar(&opts.rows, "rows", 3, "number of rows")
	fs.IntVar(&cfg.PreviewSize, "preview", cfg.PreviewSize, "also write a JPEG preview fitting in an `N` pixel square (0 disables)")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to `PATH` on exit")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	if opts.version {
		return opts, nil
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	if opts.file == "" {
		return nil, fmt.Errorf("%w: -f/-file is required", errUsage)
	}
	if opts.cols < 1 || opts.rows < 1 {
		return nil, fmt.Errorf("%w: -cols and -rows must be at least 1", errUsage)
	}
	if cfg.PreviewSize < 0 {
		return nil, fmt.Errorf("%w: -preview must not be negative", errUsage)
	}
	return opts, nil
}

func stringVar(fs *flag.FlagSet, p *string, value, usage string, names ...string) {
	for _, name := range names {
		fs.StringVar(p, name, value, usage)
	}
}

func boolVar(fs *flag.FlagSet, p *bool, value bool, usage string, names ...string) {
	for _, name := range names {
		fs.BoolVar(p, name, value, usage)
	}
}
