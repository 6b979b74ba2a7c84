package ffmpeg

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Command is a fully built external tool invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the caller's directory.
	Dir string
}

// Tool returns the base name of the binary without any .exe suffix.
func (c Command) Tool() string {
	return strings.TrimSuffix(filepath.Base(c.Name), ".exe")
}

// String renders the command for logs. Arguments containing whitespace or
// quotes are quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Builder assembles an ffmpeg or ffprobe argument vector. Global options are
// always emitted before per-file options regardless of call order.
type Builder struct {
	name   string
	dir    string
	global []string
	args   []string
}

// New starts a command for the given binary.
func New(binary string) *Builder {
	return &Builder{name: binary}
}

// HideBanner suppresses the build banner.
func (b *Builder) HideBanner() *Builder {
	b.global = append(b.global, "-hide_banner")
	return b
}

// LogLevel sets -loglevel (or -v for ffprobe, which accepts both).
func (b *Builder) LogLevel(level string) *Builder {
	b.global = append(b.global, "-loglevel", level)
	return b
}

// Overwrite adds -y.
func (b *Builder) Overwrite() *Builder {
	b.global = append(b.global, "-y")
	return b
}

// Report adds -report when enabled, which makes ffmpeg write a log file into
// its working directory.
func (b *Builder) Report(enabled bool) *Builder {
	if enabled {
		b.global = append(b.global, "-report")
	}
	return b
}

// Flag appends raw arguments in order.
func (b *Builder) Flag(args ...string) *Builder {
	b.args = append(b.args, args...)
	return b
}

// Seek adds an input seek of the given number of seconds. It applies to the
// next Input.
func (b *Builder) Seek(seconds float64) *Builder {
	b.args = append(b.args, "-ss", FormatSeconds(seconds))
	return b
}

// Input adds -i path.
func (b *Builder) Input(path string) *Builder {
	b.args = append(b.args, "-i", argPath(path))
	return b
}

// Inputs adds one -i per path.
func (b *Builder) Inputs(paths ...string) *Builder {
	for _, p := range paths {
		b.Input(p)
	}
	return b
}

// VideoFilter adds -vf with a single filter chain.
func (b *Builder) VideoFilter(f fmt.Stringer) *Builder {
	b.args = append(b.args, "-vf", f.String())
	return b
}

// FilterComplex adds -filter_complex.
func (b *Builder) FilterComplex(g fmt.Stringer) *Builder {
	b.args = append(b.args, "-filter_complex", g.String())
	return b
}

// Map selects a labelled filtergraph output.
func (b *Builder) Map(label string) *Builder {
	b.args = append(b.args, "-map", "["+label+"]")
	return b
}

// Frames limits the number of video frames written.
func (b *Builder) Frames(n int) *Builder {
	b.args = append(b.args, "-frames:v", strconv.Itoa(n))
	return b
}

// Output appends the output path. It should be the last call before Build.
func (b *Builder) Output(path string) *Builder {
	b.args = append(b.args, argPath(path))
	return b
}

// In sets the working directory the command runs in.
func (b *Builder) In(dir string) *Builder {
	b.dir = dir
	return b
}

// Build returns the finished Command.
func (b *Builder) Build() Command {
	args := make([]string, 0, len(b.global)+len(b.args))
	args = append(args, b.global...)
	args = append(args, b.args...)
	return Command{Name: b.name, Args: args, Dir: b.dir}
}

// argPath keeps relative file names that start with a dash from being read
// as options.
func argPath(p string) string {
	if strings.HasPrefix(p, "-") {
		return "." + string(filepath.Separator) + p
	}
	return p
}

// FormatSeconds renders a seek offset with millisecond precision.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
