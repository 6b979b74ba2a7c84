package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"getthumb/internal/logging"
)

// maxErrorOutput caps how much captured stderr is carried in an ExitError.
const maxErrorOutput = 2048

// Runner runs a command to completion and returns its standard output.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// Observer records external tool invocations. Implementations are provided
// by the metrics package.
type Observer interface {
	ObserveCommand(tool string, durationSeconds float64, err error)
}

// ExitError reports a command that could not be started or exited nonzero.
type ExitError struct {
	Command Command
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Command.Tool(), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += " - " + s
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code, or -1 when the process never ran.
func (e *ExitError) ExitCode() int {
	var ee *exec.ExitError
	if errors.As(e.Err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

// ExecRunner runs commands with os/exec. Each call blocks until the process
// exits.
type ExecRunner struct {
	// Debug copies the captured output of every command to Output.
	Debug bool
	// Output receives debug output; nil means os.Stdout.
	Output   io.Writer
	Observer Observer
}

// Run executes cmd and returns its stdout.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	logging.Debug("exec [%s]: %s", dirLabel(cmd.Dir), cmd)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	elapsed := time.Since(start)

	if r.Observer != nil {
		r.Observer.ObserveCommand(cmd.Tool(), elapsed.Seconds(), err)
	}

	if r.Debug {
		r.writeDebug(cmd, stdout.Bytes(), stderr.Bytes())
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s interrupted: %w", cmd.Tool(), ctxErr)
		}
		return nil, &ExitError{Command: cmd, Stderr: tail(stderr.String(), maxErrorOutput), Err: err}
	}

	logging.Debug("%s finished in %v", cmd.Tool(), elapsed.Round(time.Millisecond))
	return stdout.Bytes(), nil
}

func (r *ExecRunner) writeDebug(cmd Command, stdout, stderr []byte) {
	w := r.Output
	if w == nil {
		w = os.Stdout
	}
	// ffprobe's stdout is the JSON document, already logged by the caller.
	if cmd.Tool() != "ffprobe" && len(stdout) > 0 {
		_, _ = w.Write(stdout)
	}
	if len(stderr) > 0 {
		_, _ = w.Write(stderr)
	}
}

func dirLabel(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// LookPath reports the resolved location of binary.
func LookPath(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", binary, err)
	}
	return path, nil
}
