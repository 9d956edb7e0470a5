package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"epoca/internal/logger"

	"github.com/alessio/shellescape"
)

var rlog = logger.PackageLogger("🔐 REMOTE")

// Mode decides how a spawned process is wired to the terminal.
type Mode int

const (
	// Inherit hands the terminal to the child; nothing is captured.
	Inherit Mode = iota
	// Pipe captures stdout and stderr into a single buffer.
	Pipe
)

func (m Mode) String() string {
	switch m {
	case Inherit:
		return "inherit"
	case Pipe:
		return "pipe"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Runner spawns an external command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, name string, args []string, mode Mode) (string, error)
}

// ExitError reports a command that exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("the %s process exited with the error code: %d", e.Command, e.Code)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes name with args. In Pipe mode the combined output is returned.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, mode Mode) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	switch mode {
	case Inherit:
		cmd.Stdin = r.Stdin
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	case Pipe:
		cmd.Stdout = &out
		cmd.Stderr = &out
	default:
		return "", fmt.Errorf("an invalid command execution mode was provided: %s", mode)
	}

	rlog.Debug("$ %s (%s)", CommandLine(name, args), mode)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return out.String(), &ExitError{Command: name, Code: exitErr.ExitCode()}
		}
		if ctx.Err() != nil {
			return out.String(), fmt.Errorf("%s interrupted: %w", name, ctx.Err())
		}
		return out.String(), fmt.Errorf("failed to start %s: %w", name, err)
	}
	return out.String(), nil
}

// DryRunner prints the command lines it would run.
type DryRunner struct {
	Out io.Writer
}

func (r *DryRunner) Run(ctx context.Context, name string, args []string, mode Mode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if mode != Inherit && mode != Pipe {
		return "", fmt.Errorf("an invalid command execution mode was provided: %s", mode)
	}
	fmt.Fprintf(r.Out, "🚧 %s\n", CommandLine(name, args))
	return "", nil
}

// CommandLine renders name and args as a copy-pasteable shell line.
func CommandLine(name string, args []string) string {
	return shellescape.QuoteCommand(append([]string{name}, args...))
}
