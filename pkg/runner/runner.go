// Package runner starts external tools and reports how they ended.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/cperrin88/geofetch/internal/logger"
	pkgerrors "github.com/cperrin88/geofetch/pkg/errors"
)

// Command describes one external tool invocation.
type Command struct {
	Name string
	Args []string
	// Env is appended to the current process environment.
	Env []string
	// Capture collects stdout and stderr instead of streaming them to the
	// terminal.
	Capture bool
}

// Result is the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

//go:generate mockgen -destination=./mocks/runner.go . CommandRunner

// CommandRunner runs a command to completion.
type CommandRunner interface {
	// Run waits for the command to exit. A non-zero exit code is reported
	// in Result, not as an error; the error is reserved for commands that
	// could not be started.
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner creates a runner streaming uncaptured output to the
// process's stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{stdout: os.Stdout, stderr: os.Stderr}
}

// Run starts cmd and waits for it.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Env = append(os.Environ(), cmd.Env...)

	var stdout, stderr bytes.Buffer
	if cmd.Capture {
		c.Stdout = &stdout
		c.Stderr = &stderr
	} else {
		c.Stdout = r.stdout
		c.Stderr = r.stderr
	}

	logger.Debug("Running command", logger.Fields{"command": cmd.Name, "args": cmd.Args, "capture": cmd.Capture})

	err := c.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		return nil, pkgerrors.Wrapf(err, "failed to start %s", cmd.Name)
	}
}
