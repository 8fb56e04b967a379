// Package run starts the child process of a scoped command.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// StartError reports that the child process could not be started.
type StartError struct {
	Err error
}

func (e *StartError) Error() string { return fmt.Sprintf("can't start process: %v", e.Err) }
func (e *StartError) Unwrap() error { return e.Err }

// ExitError reports a child that exited unsuccessfully.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("process failed with exit code %d", e.Code)
}

// Options configure a child process. Nil streams inherit the caller's.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Env replaces the inherited environment when non-nil.
	Env []string
}

// ShellCommand returns the argv that runs command through the system shell.
func ShellCommand(command string) []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", command}
	}
	return []string{"sh", "-c", command}
}

// Shell runs command through the system shell and waits for it. Without
// Options.Env the child sees the current process environment, including
// variables set earlier in this run.
func Shell(ctx context.Context, command string, opts Options) error {
	argv := ShellCommand(command)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = opts.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if opts.Env != nil {
		cmd.Env = opts.Env
	}

	if err := cmd.Start(); err != nil {
		return &StartError{Err: err}
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}
