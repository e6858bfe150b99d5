// Package installer hands resolved specifiers to pip.
//
// The installer is an external process: "<python> -m pip install -U
// [--user] <specifiers...>". Its standard streams are passed through and its
// exit status is reported as an [ExitError].
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// PythonEnv names the environment variable that overrides the interpreter.
const PythonEnv = "PYTHON"

// DefaultPython returns the interpreter used when none is configured.
func DefaultPython() string {
	if p := os.Getenv(PythonEnv); p != "" {
		return p
	}
	return "python3"
}

// Request describes a single pip invocation.
type Request struct {
	// Python is the interpreter that runs "-m pip".
	Python string

	// User installs into the user site directory.
	User bool

	// Specifiers are passed to pip in order.
	Specifiers []string
}

// Args returns the pip arguments for the request, without the interpreter.
func (r Request) Args() []string {
	args := make([]string, 0, len(r.Specifiers)+5)
	args = append(args, "-m", "pip", "install", "-U")
	if r.User {
		args = append(args, "--user")
	}
	return append(args, r.Specifiers...)
}

// ExitError reports a non-zero installer exit status.
type ExitError struct {
	// Code is the process exit code.
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("installer exited with status %d", e.Code)
}

// Run executes the installer and waits for it to finish.
// Cancelling ctx kills the process.
func Run(ctx context.Context, req Request, stdout, stderr io.Writer, logger *slog.Logger) error {
	python := req.Python
	if python == "" {
		python = DefaultPython()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	args := req.Args()
	logger.Info("running installer", "python", python, "args", args)

	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("run installer %s: %w", python, err)
	}
	return nil
}
