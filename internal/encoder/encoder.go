// Package encoder hands the encode subcommand to the slate-encode
// sidecar. Arguments pass through untouched: the sidecar owns its own
// flag surface and slate does not second-guess it.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/slate-tools/cli/internal/paths"
	"github.com/slate-tools/cli/internal/usage"
)

const binaryName = "slate-encode"

// ExitError carries the sidecar's exit code to main unchanged. The
// sidecar already reported to stderr, so this error prints nothing.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("encoder exited with code %d", e.Code)
}

// Deps holds the injectable edges of the encoder launch.
type Deps struct {
	Locate func() (string, error)
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		Locate: locate,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run launches the sidecar with args as-is and inherited stdio.
func Run(ctx context.Context, log *zap.Logger, args []string) error {
	return runWith(ctx, log, args, DefaultDeps())
}

func runWith(ctx context.Context, log *zap.Logger, args []string, deps Deps) error {
	path, err := deps.Locate()
	if err != nil {
		return usage.EncoderNotFound(binaryName)
	}

	log.Debug("launching encoder",
		zap.String("path", path),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = deps.Stdin
	cmd.Stdout = deps.Stdout
	cmd.Stderr = deps.Stderr

	err = cmd.Run()
	if err == nil {
		log.Debug("encoder finished")
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Debug("encoder exited nonzero", zap.Int("code", exitErr.ExitCode()))
		return &ExitError{Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("run encoder: %w", err)
}

// locate prefers the sidecar sitting next to the slate binary, the
// layout the installer produces, and falls back to PATH.
func locate() (string, error) {
	sidecar := filepath.Join(paths.ExecutableDir(), binaryName)
	if path, err := exec.LookPath(sidecar); err == nil {
		return path, nil
	}
	return exec.LookPath(binaryName)
}
