package encoder

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slate-tools/cli/internal/usage"
)

// fakeSidecar writes an executable script so tests exercise the real
// exec path, exit code included.
func fakeSidecar(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sidecar script test requires sh")
	}

	path := filepath.Join(t.TempDir(), binaryName)
	content := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	return path
}

func testDeps(path string, stdout, stderr *bytes.Buffer) Deps {
	return Deps{
		Locate: func() (string, error) { return path, nil },
		Stdin:  bytes.NewReader(nil),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func TestRunPassesArgumentsThrough(t *testing.T) {
	path := fakeSidecar(t, `echo "$@"`)
	var stdout, stderr bytes.Buffer

	err := runWith(context.Background(), zap.NewNop(),
		[]string{"--input", "take 04.mkv", "--two-pass"},
		testDeps(path, &stdout, &stderr))

	require.NoError(t, err)
	require.Equal(t, "--input take 04.mkv --two-pass\n", stdout.String())
}

func TestRunPropagatesExitCode(t *testing.T) {
	path := fakeSidecar(t, `echo "bad input" >&2; exit 3`)
	var stdout, stderr bytes.Buffer

	err := runWith(context.Background(), zap.NewNop(), nil,
		testDeps(path, &stdout, &stderr))

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.Code)
	require.Equal(t, "bad input\n", stderr.String())
}

func TestRunMissingSidecar(t *testing.T) {
	deps := DefaultDeps()
	deps.Locate = func() (string, error) {
		return "", errors.New("not found")
	}

	err := runWith(context.Background(), zap.NewNop(), nil, deps)

	var usageErr *usage.Error
	require.ErrorAs(t, err, &usageErr)
	require.Equal(t, usage.ErrEncoderNotFound, usageErr.Kind)
	require.Contains(t, usageErr.Message, binaryName)
}

func TestRunRespectsContext(t *testing.T) {
	path := fakeSidecar(t, `sleep 5`)
	var stdout, stderr bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runWith(ctx, zap.NewNop(), nil, testDeps(path, &stdout, &stderr))
	require.Error(t, err)
}
