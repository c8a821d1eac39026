package engine

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Invocation runs one resolved command with the given spec and returns the
// uniform result shape. Implementations never return Go errors: every
// failure mode is expressed through Result.IsSuccess and ErrorMessage.
type Invocation interface {
	Invoke(ctx context.Context, spec Spec) Result
}

// runOutput captures one child process run.
type runOutput struct {
	exitCode int
	stdout   []byte
	stderr   []byte
}

// runner spawns a child process and waits for it. Swapped out in tests.
type runner func(ctx context.Context, dir string, stdin []byte, argv []string) (runOutput, error)

// execRun is the production runner backed by os/exec. A non-zero exit is not
// an error; failing to spawn at all is.
func execRun(ctx context.Context, dir string, stdin []byte, argv []string) (runOutput, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := runOutput{stdout: stdout.Bytes(), stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.exitCode = exitErr.ExitCode()
		return out, nil
	}
	if err != nil {
		return out, err
	}
	return out, nil
}
