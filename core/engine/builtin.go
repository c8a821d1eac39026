package engine

import (
	"context"
	"strings"
)

// BuiltinInvoker runs host executables. The argument vector is the command's
// extra_args followed by its input files as positional arguments; non-empty
// stdout lines become the output files. An executable that prints nothing
// passes its input files through unchanged.
type BuiltinInvoker struct {
	// Dir is the working directory for spawned processes.
	Dir string

	run runner
}

// NewBuiltinInvoker creates the builtin strategy rooted at dir.
func NewBuiltinInvoker(dir string) *BuiltinInvoker {
	return &BuiltinInvoker{Dir: dir, run: execRun}
}

func (b *BuiltinInvoker) Invoke(ctx context.Context, spec Spec) Result {
	argv := make([]string, 0, 1+len(spec.ExtraArgs)+len(spec.InputFiles))
	argv = append(argv, spec.Locator)
	argv = append(argv, spec.ExtraArgs...)
	argv = append(argv, spec.InputFiles...)

	out, err := b.run(ctx, b.Dir, nil, argv)
	if err != nil {
		return failure(spec.InputFiles, spec.Name+": "+err.Error())
	}

	if out.exitCode != 0 {
		msg := strings.TrimSpace(string(out.stderr))
		if msg == "" {
			msg = spec.Name + ": exited with non-zero status"
		}
		return failure(spec.InputFiles, msg)
	}

	outputs := splitOutputLines(string(out.stdout))
	if len(outputs) == 0 {
		outputs = spec.InputFiles
	}
	return success(outputs)
}

func splitOutputLines(stdout string) []string {
	var lines []string
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
