package engine

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/pborman/getopt/v2"
)

// SystemInvoker handles the fixed introspection command set in-process:
// history, run, and list. No child process is spawned.
type SystemInvoker struct {
	session *Session
}

func (s *SystemInvoker) Invoke(ctx context.Context, spec Spec) Result {
	switch spec.Name {
	case "history":
		return s.history(spec)
	case "run":
		return s.rerun(ctx, spec)
	case "list":
		return s.list(spec)
	default:
		// Unreachable: the registry only resolves the fixed set.
		return failure(spec.InputFiles, fmt.Sprintf("unhandled system command %q", spec.Name))
	}
}

// history prints the session's command log; -c clears it.
func (s *SystemInvoker) history(spec Spec) Result {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")

	args := append([]string{"history"}, spec.ExtraArgs...)
	var usage bytes.Buffer
	if err := opts.Getopt(args, nil); err != nil {
		fmt.Fprintln(&usage, err)
		opts.PrintOptions(&usage)
		return failure(spec.InputFiles, usage.String())
	}

	if *clear {
		if err := s.session.History.Clear(); err != nil {
			return failure(spec.InputFiles, "clearing history: "+err.Error())
		}
		return success(nil)
	}

	entries, err := s.session.History.List()
	if err != nil {
		return failure(spec.InputFiles, "reading history: "+err.Error())
	}

	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = fmt.Sprintf("% 5d  %s", entry.Seq, entry.Text)
	}
	return success(lines)
}

// rerun re-executes previously logged command lines by sequence number.
func (s *SystemInvoker) rerun(ctx context.Context, spec Spec) Result {
	if len(spec.ExtraArgs) == 0 {
		return failure(spec.InputFiles, "run requires history sequence numbers")
	}

	var last Result
	for _, ref := range spec.ExtraArgs {
		seq, err := strconv.Atoi(ref)
		if err != nil {
			return failure(spec.InputFiles, fmt.Sprintf("invalid history reference %q", ref))
		}
		line, err := s.session.History.Get(seq)
		if err != nil {
			return failure(spec.InputFiles, fmt.Sprintf("history entry %d: %v", seq, err))
		}

		result, err := s.session.Run(ctx, line)
		if err != nil {
			return failure(spec.InputFiles, fmt.Sprintf("history entry %d (%q): %v", seq, line, err))
		}
		if !result.IsSuccess {
			result.ErrorMessage = fmt.Sprintf("history entry %d (%q) failed: %s", seq, line, result.ErrorMessage)
			return result
		}
		last = result
	}
	return last
}

// list enumerates every resolvable command: the system set, discovered
// scripts, and host executables.
func (s *SystemInvoker) list(spec Spec) Result {
	// Rescan so scripts dropped in since session start show up.
	if err := s.session.Registry.Refresh(); err != nil {
		return failure(spec.InputFiles, "scanning scripts: "+err.Error())
	}

	var lines []string
	for _, name := range s.session.Registry.SystemCommands() {
		lines = append(lines, ":"+name+" (system)")
	}
	for _, name := range s.session.Registry.Scripts() {
		lines = append(lines, name+" (script)")
	}
	for _, name := range s.session.Registry.Builtins() {
		lines = append(lines, name+" (builtin)")
	}
	return success(lines)
}
