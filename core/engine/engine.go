package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/astrocli/astro/core/logger"
	"github.com/astrocli/astro/core/parse"
)

// eval is the recursive, result-first tree walk. Structural failures
// (unknown commands) come back as errors and abort the whole pipeline;
// invocation failures travel inside the Result.
func (s *Session) eval(ctx context.Context, node parse.Node, p Payload) (Result, error) {
	switch n := node.(type) {
	case *parse.Command:
		return s.evalCommand(ctx, n, p)
	case *parse.Sequential:
		return s.evalSequential(ctx, n, p)
	case *parse.Parallel:
		return s.evalParallel(ctx, n, p)
	default:
		return Result{}, fmt.Errorf("unhandled node type %T", node)
	}
}

func (s *Session) evalCommand(ctx context.Context, cmd *parse.Command, p Payload) (Result, error) {
	entry, err := s.Registry.Resolve(cmd.Name, cmd.System)
	if err != nil {
		return Result{}, err
	}

	// Literal input words on the command override the upstream files; the
	// command's own arguments override inherited extra_args.
	inputs := p.InputFiles
	if len(cmd.InputFiles) > 0 {
		inputs = cmd.InputFiles
	}
	extra := p.ExtraArgs
	if len(cmd.ExtraArgs) > 0 {
		extra = cmd.ExtraArgs
	}

	spec := Spec{
		Name:       cmd.Name,
		Locator:    entry.Locator,
		InputFiles: inputs,
		ExtraArgs:  extra,
	}

	var strategy Invocation
	switch entry.Kind {
	case KindBuiltin:
		strategy = s.builtin
	case KindScript:
		strategy = s.script
	case KindSystem:
		strategy = s.system
	}

	result := strategy.Invoke(ctx, spec)

	if s.Log != nil {
		exitCode := 0
		if !result.IsSuccess {
			exitCode = 1
		}
		s.Log.Record(&logger.Entry{
			Event:    logger.EventInvocation,
			Command:  cmd.Name,
			Kind:     entry.Kind.String(),
			ExitCode: exitCode,
			Error:    result.ErrorMessage,
		})
	}
	return result, nil
}

// evalSequential runs stages strictly one after another, feeding each
// stage's output files into the next stage's inputs. A failed stage
// short-circuits the rest of the chain.
func (s *Session) evalSequential(ctx context.Context, seq *parse.Sequential, p Payload) (Result, error) {
	current := p
	var last Result
	for i, stage := range seq.Stages {
		result, err := s.eval(ctx, stage, current)
		if err != nil {
			return Result{}, err
		}
		if !result.IsSuccess {
			return result, nil
		}
		if i < len(seq.Stages)-1 {
			if len(result.OutputFiles) == 0 {
				return failure(current.InputFiles,
					fmt.Sprintf("%s produced no output files to feed the next stage", stage.String())), nil
			}
			current = Payload{InputFiles: result.OutputFiles}
		}
		last = result
	}
	return last, nil
}

// evalParallel runs every branch concurrently against an identical copy of
// the payload and joins them all before combining, even when some fail
// early. Output files keep branch order; every failing branch's message is
// reported.
func (s *Session) evalParallel(ctx context.Context, par *parse.Parallel, p Payload) (Result, error) {
	results := make([]Result, len(par.Branches))
	errs := make([]error, len(par.Branches))

	var wg sync.WaitGroup
	for i, branch := range par.Branches {
		wg.Add(1)
		go func(i int, branch parse.Node) {
			defer wg.Done()
			results[i], errs[i] = s.eval(ctx, branch, p.Clone())
		}(i, branch)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Result{}, err
		}
	}

	var outputs []string
	var messages []string
	for i, result := range results {
		if !result.IsSuccess {
			messages = append(messages, fmt.Sprintf("%s: %s", par.Branches[i].String(), result.ErrorMessage))
			continue
		}
		outputs = append(outputs, result.OutputFiles...)
	}

	if len(messages) > 0 {
		return failure(p.InputFiles, strings.Join(messages, "; ")), nil
	}
	return success(outputs), nil
}
