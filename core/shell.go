// Package core wires the interactive shell around the pipeline engine.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"

	"github.com/astrocli/astro/core/config"
	"github.com/astrocli/astro/core/engine"
	"github.com/astrocli/astro/core/parse"
)

// ReadlineHistoryName stores arrow-key recall lines; the durable command log
// used by :history lives in the history database instead.
const ReadlineHistoryName = "readline_history"

// Shell is the interactive front end of one session.
type Shell struct {
	Session  *engine.Session
	Readline *readline.Instance

	debug bool
}

// NewShell builds the interactive shell for the session.
func NewShell(cfg *config.Configuration, session *engine.Session) (*Shell, error) {
	rlConfig := &readline.Config{
		Prompt: cfg.Prompt,
	}
	if cfg.DataDir != "" {
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, err
		}
		rlConfig.HistoryFile = filepath.Join(cfg.DataDir, ReadlineHistoryName)
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	return &Shell{
		Session:  session,
		Readline: rl,
		debug:    cfg.Debug,
	}, nil
}

// Run reads and evaluates lines until exit or EOF. Parse and invocation
// failures are reported and the prompt returns; only I/O errors end the
// loop.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.Readline, "Astro interactive shell (scripts: %s). Type 'exit' or Ctrl-D to quit.\n",
		s.Session.Config.ScriptsPath)

	for {
		line, err := s.Readline.Readline()
		switch {
		case err == io.EOF:
			return nil
		case err == readline.ErrInterrupt:
			continue
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		node, err := s.Session.Parse(line)
		if err != nil {
			color.New(color.FgRed).Fprintf(s.Readline, "%v\n", err)
			continue
		}

		if s.debug {
			fmt.Fprintln(s.Readline, "Functor tree:")
			fmt.Fprintln(s.Readline, parse.Visualize(node))
		}

		result, err := s.Session.RunTree(ctx, line, node)
		if err != nil {
			color.New(color.FgRed).Fprintf(s.Readline, "%v\n", err)
			continue
		}

		s.printResult(result)
	}
}

func (s *Shell) printResult(result engine.Result) {
	rendered, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		color.New(color.FgRed).Fprintf(s.Readline, "rendering result: %v\n", err)
		return
	}

	fmt.Fprintln(s.Readline, "Result:")
	fmt.Fprintln(s.Readline, string(rendered))
	if !result.IsSuccess {
		color.New(color.FgRed).Fprintf(s.Readline, "pipeline failed: %s\n", result.ErrorMessage)
	}
}

// Close releases the line editor. The session is closed by its owner.
func (s *Shell) Close() error {
	return s.Readline.Close()
}
