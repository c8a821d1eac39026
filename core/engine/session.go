package engine

import (
	"context"
	"os"
	"strings"

	"github.com/astrocli/astro/core/config"
	"github.com/astrocli/astro/core/history"
	"github.com/astrocli/astro/core/logger"
	"github.com/astrocli/astro/core/parse"
)

// Session owns the state of one shell session: configuration, command
// registry, the persistent history log, and the event logger. Created at
// shell start, passed explicitly, closed at exit.
type Session struct {
	Config   *config.Configuration
	Registry *Registry
	History  history.Store
	Log      *logger.SessionLogger

	workDir string

	builtin Invocation
	script  Invocation
	system  Invocation
}

// NewSession builds a session from the configuration. The scripts directory
// is scanned once here; :list rescans on demand.
func NewSession(cfg *config.Configuration, log *logger.SessionLogger) (*Session, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(cfg.Fs(), cfg.ScriptsPath)
	if err := registry.Refresh(); err != nil {
		return nil, err
	}

	var store history.Store
	if path := cfg.HistoryPath(); path != "" {
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, err
		}
		store, err = history.NewBolt(path)
		if err != nil {
			return nil, err
		}
	} else {
		store = history.NewMemory()
	}

	s := &Session{
		Config:   cfg,
		Registry: registry,
		History:  store,
		Log:      log,
		workDir:  workDir,
	}
	s.builtin = NewBuiltinInvoker(workDir)
	s.script = NewScriptInvoker(cfg.Fs(), workDir, cfg.Interpreter, log)
	s.system = &SystemInvoker{session: s}
	return s, nil
}

// WorkDir is the directory pipelines start from; it seeds the initial
// input_files.
func (s *Session) WorkDir() string {
	return s.workDir
}

// Close releases the history store and records the session end.
func (s *Session) Close() error {
	if s.Log != nil {
		s.Log.Record(&logger.Entry{Event: logger.EventSessionClosed})
	}
	return s.History.Close()
}

// Parse turns a line into a functor tree, recording parse failures.
func (s *Session) Parse(line string) (parse.Node, error) {
	node, err := parse.Parse(line)
	if err != nil && s.Log != nil {
		s.Log.Record(&logger.Entry{Event: logger.EventParseError, Line: line, Error: err.Error()})
	}
	return node, err
}

// Run parses, logs, and evaluates one command line. Lines that parse are
// appended to the history log unless they start with the system prefix,
// which keeps :history from recording itself.
func (s *Session) Run(ctx context.Context, line string) (Result, error) {
	node, err := s.Parse(line)
	if err != nil {
		return Result{}, err
	}
	return s.RunTree(ctx, line, node)
}

// RunTree logs and evaluates an already-parsed line. Split from Run so the
// shell can print the tree under --debug between parsing and evaluation.
func (s *Session) RunTree(ctx context.Context, line string, node parse.Node) (Result, error) {
	if s.Log != nil {
		s.Log.Record(&logger.Entry{Event: logger.EventLine, Line: line})
	}
	if !strings.HasPrefix(strings.TrimSpace(line), ":") {
		if _, err := s.History.Add(line); err != nil {
			return Result{}, err
		}
	}

	return s.Eval(ctx, node)
}

// Eval evaluates a parsed tree against a fresh execution context seeded with
// the working directory.
func (s *Session) Eval(ctx context.Context, node parse.Node) (Result, error) {
	payload := Payload{InputFiles: []string{s.workDir}}
	result, err := s.eval(ctx, node, payload)
	if err != nil {
		return result, err
	}
	if s.Log != nil {
		s.Log.Record(&logger.Entry{
			Event: logger.EventResult,
			Line:  node.String(),
			Error: result.ErrorMessage,
		})
	}
	return result, nil
}
