package engine

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// CommandKind selects the invocation strategy for a resolved command.
type CommandKind int

const (
	// KindBuiltin runs a host executable found on PATH.
	KindBuiltin CommandKind = iota
	// KindScript runs a discovered user script via the data contract.
	KindScript
	// KindSystem runs an in-process introspection handler.
	KindSystem
)

func (k CommandKind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindScript:
		return "script"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Entry is one resolvable command.
type Entry struct {
	Name    string
	Kind    CommandKind
	Locator string
}

// UnknownCommandError reports a name that resolves to no command. It is
// raised at evaluation time so trees stay buildable for --debug printing.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %q", e.Name)
}

// ScriptSuffix marks files under the scripts directory that register as
// Script commands; the command name is the file stem.
const ScriptSuffix = ".py"

var systemCommands = map[string]bool{
	"history": true,
	"run":     true,
	"list":    true,
}

// Registry maps command names to kinds. The system set is fixed, scripts are
// discovered from the scripts directory, and builtins come from the host
// PATH. Read-only during evaluation; Refresh rescans the scripts directory.
type Registry struct {
	fs          afero.Fs
	scriptsPath string

	mu      sync.RWMutex
	scripts map[string]string // name -> script file path
}

// NewRegistry creates a registry over the given scripts directory. Call
// Refresh before resolving.
func NewRegistry(fs afero.Fs, scriptsPath string) *Registry {
	return &Registry{
		fs:          fs,
		scriptsPath: scriptsPath,
		scripts:     make(map[string]string),
	}
}

// Refresh rescans the scripts directory. A missing directory is not an
// error: it simply registers no scripts.
func (r *Registry) Refresh() error {
	infos, err := afero.ReadDir(r.fs, r.scriptsPath)
	if err != nil {
		if os.IsNotExist(err) {
			r.mu.Lock()
			r.scripts = make(map[string]string)
			r.mu.Unlock()
			return nil
		}
		return err
	}

	scripts := make(map[string]string)
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ScriptSuffix) {
			continue
		}
		name := strings.TrimSuffix(info.Name(), ScriptSuffix)
		scripts[name] = filepath.Join(r.scriptsPath, info.Name())
	}

	r.mu.Lock()
	r.scripts = scripts
	r.mu.Unlock()
	return nil
}

// Resolve maps a command name to its kind. The system set is only reachable
// when the original token carried the ':' prefix, and shadows scripts and
// builtins of the same bare name; scripts shadow builtins.
func (r *Registry) Resolve(name string, system bool) (Entry, error) {
	if system {
		if systemCommands[name] {
			return Entry{Name: name, Kind: KindSystem, Locator: name}, nil
		}
		return Entry{}, &UnknownCommandError{Name: ":" + name}
	}

	r.mu.RLock()
	path, ok := r.scripts[name]
	r.mu.RUnlock()
	if ok {
		return Entry{Name: name, Kind: KindScript, Locator: path}, nil
	}

	if execPath, err := exec.LookPath(name); err == nil {
		return Entry{Name: name, Kind: KindBuiltin, Locator: execPath}, nil
	}

	return Entry{}, &UnknownCommandError{Name: name}
}

// Scripts returns the discovered script names, sorted.
func (r *Registry) Scripts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SystemCommands returns the fixed system command names, sorted.
func (r *Registry) SystemCommands() []string {
	names := make([]string, 0, len(systemCommands))
	for name := range systemCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins enumerates executable names on the host PATH, deduplicated and
// sorted.
func (r *Registry) Builtins() []string {
	seen := make(map[string]bool)
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		infos, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range infos {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.Mode()&0111 == 0 {
				continue
			}
			seen[entry.Name()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
