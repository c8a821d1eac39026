// Package engine evaluates functor trees by routing each command to an
// invocation strategy: host executables, user scripts, or in-process system
// commands.
package engine

// Payload is the execution context threaded between functor-tree nodes
// during one evaluation: the active input files and the inherited extra
// arguments. Payloads are copied per parallel branch and rebuilt per
// sequential stage, never mutated in place.
type Payload struct {
	InputFiles []string `json:"input_files"`
	ExtraArgs  []string `json:"extra_args"`
}

// Clone returns an independent copy so sibling branches never observe each
// other's state.
func (p Payload) Clone() Payload {
	out := Payload{}
	if p.InputFiles != nil {
		out.InputFiles = append([]string(nil), p.InputFiles...)
	}
	if p.ExtraArgs != nil {
		out.ExtraArgs = append([]string(nil), p.ExtraArgs...)
	}
	return out
}

// Result is the uniform response shape of every invocation strategy.
type Result struct {
	OutputFiles  []string `json:"output_files"`
	IsSuccess    bool     `json:"is_success"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

func success(outputs []string) Result {
	return Result{OutputFiles: outputs, IsSuccess: true}
}

// failure returns a failed Result that passes the inputs through so callers
// can still report what the stage was working on.
func failure(inputs []string, msg string) Result {
	return Result{OutputFiles: inputs, IsSuccess: false, ErrorMessage: msg}
}

// Spec is the request payload delivered to an invocation strategy.
type Spec struct {
	// Name is the bare command name as typed (without the system prefix).
	Name string
	// Locator is strategy specific: an executable path for builtins, a
	// script file path for scripts, a handler tag for system commands.
	Locator    string
	InputFiles []string
	ExtraArgs  []string
}
