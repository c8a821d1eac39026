package parse

import "strings"

// Node is one node of a functor tree. A tree is built once per input line and
// discarded after the pipeline finishes.
type Node interface {
	// String renders the node as a line that parses back to an equivalent tree.
	String() string
	node()
}

// Command is a leaf: a single command invocation. InputFiles holds the words
// that preceded the first flag, ExtraArgs the first flag and everything after
// it, both in source order. System is set when the name carried the ':'
// prefix; Name never includes the prefix.
type Command struct {
	Name       string
	System     bool
	InputFiles []string
	ExtraArgs  []string
}

// Sequential pipes each stage's output files into the next stage's input.
type Sequential struct {
	Stages []Node
}

// Parallel runs every branch against an identical copy of the input.
type Parallel struct {
	Branches []Node
}

func (*Command) node()    {}
func (*Sequential) node() {}
func (*Parallel) node()   {}

func (c *Command) String() string {
	parts := make([]string, 0, 1+len(c.InputFiles)+len(c.ExtraArgs))
	name := c.Name
	if c.System {
		name = ":" + name
	}
	parts = append(parts, name)
	for _, w := range c.InputFiles {
		parts = append(parts, quoteWord(w))
	}
	for _, w := range c.ExtraArgs {
		parts = append(parts, quoteWord(w))
	}
	return strings.Join(parts, " ")
}

func (s *Sequential) String() string {
	stages := make([]string, len(s.Stages))
	for i, stage := range s.Stages {
		text := stage.String()
		// Comma binds looser than pipe, so parallel stages need grouping.
		if _, ok := stage.(*Parallel); ok {
			text = "(" + text + ")"
		}
		stages[i] = text
	}
	return strings.Join(stages, " | ")
}

func (p *Parallel) String() string {
	branches := make([]string, len(p.Branches))
	for i, branch := range p.Branches {
		text := branch.String()
		if _, ok := branch.(*Parallel); ok {
			text = "(" + text + ")"
		}
		branches[i] = text
	}
	return strings.Join(branches, " , ")
}

func quoteWord(w string) string {
	if w == "" || strings.ContainsAny(w, " \t|,()'\"") {
		return "'" + strings.ReplaceAll(w, "'", `\'`) + "'"
	}
	return w
}
