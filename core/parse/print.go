package parse

import (
	"fmt"
	"strings"
)

// Visualize renders a functor tree as an indented multi-line description,
// used by the --debug flag before evaluation.
func Visualize(n Node) string {
	var lines []string
	render(n, 0, &lines)
	return strings.Join(lines, "\n")
}

func render(n Node, depth int, lines *[]string) {
	indent := strings.Repeat("  ", depth)
	switch node := n.(type) {
	case *Command:
		*lines = append(*lines, indent+describe(node))
	case *Sequential:
		*lines = append(*lines, indent+"sequential")
		for _, stage := range node.Stages {
			render(stage, depth+1, lines)
		}
	case *Parallel:
		*lines = append(*lines, indent+"parallel")
		for _, branch := range node.Branches {
			render(branch, depth+1, lines)
		}
	}
}

func describe(c *Command) string {
	kind := "command"
	if c.System {
		kind = "system command"
	}
	var details []string
	if len(c.InputFiles) > 0 {
		details = append(details, fmt.Sprintf("inputs=[%s]", strings.Join(c.InputFiles, " ")))
	}
	if len(c.ExtraArgs) > 0 {
		details = append(details, fmt.Sprintf("args=[%s]", strings.Join(c.ExtraArgs, " ")))
	}
	base := fmt.Sprintf("%s (%s)", c.Name, kind)
	if len(details) == 0 {
		return base
	}
	return base + " [" + strings.Join(details, " ") + "]"
}
