package parse

import "strings"

// Parse turns a raw line into a functor tree. Pipe binds tighter than comma:
// "a | b , c" parses as "(a | b) , c". Parsing performs no command-name
// resolution and no filesystem access; unknown names surface at evaluation.
func Parse(line string) (Node, error) {
	tokens, err := Lex(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &SyntaxError{Pos: 0, Msg: "empty command"}
	}

	last := tokens[len(tokens)-1]
	p := &parser{tokens: tokens, end: last.Pos + len(last.Text)}
	node, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, &SyntaxError{Pos: tok.Pos, Msg: "unexpected " + tok.Kind.String()}
	}
	return node, nil
}

type parser struct {
	tokens []Token
	pos    int
	end    int
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// expression := term (',' term)*
func (p *parser) expression() (Node, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	branches := []Node{first}
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != Comma {
			break
		}
		p.pos++
		branch, err := p.term()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &Parallel{Branches: branches}, nil
}

// term := factor ('|' factor)*
func (p *parser) term() (Node, error) {
	first, err := p.factor()
	if err != nil {
		return nil, err
	}
	stages := []Node{first}
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != Pipe {
			break
		}
		p.pos++
		stage, err := p.factor()
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	if len(stages) == 1 {
		return stages[0], nil
	}
	return &Sequential{Stages: stages}, nil
}

// factor := command | '(' expression ')'
func (p *parser) factor() (Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &SyntaxError{Pos: p.end, Msg: "missing command"}
	}

	switch tok.Kind {
	case LParen:
		p.pos++
		if inner, ok := p.peek(); ok && inner.Kind == RParen {
			return nil, &SyntaxError{Pos: inner.Pos, Msg: "empty group"}
		}
		node, err := p.expression()
		if err != nil {
			return nil, err
		}
		closing, ok := p.next()
		if !ok {
			return nil, &SyntaxError{Pos: p.end, Msg: "expected ')'"}
		}
		if closing.Kind != RParen {
			return nil, &SyntaxError{Pos: closing.Pos, Msg: "expected ')', found " + closing.Kind.String()}
		}
		return node, nil

	case Word:
		return p.command()

	case Flag:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: "expected command name, found " + tok.Kind.String()}

	default:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: "unexpected " + tok.Kind.String()}
	}
}

// command := Word Flag* Word*
//
// Words before the first flag are the command's literal input files; the first
// flag and every argument after it belong to extra_args. System commands
// (":history" style) keep all their arguments in extra_args.
func (p *parser) command() (Node, error) {
	nameTok, _ := p.next()
	name := nameTok.Text
	system := strings.HasPrefix(name, ":")
	if system {
		name = strings.TrimPrefix(name, ":")
		if name == "" {
			return nil, &SyntaxError{Pos: nameTok.Pos, Msg: "missing system command name"}
		}
	}

	cmd := &Command{Name: name, System: system}
	sawFlag := false
	for {
		tok, ok := p.peek()
		if !ok || (tok.Kind != Word && tok.Kind != Flag) {
			break
		}
		p.pos++
		if tok.Kind == Flag {
			sawFlag = true
		}
		if system || sawFlag {
			cmd.ExtraArgs = append(cmd.ExtraArgs, tok.Text)
		} else {
			cmd.InputFiles = append(cmd.InputFiles, tok.Text)
		}
	}
	return cmd, nil
}
