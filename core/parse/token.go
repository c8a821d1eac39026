package parse

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	// Word is a bare or quoted word.
	Word TokenKind = iota
	// Flag is an unquoted word starting with '-'.
	Flag
	// Pipe is the '|' operator.
	Pipe
	// Comma is the ',' operator.
	Comma
	// LParen is '('.
	LParen
	// RParen is ')'.
	RParen
)

func (k TokenKind) String() string {
	switch k {
	case Word:
		return "word"
	case Flag:
		return "flag"
	case Pipe:
		return "'|'"
	case Comma:
		return "','"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	default:
		return "unknown"
	}
}

// Token is one lexed element of an input line. Pos is the byte offset of the
// token's first character in the original line.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// LexError reports a malformed input line.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Pos, e.Msg)
}

// SyntaxError reports a token stream that doesn't match the grammar.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}
