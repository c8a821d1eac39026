package parse

import (
	"strings"
	"unicode"
)

// Lex splits a raw input line into tokens. Whitespace separates words, the
// operators '|' ',' '(' ')' are always their own token even without
// surrounding whitespace, and single or double quotes group text verbatim
// (backslash escapes the next character inside quotes). An unquoted word
// beginning with '-' is a Flag.
func Lex(line string) ([]Token, error) {
	var tokens []Token

	var current strings.Builder
	currentStart := -1
	currentQuoted := false

	flush := func() {
		if currentStart < 0 {
			return
		}
		text := current.String()
		kind := Word
		if !currentQuoted && strings.HasPrefix(text, "-") {
			kind = Flag
		}
		tokens = append(tokens, Token{Kind: kind, Text: text, Pos: currentStart})
		current.Reset()
		currentStart = -1
		currentQuoted = false
	}

	runes := []rune(line)
	pos := 0 // byte offset of runes[i]
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '\'' || ch == '"':
			flush()
			quoteStart := pos
			quote := ch
			pos += len(string(ch))
			i++
			var quoted strings.Builder
			closed := false
			escaped := false
			for ; i < len(runes); i++ {
				c := runes[i]
				pos += len(string(c))
				if escaped {
					quoted.WriteRune(c)
					escaped = false
					continue
				}
				if c == '\\' {
					escaped = true
					continue
				}
				if c == quote {
					closed = true
					break
				}
				quoted.WriteRune(c)
			}
			if !closed {
				return nil, &LexError{Pos: quoteStart, Msg: "unterminated quote"}
			}
			tokens = append(tokens, Token{Kind: Word, Text: quoted.String(), Pos: quoteStart})

		case unicode.IsSpace(ch):
			flush()
			pos += len(string(ch))

		case ch == '|' || ch == ',' || ch == '(' || ch == ')':
			flush()
			kind := Pipe
			switch ch {
			case ',':
				kind = Comma
			case '(':
				kind = LParen
			case ')':
				kind = RParen
			}
			tokens = append(tokens, Token{Kind: kind, Text: string(ch), Pos: pos})
			pos += len(string(ch))

		default:
			if currentStart < 0 {
				currentStart = pos
			}
			current.WriteRune(ch)
			pos += len(string(ch))
		}
	}
	flush()

	return tokens, nil
}
