package fieldspec

import (
	"strings"
	"unicode/utf8"
)

// Position locates a token in the specification. Line and Column are 1-based,
// Column counts runes, Offset counts bytes.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span is the raw text between a token's parentheses.
type Span struct {
	Text    string
	Present bool
}

// Token is one identifier of a specification together with its arguments.
type Token struct {
	Name string
	Span Span
	Args Args
	Pos  Position
}

// Lexer scans a specification left to right and yields tokens. It never
// fails; characters that cannot start a token are skipped.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	eof          bool
	line         int
	column       int
}

// NewLexer returns a lexer positioned on the first character of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Scan tokenizes input in one pass.
func Scan(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or false once the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	l.skipSeparators()
	if l.eof {
		return Token{}, false
	}

	tok := Token{Pos: l.currentPos()}
	tok.Name = l.readIdentifier()
	if l.ch == '(' && !l.eof {
		if text, ok := l.readSpan(); ok {
			tok.Span = Span{Text: text, Present: true}
		}
	}
	tok.Args = ExtractArguments(tok.Span)
	return tok, true
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.eof = true
		l.position = len(l.input)
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) skipSeparators() {
	for !l.eof && !isIdentChar(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.eof && isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readSpan consumes "(...)" when the closing parenthesis sits on the same
// line. Otherwise nothing is consumed and the "(" becomes a separator.
func (l *Lexer) readSpan() (string, bool) {
	rest := l.input[l.readPosition:]
	idx := strings.IndexAny(rest, ")\n\r")
	if idx < 0 || rest[idx] != ')' {
		return "", false
	}
	text := rest[:idx]
	end := l.readPosition + idx + 1
	for !l.eof && l.position < end {
		l.readChar()
	}
	return text, true
}

func isIdentChar(ch rune) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	case ch == '_' || ch == '-':
		return true
	default:
		return false
	}
}
