/*
File    : kube-interpreter/lexer/scanner.go
*/

// Package lexer implements the byte-stream state machine that turns a
// single .kl source file into a token.TokenStack (spec section 4.1). It
// is a single implicit state machine: for each peek, dispatch to a
// regular-token or special-token handler, exactly mirroring the
// teacher's peek-driven NextToken dispatch but emitting packed tokens
// instead of heap Token values.
package lexer

import (
	"github.com/akashmaji946/kube-interpreter/diagnostic"
	"github.com/akashmaji946/kube-interpreter/token"
)

// scanner carries the lexer's cursor state over a single file's bytes.
type scanner struct {
	src       []byte
	pos       int
	line      int
	column    int
	fileIndex token.FileIndex
	context   string
	stack     *token.TokenStack
}

func newScanner(fileIndex token.FileIndex, src []byte, context string) *scanner {
	return &scanner{
		src:       src,
		pos:       0,
		line:      1,
		column:    1,
		fileIndex: fileIndex,
		context:   context,
		stack:     token.New(len(src) / 4),
	}
}

// current returns the byte at the cursor, or 0 past the end of input.
func (s *scanner) current() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// peek returns the byte one past the cursor, or 0 past the end of input.
func (s *scanner) peek() byte {
	if s.pos+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos+1]
}

// peekAt returns the byte n positions past the cursor, or 0 past the end.
func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

// atEnd reports whether the cursor has consumed the whole source.
func (s *scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

// advance moves the cursor forward by one byte, tracking line and
// column. Newlines increment line and reset column to 1; every other
// byte advances column by 1.
func (s *scanner) advance() {
	if s.atEnd() {
		return
	}
	if s.src[s.pos] == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	s.pos++
}

// emit pushes a token whose literal is exactly lit onto the stack,
// located at (line, column).
func (s *scanner) emit(line, column int, lit []byte) {
	s.stack.Push(token.Token{
		FileIndex: s.fileIndex,
		Line:      token.LineIndex(line),
		Column:    token.ColumnIndex(column),
	}, lit)
}

// skipWhitespaceAndComments consumes whitespace, `//` line comments and
// non-nesting `/* */` block comments before the next token.
func (s *scanner) skipWhitespaceAndComments() error {
	for {
		switch {
		case isWhitespace(s.current()):
			s.advance()
		case s.current() == '/' && s.peek() == '/':
			s.skipLineComment()
		case s.current() == '/' && s.peek() == '*':
			if err := s.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *scanner) skipLineComment() {
	s.advance() // '/'
	s.advance() // '/'
	for !s.atEnd() && s.current() != '\n' {
		s.advance()
	}
}

// skipBlockComment consumes a /* ... */ comment. Nested /* */ is not
// supported: the first */ encountered terminates the comment, even if
// an inner /* was seen (spec section 9 Open Questions).
func (s *scanner) skipBlockComment() error {
	startLine, startColumn := s.line, s.column
	s.advance() // '/'
	s.advance() // '*'
	for {
		if s.atEnd() {
			return &diagnostic.Unterminated{What: "comment", Line: startLine, Column: startColumn, Context: s.context}
		}
		if s.current() == '*' && s.peek() == '/' {
			s.advance()
			s.advance()
			return nil
		}
		s.advance()
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameStart(b byte) bool {
	return isAlpha(b) || b == '_'
}

func isNameContinue(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_'
}
