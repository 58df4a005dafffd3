/*
File    : kube-interpreter/lexer/lexer.go
*/
package lexer

import (
	"github.com/akashmaji946/kube-interpreter/diagnostic"
	"github.com/akashmaji946/kube-interpreter/token"
)

// singleCharPunct is the set of punctuation that always forms a
// 1-length token on its own (spec section 4.1).
const singleCharPunct = "(){}[]?:,;.~"

// Lex consumes src in its entirety (or fails) and returns a TokenStack
// whose iteration yields tokens in source order. fileIndex is stamped
// into every produced token's location; context is a human-readable
// file label threaded through for diagnostics. An empty file is
// rejected with diagnostic.Empty. Lexer errors are fatal for the file:
// no partial TokenStack is returned.
func Lex(fileIndex token.FileIndex, src []byte, context string) (*token.TokenStack, error) {
	if len(src) == 0 {
		return nil, &diagnostic.Empty{Context: context}
	}

	s := newScanner(fileIndex, src, context)
	for {
		if err := s.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if s.atEnd() {
			break
		}
		if err := s.lexOne(); err != nil {
			return nil, err
		}
	}
	return s.stack, nil
}

// lexOne scans and emits exactly one token at the cursor.
func (s *scanner) lexOne() error {
	c := s.current()

	switch {
	case isNameStart(c):
		s.readName()
		return nil
	case isDigit(c):
		s.readNumber()
		return nil
	case c == '"':
		return s.readString()
	case c == '\'':
		return s.readChar()
	}

	for i := 0; i < len(singleCharPunct); i++ {
		if c == singleCharPunct[i] {
			line, column := s.line, s.column
			s.advance()
			s.emit(line, column, []byte{c})
			return nil
		}
	}

	switch c {
	case '=', '<', '>', '!', '*', '%', '^':
		return s.lexComposedWithEquals(c)
	case '|':
		return s.lexDoubledOrEquals('|', '|')
	case '&':
		return s.lexDoubledOrEquals('&', '&')
	case '+':
		return s.lexDoubledOrEquals('+', '+')
	case '-':
		return s.lexDoubledOrEquals('-', '-')
	case '/':
		return s.lexDivision()
	default:
		return &diagnostic.Unrecognized{Byte: c, Line: s.line, Column: s.column, Context: s.context}
	}
}

// lexComposedWithEquals handles `= < > ! * % ^`, each optionally
// followed by `=`.
func (s *scanner) lexComposedWithEquals(c byte) error {
	line, column := s.line, s.column
	s.advance()
	if s.current() == '=' {
		s.advance()
		s.emit(line, column, []byte{c, '='})
		return nil
	}
	s.emit(line, column, []byte{c})
	return nil
}

// lexDoubledOrEquals handles an operator that may double (e.g. `+` →
// `++`) or take `=` (e.g. `+` → `+=`).
func (s *scanner) lexDoubledOrEquals(c, double byte) error {
	line, column := s.line, s.column
	s.advance()
	switch s.current() {
	case double:
		s.advance()
		s.emit(line, column, []byte{c, double})
	case '=':
		s.advance()
		s.emit(line, column, []byte{c, '='})
	default:
		s.emit(line, column, []byte{c})
	}
	return nil
}

// lexDivision handles `/`, which is division, `/=`, or the start of a
// comment; comments are already stripped by skipWhitespaceAndComments,
// so reaching here with `//` or `/*` cannot happen.
func (s *scanner) lexDivision() error {
	line, column := s.line, s.column
	s.advance()
	if s.current() == '=' {
		s.advance()
		s.emit(line, column, []byte{'/', '='})
		return nil
	}
	s.emit(line, column, []byte{'/'})
	return nil
}
