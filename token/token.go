/*
File    : kube-interpreter/token/token.go
*/

// Package token implements the packed, cache-dense token stream produced
// by the lexer and consumed by the parser. A Token carries only source
// location; the literal bytes it spans are stored inline in the owning
// TokenStack immediately after the header, never as a separate heap
// allocation per token.
package token

import "fmt"

// DirectoryIndex identifies a directory registered with the file
// registry.
type DirectoryIndex uint32

// FileIndex identifies a file registered with the file registry.
type FileIndex uint16

// LineIndex is a 1-indexed source line number.
type LineIndex uint16

// ColumnIndex is a 1-indexed source column number.
type ColumnIndex uint16

// Token is the fixed-width header of a single lexical atom. Line and
// Column are 1-indexed; Length is the number of literal bytes following
// the header in the owning TokenStack and may be zero (an empty token).
// The empty string literal `""` is stored with its quotes, so its Length
// is 2.
type Token struct {
	FileIndex FileIndex
	Line      LineIndex
	Column    ColumnIndex
	Length    uint16
}

// String renders the token's location for diagnostics.
func (t Token) String() string {
	return fmt.Sprintf("l%d:c%d", t.Line, t.Column)
}
