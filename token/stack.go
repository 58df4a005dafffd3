/*
File    : kube-interpreter/token/stack.go
*/
package token

import "encoding/binary"

// headerSize is the number of bytes a Token header occupies once packed:
// FileIndex(2) + Line(2) + Column(2) + Length(2).
const headerSize = 8

// TokenStack is an append-only packed sequence of (Token header, literal
// bytes) records. It is write-only during lexing and read-only
// thereafter; a Cursor is the sole API for reading it back, so no raw
// pointer into the backing buffer ever escapes the package boundary.
type TokenStack struct {
	buf   []byte
	count int
}

// New returns an empty TokenStack, sized for an estimated number of
// tokens to reduce reallocation during lexing.
func New(estimatedTokens int) *TokenStack {
	if estimatedTokens < 0 {
		estimatedTokens = 0
	}
	return &TokenStack{buf: make([]byte, 0, estimatedTokens*(headerSize+4))}
}

// Push appends a token header and its literal bytes to the stack. The
// literal slice is copied; the caller's backing array may be reused
// afterwards.
func (s *TokenStack) Push(tok Token, literal []byte) {
	tok.Length = uint16(len(literal))
	var header [headerSize]byte
	binary.LittleEndian.PutUint16(header[0:2], uint16(tok.FileIndex))
	binary.LittleEndian.PutUint16(header[2:4], uint16(tok.Line))
	binary.LittleEndian.PutUint16(header[4:6], uint16(tok.Column))
	binary.LittleEndian.PutUint16(header[6:8], tok.Length)
	s.buf = append(s.buf, header[:]...)
	s.buf = append(s.buf, literal...)
	s.count++
}

// Len reports the number of tokens pushed onto the stack.
func (s *TokenStack) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Release drops the backing buffer. The stack must not be used
// afterwards. The registry does not call it: a file slot keeps its
// stack for as long as the registry holds it.
func (s *TokenStack) Release() {
	s.buf = nil
	s.count = 0
}

// Cursor iterates a TokenStack in source order. Each Next call advances
// past the current record's header and literal bytes.
type Cursor struct {
	stack *TokenStack
	pos   int
	index int
}

// NewCursor returns a Cursor positioned before the first token.
func (s *TokenStack) NewCursor() *Cursor {
	return &Cursor{stack: s}
}

// Next returns the next token header and a view of its literal bytes.
// The returned slice aliases the stack's backing buffer and must not be
// retained past the stack's lifetime or mutated. ok is false once the
// cursor has consumed every token.
func (c *Cursor) Next() (tok Token, literal []byte, ok bool) {
	buf := c.stack.buf
	if c.pos+headerSize > len(buf) {
		return Token{}, nil, false
	}
	fileIndex := binary.LittleEndian.Uint16(buf[c.pos : c.pos+2])
	line := binary.LittleEndian.Uint16(buf[c.pos+2 : c.pos+4])
	column := binary.LittleEndian.Uint16(buf[c.pos+4 : c.pos+6])
	length := binary.LittleEndian.Uint16(buf[c.pos+6 : c.pos+8])
	start := c.pos + headerSize
	end := start + int(length)
	if end > len(buf) {
		return Token{}, nil, false
	}
	tok = Token{FileIndex: FileIndex(fileIndex), Line: LineIndex(line), Column: ColumnIndex(column), Length: length}
	literal = buf[start:end]
	c.pos = end
	c.index++
	return tok, literal, true
}

// Index returns how many tokens have been consumed by Next so far.
func (c *Cursor) Index() int {
	return c.index
}

// mark is an opaque cursor position used to implement lookahead without
// exposing the buffer offset itself.
type mark struct {
	pos   int
	index int
}

// Mark captures the cursor's current position for later Reset.
func (c *Cursor) Mark() mark {
	return mark{pos: c.pos, index: c.index}
}

// Reset rewinds the cursor to a previously captured Mark.
func (c *Cursor) Reset(m mark) {
	c.pos, c.index = m.pos, m.index
}

// Peek returns the next token without advancing the cursor.
func (c *Cursor) Peek() (Token, []byte, bool) {
	m := c.Mark()
	tok, lit, ok := c.Next()
	c.Reset(m)
	return tok, lit, ok
}
