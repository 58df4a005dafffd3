/*
File    : kube-interpreter/parser/atoms.go
*/

// Package parser implements the recursive-descent declaration parser
// and the precedence-climbing expression core described in spec
// section 4.2. It turns a single file's token.TokenStack into one
// ast.Node tree rooted at a Class, plus the file's import literals in
// declaration order.
package parser

// The packed Token header carries no lexical kind (spec section 3): the
// parser classifies each atom purely from its literal bytes, exactly as
// the original source does. Numbers, strings and names are unambiguous
// by first byte. A character-literal atom is, by construction (spec
// section 4.1: "emitted as a one-byte token"), indistinguishable from a
// same-length identifier or number when the decoded byte happens to be
// a letter, underscore or digit; this implementation resolves that
// collision in favor of Name (letter or underscore) or a Numeric
// constant (digit), since identifiers vastly outnumber single-letter character
// literals in operand position and the original leaves the question
// open. A decoded control or punctuation byte that is not itself a
// valid operator/name atom is unambiguous and is classified as a
// character constant.

func isNameLiteral(lit []byte) bool {
	return len(lit) > 0 && (isAlphaByte(lit[0]) || lit[0] == '_')
}

func isNumericLiteral(lit []byte) bool {
	return len(lit) > 0 && lit[0] >= '0' && lit[0] <= '9'
}

func isStringLiteral(lit []byte) bool {
	return len(lit) > 0 && lit[0] == '"'
}

func isAlphaByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isCharLiteral classifies the fallback case: a single byte that is
// neither a digit, a quote, a name-start byte, nor any recognized
// operator/punctuation symbol.
func isCharLiteral(lit []byte) bool {
	if len(lit) != 1 {
		return false
	}
	b := lit[0]
	if isAlphaByte(b) || b == '_' || (b >= '0' && b <= '9') || b == '"' {
		return false
	}
	if _, _, _, ok := lookupBinary(string(lit)); ok {
		return false
	}
	if isUnaryPrefixLiteral(lit) {
		return false
	}
	switch b {
	case '(', ')', '?', '{', '}', '[', ']', ':', ',', ';', '~':
		return false
	}
	return true
}

func stripQuotes(lit []byte) string {
	if len(lit) >= 2 {
		return string(lit[1 : len(lit)-1])
	}
	return string(lit)
}
