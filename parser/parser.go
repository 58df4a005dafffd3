/*
File    : kube-interpreter/parser/parser.go
*/
package parser

import (
	"github.com/akashmaji946/kube-interpreter/ast"
	"github.com/akashmaji946/kube-interpreter/diagnostic"
	"github.com/akashmaji946/kube-interpreter/token"
)

// atom is the parser's one-token lookahead slot: a token header paired
// with a view of its literal bytes.
type atom struct {
	tok token.Token
	lit []byte
}

// Parser walks a single file's TokenStack and builds one ast.Node tree
// plus its import literals. It holds a one-token lookahead (cur, peek)
// in the style of a classic Pratt parser, and tracks opened grouping
// parentheses per spec section 9's arena/bookkeeping model: the count
// is local to each buildOperand/buildOperator call chain and must
// return to zero before that chain returns successfully.
type Parser struct {
	cursor  *token.Cursor
	pool    *ast.Pool
	context string

	cur     atom
	curOK   bool
	peek    atom
	peekOK  bool
	lastTok token.Token

	openedParens int
}

func newParser(stack *token.TokenStack, context string, pool *ast.Pool) *Parser {
	p := &Parser{
		cursor:  stack.NewCursor(),
		pool:    pool,
		context: context,
	}
	p.advance()
	p.advance()
	return p
}

// advance shifts peek into cur and reads one more token into peek.
func (p *Parser) advance() {
	if p.curOK {
		p.lastTok = p.cur.tok
	}
	p.cur, p.curOK = p.peek, p.peekOK
	tok, lit, ok := p.cursor.Next()
	p.peek = atom{tok: tok, lit: lit}
	p.peekOK = ok
}

func (p *Parser) curLit() string {
	if !p.curOK {
		return ""
	}
	return string(p.cur.lit)
}

func (p *Parser) peekLit() string {
	if !p.peekOK {
		return ""
	}
	return string(p.peek.lit)
}

// curIs reports whether the current atom's literal is exactly lit.
func (p *Parser) curIs(lit string) bool {
	return p.curOK && p.curLit() == lit
}

// eofError reports running out of tokens mid-production, located at
// the last token actually seen.
func (p *Parser) eofError(production string) error {
	return &diagnostic.UnexpectedEndOfFile{Production: production, Context: p.context, Line: int(p.lastTok.Line), Column: int(p.lastTok.Column)}
}

// unexpectedError reports the current atom as invalid for production.
func (p *Parser) unexpectedError(production string) error {
	if !p.curOK {
		return p.eofError(production)
	}
	return &diagnostic.UnexpectedToken{
		Production: production,
		Literal:    p.curLit(),
		Context:    p.context,
		Line:       int(p.cur.tok.Line),
		Column:     int(p.cur.tok.Column),
	}
}

// expect consumes the current atom if its literal is exactly lit,
// otherwise returns an UnexpectedToken/UnexpectedEndOfFile error.
func (p *Parser) expect(lit, production string) error {
	if !p.curIs(lit) {
		return p.unexpectedError(production)
	}
	p.advance()
	return nil
}

// expectName consumes a Name atom and returns it, or an error.
func (p *Parser) expectName(production string) (token.Token, []byte, error) {
	if !p.curOK || !isNameLiteral(p.cur.lit) {
		return token.Token{}, nil, p.unexpectedError(production)
	}
	tok, lit := p.cur.tok, p.cur.lit
	p.advance()
	return tok, lit, nil
}

// Parse turns stack into one ast.Node tree rooted at the file's Class,
// plus the file's import literals in declaration order. context is a
// human-readable file label threaded through diagnostics.
func Parse(stack *token.TokenStack, context string, pool *ast.Pool) (*ast.Node, []string, error) {
	p := newParser(stack, context, pool)
	return p.parseFile()
}

// parseFile parses File := Import* Class.
func (p *Parser) parseFile() (*ast.Node, []string, error) {
	var imports []string
	for p.curIs("import") {
		p.advance()
		if !p.curOK || !isStringLiteral(p.cur.lit) {
			return nil, nil, p.unexpectedError("import")
		}
		imports = append(imports, stripQuotes(p.cur.lit))
		p.advance()
	}
	class, err := p.parseClass()
	if err != nil {
		return nil, nil, err
	}
	return class, imports, nil
}

// parseClass parses Class := Name "{" ClassMember* "}".
func (p *Parser) parseClass() (*ast.Node, error) {
	tok, name, err := p.expectName("class")
	if err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Class, tok, name)
	if err := p.expect("{", "class"); err != nil {
		return nil, err
	}
	for p.curOK && !p.curIs("}") {
		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, member)
	}
	if err := p.expect("}", "class"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseClassMember dispatches ClassMember := Function | Signal |
// Property | Event | Assignment | Class (nested).
func (p *Parser) parseClassMember() (*ast.Node, error) {
	if !p.curOK {
		return nil, p.eofError("class member")
	}
	switch p.curLit() {
	case "function":
		return p.parseFunction()
	case "signal":
		return p.parseSignal()
	case "property":
		return p.parseProperty()
	case "on":
		return p.parseEvent()
	}
	if !isNameLiteral(p.cur.lit) {
		return nil, p.unexpectedError("class member")
	}
	switch p.peekLit() {
	case "{":
		return p.parseClass()
	case ":":
		return p.parseAssignment()
	}
	return nil, p.unexpectedError("class member")
}
