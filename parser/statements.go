/*
File    : kube-interpreter/parser/statements.go
*/
package parser

import (
	"github.com/akashmaji946/kube-interpreter/ast"
	"github.com/akashmaji946/kube-interpreter/diagnostic"
	"github.com/akashmaji946/kube-interpreter/token"
)

// parseBody dispatches to a Block, a nested class instantiation, or a
// SingleLineExpr. A bare "{" opens a Block; a Name immediately followed
// by "{" is a nested Class instantiation (e.g. "b: B {}"), reusing
// parseClass so the instantiated class is itself reachable by
// ast.Classes for import/reference resolution; anything else falls
// through to SingleLineExpr.
func (p *Parser) parseBody() (*ast.Node, error) {
	if p.curIs("{") {
		return p.parseBlock()
	}
	if p.curOK && isNameLiteral(p.cur.lit) && p.peekLit() == "{" {
		return p.parseClass()
	}
	return p.parseSingleLineExpr()
}

// parseBlock parses Block := "{" Statement* "}", wrapped as an
// Expression node whose children are the parsed statements.
func (p *Parser) parseBlock() (*ast.Node, error) {
	if !p.curOK {
		return nil, p.eofError("block")
	}
	tok := p.cur.tok
	if err := p.expect("{", "block"); err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Expression, tok, nil)
	for p.curOK && !p.curIs("}") {
		stmt, err := p.parseStatementItem()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, stmt)
	}
	if err := p.expect("}", "block"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseSingleLineExpr parses SingleLineExpr, which terminates as soon
// as the next token's line differs from the statement's opening line
// (spec section 4.2).
func (p *Parser) parseSingleLineExpr() (*ast.Node, error) {
	if !p.curOK {
		return nil, p.eofError("single-line expression")
	}
	tok := p.cur.tok
	openLine := tok.Line
	node := p.pool.NewNode(ast.Expression, tok, nil)
	for p.curOK && p.cur.tok.Line == openLine {
		stmt, err := p.parseStatementItem()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, stmt)
		if !p.curOK || p.cur.tok.Line != openLine {
			break
		}
	}
	return node, nil
}

// parseStatementItem parses one Statement production: a control-flow
// form, or a bare "Operation ;" appended directly with no wrapper, per
// the data model's convention that only If/While/For/Switch/Break/
// Continue/Return/Emit carry their own Statement node.
func (p *Parser) parseStatementItem() (*ast.Node, error) {
	if !p.curOK {
		return nil, p.eofError("statement")
	}
	switch p.curLit() {
	case "if":
		return p.parseIf()
	case "while":
		return p.parseWhile()
	case "for":
		return p.parseFor()
	case "switch":
		return p.parseSwitch()
	case "break":
		tok := p.cur.tok
		p.advance()
		if err := p.expect(";", "break"); err != nil {
			return nil, err
		}
		node := p.pool.NewNode(ast.Statement, tok, nil)
		node.Data = ast.Break
		return node, nil
	case "continue":
		tok := p.cur.tok
		p.advance()
		if err := p.expect(";", "continue"); err != nil {
			return nil, err
		}
		node := p.pool.NewNode(ast.Statement, tok, nil)
		node.Data = ast.Continue
		return node, nil
	case "return":
		tok := p.cur.tok
		p.advance()
		node := p.pool.NewNode(ast.Statement, tok, nil)
		node.Data = ast.Return
		if !p.curIs(";") {
			value, err := p.parseOperation()
			if err != nil {
				return nil, err
			}
			node.Children = []*ast.Node{value}
		}
		if err := p.expect(";", "return"); err != nil {
			return nil, err
		}
		return node, nil
	case "emit":
		tok := p.cur.tok
		p.advance()
		value, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		if err := p.expect(";", "emit"); err != nil {
			return nil, err
		}
		node := p.pool.NewNode(ast.Statement, tok, nil)
		node.Data = ast.Emit
		node.Children = []*ast.Node{value}
		return node, nil
	}
	value, err := p.parseOperation()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";", "operation"); err != nil {
		return nil, err
	}
	return value, nil
}

// parseOperation parses a full precedence-climbed expression starting
// at the current atom. It enforces the invariant that opened_parens
// returns to its pre-call depth by the time the operation is done: a
// grouping or call "(" that never finds its matching ")" (EOF or an
// unrelated terminator reached first) leaves the depth elevated, which
// is reported as diagnostic.UnbalancedParens.
func (p *Parser) parseOperation() (*ast.Node, error) {
	before := p.openedParens
	operand, err := p.buildOperand()
	if err != nil {
		return nil, err
	}
	result, err := p.buildOperator(operand, 0)
	if err != nil {
		return nil, err
	}
	if p.openedParens != before {
		return nil, &diagnostic.UnbalancedParens{Context: p.context, Line: int(result.Tok.Line), Column: int(result.Tok.Column)}
	}
	return result, nil
}

// parseOptionalOperation parses an operation unless the current atom
// is stop, in which case it returns a nil node (used for for-loop
// clauses, which may be empty).
func (p *Parser) parseOptionalOperation(stop string) (*ast.Node, error) {
	if p.curIs(stop) {
		return nil, nil
	}
	return p.parseOperation()
}

// parseIf parses If := "if" "(" Expression ")" (Block | SingleLineExpr)
// ("else" "if" ... | "else" (Block | SingleLineExpr))?.
func (p *Parser) parseIf() (*ast.Node, error) {
	tok := p.cur.tok
	p.advance() // "if"
	if err := p.expect("(", "if"); err != nil {
		return nil, err
	}
	condValue, err := p.parseOperation()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")", "if"); err != nil {
		return nil, err
	}
	condTok := condValue.Tok
	cond := p.pool.NewNode(ast.Expression, condTok, nil)
	cond.Children = []*ast.Node{condValue}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Statement, tok, nil)
	node.Data = ast.If
	node.Children = []*ast.Node{cond, body}

	if p.curIs("else") {
		p.advance()
		if p.curIs("if") {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, elseIf)
		} else {
			elseBody, err := p.parseBody()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, elseBody)
		}
	}
	return node, nil
}

// parseWhile parses While := "while" "(" Expression ")" (Block | SingleLineExpr).
func (p *Parser) parseWhile() (*ast.Node, error) {
	tok := p.cur.tok
	p.advance() // "while"
	if err := p.expect("(", "while"); err != nil {
		return nil, err
	}
	condValue, err := p.parseOperation()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")", "while"); err != nil {
		return nil, err
	}
	cond := p.pool.NewNode(ast.Expression, condValue.Tok, nil)
	cond.Children = []*ast.Node{condValue}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Statement, tok, nil)
	node.Data = ast.While
	node.Children = []*ast.Node{cond, body}
	return node, nil
}

// parseFor parses For := "for" "(" Operation? ";" Operation? ";" Operation? ")" (Block | SingleLineExpr).
// The outer parentheses and the two internal semicolons are structural
// punctuation consumed directly by this production; each of the three
// clauses is independently wrapped in an Expression node (empty when
// the clause itself is empty), so "for(;;)" produces three empty
// Expression wrappers plus the body.
func (p *Parser) parseFor() (*ast.Node, error) {
	tok := p.cur.tok
	p.advance() // "for"
	if err := p.expect("(", "for"); err != nil {
		return nil, err
	}
	initValue, err := p.parseOptionalOperation(";")
	if err != nil {
		return nil, err
	}
	if err := p.expect(";", "for"); err != nil {
		return nil, err
	}
	condValue, err := p.parseOptionalOperation(";")
	if err != nil {
		return nil, err
	}
	if err := p.expect(";", "for"); err != nil {
		return nil, err
	}
	stepValue, err := p.parseOptionalOperation(")")
	if err != nil {
		return nil, err
	}
	if err := p.expect(")", "for"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	wrap := func(v *ast.Node) *ast.Node {
		n := p.pool.NewNode(ast.Expression, tok, nil)
		if v != nil {
			n.Children = []*ast.Node{v}
		}
		return n
	}

	node := p.pool.NewNode(ast.Statement, tok, nil)
	node.Data = ast.For
	node.Children = []*ast.Node{wrap(initValue), wrap(condValue), wrap(stepValue), body}
	return node, nil
}

// switchDefaultMarker is the sentinel literal stored on the value slot
// of a default arm, distinguishing it from a "case" arm's value.
var switchDefaultMarker = []byte("default")

// parseSwitch parses Switch := "switch" "(" Expression ")" "{"
// ("case" Expression ":" Statement*)* ("default" ":" Statement*)? "}".
// Each arm contributes a (value, body) pair flattened into the node's
// children, following the subject wrapper: [subject, val1, body1,
// val2, body2, ..., (defaultVal, defaultBody)?].
func (p *Parser) parseSwitch() (*ast.Node, error) {
	tok := p.cur.tok
	p.advance() // "switch"
	if err := p.expect("(", "switch"); err != nil {
		return nil, err
	}
	subjectValue, err := p.parseOperation()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")", "switch"); err != nil {
		return nil, err
	}
	subject := p.pool.NewNode(ast.Expression, subjectValue.Tok, nil)
	subject.Children = []*ast.Node{subjectValue}

	if err := p.expect("{", "switch"); err != nil {
		return nil, err
	}

	node := p.pool.NewNode(ast.Statement, tok, nil)
	node.Data = ast.Switch
	node.Children = []*ast.Node{subject}

	armBody := func() (*ast.Node, error) {
		var bodyTok token.Token
		if p.curOK {
			bodyTok = p.cur.tok
		}
		body := p.pool.NewNode(ast.Expression, bodyTok, nil)
		for p.curOK && p.curLit() != "case" && p.curLit() != "default" && p.curLit() != "}" {
			stmt, err := p.parseStatementItem()
			if err != nil {
				return nil, err
			}
			body.Children = append(body.Children, stmt)
		}
		return body, nil
	}

	for p.curIs("case") {
		p.advance()
		value, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		if err := p.expect(":", "switch case"); err != nil {
			return nil, err
		}
		body, err := armBody()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, value, body)
	}

	if p.curIs("default") {
		p.advance()
		if err := p.expect(":", "switch default"); err != nil {
			return nil, err
		}
		body, err := armBody()
		if err != nil {
			return nil, err
		}
		marker := p.pool.NewNode(ast.Constant, tok, switchDefaultMarker)
		marker.Data = ast.Literal
		node.Children = append(node.Children, marker, body)
	}

	if err := p.expect("}", "switch"); err != nil {
		return nil, err
	}
	return node, nil
}
