/*
File    : kube-interpreter/parser/expression.go
*/
package parser

import (
	"github.com/akashmaji946/kube-interpreter/ast"
	"github.com/akashmaji946/kube-interpreter/diagnostic"
)

// buildOperand consumes one operand: a Name, a Constant, a unary-prefixed
// operand, or a parenthesized sub-expression. It is the left side of
// buildOperator's precedence climb, and the recursive target of every
// prefix/grouping form.
func (p *Parser) buildOperand() (*ast.Node, error) {
	if !p.curOK {
		return nil, p.eofError("operand")
	}
	tok, lit := p.cur.tok, p.cur.lit

	switch {
	case isNameLiteral(lit):
		p.advance()
		return p.pool.NewNode(ast.Name, tok, lit), nil

	case isNumericLiteral(lit):
		p.advance()
		node := p.pool.NewNode(ast.Constant, tok, lit)
		node.Data = ast.Numeric
		return node, nil

	case isStringLiteral(lit):
		p.advance()
		node := p.pool.NewNode(ast.Constant, tok, lit)
		node.Data = ast.Literal
		return node, nil

	case string(lit) == "(":
		p.openedParens++
		p.advance()
		inner, err := p.buildOperand()
		if err != nil {
			return nil, err
		}
		inner, err = p.buildOperator(inner, 0)
		if err != nil {
			return nil, err
		}
		return inner, nil

	case isUnaryPrefixLiteral(lit):
		op := unaryPrefixOperator(lit)
		p.advance()
		child, err := p.buildOperand()
		if err != nil {
			return nil, err
		}
		node := p.pool.NewNode(ast.Operator, tok, lit)
		node.Data = op
		node.Children = []*ast.Node{child}
		return node, nil

	case isCharLiteral(lit):
		p.advance()
		node := p.pool.NewNode(ast.Constant, tok, lit)
		node.Data = ast.Char
		return node, nil
	}

	return nil, p.unexpectedError("operand")
}

// buildOperator folds lhs against every following operator whose
// precedence is at least minPrec, climbing recursively for
// higher-precedence or right-associative continuations. A closing
// parenthesis is consumed here while the grouping depth opened by
// buildOperand's "(" case or by a call is above zero, decrementing it.
// A ")" seen at depth zero is neither consumed nor reported here: it
// ends the fold, which is how the if/while/for/switch productions reach
// their own closing parenthesis, and anywhere else the enclosing
// production reports it as an unexpected token rather than as
// diagnostic.UnbalancedParens. A function call ("(" immediately after
// an operand) and postfix ++/-- are folded unconditionally, the same
// way the table's highest-precedence rows bind.
func (p *Parser) buildOperator(lhs *ast.Node, minPrec int) (*ast.Node, error) {
	for {
		if !p.curOK {
			return lhs, nil
		}
		lit := p.cur.lit
		litStr := string(lit)

		switch {
		case litStr == ")":
			if p.openedParens == 0 {
				return lhs, nil
			}
			p.openedParens--
			p.advance()
			return lhs, nil

		case isPostfixLiteral(lit):
			tok := p.cur.tok
			op := postfixOperator(lit)
			p.advance()
			node := p.pool.NewNode(ast.Operator, tok, lit)
			node.Data = op
			node.Children = []*ast.Node{lhs}
			lhs = node
			continue

		case litStr == "(":
			tok := p.cur.tok
			p.openedParens++
			p.advance()
			var arg *ast.Node
			if string(p.curLitBytes()) == ")" {
				arg = p.pool.NewNode(ast.Expression, tok, nil)
				p.openedParens--
				p.advance()
			} else {
				operand, err := p.buildOperand()
				if err != nil {
					return nil, err
				}
				arg, err = p.buildOperator(operand, 0)
				if err != nil {
					return nil, err
				}
			}
			node := p.pool.NewNode(ast.Operator, tok, lit)
			node.Data = ast.Call
			node.Children = []*ast.Node{lhs, arg}
			lhs = node
			continue

		case litStr == "?":
			if precAssign < minPrec {
				return lhs, nil
			}
			tok := p.cur.tok
			p.advance()
			thenOperand, err := p.buildOperand()
			if err != nil {
				return nil, err
			}
			thenExpr, err := p.buildOperator(thenOperand, 0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(":", "ternary"); err != nil {
				return nil, err
			}
			elseOperand, err := p.buildOperand()
			if err != nil {
				return nil, err
			}
			elseExpr, err := p.buildOperator(elseOperand, precAssign)
			if err != nil {
				return nil, err
			}
			node := p.pool.NewNode(ast.Operator, tok, []byte("?"))
			node.Data = ast.TernaryIf
			node.Children = []*ast.Node{lhs, thenExpr, elseExpr}
			lhs = node
			continue
		}

		prec, rightAssoc, op, ok := lookupBinary(litStr)
		if !ok {
			return lhs, nil
		}
		if prec < minPrec {
			return lhs, nil
		}
		tok := p.cur.tok
		p.advance()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		rhsOperand, err := p.buildOperand()
		if err != nil {
			return nil, &diagnostic.MissingOperand{Context: p.context, Line: int(tok.Line), Column: int(tok.Column)}
		}
		rhs, err := p.buildOperator(rhsOperand, nextMin)
		if err != nil {
			return nil, err
		}
		node := p.pool.NewNode(ast.Operator, tok, lit)
		node.Data = op
		node.Children = []*ast.Node{lhs, rhs}
		lhs = node
	}
}

// curLitBytes returns the current atom's literal, or nil past the end
// of the stream.
func (p *Parser) curLitBytes() []byte {
	if !p.curOK {
		return nil
	}
	return p.cur.lit
}
