/*
File    : kube-interpreter/parser/members.go
*/
package parser

import "github.com/akashmaji946/kube-interpreter/ast"

// parseFunction parses Function := "function" Name ParameterList "{" Expression "}".
func (p *Parser) parseFunction() (*ast.Node, error) {
	p.advance() // "function"
	tok, name, err := p.expectName("function")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Function, tok, name)
	node.Children = []*ast.Node{params, body}
	return node, nil
}

// parseSignal parses Signal := "signal" Name ParameterList ";".
func (p *Parser) parseSignal() (*ast.Node, error) {
	p.advance() // "signal"
	tok, name, err := p.expectName("signal")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";", "signal"); err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Signal, tok, name)
	node.Children = []*ast.Node{params}
	return node, nil
}

// parseProperty parses Property := "property" Name ":" (Block | SingleLineExpr).
func (p *Parser) parseProperty() (*ast.Node, error) {
	p.advance() // "property"
	tok, name, err := p.expectName("property")
	if err != nil {
		return nil, err
	}
	if err := p.expect(":", "property"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Property, tok, name)
	node.Children = []*ast.Node{body}
	return node, nil
}

// parseEvent parses Event := "on" Expression ":" (Block | SingleLineExpr).
// The subject expression is wrapped in an Expression node, the same
// convention used for every other expression-shaped grammar slot.
func (p *Parser) parseEvent() (*ast.Node, error) {
	tok := p.cur.tok
	p.advance() // "on"
	operand, err := p.buildOperand()
	if err != nil {
		return nil, err
	}
	subject, err := p.buildOperator(operand, 0)
	if err != nil {
		return nil, err
	}
	subjectWrapper := p.pool.NewNode(ast.Expression, tok, nil)
	subjectWrapper.Children = []*ast.Node{subject}
	if err := p.expect(":", "event"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Event, tok, nil)
	node.Children = []*ast.Node{subjectWrapper, body}
	return node, nil
}

// parseAssignment parses Assignment := Name ":" (Block | SingleLineExpr).
func (p *Parser) parseAssignment() (*ast.Node, error) {
	tok, name, err := p.expectName("assignment")
	if err != nil {
		return nil, err
	}
	if err := p.expect(":", "assignment"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.Assignment, tok, name)
	node.Children = []*ast.Node{body}
	return node, nil
}

// parseParameterList parses ParameterList := "(" (Name ("," Name)*)? ")".
func (p *Parser) parseParameterList() (*ast.Node, error) {
	if !p.curOK {
		return nil, p.eofError("parameter list")
	}
	tok := p.cur.tok
	if err := p.expect("(", "parameter list"); err != nil {
		return nil, err
	}
	node := p.pool.NewNode(ast.ParameterList, tok, nil)
	if p.curIs(")") {
		p.advance()
		return node, nil
	}
	for {
		nameTok, name, err := p.expectName("parameter list")
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, p.pool.NewNode(ast.Name, nameTok, name))
		if p.curIs(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(")", "parameter list"); err != nil {
		return nil, err
	}
	return node, nil
}
