/*
File    : kube-interpreter/parser/parser_test.go
*/
package parser

import (
	"errors"
	"testing"

	"github.com/akashmaji946/kube-interpreter/ast"
	"github.com/akashmaji946/kube-interpreter/diagnostic"
	"github.com/akashmaji946/kube-interpreter/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (*ast.Node, []string) {
	t.Helper()
	stack, err := lexer.Lex(0, []byte(src), "t.kl")
	require.NoError(t, err)
	root, imports, err := Parse(stack, "t.kl", ast.NewPool())
	require.NoError(t, err)
	require.NotNil(t, root)
	return root, imports
}

// shape renders a node tree down to type/operator/literal for
// structural comparisons that ignore token position.
type shape struct {
	Type     string
	Literal  string
	Data     any
	Children []shape
}

func shapeOf(n *ast.Node) shape {
	if n == nil {
		return shape{}
	}
	s := shape{Type: n.Type.String(), Literal: string(n.Literal), Data: n.Data}
	for _, c := range n.Children {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func TestParseClassSkeleton(t *testing.T) {
	root, imports := parseSource(t, `Item { property x: 42; }`)
	require.Empty(t, imports)
	require.Equal(t, ast.Class, root.Type)
	require.Equal(t, "Item", root.Name())
	require.Len(t, root.Children, 1)

	prop := root.Children[0]
	require.Equal(t, ast.Property, prop.Type)
	require.Equal(t, "x", prop.Name())
	require.Len(t, prop.Children, 1)

	body := prop.Children[0]
	require.Equal(t, ast.Expression, body.Type)
	require.Len(t, body.Children, 1)
	value := body.Children[0]
	require.Equal(t, ast.Constant, value.Type)
	require.Equal(t, ast.Numeric, value.ConstantKind())
	require.Equal(t, "42", value.Name())
}

func TestParseImports(t *testing.T) {
	_, imports := parseSource(t, `import "a.kl"
import "b/c.kl"
Item {}`)
	require.Equal(t, []string{"a.kl", "b/c.kl"}, imports)
}

func TestParseParenthesizedPrecedence(t *testing.T) {
	root, _ := parseSource(t, `Item { property x: (1 + 2) * 3; }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.Operator, value.Type)
	require.Equal(t, ast.Multiplication, value.Operator())

	left := value.Children[0]
	require.Equal(t, ast.Operator, left.Type)
	require.Equal(t, ast.Addition, left.Operator())
	require.Equal(t, "1", left.Children[0].Name())
	require.Equal(t, "2", left.Children[1].Name())

	right := value.Children[1]
	require.Equal(t, ast.Constant, right.Type)
	require.Equal(t, "3", right.Name())
}

func TestParsePlainPrecedenceBindsMultiplyTighter(t *testing.T) {
	root, _ := parseSource(t, `Item { property x: 1 + 2 * 3; }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.Addition, value.Operator())
	require.Equal(t, "1", value.Children[0].Name())
	mul := value.Children[1]
	require.Equal(t, ast.Multiplication, mul.Operator())
	require.Equal(t, "2", mul.Children[0].Name())
	require.Equal(t, "3", mul.Children[1].Name())
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	root, _ := parseSource(t, `Item { a: x = y = 1; }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.Assign, value.Operator())
	require.Equal(t, "x", value.Children[0].Name())
	inner := value.Children[1]
	require.Equal(t, ast.Assign, inner.Operator())
	require.Equal(t, "y", inner.Children[0].Name())
	require.Equal(t, "1", inner.Children[1].Name())
}

func TestParseUnaryVsBinaryMinus(t *testing.T) {
	root, _ := parseSource(t, `Item { a: x - -y; }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.Substraction, value.Operator())
	require.Equal(t, "x", value.Children[0].Name())
	rhs := value.Children[1]
	require.Equal(t, ast.Operator, rhs.Type)
	require.Equal(t, ast.Minus, rhs.Operator())
	require.Equal(t, "y", rhs.Children[0].Name())
}

func TestParsePrefixAndPostfixIncrement(t *testing.T) {
	root, _ := parseSource(t, `Item { a: ++x + y++; }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.Addition, value.Operator())

	lhs := value.Children[0]
	require.Equal(t, ast.Increment, lhs.Operator())
	require.Equal(t, "x", lhs.Children[0].Name())

	rhs := value.Children[1]
	require.Equal(t, ast.IncrementSuffix, rhs.Operator())
	require.Equal(t, "y", rhs.Children[0].Name())
}

func TestParseTernary(t *testing.T) {
	root, _ := parseSource(t, `Item { a: x ? 1 : 2; }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.TernaryIf, value.Operator())
	require.Len(t, value.Children, 3)
	require.Equal(t, "x", value.Children[0].Name())
	require.Equal(t, "1", value.Children[1].Name())
	require.Equal(t, "2", value.Children[2].Name())
}

func TestParseCallExpression(t *testing.T) {
	root, _ := parseSource(t, `Item { a: f(1, 2); }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.Call, value.Operator())
	require.Equal(t, "f", value.Children[0].Name())
	args := value.Children[1]
	require.Equal(t, ast.Coma, args.Operator())
	require.Equal(t, "1", args.Children[0].Name())
	require.Equal(t, "2", args.Children[1].Name())
}

func TestParseCallWithNoArguments(t *testing.T) {
	root, _ := parseSource(t, `Item { a: f(); }`)
	value := root.Children[0].Children[0].Children[0]
	require.Equal(t, ast.Call, value.Operator())
	args := value.Children[1]
	require.Equal(t, ast.Expression, args.Type)
	require.Empty(t, args.Children)
}

func TestParseFunctionWithParametersAndReturn(t *testing.T) {
	root, _ := parseSource(t, `Item {
		function add(a, b) {
			return a + b;
		}
	}`)
	fn := root.Children[0]
	require.Equal(t, ast.Function, fn.Type)
	require.Equal(t, "add", fn.Name())
	params := fn.Children[0]
	require.Equal(t, ast.ParameterList, params.Type)
	require.Equal(t, []string{"a", "b"}, []string{params.Children[0].Name(), params.Children[1].Name()})

	body := fn.Children[1]
	require.Len(t, body.Children, 1)
	ret := body.Children[0]
	require.Equal(t, ast.Statement, ret.Type)
	require.Equal(t, ast.Return, ret.StatementKind())
	sum := ret.Children[0]
	require.Equal(t, ast.Addition, sum.Operator())
}

func TestParseIfElseIfElseChain(t *testing.T) {
	root, _ := parseSource(t, `Item {
		function f() {
			if (x == 1) {
				return 1;
			} else if (x == 2) {
				return 2;
			} else {
				return 0;
			}
		}
	}`)
	body := root.Children[0].Children[1]
	ifStmt := body.Children[0]
	require.Equal(t, ast.If, ifStmt.StatementKind())
	require.Len(t, ifStmt.Children, 3)

	elseIf := ifStmt.Children[2]
	require.Equal(t, ast.If, elseIf.StatementKind())
	require.Len(t, elseIf.Children, 3)

	elseBody := elseIf.Children[2]
	require.Equal(t, ast.Expression, elseBody.Type)
}

func TestParseForLoopAllClauses(t *testing.T) {
	root, _ := parseSource(t, `Item {
		function f() {
			for (i = 0; i < 10; i++) {
				emit done;
			}
		}
	}`)
	body := root.Children[0].Children[1]
	forStmt := body.Children[0]
	require.Equal(t, ast.For, forStmt.StatementKind())
	require.Len(t, forStmt.Children, 4)

	initExpr := forStmt.Children[0]
	require.Equal(t, ast.Expression, initExpr.Type)
	require.Len(t, initExpr.Children, 1)
	require.Equal(t, ast.Assign, initExpr.Children[0].Operator())
}

func TestParseForLoopEmptyClauses(t *testing.T) {
	root, _ := parseSource(t, `Item {
		function f() {
			for (;;) {
				break;
			}
		}
	}`)
	body := root.Children[0].Children[1]
	forStmt := body.Children[0]
	require.Equal(t, ast.For, forStmt.StatementKind())
	require.Len(t, forStmt.Children, 4)
	for _, clause := range forStmt.Children[:3] {
		require.Equal(t, ast.Expression, clause.Type)
		require.Empty(t, clause.Children)
	}
}

func TestParseWhileLoop(t *testing.T) {
	root, _ := parseSource(t, `Item {
		function f() {
			while (x < 10) x++;
		}
	}`)
	body := root.Children[0].Children[1]
	whileStmt := body.Children[0]
	require.Equal(t, ast.While, whileStmt.StatementKind())
	singleLineBody := whileStmt.Children[1]
	require.Equal(t, ast.Expression, singleLineBody.Type)
	require.Len(t, singleLineBody.Children, 1)
}

func TestParseSwitchCaseDefault(t *testing.T) {
	root, _ := parseSource(t, `Item {
		function f() {
			switch (x) {
			case 1:
				emit one;
			case 2:
				emit two;
			default:
				emit other;
			}
		}
	}`)
	body := root.Children[0].Children[1]
	sw := body.Children[0]
	require.Equal(t, ast.Switch, sw.StatementKind())
	// subject, case1 val+body, case2 val+body, default marker+body
	require.Len(t, sw.Children, 7)
	require.Equal(t, "1", sw.Children[1].Name())
	require.Equal(t, "2", sw.Children[3].Name())
	require.Equal(t, string(switchDefaultMarker), sw.Children[5].Name())
}

func TestParseEventWithExpressionSubject(t *testing.T) {
	root, _ := parseSource(t, `Item {
		on clicked: handled = true;
	}`)
	ev := root.Children[0]
	require.Equal(t, ast.Event, ev.Type)
	subject := ev.Children[0]
	require.Equal(t, ast.Expression, subject.Type)
	require.Equal(t, "clicked", subject.Children[0].Name())

	got := shapeOf(ev.Children[1].Children[0])
	want := shape{
		Type: "Operator", Literal: "=", Data: ast.Assign,
		Children: []shape{
			{Type: "Name", Literal: "handled"},
			{Type: "Name", Literal: "true"},
		},
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestParseNestedClass(t *testing.T) {
	root, _ := parseSource(t, `Outer { Inner { property y: 1; } }`)
	inner := root.Children[0]
	require.Equal(t, ast.Class, inner.Type)
	require.Equal(t, "Inner", inner.Name())
}

// TestParseAssignmentNestedClassInstantiation covers a property value
// that instantiates another class by name ("b: B {}"), the shape the
// pipeline's import/class-reference resolution depends on.
func TestParseAssignmentNestedClassInstantiation(t *testing.T) {
	root, _ := parseSource(t, `A { b: B {} }`)
	require.Equal(t, "A", root.Name())
	assign := root.Children[0]
	require.Equal(t, ast.Assignment, assign.Type)
	require.Equal(t, "b", assign.Name())
	require.Len(t, assign.Children, 1)

	instance := assign.Children[0]
	require.Equal(t, ast.Class, instance.Type)
	require.Equal(t, "B", instance.Name())
	require.Empty(t, instance.Children)
}

func TestParseSignal(t *testing.T) {
	root, _ := parseSource(t, `Item { signal changed(oldValue, newValue); }`)
	sig := root.Children[0]
	require.Equal(t, ast.Signal, sig.Type)
	require.Equal(t, "changed", sig.Name())
	params := sig.Children[0]
	require.Len(t, params.Children, 2)
}

func TestParseUnbalancedParensError(t *testing.T) {
	stack, err := lexer.Lex(0, []byte("Item { a: (1 + 2;\n}"), "t.kl")
	require.NoError(t, err)
	_, _, err = Parse(stack, "t.kl", ast.NewPool())
	require.Error(t, err)
	var unbalanced *diagnostic.UnbalancedParens
	require.True(t, errors.As(err, &unbalanced))
}

func TestParseMissingOperandError(t *testing.T) {
	stack, err := lexer.Lex(0, []byte(`Item { a: 1 + ; }`), "t.kl")
	require.NoError(t, err)
	_, _, err = Parse(stack, "t.kl", ast.NewPool())
	require.Error(t, err)
	var missing *diagnostic.MissingOperand
	require.True(t, errors.As(err, &missing))
}
