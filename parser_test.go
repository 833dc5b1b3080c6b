package tmplgo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// cmpOpts lets go-cmp compare Value and the Node variants despite their
// unexported payload fields — reflect.DeepEqual would work too, but go-cmp
// gives far more readable diffs when a case mismatches.
var cmpOpts = cmp.AllowUnexported(Value{})

func TestParseSimpleExpression(t *testing.T) {
	root, err := parseAll("{{ 1 + 2 }}")
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{
		&OperationNode{LHS: &ValueNode{Value: Number(1)}, Operator: OpAdd, RHS: &ValueNode{Value: Number(2)}},
	}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePrecedence(t *testing.T) {
	// "1 + 2 * 3" must parse as 1 + (2 * 3), not (1 + 2) * 3.
	root, err := parseAll("{{ 1 + 2 * 3 }}")
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{
		&OperationNode{
			LHS:      &ValueNode{Value: Number(1)},
			Operator: OpAdd,
			RHS: &OperationNode{
				LHS:      &ValueNode{Value: Number(2)},
				Operator: OpMultiply,
				RHS:      &ValueNode{Value: Number(3)},
			},
		},
	}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDoubleNegation(t *testing.T) {
	// "2--2" is 2 - (-2): the second "-" is unary, parsed by a nested
	// parseFactor call, not a second binary operator.
	root, err := parseAll("{{ 2--2 }}")
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{
		&OperationNode{
			LHS:      &ValueNode{Value: Number(2)},
			Operator: OpSubtract,
			RHS:      &NegateNode{Operand: &ValueNode{Value: Number(2)}},
		},
	}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIfNoElse(t *testing.T) {
	root, err := parseAll("{{ if x }}yes{{ /if }}")
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{
		&IfThenElseNode{
			Cond: &VariableNode{Name: "x"},
			Then: &BodyNode{Children: []Node{&ValueNode{Value: String("yes")}}},
		},
	}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIfElifElse(t *testing.T) {
	root, err := parseAll("{{ if a }}1{{ elif b }}2{{ else }}3{{ /if }}")
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{
		&IfThenElseNode{
			Cond: &VariableNode{Name: "a"},
			Then: &BodyNode{Children: []Node{&ValueNode{Value: String("1")}}},
			Else: &BodyNode{Children: []Node{
				&IfThenElseNode{
					Cond: &VariableNode{Name: "b"},
					Then: &BodyNode{Children: []Node{&ValueNode{Value: String("2")}}},
					Else: &BodyNode{Children: []Node{&ValueNode{Value: String("3")}}},
				},
			}},
		},
	}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParseForWithSeparator(t *testing.T) {
	root, err := parseAll(`{{ for x in xs ", " }}{{ x }}{{ /for }}`)
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{
		&ForInNode{
			Var:       "x",
			Iterable:  &VariableNode{Name: "xs"},
			Body:      &BodyNode{Children: []Node{&VariableNode{Name: "x"}}},
			Separator: &ValueNode{Value: String(", ")},
		},
	}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFunctionCallAndArray(t *testing.T) {
	root, err := parseAll("{{ f([1, 2], x) }}")
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{
		&FunctionCallNode{
			Name: "f",
			Args: []Node{
				&ArrayNode{Elements: []Node{&ValueNode{Value: Number(1)}, &ValueNode{Value: Number(2)}}},
				&VariableNode{Name: "x"},
			},
		},
	}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBareIdentifierIsVariableNotCall(t *testing.T) {
	root, err := parseAll("{{ x }}")
	require.NoError(t, err)

	want := &BodyNode{Children: []Node{&VariableNode{Name: "x"}}}
	if diff := cmp.Diff(want, root, cmpOpts); diff != "" {
		t.Errorf("parseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnterminatedIfErrors(t *testing.T) {
	_, err := parseAll("{{ if x }}no end")
	require := require.New(t)
	require.Error(err)
}

func TestParseStrayElifErrors(t *testing.T) {
	_, err := parseAll("{{ elif x }}")
	require.Error(t, err)
}

func TestParseMismatchedCloseErrors(t *testing.T) {
	// Closing an "if" with "/for" instead of "/if" must fail: parseIf
	// expects a Keyword(If) right after the "/" and gets Keyword(For).
	_, err := parseAll("{{ if x }}body{{ /for }}")
	require.Error(t, err)
}
