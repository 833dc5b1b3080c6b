package tmplgo

// evaluator walks a parsed AST against a fixed pair of host-provided
// lookups. It carries no mutable state of its own — locals are threaded
// through eval's argument, never stored on the evaluator — so the same
// evaluator (and the Template wrapping it) can run many Executes
// concurrently (spec §5).
type evaluator struct {
	vars  Variables
	funcs Functions
}

// eval walks node, resolving identifiers first against locals (the
// innermost {{ for }} bindings in scope) and falling back to the
// evaluator's Variables. Every Node variant produces a Value; BodyNode's
// Value is the concatenation of its children's rendered text.
func (e *evaluator) eval(node Node, locals map[string]Value) (Value, error) {
	switch n := node.(type) {
	case *BodyNode:
		var out string
		for _, child := range n.Children {
			v, err := e.eval(child, locals)
			if err != nil {
				return Value{}, err
			}
			out += v.Render()
		}
		return String(out), nil

	case *ValueNode:
		return n.Value, nil

	case *VariableNode:
		if locals != nil {
			if v, ok := locals[n.Name]; ok {
				return v, nil
			}
		}
		if v, ok := e.vars.Lookup(n.Name); ok {
			return v, nil
		}
		return Value{}, errUndefinedVariable(n.Name)

	case *FunctionCallNode:
		fn, ok := e.funcs.Lookup(n.Name)
		if !ok {
			return Value{}, errUndefinedVariable(n.Name)
		}
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			v, err := e.eval(a, locals)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return fn(args)

	case *ArrayNode:
		elems := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.eval(el, locals)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems), nil

	case *OperationNode:
		lhs, err := e.eval(n.LHS, locals)
		if err != nil {
			return Value{}, err
		}
		rhs, err := e.eval(n.RHS, locals)
		if err != nil {
			return Value{}, err
		}
		switch n.Operator {
		case OpAdd:
			return Add(lhs, rhs)
		case OpSubtract:
			return Sub(lhs, rhs)
		case OpMultiply:
			return Mul(lhs, rhs)
		case OpDivide:
			return Div(lhs, rhs)
		case OpIsEqualTo:
			return Boolean(lhs.Equal(rhs)), nil
		case OpIsNotEqualTo:
			return Boolean(!lhs.Equal(rhs)), nil
		case OpAnd:
			return Boolean(lhs.IsTruthy() && rhs.IsTruthy()), nil
		case OpOr:
			return Boolean(lhs.IsTruthy() || rhs.IsTruthy()), nil
		default:
			return Value{}, errOperation("unknown operator %s", n.Operator)
		}

	case *NotNode:
		v, err := e.eval(n.Operand, locals)
		if err != nil {
			return Value{}, err
		}
		return Boolean(!v.IsTruthy()), nil

	case *NegateNode:
		v, err := e.eval(n.Operand, locals)
		if err != nil {
			return Value{}, err
		}
		return Negate(v)

	case *IfThenElseNode:
		cond, err := e.eval(n.Cond, locals)
		if err != nil {
			return Value{}, err
		}
		if cond.IsTruthy() {
			return e.eval(n.Then, locals)
		}
		if n.Else != nil {
			return e.eval(n.Else, locals)
		}
		return String(""), nil

	case *ForInNode:
		return e.evalForIn(n, locals)

	default:
		return Value{}, errOperation("unhandled node type %T", node)
	}
}

func (e *evaluator) evalForIn(n *ForInNode, locals map[string]Value) (Value, error) {
	iterable, err := e.eval(n.Iterable, locals)
	if err != nil {
		return Value{}, err
	}
	if iterable.Kind != ArrayKind {
		return Value{}, errIterate(iterable)
	}
	elems := iterable.Elems()

	// The separator, when present, is evaluated exactly once, before the
	// loop variable is ever bound — not once per gap — per spec §4.4's
	// "Evaluate sep once." A separator referencing the loop variable must
	// therefore see it as undefined, never the current or any other
	// element.
	var sep string
	haveSep := n.Separator != nil
	if haveSep {
		sepVal, err := e.eval(n.Separator, locals)
		if err != nil {
			return Value{}, err
		}
		if sepVal.Kind != StringKind {
			return Value{}, errOperation("for separator must be a string, got %s", sepVal.kindName())
		}
		sep = sepVal.Render()
	}

	var out string
	for i, elem := range elems {
		iterLocals := extendLocals(locals, n.Var, elem)
		v, err := e.eval(n.Body, iterLocals)
		if err != nil {
			return Value{}, err
		}
		out += v.Render()

		if haveSep && i < len(elems)-1 {
			out += sep
		}
	}
	return String(out), nil
}

// extendLocals returns a new scope with name bound to v, leaving parent
// untouched. A fresh map per iteration keeps one iteration's binding from
// leaking into the next, even though the variable name is shared text
// across iterations (spec's lexical-scoping requirement for for-loop
// variables).
func extendLocals(parent map[string]Value, name string, v Value) map[string]Value {
	m := make(map[string]Value, len(parent)+1)
	for k, vv := range parent {
		m[k] = vv
	}
	m[name] = v
	return m
}
