package tmplgo

// Template is a compiled template: a parsed, immutable AST. Compile once,
// Execute many times — Execute takes no lock and mutates nothing on t, so
// the same *Template can be run concurrently from multiple goroutines
// (spec §5), each with its own Variables/Functions.
type Template struct {
	source string
	root   *BodyNode
}

// Compile parses source into a reusable Template. A syntax error is
// reported via a *ParseError (possibly wrapping a *LexError).
func Compile(source string) (*Template, error) {
	root, err := parseAll(source)
	if err != nil {
		return nil, err
	}
	return &Template{source: source, root: root}, nil
}

// Execute renders t against the given variable and function lookups. A
// nil vars or funcs behaves like NoVariables/NoFunctions.
func (t *Template) Execute(vars Variables, funcs Functions) (string, error) {
	if vars == nil {
		vars = NoVariables
	}
	if funcs == nil {
		funcs = NoFunctions
	}
	e := &evaluator{vars: vars, funcs: funcs}
	v, err := e.eval(t.root, nil)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// Source returns the template text t was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Render compiles source and executes it in one step. Callers that render
// the same source repeatedly should Compile once and reuse the Template
// instead.
func Render(source string, vars Variables, funcs Functions) (string, error) {
	t, err := Compile(source)
	if err != nil {
		return "", err
	}
	return t.Execute(vars, funcs)
}
