// Package tmplgo is a small text-templating engine: `{{ expr }}`
// interpolation, `{{ if }}`/`{{ elif }}`/`{{ else }}` branches, and
// `{{ for x in xs }}` loops (with an optional separator expression) over a
// handful of value kinds (strings, numbers, booleans, arrays).
//
// Compile once, Execute many times:
//
//	tpl, err := tmplgo.Compile("Hello {{ name }}!")
//	if err != nil {
//		panic(err)
//	}
//	out, err := tpl.Execute(tmplgo.MapVariables{"name": tmplgo.String("Florian")}, nil)
//	if err != nil {
//		panic(err)
//	}
//	fmt.Println(out) // Output: Hello Florian!
//
// A *Template is safe to Execute from multiple goroutines at once, each
// with its own Variables and Functions.
package tmplgo
