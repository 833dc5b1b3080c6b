package main

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/kbowen/tmplgo"
)

var (
	cyanColor   = color.New(color.FgCyan)
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
)

// repl is an interactive read-render-print loop: each line is rendered as
// a standalone template against an accumulated set of variables, so
// "{{ name = 'x' }}"-style state doesn't exist — instead ".set name value"
// assigns a string variable for subsequent lines to reference.
type repl struct {
	vars tmplgo.MapVariables
}

func newREPL() *repl {
	return &repl{vars: tmplgo.MapVariables{}}
}

func (r *repl) Run(in io.Reader, out io.Writer) {
	cyanColor.Fprintln(out, "tmplgo REPL — enter a template, or .set name value / .exit")

	rl, err := readline.NewEx(&readline.Config{Prompt: "tmplgo> ", Stdin: io.NopCloser(in)})
	if err != nil {
		redColor.Fprintf(out, "readline: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			return
		}
		if strings.HasPrefix(line, ".set ") {
			r.handleSet(out, strings.TrimPrefix(line, ".set "))
			continue
		}

		result, err := tmplgo.Render(line, r.vars, tmplgo.StdFunctions)
		if err != nil {
			redColor.Fprintf(out, "%v\n", err)
			continue
		}
		yellowColor.Fprintf(out, "%s\n", result)
	}
}

func (r *repl) handleSet(out io.Writer, rest string) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) != 2 {
		redColor.Fprintln(out, "usage: .set <name> <value>")
		return
	}
	r.vars[parts[0]] = tmplgo.String(parts[1])
}
