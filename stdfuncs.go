package tmplgo

import "strings"

// StdFunctions is a small set of built-in helpers covering the common
// string/array operations a template author reaches for. It's a plain
// MapFunctions, so callers can merge it with their own host functions
// (e.g. by copying the entries into a larger map) rather than being stuck
// with exactly this set.
var StdFunctions = MapFunctions{
	"len":   fnLen,
	"upper": fnUpper,
	"lower": fnLower,
	"join":  fnJoin,
}

func fnLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, errOperation("len() takes exactly 1 argument, got %d", len(args))
	}
	switch args[0].Kind {
	case StringKind:
		return Number(float64(len([]rune(args[0].Str())))), nil
	case ArrayKind:
		return Number(float64(len(args[0].Elems()))), nil
	default:
		return Value{}, errOperation("len() is not defined for %s", args[0].kindName())
	}
}

func fnUpper(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != StringKind {
		return Value{}, errOperation("upper() takes exactly 1 string argument")
	}
	return String(strings.ToUpper(args[0].Str())), nil
}

func fnLower(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != StringKind {
		return Value{}, errOperation("lower() takes exactly 1 string argument")
	}
	return String(strings.ToLower(args[0].Str())), nil
}

func fnJoin(args []Value) (Value, error) {
	if len(args) != 2 || args[0].Kind != ArrayKind || args[1].Kind != StringKind {
		return Value{}, errOperation("join() takes an array and a string separator")
	}
	elems := args[0].Elems()
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = el.Render()
	}
	return String(strings.Join(parts, args[1].Str())), nil
}
