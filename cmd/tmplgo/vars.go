package main

import (
	"encoding/json"
	"fmt"

	"github.com/kbowen/tmplgo"
)

// variablesFromJSON decodes a JSON object into tmplgo.MapVariables, mapping
// JSON strings/numbers/booleans/arrays onto tmplgo's four Value kinds.
// Nested objects have no tmplgo equivalent (the language has no map type)
// and are rejected rather than silently dropped.
func variablesFromJSON(data []byte) (tmplgo.MapVariables, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	vars := make(tmplgo.MapVariables, len(raw))
	for name, v := range raw {
		val, err := valueFromJSON(v)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		vars[name] = val
	}
	return vars, nil
}

func valueFromJSON(v any) (tmplgo.Value, error) {
	switch x := v.(type) {
	case string:
		return tmplgo.String(x), nil
	case float64:
		return tmplgo.Number(x), nil
	case bool:
		return tmplgo.Boolean(x), nil
	case []any:
		elems := make([]tmplgo.Value, len(x))
		for i, e := range x {
			ev, err := valueFromJSON(e)
			if err != nil {
				return tmplgo.Value{}, err
			}
			elems[i] = ev
		}
		return tmplgo.Array(elems), nil
	case nil:
		return tmplgo.Value{}, fmt.Errorf("null has no tmplgo equivalent")
	default:
		return tmplgo.Value{}, fmt.Errorf("%T has no tmplgo equivalent", v)
	}
}
