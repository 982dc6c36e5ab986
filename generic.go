package jkeep

// Generic lowers the document to the ordinary map[string]any representation
// used when handing data to a medium that does not guarantee member order
// (such as a JSONB column, or any map-backed JSON writer). The lowering is
// deliberately lossy with respect to order: once lowered, a conformant writer
// is free to emit members in any order it likes. Callers needing guaranteed
// order after a round trip through such a medium must store Marshal output as
// opaque text instead.
func (d Document) Generic() any {
	m := make(map[string]any, len(d))
	for _, e := range d {
		m[e.Key] = genericValue(e.Value)
	}
	return m
}

// Generic lowers the array to []any, lowering any nested Documents.
func (a Array) Generic() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = genericValue(v)
	}
	return out
}

func genericValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Generic()
	case Array:
		return t.Generic()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = genericValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = genericValue(e)
		}
		return out
	default:
		return v
	}
}

// AsDocument asserts that v is an object node, as produced by Parse or Build.
// It returns a *ShapeError naming the actual JSON type otherwise.
func AsDocument(v any) (Document, error) {
	if d, ok := v.(Document); ok {
		return d, nil
	}
	return nil, &ShapeError{Want: "object", Got: typeName(v)}
}

// AsArray asserts that v is an array node.
func AsArray(v any) (Array, error) {
	if a, ok := v.(Array); ok {
		return a, nil
	}
	return nil, &ShapeError{Want: "array", Got: typeName(v)}
}
