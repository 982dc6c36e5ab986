package jkeep

import "fmt"

// ParseError reports malformed JSON input. Offset is the byte offset at which
// decoding failed, when the underlying decoder reported one.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("parse JSON at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("parse JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports a value whose JSON type does not match the shape an
// operation requires, such as a non-object where fields were expected.
type ShapeError struct {
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("expected JSON %s, got %s", e.Want, e.Got)
}

// FieldNotFoundError reports a key requested by a strict projection that is
// absent from the source document.
type FieldNotFoundError struct {
	Key string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found", e.Key)
}

// typeName names v's JSON type for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case Document, map[string]any:
		return "object"
	case Array, []any:
		return "array"
	case string:
		return "string"
	case float64, float32, int, int64, uint64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
