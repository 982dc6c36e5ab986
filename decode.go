package jkeep

import (
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Parse decodes JSON text into a Document, recording object member keys in
// the order they occur in the input. The grammar is standard JSON (RFC 8259).
// Numbers decode as float64, strings as string, booleans as bool, null as
// nil; nested objects become Documents and nested arrays become Arrays.
//
// Duplicate keys within one object are tolerated: the key keeps the position
// of its first occurrence and the value of its last occurrence.
//
// Malformed input yields a *ParseError. A top-level value that is not an
// object yields a *ShapeError.
func Parse(data []byte) (Document, error) {
	var v any
	err := json.Unmarshal(data, &v,
		jsontext.AllowDuplicateNames(true),
		json.WithUnmarshalers(Unmarshalers()))
	if err != nil {
		return nil, parseError(err)
	}
	doc, ok := v.(Document)
	if !ok {
		return nil, &ShapeError{Want: "object", Got: typeName(v)}
	}
	return doc, nil
}

// parseError wraps a decode failure as *ParseError, lifting the byte offset
// out of the underlying syntactic or semantic error when present.
func parseError(err error) error {
	var syn *jsontext.SyntacticError
	if errors.As(err, &syn) {
		return &ParseError{Offset: syn.ByteOffset, Err: err}
	}
	var sem *json.SemanticError
	if errors.As(err, &sem) {
		return &ParseError{Offset: sem.ByteOffset, Err: err}
	}
	return &ParseError{Err: err}
}

// Unmarshalers returns the full set of jkeep unmarshalers allowing decoding
// into:
//   - any/interface{} -> objects as Document, arrays as Array
//   - *Document       -> direct ordered object decoding
//   - *Array          -> direct array decoding
//
// The bundle is what Parse installs; it is exported so callers can compose it
// into their own json/v2 calls, e.g. when a Document sits inside a larger
// target value. Without jsontext.AllowDuplicateNames the decoder rejects
// repeated keys before the duplicate policy can apply.
func Unmarshalers() *json.Unmarshalers {
	return json.JoinUnmarshalers(
		unmarshalValue(),
		unmarshalDocument(),
		unmarshalArray(),
	)
}

// unmarshalValue routes JSON objects and arrays encountered while decoding
// into interface{} to Document and Array. Primitive values (string, number,
// bool, null) are left to the default decode logic via json.SkipFunc.
//
// Empty objects ({}) produce an empty Document; empty arrays ([]) produce an
// empty Array.
func unmarshalValue() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			doc, err := decodeObject(dec)
			if err != nil {
				return err
			}
			*v = doc
			return nil
		case '[':
			arr, err := decodeArray(dec)
			if err != nil {
				return err
			}
			*v = arr
			return nil
		default:
			return json.SkipFunc
		}
	})
}

// unmarshalDocument provides decoding of a JSON object into a *Document when
// the target type is *Document (ordered key preservation).
func unmarshalDocument() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Document) error {
		if dec.PeekKind() != '{' {
			return json.SkipFunc
		}
		doc, err := decodeObject(dec)
		if err != nil {
			return err
		}
		*v = doc
		return nil
	})
}

// unmarshalArray provides decoding of a JSON array into an *Array when the
// target type is *Array.
func unmarshalArray() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Array) error {
		if dec.PeekKind() != '[' {
			return json.SkipFunc
		}
		arr, err := decodeArray(dec)
		if err != nil {
			return err
		}
		*v = arr
		return nil
	})
}

// decodeObject decodes a JSON object into a Document. Repeated keys keep
// their first position and last value.
func decodeObject(dec *jsontext.Decoder) (Document, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	doc := Document{}
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		var v any
		if err := json.UnmarshalDecode(dec, &v); err != nil {
			return nil, fmt.Errorf("read object value for key %q: %w", k, err)
		}
		doc = doc.upsert(k, v)
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return doc, nil
}

// decodeArray decodes a JSON array into an Array.
func decodeArray(dec *jsontext.Decoder) (Array, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := Array{}
	for dec.PeekKind() != ']' {
		var elem any
		if err := json.UnmarshalDecode(dec, &elem); err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		arr = append(arr, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}
