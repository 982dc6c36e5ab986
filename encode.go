package jkeep

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshal serializes the document as compact JSON with members emitted in
// entry order. The operation is idempotent: parsing the output with Parse and
// marshaling again yields byte-identical text.
//
// Scalars are canonicalized rather than echoed: numbers re-emit in the
// shortest form that round-trips through float64 (integers without exponent
// notation or trailing zeros), and strings re-escape minimally. Callers that
// need the original byte-for-byte formatting must retain the source text
// alongside the document.
func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(doc, json.WithMarshalers(Marshalers()))
}

// Marshalers returns the set of jkeep marshalers emitting Document and Array
// values in entry order. It is what Marshal installs, exported so callers can
// compose it into their own json/v2 calls when a Document sits inside a
// larger value being marshaled.
func Marshalers() *json.Marshalers {
	return json.JoinMarshalers(
		json.MarshalToFunc(encodeDocument),
		json.MarshalToFunc(encodeArray),
	)
}

// encodeDocument writes the document's members in entry order. Values recurse
// through the encoder so nested Documents and Arrays stay ordered.
func encodeDocument(enc *jsontext.Encoder, doc Document) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for _, e := range doc {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return fmt.Errorf("write object key %q: %w", e.Key, err)
		}
		if err := json.MarshalEncode(enc, e.Value); err != nil {
			return fmt.Errorf("write object value for key %q: %w", e.Key, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}

func encodeArray(enc *jsontext.Encoder, arr Array) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return fmt.Errorf("write array open: %w", err)
	}
	for i, v := range arr {
		if err := json.MarshalEncode(enc, v); err != nil {
			return fmt.Errorf("write array element %d: %w", i, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndArray); err != nil {
		return fmt.Errorf("write array close: %w", err)
	}
	return nil
}
