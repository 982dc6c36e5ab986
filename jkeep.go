// Package jkeep round-trips JSON documents without losing object member
// order. A parsed object is represented as a Document, an ordered collection
// of key-value pairs, so that re-serialization emits members exactly as they
// appeared in the input (or as the caller declared them) even after the value
// has passed through a medium that does not keep order.
//
// Documents are immutable once constructed, so the same instance may be read
// concurrently without synchronization. Every operation in the package is a
// pure transformation with no I/O and no shared state.
package jkeep

// Document represents a JSON object, defined as an ordered collection of
// key-value pairs. Entry order is the sole source of truth for serialization
// and always equals first-insertion order; it is never sorted.
type Document []Entry

// Array represents a JSON array, defined as a slice of values of any type.
type Array []any

// Entry represents a single member of a Document. It consists of a string key
// and an associated value of any type.
type Entry struct {
	Key   string
	Value any
}

// Build constructs a Document from explicitly ordered fields, independent of
// any parse step. A repeated key keeps the position of its first occurrence
// and takes the value of its last.
func Build(entries ...Entry) Document {
	doc := Document{}
	for _, e := range entries {
		doc = doc.upsert(e.Key, e.Value)
	}
	return doc
}

// upsert appends a new entry or replaces the value of an existing key in
// place. Only used during construction; documents are immutable afterwards.
func (d Document) upsert(key string, value any) Document {
	for i := range d {
		if d[i].Key == key {
			d[i].Value = value
			return d
		}
	}
	return append(d, Entry{Key: key, Value: value})
}

// Get returns the value stored under key and whether the key is present.
func (d Document) Get(key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the document's keys in entry order.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

// String renders the document as compact JSON in entry order. It exists for
// logging and debugging; use Marshal when the error matters.
func (d Document) String() string {
	b, err := Marshal(d)
	if err != nil {
		return "!ERR(" + err.Error() + ")"
	}
	return string(b)
}
