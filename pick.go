package jkeep

// Pick projects a new document containing the named fields in the order
// given, regardless of their order in d. Keys absent from d are silently
// skipped; use PickStrict when absence should fail. A repeated key in the
// argument list keeps its first position.
func (d Document) Pick(keys ...string) Document {
	out := Document{}
	for _, k := range keys {
		if v, ok := d.Get(k); ok {
			out = out.upsert(k, v)
		}
	}
	return out
}

// PickStrict is Pick with a strict missing-field policy: the first requested
// key absent from d fails with a *FieldNotFoundError.
func (d Document) PickStrict(keys ...string) (Document, error) {
	out := Document{}
	for _, k := range keys {
		v, ok := d.Get(k)
		if !ok {
			return nil, &FieldNotFoundError{Key: k}
		}
		out = out.upsert(k, v)
	}
	return out, nil
}
