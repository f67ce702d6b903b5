package facet

import (
	"bytes"
	"encoding/json"

	"golang.org/x/xerrors"
)

// Value is a single aggregation bucket.
type Value struct {
	// Range is the matched term for terms facets or the literal range
	// expression for range facets.
	Range string `json:"range"`
	Count uint64 `json:"count"`
	// Children holds the child facet results computed over the documents
	// that also match this value. Empty when the facet has no children.
	Children Result `json:"children,omitempty"`
}

// Entry pairs a facet name with its emitted values.
type Entry struct {
	Name   string
	Values []Value
}

/*
Result maps facet names to their values. It is kept as a slice so that
entries stay in the order the facets were declared, both when iterating and
when encoded as a JSON object.
*/
type Result []Entry

// Get returns the values stored under name.
func (r Result) Get(name string) ([]Value, bool) {
	for _, e := range r {
		if e.Name == name {
			return e.Values, true
		}
	}
	return nil, false
}

// Set stores values under name, replacing an existing entry in place.
func (r *Result) Set(name string, values []Value) {
	for i := range *r {
		if (*r)[i].Name == name {
			(*r)[i].Values = values
			return
		}
	}
	*r = append(*r, Entry{Name: name, Values: values})
}

// Names returns the facet names in declaration order.
func (r Result) Names() []string {
	names := make([]string, len(r))
	for i, e := range r {
		names[i] = e.Name
	}
	return names
}

// MarshalJSON encodes r as an object whose keys keep declaration order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		values := e.Values
		if values == nil {
			values = []Value{}
		}
		encoded, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object into r, preserving key order.
func (r *Result) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return xerrors.Errorf("facet result: %w", err)
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return xerrors.Errorf("facet result: expected object, got %v", tok)
	}

	var out Result
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return xerrors.Errorf("facet result: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return xerrors.Errorf("facet result: expected facet name, got %v", tok)
		}
		var values []Value
		if err = dec.Decode(&values); err != nil {
			return xerrors.Errorf("facet result %q: %w", name, err)
		}
		out = append(out, Entry{Name: name, Values: values})
	}
	*r = out
	return nil
}
