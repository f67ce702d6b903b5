package index

/*Document is an object held by a search index. Fields maps field names to
their values; strings, numbers and booleans are indexed. */
type Document struct {
	ID string

	Fields map[string]interface{}
}

// Clone returns a shallow copy of d with its own Fields map.
func (d *Document) Clone() *Document {
	dCopy := &Document{ID: d.ID, Fields: make(map[string]interface{}, len(d.Fields))}
	for k, v := range d.Fields {
		dCopy.Fields[k] = v
	}
	return dCopy
}
