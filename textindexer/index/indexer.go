package index

import "context"

/*
Indexer exposes an interface that can index documents and hand out
consistent snapshots for querying them.
*/
type Indexer interface {
	/*
		Index adds a document to the index, or replaces an existing document
		with the same ID.
	*/
	Index(doc *Document) error
	/*
		FindByID performs a lookup for a document by its ID
	*/
	FindByID(id string) (*Document, error)
	/*
		AcquireSnapshot pins a point-in-time view of the index. Every query
		issued through the returned Snapshot observes the same documents,
		regardless of writes that happen after the call. Callers must
		Close the snapshot once done with it.
	*/
	AcquireSnapshot(ctx context.Context) (Snapshot, error)
	/*
		Close releases any resources held by the index.
	*/
	Close() error
}

/*
Query is an executable query produced by a Snapshot. Queries are only
meaningful to the adapter that built them.
*/
type Query interface {
	//String returns a human readable form of the query, used in logs and errors
	String() string
}

/*
Snapshot is a fixed view of an index that facets are counted against.
*/
type Snapshot interface {
	/*
		Parse turns query text into an executable query. Malformed text
		fails with a *lucene.SyntaxError.
	*/
	Parse(text string) (Query, error)
	/*
		TermQuery builds a query matching documents whose field holds exactly value.
	*/
	TermQuery(field, value string) Query
	/*
		FieldValues enumerates at most limit distinct values of field across
		the whole snapshot in lexicographic order. It is not restricted by any
		query.
	*/
	FieldValues(ctx context.Context, field string, limit int) (TermIterator, error)
	/*
		CountMatches returns the number of documents matching both a and b,
		without materialising the matched documents.
	*/
	CountMatches(ctx context.Context, a, b Query) (uint64, error)
	/*
		Close releases the snapshot.
	*/
	Close() error
}

/*
TermIterator is returned by FieldValues to lazily walk a field's distinct values.
*/
type TermIterator interface {
	//Next advances the iterator, returning false if no more values are available
	Next() bool
	//Term returns the current value
	Term() string
	//Error returns last error encountered by the iterator
	Error() error
	//Close releases any resources associated with the iterator
	Close() error
}

/*
EnumerateFieldValues drains up to bound values of field from snap.
*/
func EnumerateFieldValues(ctx context.Context, snap Snapshot, field string, bound int) ([]string, error) {
	it, err := snap.FieldValues(ctx, field, bound)
	if err != nil {
		return nil, err
	}

	var values []string
	for len(values) < bound && it.Next() {
		values = append(values, it.Term())
	}
	if err = it.Error(); err != nil {
		_ = it.Close()
		return nil, err
	}
	if err = it.Close(); err != nil {
		return nil, err
	}
	return values, nil
}
