package memory

import (
	"context"
	"strconv"

	bleveindex "github.com/blevesearch/bleve/index"
	"github.com/blevesearch/bleve/numeric"
)

// termIterator adapts a bleve field dictionary to index.TermIterator.
type termIterator struct {
	ctx  context.Context
	dict bleveindex.FieldDict
	//number of terms the iterator may still emit
	remaining int
	//numeric is set when the field holds numbers
	numeric bool

	latchedTerm string
	lastErr     error
}

// Next loads the next term of the dictionary.
// It returns false if no more terms are available or the limit was reached.
func (it *termIterator) Next() bool {
	if it.lastErr != nil || it.dict == nil || it.remaining <= 0 {
		return false
	}
	if it.lastErr = it.ctx.Err(); it.lastErr != nil {
		return false
	}

	for {
		entry, err := it.dict.Next()
		if err != nil {
			it.lastErr = err
			return false
		}
		if entry == nil {
			return false
		}

		term := entry.Term
		if it.numeric {
			var ok bool
			if term, ok = decodeTerm(term); !ok {
				continue
			}
		}
		it.latchedTerm = term
		it.remaining--
		return true
	}
}

/*
decodeTerm turns a dictionary entry of a numeric field into a field value.
Numbers are indexed as prefix coded terms at every shift precision; only the
full precision (shift 0) term stands for a stored value, and it is rendered
back as the shortest decimal form of the number. Entries that are not prefix
coded come from string values of the same field and are returned unchanged.
*/
func decodeTerm(term string) (string, bool) {
	if !isPrefixCoded(term) {
		return term, true
	}
	coded := numeric.PrefixCoded(term)
	if shift, err := coded.Shift(); err != nil || shift != 0 {
		return "", false
	}
	i, err := coded.Int64()
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(numeric.Int64ToFloat64(i), 'f', -1, 64), true
}

// isPrefixCoded reports whether term has the exact shape of a prefix coded
// number: a shift byte, the matching length and 7-bit payload bytes.
func isPrefixCoded(term string) bool {
	valid, _ := numeric.ValidPrefixCodedTerm(term)
	if !valid {
		return false
	}
	for i := 1; i < len(term); i++ {
		if term[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Term returns the current term.
func (it *termIterator) Term() string {
	return it.latchedTerm
}

// Error returns the last error encountered by the iterator.
func (it *termIterator) Error() error {
	return it.lastErr
}

// Close the iterator and release the dictionary.
func (it *termIterator) Close() error {
	if it.dict == nil {
		return nil
	}
	err := it.dict.Close()
	it.dict = nil
	return err
}
