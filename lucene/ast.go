// Package lucene parses Lucene-style query text into a small syntax tree
// that index adapters compile into their native query form.
package lucene

import (
	"strings"
)

// Node is implemented by every element of a parsed query.
type Node interface {
	// String renders the node back into query syntax.
	String() string
}

// MatchAll matches every document. Parse returns it for empty text and for *:*.
type MatchAll struct{}

// Term matches Value in Field, or in the default field when Field is empty.
type Term struct {
	Field string
	Value string
	// Phrase is set for quoted values.
	Phrase bool
	// Wildcard is set when an unquoted value contains unescaped * or ? characters.
	Wildcard bool
}

// Range matches values of Field between Min and Max. An empty bound is open.
type Range struct {
	Field        string
	Min, Max     string
	MinInclusive bool
	MaxInclusive bool
}

// And matches documents matching every clause.
type And struct{ Clauses []Node }

// Or matches documents matching at least one clause.
type Or struct{ Clauses []Node }

// Not matches documents that do not match Clause.
type Not struct{ Clause Node }

/*
Bool is a list of clauses written next to each other where at least one
carries a + or - modifier. A document matches when it matches every Must
clause and no MustNot clause. Should clauses are optional when Must is not
empty; otherwise at least one of them has to match. With only MustNot
clauses every other document matches.
*/
type Bool struct {
	Must    []Node
	Should  []Node
	MustNot []Node
}

func (MatchAll) String() string { return "*:*" }

func (t *Term) String() string {
	var value string
	switch {
	case t.Phrase:
		value = `"` + strings.ReplaceAll(t.Value, `"`, `\"`) + `"`
	case t.Wildcard:
		value = t.Value
	default:
		value = Escape(t.Value)
	}
	if t.Field == "" {
		return value
	}
	return t.Field + ":" + value
}

func (r *Range) String() string {
	var sb strings.Builder
	if r.Field != "" {
		sb.WriteString(r.Field)
		sb.WriteByte(':')
	}
	if r.MinInclusive {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('{')
	}
	sb.WriteString(bound(r.Min))
	sb.WriteString(" TO ")
	sb.WriteString(bound(r.Max))
	if r.MaxInclusive {
		sb.WriteByte(']')
	} else {
		sb.WriteByte('}')
	}
	return sb.String()
}

func bound(v string) string {
	if v == "" {
		return "*"
	}
	return Escape(v)
}

func (a *And) String() string { return join(a.Clauses, " AND ") }

func (o *Or) String() string { return join(o.Clauses, " OR ") }

func (n *Not) String() string { return "NOT " + wrap(n.Clause) }

func (b *Bool) String() string {
	parts := make([]string, 0, len(b.Must)+len(b.Should)+len(b.MustNot))
	for _, c := range b.Must {
		parts = append(parts, "+"+wrapSigned(c))
	}
	for _, c := range b.Should {
		parts = append(parts, wrap(c))
	}
	for _, c := range b.MustNot {
		parts = append(parts, "-"+wrapSigned(c))
	}
	return strings.Join(parts, " ")
}

func join(clauses []Node, sep string) string {
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		parts[i] = wrap(c)
	}
	return strings.Join(parts, sep)
}

func wrap(n Node) string {
	switch n.(type) {
	case *And, *Or, *Bool:
		return "(" + n.String() + ")"
	default:
		return n.String()
	}
}

// wrapSigned renders a clause that follows a + or - modifier. A leading digit
// would turn the modifier into the sign of a number, so such clauses are
// grouped.
func wrapSigned(n Node) string {
	s := wrap(n)
	if s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.') {
		return "(" + s + ")"
	}
	return s
}
