package lucene

import "fmt"

/*
Parse turns query text into a syntax tree.

Operator precedence is NOT, then AND, then OR. Clauses written next to each
other without an operator are OR-ed, matching Lucene's default operator.
"+x" marks a required clause and "-x", "!x" or NOT x a prohibited one, so
"a +b -c" matches documents with b and without c whether or not they hold a.
A list holding modifiers parses into a Bool; without any it is a plain Or.
A field name followed by a parenthesised group applies the field to every
unqualified clause of the group. Ranges may mix brackets, so [0 TO 10} is
inclusive below and exclusive above; * and NULL denote an open bound.
Empty text and *:* match all documents.
*/
func Parse(text string) (Node, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{query: text, toks: toks}
	if p.peek().kind == tokEOF {
		return MatchAll{}, nil
	}

	n, err := p.parseOr("")
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s", tok.kind)
	}
	return n, nil
}

type parser struct {
	query string
	toks  []token
	pos   int
}

func (p *parser) peek() token { return p.peekAt(0) }

func (p *parser) peekAt(offset int) token {
	if i := p.pos + offset; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...interface{}) error {
	return &SyntaxError{Query: p.query, Offset: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func startsClause(kind tokenKind) bool {
	switch kind {
	case tokTerm, tokPhrase, tokLParen, tokRangeOpen, tokNot, tokMinus, tokPlus:
		return true
	}
	return false
}

// occur is the role a clause plays in a list of clauses.
type occur int

const (
	occurShould occur = iota
	occurMust
	occurMustNot
)

func (p *parser) parseOr(field string) (Node, error) {
	var must, should, mustNot []Node
	for {
		clause, role, err := p.parseAnd(field)
		if err != nil {
			return nil, err
		}
		switch role {
		case occurMust:
			must = append(must, clause)
		case occurMustNot:
			mustNot = append(mustNot, clause)
		default:
			should = append(should, clause)
		}

		tok := p.peek()
		if tok.kind == tokOr {
			p.next()
		} else if !startsClause(tok.kind) {
			break
		}
	}

	switch {
	case len(must)+len(should)+len(mustNot) == 1:
		if len(mustNot) == 1 {
			return &Not{Clause: mustNot[0]}, nil
		}
		if len(must) == 1 {
			return must[0], nil
		}
		return should[0], nil
	case len(must) == 0 && len(mustNot) == 0:
		return &Or{Clauses: should}, nil
	default:
		return &Bool{Must: must, Should: should, MustNot: mustNot}, nil
	}
}

/*
parseAnd returns a single clause with its modifier, or an AND group. A group
is an ordinary optional clause; a modifier inside it only negates or keeps
its own operand.
*/
func (p *parser) parseAnd(field string) (Node, occur, error) {
	first, role, err := p.parseClause(field)
	if err != nil {
		return nil, occurShould, err
	}
	if p.peek().kind != tokAnd {
		return first, role, nil
	}

	clauses := []Node{applyOccur(first, role)}
	for p.peek().kind == tokAnd {
		p.next()
		clause, role, err := p.parseClause(field)
		if err != nil {
			return nil, occurShould, err
		}
		clauses = append(clauses, applyOccur(clause, role))
	}
	return &And{Clauses: clauses}, occurShould, nil
}

func applyOccur(n Node, role occur) Node {
	if role == occurMustNot {
		return &Not{Clause: n}
	}
	return n
}

// parseClause reads an optional +, -, ! or NOT modifier and the clause it
// applies to.
func (p *parser) parseClause(field string) (Node, occur, error) {
	role := occurShould
	switch p.peek().kind {
	case tokPlus:
		role = occurMust
	case tokMinus, tokNot:
		role = occurMustNot
	default:
		n, err := p.parsePrimary(field)
		return n, role, err
	}

	p.next()
	n, err := p.parseUnary(field)
	return n, role, err
}

func (p *parser) parseUnary(field string) (Node, error) {
	switch p.peek().kind {
	case tokNot, tokMinus:
		p.next()
		clause, err := p.parseUnary(field)
		if err != nil {
			return nil, err
		}
		return &Not{Clause: clause}, nil
	case tokPlus:
		p.next()
		return p.parseUnary(field)
	default:
		return p.parsePrimary(field)
	}
}

func (p *parser) parsePrimary(field string) (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokLParen:
		return p.parseGroup(field)
	case tokTerm:
		if p.peekAt(1).kind == tokColon {
			p.next()
			p.next()
			return p.parseFieldValue(tok.text)
		}
		p.next()
		return termNode(field, tok), nil
	case tokPhrase:
		p.next()
		return &Term{Field: field, Value: tok.text, Phrase: true}, nil
	case tokRangeOpen:
		return p.parseRange(field)
	default:
		return nil, p.errorf(tok, "unexpected %s", tok.kind)
	}
}

func (p *parser) parseGroup(field string) (Node, error) {
	open := p.next()
	n, err := p.parseOr(field)
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.kind != tokRParen {
		return nil, p.errorf(open, "unbalanced parenthesis")
	}
	return n, nil
}

func (p *parser) parseFieldValue(field string) (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokLParen:
		return p.parseGroup(field)
	case tokRangeOpen:
		return p.parseRange(field)
	case tokPhrase:
		p.next()
		return &Term{Field: field, Value: tok.text, Phrase: true}, nil
	case tokTerm:
		p.next()
		if field == "*" && tok.text == "*" && !tok.escaped {
			return MatchAll{}, nil
		}
		return termNode(field, tok), nil
	default:
		return nil, p.errorf(tok, "expected a value for field %q, got %s", field, tok.kind)
	}
}

func termNode(field string, tok token) *Term {
	return &Term{Field: field, Value: tok.text, Wildcard: tok.wildcard}
}

func (p *parser) parseRange(field string) (Node, error) {
	open := p.next()
	min, err := p.parseBound()
	if err != nil {
		return nil, err
	}
	if to := p.next(); to.kind != tokTerm || to.escaped || to.text != "TO" {
		return nil, p.errorf(to, "expected TO in range, got %s", to.kind)
	}
	max, err := p.parseBound()
	if err != nil {
		return nil, err
	}
	closing := p.next()
	if closing.kind != tokRangeClose {
		return nil, p.errorf(closing, "unterminated range")
	}
	return &Range{
		Field:        field,
		Min:          min,
		Max:          max,
		MinInclusive: open.inclusive,
		MaxInclusive: closing.inclusive,
	}, nil
}

func (p *parser) parseBound() (string, error) {
	tok := p.next()
	switch tok.kind {
	case tokPhrase:
		return tok.text, nil
	case tokTerm:
		if !tok.escaped && (tok.text == "*" || tok.text == "NULL") {
			return "", nil
		}
		return tok.text, nil
	default:
		return "", p.errorf(tok, "expected a range bound, got %s", tok.kind)
	}
}
