package lucene

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError describes malformed query text.
type SyntaxError struct {
	Query string
	// Offset is the byte offset in Query where parsing failed.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at offset %d: %s", e.Offset, e.Msg)
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokTerm
	tokPhrase
	tokColon
	tokLParen
	tokRParen
	tokRangeOpen
	tokRangeClose
	tokAnd
	tokOr
	tokNot
	tokPlus
	tokMinus
)

var tokenNames = map[tokenKind]string{
	tokEOF:        "end of query",
	tokTerm:       "term",
	tokPhrase:     "phrase",
	tokColon:      `":"`,
	tokLParen:     `"("`,
	tokRParen:     `")"`,
	tokRangeOpen:  "range start",
	tokRangeClose: "range end",
	tokAnd:        "AND",
	tokOr:         "OR",
	tokNot:        "NOT",
	tokPlus:       `"+"`,
	tokMinus:      `"-"`,
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	// text is the unescaped value of terms and phrases.
	text string
	pos  int
	// wildcard is set for terms holding an unescaped * or ?.
	wildcard bool
	// escaped is set when any character of the term was backslash-escaped.
	escaped bool
	// inclusive is set for the [ and ] range brackets.
	inclusive bool
}

func isSpace(r rune) bool { return unicode.IsSpace(r) }

// isBreak reports whether r terminates an unescaped term.
func isBreak(r rune) bool {
	switch r {
	case '(', ')', ':', '[', ']', '{', '}', '"', '\\':
		return true
	}
	return isSpace(r)
}

type lexer struct {
	query string
	pos   int
	toks  []token
}

func lex(query string) ([]token, error) {
	l := &lexer{query: query}
	for {
		r, width := l.peek()
		switch {
		case width == 0:
			l.emit(token{kind: tokEOF, pos: l.pos})
			return l.toks, nil
		case isSpace(r):
			l.pos += width
		case r == '(':
			l.single(tokLParen)
		case r == ')':
			l.single(tokRParen)
		case r == ':':
			l.single(tokColon)
		case r == '[' || r == '{':
			l.emit(token{kind: tokRangeOpen, pos: l.pos, inclusive: r == '['})
			l.pos++
		case r == ']' || r == '}':
			l.emit(token{kind: tokRangeClose, pos: l.pos, inclusive: r == ']'})
			l.pos++
		case r == '"':
			if err := l.phrase(); err != nil {
				return nil, err
			}
		case r == '!':
			l.single(tokNot)
		case (r == '-' || r == '+') && !l.digitFollows():
			if r == '-' {
				l.single(tokMinus)
			} else {
				l.single(tokPlus)
			}
		default:
			if err := l.term(); err != nil {
				return nil, err
			}
		}
	}
}

func (l *lexer) peek() (rune, int) {
	if l.pos >= len(l.query) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.query[l.pos:])
}

func (l *lexer) digitFollows() bool {
	next := l.pos + 1
	return next < len(l.query) && l.query[next] >= '0' && l.query[next] <= '9'
}

func (l *lexer) emit(t token) { l.toks = append(l.toks, t) }

func (l *lexer) single(kind tokenKind) {
	l.emit(token{kind: kind, pos: l.pos})
	l.pos++
}

func (l *lexer) errorf(offset int, format string, args ...interface{}) error {
	return &SyntaxError{Query: l.query, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) phrase() error {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		r, width := l.peek()
		switch {
		case width == 0:
			return l.errorf(start, "unterminated phrase")
		case r == '\\':
			l.pos += width
			_, escWidth := l.peek()
			if escWidth == 0 {
				return l.errorf(l.pos-1, "dangling escape character")
			}
			sb.WriteString(l.query[l.pos : l.pos+escWidth])
			l.pos += escWidth
		case r == '"':
			l.pos += width
			l.emit(token{kind: tokPhrase, text: sb.String(), pos: start})
			return nil
		default:
			sb.WriteString(l.query[l.pos : l.pos+width])
			l.pos += width
		}
	}
}

func (l *lexer) term() error {
	tok := token{kind: tokTerm, pos: l.pos}
	var sb strings.Builder
	for {
		r, width := l.peek()
		if width == 0 {
			break
		}
		if r == '\\' {
			l.pos += width
			_, escWidth := l.peek()
			if escWidth == 0 {
				return l.errorf(l.pos-1, "dangling escape character")
			}
			tok.escaped = true
			sb.WriteString(l.query[l.pos : l.pos+escWidth])
			l.pos += escWidth
			continue
		}
		if isBreak(r) {
			break
		}
		if r == '*' || r == '?' {
			tok.wildcard = true
		}
		sb.WriteString(l.query[l.pos : l.pos+width])
		l.pos += width
	}

	tok.text = sb.String()
	if !tok.escaped {
		switch tok.text {
		case "AND", "&&":
			tok.kind = tokAnd
		case "OR", "||":
			tok.kind = tokOr
		case "NOT":
			tok.kind = tokNot
		}
	}
	l.emit(tok)
	return nil
}

// Escape backslash-escapes s so that it parses back as one literal term.
// Plain words are returned unchanged.
func Escape(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case isBreak(r), r == '*', r == '?':
			sb.WriteByte('\\')
		case i == 0 && (r == '-' || r == '+' || r == '!'):
			sb.WriteByte('\\')
		}
		if r == utf8.RuneError {
			if _, width := utf8.DecodeRuneInString(s[i:]); width == 1 {
				//invalid byte, keep it as it is
				sb.WriteByte(s[i])
				continue
			}
		}
		sb.WriteRune(r)
	}
	escaped := sb.String()
	switch escaped {
	case "AND", "OR", "NOT", "TO", "&&", "||":
		return `\` + escaped
	}
	return escaped
}
