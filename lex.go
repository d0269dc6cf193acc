package decexpr

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a numeric literal, possibly with a leading unary minus.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is a registered operator.
	tokenOp
	// tokenOpen is an open parenthesis. In RPN, it marks the start of a
	// function's arguments.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is a function argument separator.
	tokenSep
)

var tokenKindNames = [...]string{
	tokenNone:  "None",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// lexer splits a source string into tokens. Whether a minus sign is unary
// depends on the previous token, so a lexer can't be restarted mid-input.
type lexer struct {
	src  []rune
	at   int
	isOp func(string) bool
	prev lexToken
}

func lex(src string, isOp func(string) bool) *lexer {
	return &lexer{
		src:  []rune(src),
		isOp: isOp,
	}
}

// peek returns the rune k positions past the current one, or 0 past the end.
func (l *lexer) peek(k int) rune {
	if l.at+k < len(l.src) {
		return l.src[l.at+k]
	}
	return 0
}

// next scans the next token from the input. The result is io.EOF once the
// input is exhausted. After a LexError, scanning may continue from the
// following rune.
func (l *lexer) next() (lexToken, error) {
	for l.at < len(l.src) && unicode.IsSpace(l.src[l.at]) {
		l.at++
	}
	if l.at >= len(l.src) {
		return lexToken{}, io.EOF
	}
	tok := lexToken{pos: l.at + 1}
	r := l.src[l.at]
	switch {
	case isDigit(r):
		tok.text = l.scanNum()
		tok.kind = tokenNum
	case r == '-' && isDigit(l.peek(1)) && l.unaryContext():
		l.at++
		tok.text = "-" + l.scanNum()
		tok.kind = tokenNum
	case r == '_', unicode.IsLetter(r):
		tok.text = l.scanIdent()
		tok.kind = tokenIdent
	case r == '(':
		l.at++
		tok.text = "("
		tok.kind = tokenOpen
	case r == ')':
		l.at++
		tok.text = ")"
		tok.kind = tokenClose
	case r == ',':
		l.at++
		tok.text = ","
		tok.kind = tokenSep
	default:
		tok.text = l.scanOp()
		if !l.isOp(tok.text) {
			return lexToken{}, &LexError{Text: tok.text, Col: tok.pos}
		}
		tok.kind = tokenOp
	}
	l.prev = tok
	return tok, nil
}

// unaryContext reports whether a minus sign at the current position would be
// a sign rather than subtraction.
func (l *lexer) unaryContext() bool {
	switch l.prev.kind {
	case tokenNone, tokenOpen, tokenSep, tokenOp:
		return true
	default:
		return false
	}
}

// scanNum scans digits with at most one decimal point and one exponent
// marker. A sign is part of the number only directly after the exponent
// marker. Whether the result is actually a number is decided at evaluation.
func (l *lexer) scanNum() string {
	start := l.at
	var dot, exp bool
	for l.at < len(l.src) {
		r := l.src[l.at]
		switch {
		case isDigit(r):
		case r == '.' && !dot && !exp:
			dot = true
		case (r == 'e' || r == 'E') && !exp:
			exp = true
		case (r == '-' || r == '+') && l.at > start && (l.src[l.at-1] == 'e' || l.src[l.at-1] == 'E'):
		default:
			return string(l.src[start:l.at])
		}
		l.at++
	}
	return string(l.src[start:l.at])
}

func (l *lexer) scanIdent() string {
	start := l.at
	for l.at < len(l.src) {
		r := l.src[l.at]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.at++
	}
	return string(l.src[start:l.at])
}

// scanOp scans a run of symbol characters. A minus sign ends the run so that
// e.g. "2*-3" scans as "*" followed by "-3". The first rune is always
// consumed.
func (l *lexer) scanOp() string {
	start := l.at
	l.at++
	for l.at < len(l.src) && l.src[l.at] != '-' {
		r := l.src[l.at]
		if r == '_' || r == '(' || r == ')' || r == ',' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			break
		}
		l.at++
	}
	return string(l.src[start:l.at])
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isNumber reports whether a token's text looks like a numeric literal.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	s = strings.TrimPrefix(s, "-")
	return s != "" && isDigit(rune(s[0]))
}
