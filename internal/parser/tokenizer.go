// Package parser implements the catalog text format: a tokenizer, a parser
// producing a tagged value tree (numbers, strings, booleans, ordered arrays,
// and associative maps), and typed attribute accessors over maps.
//
// The format is line-agnostic: tokens are bare names, double-quoted strings,
// numbers, and the delimiters { } [ ]. A # starts a comment that runs to the
// end of the line.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TokenKind identifies the type of a token.
type TokenKind int

const (
	TokenBegin      TokenKind = iota // before the first NextToken call
	TokenEnd                         // end of input
	TokenName                        // bare identifier
	TokenString                      // double-quoted string
	TokenNumber                      // floating-point literal
	TokenBeginGroup                  // {
	TokenEndGroup                    // }
	TokenBeginArray                  // [
	TokenEndArray                    // ]
)

// Tokenizer splits catalog input into tokens. It tracks the current line
// number for diagnostics.
type Tokenizer struct {
	r          *bufio.Reader
	kind       TokenKind
	name       string
	str        string
	num        float64
	line       int
	pushedBack bool
	err        error
}

// NewTokenizer returns a Tokenizer reading from r.
func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{r: bufio.NewReader(r), line: 1}
}

// Line returns the line number of the most recently read token.
func (t *Tokenizer) Line() int { return t.line }

// Kind returns the kind of the current token.
func (t *Tokenizer) Kind() TokenKind { return t.kind }

// Name returns the value of the current token if it is a name.
func (t *Tokenizer) Name() string { return t.name }

// Text returns the value of the current token if it is a quoted string.
func (t *Tokenizer) Text() string { return t.str }

// Number returns the value of the current token if it is a number.
func (t *Tokenizer) Number() float64 { return t.num }

// Err returns the first malformed-input error encountered, if any.
func (t *Tokenizer) Err() error { return t.err }

// PushBack arranges for the current token to be returned again by the next
// NextToken call.
func (t *Tokenizer) PushBack() { t.pushedBack = true }

// NextToken advances to the next token and returns its kind. Once the input
// is exhausted or malformed it returns TokenEnd; Err distinguishes the two.
func (t *Tokenizer) NextToken() TokenKind {
	if t.pushedBack {
		t.pushedBack = false
		return t.kind
	}
	if t.err != nil {
		t.kind = TokenEnd
		return t.kind
	}
	t.kind = t.scan()
	return t.kind
}

func (t *Tokenizer) scan() TokenKind {
	for {
		c, err := t.readByte()
		if err != nil {
			return TokenEnd
		}

		switch {
		case c == '#':
			t.skipLine()
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			// whitespace
		case c == '{':
			return TokenBeginGroup
		case c == '}':
			return TokenEndGroup
		case c == '[':
			return TokenBeginArray
		case c == ']':
			return TokenEndArray
		case c == '"':
			return t.scanString()
		case isNameStart(c):
			t.r.UnreadByte()
			return t.scanName()
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			t.r.UnreadByte()
			return t.scanNumber()
		default:
			t.err = fmt.Errorf("parser: line %d: unexpected character %q", t.line, c)
			return TokenEnd
		}
	}
}

func (t *Tokenizer) readByte() (byte, error) {
	c, err := t.r.ReadByte()
	if c == '\n' {
		t.line++
	}
	return c, err
}

func (t *Tokenizer) skipLine() {
	for {
		c, err := t.readByte()
		if err != nil || c == '\n' {
			return
		}
	}
}

func (t *Tokenizer) scanString() TokenKind {
	var sb strings.Builder
	for {
		c, err := t.readByte()
		if err != nil {
			t.err = fmt.Errorf("parser: line %d: unterminated string", t.line)
			return TokenEnd
		}
		switch c {
		case '"':
			t.str = sb.String()
			return TokenString
		case '\\':
			esc, err := t.readByte()
			if err != nil {
				t.err = fmt.Errorf("parser: line %d: unterminated string", t.line)
				return TokenEnd
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(c)
		}
	}
}

func (t *Tokenizer) scanName() TokenKind {
	var sb strings.Builder
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			break
		}
		if !isNameChar(c) {
			t.r.UnreadByte()
			break
		}
		sb.WriteByte(c)
	}
	t.name = sb.String()
	return TokenName
}

func (t *Tokenizer) scanNumber() TokenKind {
	var sb strings.Builder
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			break
		}
		if !isNumberChar(c) {
			t.r.UnreadByte()
			break
		}
		sb.WriteByte(c)
	}
	n, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		t.err = fmt.Errorf("parser: line %d: bad number %q", t.line, sb.String())
		return TokenEnd
	}
	t.num = n
	return TokenNumber
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E'
}
