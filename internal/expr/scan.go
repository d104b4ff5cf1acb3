package expr

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one lexical item of an expression.
type Token struct {
	Type Type
	Pos  int // byte offset in the input
	Text string
}

// Type identifies the kind of a token.
type Type int

const (
	EOF Type = iota
	NumberToken
	Identifier
	Operator // + - * / ^
	LeftParen
	RightParen
	Comma
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NumberToken:
		return "Number"
	case Identifier:
		return "Identifier"
	case Operator:
		return "Operator"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case Comma:
		return "Comma"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s: %q", t.Type, t.Text)
}

const eof = -1

// scanner splits an expression into tokens.
type scanner struct {
	input string
	start int
	pos   int
	width int
	toks  []Token
}

// Scan returns the tokens of input, ending with an EOF token.
func Scan(input string) ([]Token, error) {
	s := &scanner{input: input}
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		s.toks = append(s.toks, tok)
		if tok.Type == EOF {
			return s.toks, nil
		}
	}
}

func (s *scanner) read() rune {
	if s.pos >= len(s.input) {
		s.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.width = w
	s.pos += w
	return r
}

func (s *scanner) backup() {
	s.pos -= s.width
}

func (s *scanner) peek() rune {
	r := s.read()
	s.backup()
	return r
}

func (s *scanner) emit(t Type) Token {
	tok := Token{Type: t, Pos: s.start, Text: s.input[s.start:s.pos]}
	s.start = s.pos
	return tok
}

func (s *scanner) errorf(format string, args ...any) error {
	return &SyntaxError{Input: s.input, Pos: s.start, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) next() (Token, error) {
	for unicode.IsSpace(s.peek()) {
		s.read()
	}
	s.start = s.pos
	r := s.read()
	switch {
	case r == eof:
		return s.emit(EOF), nil
	case r == '(':
		return s.emit(LeftParen), nil
	case r == ')':
		return s.emit(RightParen), nil
	case r == ',':
		return s.emit(Comma), nil
	case r == '*':
		if s.peek() == '*' {
			s.read()
			tok := s.emit(Operator)
			tok.Text = "^"
			return tok, nil
		}
		return s.emit(Operator), nil
	case strings.ContainsRune("+-/^", r):
		return s.emit(Operator), nil
	case r == '.' || isDigit(r):
		s.backup()
		return s.number()
	case r == '_' || unicode.IsLetter(r):
		for r := s.peek(); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r); r = s.peek() {
			s.read()
		}
		return s.emit(Identifier), nil
	}
	return Token{}, s.errorf("unexpected character %q", r)
}

// number scans digits [. digits] [eE [+-] digits].
func (s *scanner) number() (Token, error) {
	digits := s.digits()
	if s.peek() == '.' {
		s.read()
		digits += s.digits()
	}
	if digits == 0 {
		return Token{}, s.errorf("malformed number %q", s.input[s.start:s.pos])
	}
	if r := s.peek(); r == 'e' || r == 'E' {
		s.read()
		if r := s.peek(); r == '+' || r == '-' {
			s.read()
		}
		if s.digits() == 0 {
			return Token{}, s.errorf("malformed exponent in %q", s.input[s.start:s.pos])
		}
	}
	if r := s.peek(); r == '_' || unicode.IsLetter(r) {
		return Token{}, s.errorf("malformed number %q", s.input[s.start:s.pos+1])
	}
	return s.emit(NumberToken), nil
}

func (s *scanner) digits() int {
	n := 0
	for isDigit(s.peek()) {
		s.read()
		n++
	}
	return n
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
