package expr

import "fmt"

// Binding powers. '^' is right associative and binds tighter than unary
// minus, so -x^2 is -(x^2).
const (
	bpNone = iota * 10
	bpSum
	bpProduct
	bpPrefix
	bpPower
)

var infix = map[string]int{
	"+": bpSum,
	"-": bpSum,
	"*": bpProduct,
	"/": bpProduct,
	"^": bpPower,
}

type parser struct {
	input string
	toks  []Token
	pos   int
}

// Parse parses an infix expression: numbers, identifiers, + - * / ^,
// unary signs, parentheses and calls f(a, b).
func Parse(input string) (Node, error) {
	toks, err := Scan(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks}
	n, err := p.expr(bpNone)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, p.errorf(tok, "unexpected %s", tok)
	}
	return n, nil
}

// MustParse is Parse for expressions known to be valid.
func MustParse(input string) Node {
	n, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Input: p.input, Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(t Type) (Token, error) {
	tok := p.next()
	if tok.Type != t {
		return tok, p.errorf(tok, "expected %s, found %s", t, tok)
	}
	return tok, nil
}

func (p *parser) expr(minBP int) (Node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Type != Operator {
			return left, nil
		}
		bp := infix[tok.Text]
		if bp <= minBP {
			return left, nil
		}
		p.next()
		rbp := bp
		if tok.Text == "^" {
			rbp--
		}
		right, err := p.expr(rbp)
		if err != nil {
			return nil, err
		}
		left = &Binary{Pos: tok.Pos, Op: tok.Text, L: left, R: right}
	}
}

func (p *parser) prefix() (Node, error) {
	tok := p.next()
	switch tok.Type {
	case NumberToken:
		return &Number{Pos: tok.Pos, Text: tok.Text}, nil
	case Identifier:
		if p.peek().Type == LeftParen {
			return p.call(tok)
		}
		return &Ident{Pos: tok.Pos, Name: tok.Text}, nil
	case LeftParen:
		n, err := p.expr(bpNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RightParen); err != nil {
			return nil, err
		}
		return n, nil
	case Operator:
		if tok.Text == "-" || tok.Text == "+" {
			x, err := p.expr(bpPrefix)
			if err != nil {
				return nil, err
			}
			return &Unary{Pos: tok.Pos, Op: tok.Text, X: x}, nil
		}
	}
	return nil, p.errorf(tok, "unexpected %s", tok)
}

func (p *parser) call(name Token) (Node, error) {
	p.next() // (
	c := &Call{Pos: name.Pos, Func: name.Text}
	if p.peek().Type == RightParen {
		p.next()
		return c, nil
	}
	for {
		arg, err := p.expr(bpNone)
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, arg)
		tok := p.next()
		switch tok.Type {
		case Comma:
			continue
		case RightParen:
			return c, nil
		}
		return nil, p.errorf(tok, "expected , or ) in call to %s, found %s", name.Text, tok)
	}
}
