package lang

import (
	"errors"
	"strconv"
)

// Parse parses a RollKit expression from source text into an AST.
//
// It fails with a *LexError on an unknown character, or a *ParseError on
// any malformed construct. Parsing never partially succeeds: the whole
// input must form exactly one expression.
func Parse(input string) (Expr, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, attachSource(err, input)
	}

	if tok := p.peek(); tok.Kind != KindEOF {
		return nil, attachSource(p.unexpected(tok, "end of input"), input)
	}

	return expr, nil
}

// attachSource adds the original input to a ParseError so its Error method
// can render a caret snippet.
func attachSource(err error, input string) error {
	pe := &ParseError{}
	if errors.As(err, &pe) {
		pe.Source = input
	}

	return err
}

// binaryOps maps operator token kinds to AST operators.
var binaryOps = map[Kind]Op{
	KindDice:     OpDice,
	KindKeepHigh: OpKeepHigh,
	KindKeepLow:  OpKeepLow,
	KindDropHigh: OpDropHigh,
	KindDropLow:  OpDropLow,
	KindMul:      OpMul,
	KindAdd:      OpAdd,
	KindSub:      OpSub,
	KindEq:       OpEq,
	KindNe:       OpNe,
	KindLt:       OpLt,
	KindLe:       OpLe,
	KindGt:       OpGt,
	KindGe:       OpGe,
}

// parser holds the parser state.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

// peekAt returns the token n positions ahead without consuming, clamped to
// the trailing EOF token.
func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+n]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != KindEOF {
		p.pos++
	}

	return tok
}

// expect consumes the next token if it has the given kind, or fails.
func (p *parser) expect(kind Kind, expected string) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return Token{}, p.unexpected(tok, expected)
	}

	return p.next(), nil
}

func (p *parser) unexpected(tok Token, expected string) *ParseError {
	return &ParseError{
		Pos:      tok.Pos,
		Expected: expected,
		Found:    tok,
	}
}

// parseExpr parses an expression by precedence climbing: atoms first, then
// any binary operators binding at least as tightly as minPrec. The dice
// operator is right-associative; all others associate left.
func (p *parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOps[p.peek().Kind]
		if !ok || op.precedence() < minPrec {
			return left, nil
		}

		p.next()

		nextMin := op.precedence() + 1
		if op.rightAssoc() {
			nextMin = op.precedence()
		}

		right, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// parseAtom parses the highest-precedence constructs: integer literals,
// brace literals (explicit list or strong wrap), range literals, function
// calls, and parenthesized expressions.
func (p *parser) parseAtom() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindInt:
		p.next()

		return p.makeInt(tok, false)

	case KindSub:
		// The grammar has no unary minus operator. A '-' in atom position
		// is a negative integer literal only when the digits follow
		// immediately, with no whitespace between.
		digits := p.peekAt(1)
		if digits.Kind != KindInt ||
			digits.Pos.Offset != tok.Pos.Offset+len(tok.Text) {
			return nil, p.unexpected(tok, "expression")
		}

		p.next()
		p.next()

		return p.makeInt(digits, true)

	case KindLParen:
		p.next()

		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(KindRParen, "')'"); err != nil {
			return nil, err
		}

		return expr, nil

	case KindLBrace:
		return p.parseBraces()

	case KindLBracket:
		return p.parseRange()

	case KindIdent:
		return p.parseCall()

	default:
		return nil, p.unexpected(tok, "expression")
	}
}

// makeInt converts an integer token, with optional negation, into a
// literal node. Conversion happens here, sign included, so that the full
// int64 range is accepted and overflow is a parse error.
func (p *parser) makeInt(tok Token, neg bool) (Expr, error) {
	text := tok.Text
	pos := tok.Pos

	if neg {
		text = "-" + text
		pos.Offset--
		pos.Column--
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.unexpected(tok, "integer literal in range").Wrap(err)
	}

	return &IntegerLit{Value: value, Position: pos}, nil
}

// parseBraces parses a brace pair as either an explicit list literal or a
// strong wrap. A single comma-free expression is always a strong wrap; the
// presence of any top-level comma (including a trailing one) makes it an
// explicit list. An empty brace pair is an empty list.
func (p *parser) parseBraces() (Expr, error) {
	open, err := p.expect(KindLBrace, "'{'")
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == KindRBrace {
		p.next()

		return &ListLit{Position: open.Pos}, nil
	}

	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	switch p.peek().Kind {
	case KindRBrace:
		p.next()

		return &StrongWrap{Inner: first, Position: open.Pos}, nil

	case KindComma:
		elems := []Expr{first}

		for p.peek().Kind == KindComma {
			p.next()

			// Trailing comma before the closing brace.
			if p.peek().Kind == KindRBrace {
				break
			}

			elem, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}

			elems = append(elems, elem)
		}

		if _, err := p.expect(KindRBrace, "'}'"); err != nil {
			return nil, err
		}

		return &ListLit{Elems: elems, Position: open.Pos}, nil

	default:
		return nil, p.unexpected(p.peek(), "',' or '}'")
	}
}

// parseRange parses [start, end] or [start, end, step]. A step written as
// a literal zero is rejected here; steps that only evaluate to zero are
// caught by the evaluator.
func (p *parser) parseRange() (Expr, error) {
	open, err := p.expect(KindLBracket, "'['")
	if err != nil {
		return nil, err
	}

	start, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindComma, "','"); err != nil {
		return nil, err
	}

	end, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	var step Expr

	if p.peek().Kind == KindComma {
		p.next()

		step, err = p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		if lit, ok := step.(*IntegerLit); ok && lit.Value == 0 {
			pe := &ParseError{
				Pos:      lit.Position,
				Expected: "nonzero step",
				Found:    Token{Kind: KindInt, Text: "0", Pos: lit.Position},
			}

			return nil, pe.Wrap(ErrInvalidStep)
		}
	}

	if _, err := p.expect(KindRBracket, "']'"); err != nil {
		return nil, err
	}

	return &RangeLit{
		Start:    start,
		End:      end,
		Step:     step,
		Position: open.Pos,
	}, nil
}

// parseCall parses a function call: name(arg1, arg2, ...). An identifier
// is only valid when immediately applied; the language has no variables.
func (p *parser) parseCall() (Expr, error) {
	name, err := p.expect(KindIdent, "function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindLParen, "'('"); err != nil {
		return nil, err
	}

	args := make([]Expr, 0, 2)

	for p.peek().Kind != KindRParen {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.peek().Kind != KindComma {
			break
		}

		p.next()
	}

	if _, err := p.expect(KindRParen, "')'"); err != nil {
		return nil, err
	}

	return &CallExpr{Name: name.Text, Args: args, Position: name.Pos}, nil
}
