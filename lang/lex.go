package lang

import (
	"unicode"
	"unicode/utf8"
)

// reservedOps maps the alphabetic operator words to their token kinds.
// An alphabetic run lexes as an operator only when the run is exactly one
// of these words; "drop", "khx", etc. remain identifiers.
var reservedOps = map[string]Kind{
	"d":  KindDice,
	"kh": KindKeepHigh,
	"kl": KindKeepLow,
	"dh": KindDropHigh,
	"dl": KindDropLow,
}

// Lex tokenizes the source text into a finite token sequence terminated by
// an EOF token, or fails with a *LexError at the first unknown character.
// Whitespace is insignificant and never produces tokens.
func Lex(input string) ([]Token, error) {
	l := &lexer{
		input: input,
		line:  1,
		col:   1,
	}

	return l.run()
}

// lexer holds the scanner state.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

func (l *lexer) run() ([]Token, error) {
	tokens := make([]Token, 0, 16)

	for {
		l.skipWhitespace()

		if l.eof() {
			tokens = append(tokens, Token{Kind: KindEOF, Pos: l.position()})

			return tokens, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}
}

// next scans a single token. The caller has already skipped whitespace and
// verified there is input remaining.
func (l *lexer) next() (Token, error) {
	pos := l.position()
	ch := l.peek()

	switch {
	case unicode.IsDigit(ch):
		return l.scanInt(pos), nil

	case isWordStart(ch):
		return l.scanWord(pos), nil
	}

	kind := KindEOF

	switch ch {
	case '+':
		kind = KindAdd
	case '-':
		kind = KindSub
	case '*':
		kind = KindMul
	case '(':
		kind = KindLParen
	case ')':
		kind = KindRParen
	case '{':
		kind = KindLBrace
	case '}':
		kind = KindRBrace
	case '[':
		kind = KindLBracket
	case ']':
		kind = KindRBracket
	case ',':
		kind = KindComma

	case '=':
		l.advance()

		if l.peek() != '=' {
			return Token{}, &LexError{Char: ch, Pos: pos}
		}

		l.advance()

		return Token{Kind: KindEq, Text: "==", Pos: pos}, nil

	case '!':
		l.advance()

		if l.peek() != '=' {
			return Token{}, &LexError{Char: ch, Pos: pos}
		}

		l.advance()

		return Token{Kind: KindNe, Text: "!=", Pos: pos}, nil

	case '<':
		l.advance()

		if l.peek() == '=' {
			l.advance()

			return Token{Kind: KindLe, Text: "<=", Pos: pos}, nil
		}

		return Token{Kind: KindLt, Text: "<", Pos: pos}, nil

	case '>':
		l.advance()

		if l.peek() == '=' {
			l.advance()

			return Token{Kind: KindGe, Text: ">=", Pos: pos}, nil
		}

		return Token{Kind: KindGt, Text: ">", Pos: pos}, nil

	default:
		return Token{}, &LexError{Char: ch, Pos: pos}
	}

	l.advance()

	return Token{Kind: kind, Text: string(ch), Pos: pos}, nil
}

// scanInt scans a run of decimal digits. Conversion to int64 is deferred
// to the parser.
func (l *lexer) scanInt(pos Position) Token {
	start := l.pos

	for !l.eof() && unicode.IsDigit(l.peek()) {
		l.advance()
	}

	return Token{Kind: KindInt, Text: l.input[start:l.pos], Pos: pos}
}

// scanWord scans an alphabetic run and classifies it as an operator word
// or an identifier. The run of letters is scanned first; only if it is not
// a reserved word does the scan extend over trailing digits, so "4d6kh3"
// tokenizes as 4, d, 6, kh, 3 while "max" and "drop2" remain identifiers.
func (l *lexer) scanWord(pos Position) Token {
	start := l.pos

	for !l.eof() && isWordStart(l.peek()) {
		l.advance()
	}

	word := l.input[start:l.pos]

	if kind, ok := reservedOps[word]; ok {
		return Token{Kind: kind, Text: word, Pos: pos}
	}

	// Identifier: continue over digits and letters.
	for !l.eof() && isWordContinue(l.peek()) {
		l.advance()
	}

	return Token{Kind: KindIdent, Text: l.input[start:l.pos], Pos: pos}
}

// Helper methods

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *lexer) skipWhitespace() {
	for !l.eof() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// Character classification

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isWordContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
