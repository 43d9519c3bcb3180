package lang

import "strconv"

// Position identifies a location in the source text.
type Position struct {
	Offset int // byte offset from the start of input
	Line   int // 1-based line number
	Column int // 1-based column number (in runes)
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Kind classifies a lexical token.
type Kind int

const (
	// KindEOF marks the end of input.
	KindEOF Kind = iota

	// KindInt is an unsigned integer literal. The token carries the raw
	// digit text; numeric conversion happens in the parser so that a
	// leading minus can participate in range checking.
	KindInt

	// KindIdent is an identifier (a function name).
	KindIdent

	// Operators.

	KindDice     // d
	KindKeepHigh // kh
	KindKeepLow  // kl
	KindDropHigh // dh
	KindDropLow  // dl
	KindMul      // *
	KindAdd      // +
	KindSub      // -
	KindEq       // ==
	KindNe       // !=
	KindLt       // <
	KindLe       // <=
	KindGt       // >
	KindGe       // >=

	// Punctuation.

	KindLParen   // (
	KindRParen   // )
	KindLBrace   // {
	KindRBrace   // }
	KindLBracket // [
	KindRBracket // ]
	KindComma    // ,
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindInt:
		return "integer"
	case KindIdent:
		return "identifier"
	case KindDice:
		return "'d'"
	case KindKeepHigh:
		return "'kh'"
	case KindKeepLow:
		return "'kl'"
	case KindDropHigh:
		return "'dh'"
	case KindDropLow:
		return "'dl'"
	case KindMul:
		return "'*'"
	case KindAdd:
		return "'+'"
	case KindSub:
		return "'-'"
	case KindEq:
		return "'=='"
	case KindNe:
		return "'!='"
	case KindLt:
		return "'<'"
	case KindLe:
		return "'<='"
	case KindGt:
		return "'>'"
	case KindGe:
		return "'>='"
	case KindLParen:
		return "'('"
	case KindRParen:
		return "')'"
	case KindLBrace:
		return "'{'"
	case KindRBrace:
		return "'}'"
	case KindLBracket:
		return "'['"
	case KindRBracket:
		return "']'"
	case KindComma:
		return "','"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit produced by the lexer.
// Tokens are immutable: produced once, consumed in order.
type Token struct {
	Kind Kind
	Text string // raw source text of the token
	Pos  Position
}

// String returns the token's source text, or the kind name for tokens
// without meaningful text.
func (t Token) String() string {
	if t.Text != "" {
		return t.Text
	}

	return t.Kind.String()
}
