// Package lang implements the RollKit dice-notation language: a lexer,
// a precedence-climbing parser producing an immutable AST, an evaluator
// over a two-tier value model (integers and normal/strong lists) with a
// pluggable random source, a structural explainer, and a registry of
// callable functions.
//
// The package is pure except for randomness consumed by dice rolls: it
// holds no state between calls, never logs, and never prints. Callers
// wanting reproducible rolls pass a seeded source via WithSource.
//
// Expression syntax, from loosest to tightest binding:
//
//	a == b, a != b, a < b, a <= b, a > b, a >= b   comparisons (1 or 0)
//	a + b, a - b                                   addition, subtraction
//	a * b                                          multiplication
//	list kh k, kl k, dh k, dl k                    keep/drop highest/lowest
//	n d s                                          roll n dice with s sides
//
// Atoms: integer literals, explicit lists {1, 2, 3}, inclusive ranges
// [start, end] and [start, end, step], strong wraps {expr}, function
// calls name(args...), and parenthesized expressions.
package lang
