// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the token kinds of the octal expression language.
package token

// Kind represents a token type.
type Kind int

const (
	EOF Kind = iota

	NUMBER
	IDENT

	// Keywords
	IF
	THEN
	ELSE
	LET
	IN
	DEF

	// Operators and punctuation
	COMPARE // == != <= >= < >
	PLUS    // +
	MINUS   // -
	MULT    // *
	DIV     // /
	MOD     // %
	POW     // ^
	LPAREN  // (
	RPAREN  // )
	ASSIGN  // =
	COMMA   // ,
	SEMI    // ; statement separator
)

// Token is an immutable lexical unit. Pos is the byte offset of its first
// character in the scanned source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

var keywords = map[string]Kind{
	"IF":   IF,
	"THEN": THEN,
	"ELSE": ELSE,
	"LET":  LET,
	"IN":   IN,
	"DEF":  DEF,
}

// Lookup returns the keyword kind for word, or IDENT. Keywords are
// case-sensitive.
func Lookup(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return IDENT
}

// EndsOperand returns true if a token of this kind can be the last token of
// an operand. A '-' that follows such a token is binary subtraction.
func (k Kind) EndsOperand() bool {
	switch k {
	case NUMBER, IDENT, RPAREN:
		return true
	}
	return false
}

// String returns the string representation of a token kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case IDENT:
		return "IDENT"
	case IF:
		return "IF"
	case THEN:
		return "THEN"
	case ELSE:
		return "ELSE"
	case LET:
		return "LET"
	case IN:
		return "IN"
	case DEF:
		return "DEF"
	case COMPARE:
		return "COMPARE"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULT:
		return "MULT"
	case DIV:
		return "DIV"
	case MOD:
		return "MOD"
	case POW:
		return "POW"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case ASSIGN:
		return "ASSIGN"
	case COMMA:
		return "COMMA"
	case SEMI:
		return "SEMI"
	}
	return "UNKNOWN"
}

// String renders a token for diagnostics.
func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return t.Kind.String() + " '" + t.Text + "'"
}
