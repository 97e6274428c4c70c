// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines the expression tree produced by the parser.
//
// Trees are immutable once built. A function body is parsed into a tree
// exactly once, when its DEF is evaluated, and every call walks that tree.
package expr

import (
	"strings"

	"nickandperla.net/octcalc/internal/octal"
)

// Expr is the interface all expression types implement.
type Expr interface {
	// String returns canonical source for the expression. Binary operations
	// are fully parenthesized and numbers are rendered in octal.
	String() string
	// Pos returns the byte offset of the expression in the evaluated source.
	Pos() int
}

// Op identifies an arithmetic or comparison operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
	Pow

	Eq
	Ne
	Lt
	Gt
	Le
	Ge
)

var opText = map[Op]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Pow: "^",
	Eq: "==", Ne: "!=", Lt: "<", Gt: ">", Le: "<=", Ge: ">=",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return "?"
}

// CompareOp maps a COMPARE token's text to its operator.
func CompareOp(text string) (Op, bool) {
	switch text {
	case "==":
		return Eq, true
	case "!=":
		return Ne, true
	case "<":
		return Lt, true
	case ">":
		return Gt, true
	case "<=":
		return Le, true
	case ">=":
		return Ge, true
	}
	return 0, false
}

// Number is an integer literal.
type Number struct {
	At    int
	Value int64
}

func (n Number) String() string { return octal.Encode(n.Value) }
func (n Number) Pos() int       { return n.At }

// Var is a variable reference.
type Var struct {
	At   int
	Name string
}

func (v Var) String() string { return v.Name }
func (v Var) Pos() int       { return v.At }

// Neg is unary minus.
type Neg struct {
	At      int
	Operand Expr
}

func (n Neg) String() string { return "-" + operand(n.Operand) }
func (n Neg) Pos() int       { return n.At }

// Binary is an arithmetic or comparison operation.
type Binary struct {
	At    int
	Op    Op
	Left  Expr
	Right Expr
}

func (b Binary) String() string {
	return "(" + operand(b.Left) + " " + b.Op.String() + " " + operand(b.Right) + ")"
}
func (b Binary) Pos() int { return b.At }

// If is a conditional. Whether both branches run is an evaluator setting.
type If struct {
	At   int
	Cond Expr
	Then Expr
	Else Expr
}

func (i If) String() string {
	return "IF " + i.Cond.String() + " THEN " + i.Then.String() + " ELSE " + i.Else.String()
}
func (i If) Pos() int { return i.At }

// Let binds Name to Value in a new scope for Body.
type Let struct {
	At    int
	Name  string
	Value Expr
	Body  Expr
}

func (l Let) String() string {
	return "LET " + l.Name + " = " + l.Value.String() + " IN " + l.Body.String()
}
func (l Let) Pos() int { return l.At }

// Call invokes a registered function.
type Call struct {
	At   int
	Name string
	Args []Expr
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (c Call) Pos() int { return c.At }

// Def registers a function. Its body runs only when the function is called.
type Def struct {
	At     int
	Name   string
	Params []string
	Body   Expr
}

func (d Def) String() string {
	return "DEF " + d.Name + "(" + strings.Join(d.Params, ", ") + ") = " + d.Body.String()
}
func (d Def) Pos() int { return d.At }

// operand renders e for use inside an operator. IF and LET extend as far right
// as possible, so they need explicit parentheses there.
func operand(e Expr) string {
	switch e.(type) {
	case If, Let:
		return "(" + e.String() + ")"
	}
	return e.String()
}
