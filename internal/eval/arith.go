// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"math"

	"nickandperla.net/octcalc/internal/calcerr"
	"nickandperla.net/octcalc/internal/expr"
)

// apply computes a binary operation. Arithmetic is checked: results outside
// int64 fail with calcerr.ErrOverflow.
func apply(op expr.Op, a, b int64) (int64, error) {
	switch op {
	case expr.Add:
		return add(a, b)
	case expr.Sub:
		return sub(a, b)
	case expr.Mul:
		return mul(a, b)
	case expr.Div:
		return floorDiv(a, b)
	case expr.Mod:
		return floorMod(a, b)
	case expr.Pow:
		return pow(a, b)
	case expr.Eq:
		return truth(a == b), nil
	case expr.Ne:
		return truth(a != b), nil
	case expr.Lt:
		return truth(a < b), nil
	case expr.Gt:
		return truth(a > b), nil
	case expr.Le:
		return truth(a <= b), nil
	case expr.Ge:
		return truth(a >= b), nil
	}
	return 0, &calcerr.ParseError{Pos: -1, Msg: "unknown operator " + op.String()}
}

func truth(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func add(a, b int64) (int64, error) {
	c := a + b
	if (a > 0 && b > 0 && c < 0) || (a < 0 && b < 0 && c >= 0) {
		return 0, calcerr.ErrOverflow
	}
	return c, nil
}

func sub(a, b int64) (int64, error) {
	c := a - b
	if (a >= 0 && b < 0 && c < 0) || (a < 0 && b > 0 && c >= 0) {
		return 0, calcerr.ErrOverflow
	}
	return c, nil
}

func mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, calcerr.ErrOverflow
	}
	c := a * b
	if c/b != a {
		return 0, calcerr.ErrOverflow
	}
	return c, nil
}

func neg(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, calcerr.ErrOverflow
	}
	return -a, nil
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, calcerr.ErrDivisionByZero
	}
	if a == math.MinInt64 && b == -1 {
		return 0, calcerr.ErrOverflow
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, nil
}

// floorMod returns a remainder with the sign of the divisor, so that
// floorDiv(a, b)*b + floorMod(a, b) == a.
func floorMod(a, b int64) (int64, error) {
	if b == 0 {
		return 0, calcerr.ErrDivisionByZero
	}
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m, nil
}

// pow uses square-and-multiply. x ^ 0 is 1 for every x.
func pow(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, calcerr.ErrNegativeExponent
	}
	result := int64(1)
	var err error
	for exp > 0 {
		if exp&1 == 1 {
			if result, err = mul(result, base); err != nil {
				return 0, err
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, err = mul(base, base); err != nil {
				return 0, err
			}
		}
	}
	return result, nil
}
