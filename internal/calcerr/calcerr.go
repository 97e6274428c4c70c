// Package calcerr defines the failure conditions an evaluation can report.
//
// Every condition is a distinct type (or sentinel) so callers can branch on it
// with errors.As or errors.Is. A failure aborts the whole evaluation; there are
// no partial results.
package calcerr

import (
	"errors"
	"fmt"
)

// Sentinel conditions that carry no payload.
var (
	ErrDivisionByZero   = errors.New("division by zero is not allowed")
	ErrNegativeExponent = errors.New("negative exponent is not allowed")
	ErrOverflow         = errors.New("integer overflow")
)

// ParseError reports malformed syntax. Pos is the 0-based byte offset into the
// evaluated source where the problem was found, or -1 when unknown.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return "parse error: " + e.Msg
	}
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}

// InvalidOctalDigitError reports a character outside 0-7 in a numeric literal.
type InvalidOctalDigitError struct {
	Digit rune
}

func (e *InvalidOctalDigitError) Error() string {
	return fmt.Sprintf("invalid octal digit: '%c' (octal uses 0-7)", e.Digit)
}

// VariableNotFoundError reports a lookup that reached the root scope.
type VariableNotFoundError struct {
	Name string
}

func (e *VariableNotFoundError) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}

// FunctionNotDefinedError reports a call to an unregistered function.
type FunctionNotDefinedError struct {
	Name string
}

func (e *FunctionNotDefinedError) Error() string {
	return fmt.Sprintf("function '%s' is not defined", e.Name)
}

// InvalidArgumentCountError reports an arity mismatch at a call site.
type InvalidArgumentCountError struct {
	Name     string
	Expected int
	Got      int
}

func (e *InvalidArgumentCountError) Error() string {
	return fmt.Sprintf("function '%s' expects %d argument(s), but got %d", e.Name, e.Expected, e.Got)
}

// RecursionLimitError reports that nested calls exceeded the session maximum.
type RecursionLimitError struct {
	Depth int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("recursion limit of %d exceeded", e.Depth)
}

// Kind names, stable across releases. They are written to transcripts.
const (
	KindNone               = ""
	KindParse              = "parse"
	KindInvalidOctalDigit  = "invalid_octal_digit"
	KindVariableNotFound   = "variable_not_found"
	KindFunctionNotDefined = "function_not_defined"
	KindInvalidArgCount    = "invalid_argument_count"
	KindDivisionByZero     = "division_by_zero"
	KindRecursionLimit     = "recursion_limit"
	KindNegativeExponent   = "negative_exponent"
	KindOverflow           = "overflow"
	KindInternal           = "internal"
)

// KindOf classifies err. A nil error has KindNone; anything outside the
// taxonomy is KindInternal.
func KindOf(err error) string {
	if err == nil {
		return KindNone
	}
	var (
		pe *ParseError
		de *InvalidOctalDigitError
		ve *VariableNotFoundError
		fe *FunctionNotDefinedError
		ae *InvalidArgumentCountError
		re *RecursionLimitError
	)
	switch {
	case errors.As(err, &pe):
		return KindParse
	case errors.As(err, &de):
		return KindInvalidOctalDigit
	case errors.As(err, &ve):
		return KindVariableNotFound
	case errors.As(err, &fe):
		return KindFunctionNotDefined
	case errors.As(err, &ae):
		return KindInvalidArgCount
	case errors.As(err, &re):
		return KindRecursionLimit
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrNegativeExponent):
		return KindNegativeExponent
	case errors.Is(err, ErrOverflow):
		return KindOverflow
	}
	return KindInternal
}
