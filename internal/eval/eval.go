// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the octal expression evaluator.
package eval

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"nickandperla.net/octcalc/internal/calcerr"
	"nickandperla.net/octcalc/internal/expr"
	"nickandperla.net/octcalc/internal/octal"
	"nickandperla.net/octcalc/internal/scanner"
)

// DefaultMaxDepth bounds nested function calls when no limit is configured.
const DefaultMaxDepth = 1000

// Evaluator holds one interpreter session: the function registry and the
// call-depth counter. It is not safe for concurrent use.
type Evaluator struct {
	registry *Registry
	maxDepth int
	depth    int  // Current nesting of function calls
	lazy     bool // Evaluate only the selected IF branch
	lenient  bool // Skip unrecognized characters while scanning
	logger   *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxDepth sets the maximum call nesting. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithLazyBranches makes IF evaluate only the branch its condition selects.
// By default both branches are evaluated before one is chosen.
func WithLazyBranches(lazy bool) Option {
	return func(e *Evaluator) { e.lazy = lazy }
}

// WithLenientLexing makes the scanner skip characters that start no token.
func WithLenientLexing(lenient bool) Option {
	return func(e *Evaluator) { e.lenient = lenient }
}

// WithLogger sets the logger for evaluation tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		registry: NewRegistry(),
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval evaluates source and returns the value of its last statement in octal.
func (e *Evaluator) Eval(input string) (string, error) {
	return e.EvalReader(strings.NewReader(input))
}

// EvalReader evaluates source read from r.
func (e *Evaluator) EvalReader(r io.Reader) (string, error) {
	v, err := e.evalSource(r)
	if err != nil {
		return "", err
	}
	return octal.Encode(v), nil
}

// evalSource parses and evaluates one statement at a time, so functions
// defined by earlier statements stay registered when a later one fails.
func (e *Evaluator) evalSource(r io.Reader) (int64, error) {
	e.depth = 0

	var opts []scanner.Option
	if e.lenient {
		opts = append(opts, scanner.WithLenient())
	}
	p, err := NewParser(scanner.New(r, opts...))
	if err != nil {
		return 0, err
	}
	if p.Done() {
		return 0, &calcerr.ParseError{Pos: 0, Msg: "unexpected end of expression"}
	}

	var result int64
	for !p.Done() {
		stmt, err := p.Statement()
		if err != nil {
			return 0, err
		}
		result, err = e.eval(stmt, NewEnv())
		if err != nil {
			return 0, err
		}
		e.logger.Debug("statement",
			slog.String("source", stmt.String()),
			slog.Int64("value", result))
	}
	return result, nil
}

func (e *Evaluator) eval(node expr.Expr, env *Env) (int64, error) {
	switch n := node.(type) {
	case expr.Number:
		return n.Value, nil

	case expr.Var:
		return env.Lookup(n.Name)

	case expr.Neg:
		v, err := e.eval(n.Operand, env)
		if err != nil {
			return 0, err
		}
		return neg(v)

	case expr.Binary:
		left, err := e.eval(n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := e.eval(n.Right, env)
		if err != nil {
			return 0, err
		}
		return apply(n.Op, left, right)

	case expr.If:
		return e.evalIf(n, env)

	case expr.Let:
		value, err := e.eval(n.Value, env)
		if err != nil {
			return 0, err
		}
		scope := NewEnclosedEnv(env)
		scope.Bind(n.Name, value)
		return e.eval(n.Body, scope)

	case expr.Call:
		return e.evalCall(n, env)

	case expr.Def:
		e.registry.Set(&Function{Name: n.Name, Params: n.Params, Body: n.Body})
		e.logger.Debug("define function",
			slog.String("function", n.Name),
			slog.Int("arity", len(n.Params)))
		return 0, nil
	}
	return 0, fmt.Errorf("eval: unknown expression type %T", node)
}

// evalIf evaluates the condition and then both branches unless lazy
// branches are enabled. A failure in the untaken branch still aborts.
func (e *Evaluator) evalIf(n expr.If, env *Env) (int64, error) {
	cond, err := e.eval(n.Cond, env)
	if err != nil {
		return 0, err
	}

	if e.lazy {
		if cond != 0 {
			return e.eval(n.Then, env)
		}
		return e.eval(n.Else, env)
	}

	then, err := e.eval(n.Then, env)
	if err != nil {
		return 0, err
	}
	els, err := e.eval(n.Else, env)
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return then, nil
	}
	return els, nil
}

func (e *Evaluator) evalCall(n expr.Call, env *Env) (int64, error) {
	fn, ok := e.registry.Get(n.Name)
	if !ok {
		return 0, &calcerr.FunctionNotDefinedError{Name: n.Name}
	}

	args := make([]int64, len(n.Args))
	for i, a := range n.Args {
		v, err := e.eval(a, env)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	if len(args) != fn.Arity() {
		return 0, &calcerr.InvalidArgumentCountError{Name: fn.Name, Expected: fn.Arity(), Got: len(args)}
	}
	return e.call(fn, args)
}

// call runs fn's body in a root scope holding only its parameters. The depth
// counter is restored on every exit path.
func (e *Evaluator) call(fn *Function, args []int64) (int64, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth {
		return 0, &calcerr.RecursionLimitError{Depth: e.maxDepth}
	}

	scope := NewEnv()
	for i, param := range fn.Params {
		scope.Bind(param, args[i])
	}

	e.logger.Debug("call",
		slog.String("function", fn.Name),
		slog.Int("depth", e.depth))
	v, err := e.eval(fn.Body, scope)
	if err != nil {
		return 0, err
	}
	e.logger.Debug("return",
		slog.String("function", fn.Name),
		slog.Int("depth", e.depth),
		slog.Int64("value", v))
	return v, nil
}

// Registry returns the session's function registry.
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// MaxDepth returns the configured call nesting limit.
func (e *Evaluator) MaxDepth() int {
	return e.maxDepth
}

// LazyBranches reports whether IF evaluates only the selected branch.
func (e *Evaluator) LazyBranches() bool {
	return e.lazy
}
