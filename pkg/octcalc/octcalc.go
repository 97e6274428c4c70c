package octcalc

import (
	"io"
	"log/slog"
	"os"

	"nickandperla.net/octcalc/internal/calcerr"
	"nickandperla.net/octcalc/internal/eval"
	"nickandperla.net/octcalc/internal/store"
)

// Calculator is one interpreter session. Functions defined by one
// evaluation stay available to later ones until the Calculator is closed.
type Calculator struct {
	evaluator      *eval.Evaluator
	transcript     Transcript
	transcriptPath string // SQLite path opened by New
	maxDepth       int
	lazy           bool
	lenient        bool
	logger         *slog.Logger
	level          slog.Leveler // Minimum level passed to logger; nil keeps all
}

// New creates a calculator with the given options. It fails only when a
// configured transcript database cannot be opened.
func New(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		maxDepth: eval.DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transcript == nil && c.transcriptPath != "" {
		s, err := store.Open(c.transcriptPath)
		if err != nil {
			return nil, err
		}
		c.transcript = s
	}

	if c.level != nil {
		c.logger = slog.New(newLevelHandler(c.level, c.logger.Handler()))
	}

	c.evaluator = eval.New(
		eval.WithMaxDepth(c.maxDepth),
		eval.WithLazyBranches(c.lazy),
		eval.WithLenientLexing(c.lenient),
		eval.WithLogger(c.logger),
	)
	return c, nil
}

// Evaluate evaluates src and returns its value in octal. When a transcript
// is configured the input and its outcome are recorded.
func (c *Calculator) Evaluate(src string) (string, error) {
	result, err := c.evaluator.Eval(src)
	c.record(src, result, err)
	return result, err
}

// EvaluateReader evaluates all source read from r as one input.
func (c *Calculator) EvaluateReader(r io.Reader) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return c.Evaluate(string(src))
}

// EvaluateFile evaluates a source file as one input.
func (c *Calculator) EvaluateFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return c.EvaluateReader(f)
}

func (c *Calculator) record(src, result string, err error) {
	if c.transcript == nil {
		return
	}
	e := &Entry{Input: src, Result: result, Kind: calcerr.KindOf(err)}
	if err != nil {
		e.Message = err.Error()
	}
	if rerr := c.transcript.Record(e); rerr != nil {
		c.logger.Warn("transcript record failed", slog.String("error", rerr.Error()))
	}
}

// Functions returns the names of all defined functions in sorted order.
func (c *Calculator) Functions() []string {
	return c.evaluator.Registry().Names()
}

// Definition returns the canonical DEF source of a function.
func (c *Calculator) Definition(name string) (string, bool) {
	fn, ok := c.evaluator.Registry().Get(name)
	if !ok {
		return "", false
	}
	return fn.Source(), true
}

// History returns up to limit of the most recent transcript entries, oldest
// first. Without a transcript it returns nil.
func (c *Calculator) History(limit int) ([]Entry, error) {
	if c.transcript == nil {
		return nil, nil
	}
	return c.transcript.Recent(limit)
}

// MaxDepth returns the call nesting limit.
func (c *Calculator) MaxDepth() int {
	return c.evaluator.MaxDepth()
}

// LazyBranches reports whether IF evaluates only the selected branch.
func (c *Calculator) LazyBranches() bool {
	return c.evaluator.LazyBranches()
}

// Close releases resources.
func (c *Calculator) Close() error {
	if c.transcript != nil {
		return c.transcript.Close()
	}
	return nil
}

// Calculate evaluates src in a fresh session with default settings.
func Calculate(src string) (string, error) {
	return eval.New().Eval(src)
}

// Error types returned by Evaluate. Use errors.As to inspect them.
type (
	ParseError                = calcerr.ParseError
	InvalidOctalDigitError    = calcerr.InvalidOctalDigitError
	VariableNotFoundError     = calcerr.VariableNotFoundError
	FunctionNotDefinedError   = calcerr.FunctionNotDefinedError
	InvalidArgumentCountError = calcerr.InvalidArgumentCountError
	RecursionLimitError       = calcerr.RecursionLimitError
)

// Sentinel errors returned by Evaluate. Use errors.Is to match them.
var (
	ErrDivisionByZero   = calcerr.ErrDivisionByZero
	ErrNegativeExponent = calcerr.ErrNegativeExponent
	ErrOverflow         = calcerr.ErrOverflow
)

// KindOf returns a stable name for the class of err, or "" for nil.
func KindOf(err error) string {
	return calcerr.KindOf(err)
}
