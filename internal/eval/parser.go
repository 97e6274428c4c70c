// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"

	"nickandperla.net/octcalc/internal/calcerr"
	"nickandperla.net/octcalc/internal/expr"
	"nickandperla.net/octcalc/internal/octal"
	"nickandperla.net/octcalc/internal/scanner"
	"nickandperla.net/octcalc/internal/token"
)

// Parser is a recursive-descent parser producing one statement at a time.
//
//	statement   := (def | expression) (';' | EOF)
//	expression  := let | if | comparison
//	def         := 'DEF' IDENT '(' [IDENT {',' IDENT}] ')' '=' expression
//	let         := 'LET' IDENT '=' expression 'IN' expression
//	if          := 'IF' expression 'THEN' expression 'ELSE' expression
//	comparison  := addsub [COMPARE addsub]
//	addsub      := muldivmod {('+'|'-') muldivmod}
//	muldivmod   := power {('*'|'/'|'%') power}
//	power       := unary ['^' power]
//	unary       := '-' unary | primary
//	primary     := NUMBER | '(' expression ')' | IDENT | IDENT '(' [args] ')'
type Parser struct {
	scan *scanner.Scanner
	tok  token.Token
}

// NewParser creates a parser over scan and reads the first token.
func NewParser(scan *scanner.Scanner) (*Parser, error) {
	p := &Parser{scan: scan}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Done returns true once all input has been consumed.
func (p *Parser) Done() bool {
	return p.tok.Kind == token.EOF
}

// Statement parses the next statement and consumes its separator. DEF is
// only recognized here, as the whole statement.
func (p *Parser) Statement() (expr.Expr, error) {
	var (
		e   expr.Expr
		err error
	)
	if p.tok.Kind == token.DEF {
		e, err = p.def()
	} else {
		e, err = p.expression()
	}
	if err != nil {
		return nil, err
	}
	switch p.tok.Kind {
	case token.SEMI:
		if err := p.advance(); err != nil {
			return nil, err
		}
	case token.EOF:
	default:
		return nil, p.errorf("unexpected %s after expression", p.tok)
	}
	return e, nil
}

func (p *Parser) advance() error {
	tok, err := p.scan.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, p.errorf("expected %s, got %s", kind, tok)
	}
	return tok, p.advance()
}

func (p *Parser) errorf(format string, args ...any) error {
	return &calcerr.ParseError{Pos: p.tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expression() (expr.Expr, error) {
	switch p.tok.Kind {
	case token.LET:
		return p.let()
	case token.IF:
		return p.ifExpr()
	case token.EOF:
		return nil, p.errorf("unexpected end of expression")
	}
	return p.comparison()
}

// def parses a function definition. The body runs to the end of the
// statement, so a DEF cannot be followed by anything but ';' or EOF.
func (p *Parser) def() (expr.Expr, error) {
	at := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []string
	seen := make(map[string]bool)
	if p.tok.Kind == token.IDENT {
		for {
			param, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if seen[param.Text] {
				return nil, &calcerr.ParseError{Pos: param.Pos, Msg: fmt.Sprintf("duplicate parameter '%s'", param.Text)}
			}
			seen[param.Text] = true
			params = append(params, param.Text)
			if p.tok.Kind != token.COMMA {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}

	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.SEMI && p.tok.Kind != token.EOF {
		return nil, p.errorf("function body must end the statement, got %s", p.tok)
	}
	return expr.Def{At: at, Name: name.Text, Params: params, Body: body}, nil
}

func (p *Parser) let() (expr.Expr, error) {
	at := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	return expr.Let{At: at, Name: name.Text, Value: value, Body: body}, nil
}

func (p *Parser) ifExpr() (expr.Expr, error) {
	at := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	els, err := p.expression()
	if err != nil {
		return nil, err
	}
	return expr.If{At: at, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) comparison() (expr.Expr, error) {
	left, err := p.addsub()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.COMPARE {
		return left, nil
	}
	at := p.tok.Pos
	op, ok := expr.CompareOp(p.tok.Text)
	if !ok {
		return nil, p.errorf("unknown comparison %q", p.tok.Text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.addsub()
	if err != nil {
		return nil, err
	}
	return expr.Binary{At: at, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) addsub() (expr.Expr, error) {
	left, err := p.muldivmod()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == token.PLUS || p.tok.Kind == token.MINUS {
		at := p.tok.Pos
		op := expr.Add
		if p.tok.Kind == token.MINUS {
			op = expr.Sub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.muldivmod()
		if err != nil {
			return nil, err
		}
		left = expr.Binary{At: at, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) muldivmod() (expr.Expr, error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		var op expr.Op
		switch p.tok.Kind {
		case token.MULT:
			op = expr.Mul
		case token.DIV:
			op = expr.Div
		case token.MOD:
			op = expr.Mod
		default:
			return left, nil
		}
		at := p.tok.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = expr.Binary{At: at, Op: op, Left: left, Right: right}
	}
}

// power is right-associative: 2 ^ 3 ^ 2 is 2 ^ (3 ^ 2).
func (p *Parser) power() (expr.Expr, error) {
	base, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.POW {
		return base, nil
	}
	at := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	exp, err := p.power()
	if err != nil {
		return nil, err
	}
	return expr.Binary{At: at, Op: expr.Pow, Left: base, Right: exp}, nil
}

func (p *Parser) unary() (expr.Expr, error) {
	if p.tok.Kind != token.MINUS {
		return p.primary()
	}
	at := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return expr.Neg{At: at, Operand: operand}, nil
}

func (p *Parser) primary() (expr.Expr, error) {
	tok := p.tok
	switch tok.Kind {
	case token.NUMBER:
		v, err := octal.Decode(tok.Text)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr.Number{At: tok.Pos, Value: v}, nil

	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil

	case token.IDENT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != token.LPAREN {
			return expr.Var{At: tok.Pos, Name: tok.Text}, nil
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return expr.Call{At: tok.Pos, Name: tok.Text, Args: args}, nil

	case token.DEF:
		return nil, p.errorf("DEF must start a statement")

	case token.EOF:
		return nil, p.errorf("unexpected end of expression")
	}
	return nil, p.errorf("unexpected %s", tok)
}

// args parses a parenthesized argument list. The current token is '('.
func (p *Parser) args() ([]expr.Expr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []expr.Expr
	if p.tok.Kind != token.RPAREN {
		for {
			a, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.tok.Kind != token.COMMA {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}
