// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides the lexer for octal expressions.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/octcalc/internal/calcerr"
	"nickandperla.net/octcalc/internal/token"
)

// Scanner tokenizes input rune-by-rune.
type Scanner struct {
	reader  *bufio.Reader
	buf     strings.Builder
	pos     int        // Byte offset of the next unread rune
	last    int        // Size of the last rune read
	prev    token.Kind // Kind of the last token returned
	lenient bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLenient makes the scanner drop characters that start no token instead
// of failing.
func WithLenient() Option {
	return func(s *Scanner) { s.lenient = true }
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader, opts ...Option) *Scanner {
	s := &Scanner{
		reader: bufio.NewReader(r),
		prev:   token.EOF,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromString creates a new Scanner from a string.
func NewFromString(src string, opts ...Option) *Scanner {
	return New(strings.NewReader(src), opts...)
}

// Next returns the next token from the input.
func (s *Scanner) Next() (token.Token, error) {
	tok, err := s.scan()
	if err != nil {
		return token.Token{}, err
	}
	s.prev = tok.Kind
	return tok, nil
}

func (s *Scanner) scan() (token.Token, error) {
	for {
		start := s.pos
		r, err := s.read()
		if err == io.EOF {
			return token.Token{Kind: token.EOF, Pos: start}, nil
		}
		if err != nil {
			return token.Token{}, err
		}

		switch {
		case unicode.IsSpace(r):
			continue
		case isDigit(r):
			return s.number(start, r)
		case r == '-' && !s.prev.EndsOperand() && s.peekDigit():
			return s.number(start, r)
		case isIdentStart(r):
			return s.ident(start, r)
		}

		switch r {
		case '+':
			return s.emit(token.PLUS, "+", start), nil
		case '-':
			return s.emit(token.MINUS, "-", start), nil
		case '*':
			return s.emit(token.MULT, "*", start), nil
		case '/':
			return s.emit(token.DIV, "/", start), nil
		case '%':
			return s.emit(token.MOD, "%", start), nil
		case '^':
			return s.emit(token.POW, "^", start), nil
		case '(':
			return s.emit(token.LPAREN, "(", start), nil
		case ')':
			return s.emit(token.RPAREN, ")", start), nil
		case ',':
			return s.emit(token.COMMA, ",", start), nil
		case ';':
			return s.emit(token.SEMI, ";", start), nil
		case '=':
			if s.accept('=') {
				return s.emit(token.COMPARE, "==", start), nil
			}
			return s.emit(token.ASSIGN, "=", start), nil
		case '<', '>':
			if s.accept('=') {
				return s.emit(token.COMPARE, string(r)+"=", start), nil
			}
			return s.emit(token.COMPARE, string(r), start), nil
		case '!':
			if s.accept('=') {
				return s.emit(token.COMPARE, "!=", start), nil
			}
		}

		if s.lenient {
			continue
		}
		return token.Token{}, &calcerr.ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", r)}
	}
}

// number scans a literal. All decimal digits are collected so that 8 and 9
// reach the octal decoder and are reported there.
func (s *Scanner) number(start int, first rune) (token.Token, error) {
	s.buf.Reset()
	s.buf.WriteRune(first)
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token.Token{}, err
		}
		if !isDigit(r) {
			s.unread()
			break
		}
		s.buf.WriteRune(r)
	}
	return s.emit(token.NUMBER, s.buf.String(), start), nil
}

func (s *Scanner) ident(start int, first rune) (token.Token, error) {
	s.buf.Reset()
	s.buf.WriteRune(first)
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token.Token{}, err
		}
		if !isIdentChar(r) {
			s.unread()
			break
		}
		s.buf.WriteRune(r)
	}
	word := s.buf.String()
	return s.emit(token.Lookup(word), word, start), nil
}

func (s *Scanner) emit(kind token.Kind, text string, pos int) token.Token {
	return token.Token{Kind: kind, Text: text, Pos: pos}
}

func (s *Scanner) read() (rune, error) {
	r, size, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	s.pos += size
	s.last = size
	return r, nil
}

func (s *Scanner) unread() {
	s.reader.UnreadRune()
	s.pos -= s.last
}

// accept consumes the next rune if it equals want.
func (s *Scanner) accept(want rune) bool {
	r, err := s.read()
	if err != nil {
		return false
	}
	if r != want {
		s.unread()
		return false
	}
	return true
}

// peekDigit reports whether the next rune is a decimal digit without
// consuming it.
func (s *Scanner) peekDigit() bool {
	r, err := s.read()
	if err != nil {
		return false
	}
	s.unread()
	return isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentChar returns true if the rune is valid after the first identifier
// character (ASCII letter, digit, underscore).
func isIdentChar(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
