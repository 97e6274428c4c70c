package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"nickandperla.net/octcalc/pkg/octcalc"
)

// formatError renders err for display. Parse errors with a known position
// get a snippet of src with a caret under the offending column.
func formatError(src string, err error) string {
	var pe *octcalc.ParseError
	if !errors.As(err, &pe) || pe.Pos < 0 {
		return fmt.Sprintf("Error: %v\n", err)
	}

	line, col := lineCol(src, pe.Pos)
	lines := strings.Split(src, "\n")
	lineTxt := lines[line-1]

	var b strings.Builder
	if len(lines) > 1 {
		fmt.Fprintf(&b, "Error at %d:%d: %s\n\n", line, col, pe.Msg)
	} else {
		fmt.Fprintf(&b, "Error at %d: %s\n\n", col, pe.Msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// lineCol converts a byte offset into a 1-based line and a 1-based column
// counted in runes, clamped to the bounds of src.
func lineCol(src string, pos int) (int, int) {
	if pos > len(src) {
		pos = len(src)
	}
	line, col := 1, 1
	for i := 0; i < pos; {
		r, size := utf8.DecodeRuneInString(src[i:])
		i += size
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
