// Package octal converts between base-8 text and signed 64-bit integers.
package octal

import (
	"math"
	"strconv"
	"strings"

	"nickandperla.net/octcalc/internal/calcerr"
)

// Decode parses an octal literal with an optional leading '-'.
// Surrounding whitespace is ignored. Any character other than 0-7 after the
// sign fails with *calcerr.InvalidOctalDigitError; values outside the int64
// range fail with calcerr.ErrOverflow.
func Decode(text string) (int64, error) {
	s := strings.TrimSpace(text)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	if s == "" {
		return 0, &calcerr.ParseError{Pos: -1, Msg: "empty octal literal"}
	}

	for _, r := range s {
		if r < '0' || r > '7' {
			return 0, &calcerr.InvalidOctalDigitError{Digit: r}
		}
	}

	// Accumulate as a magnitude so that -1<<63 is representable.
	var mag uint64
	for i := 0; i < len(s); i++ {
		if mag > (math.MaxUint64-7)/8 {
			return 0, calcerr.ErrOverflow
		}
		mag = mag*8 + uint64(s[i]-'0')
	}

	if negative {
		if mag > 1<<63 {
			return 0, calcerr.ErrOverflow
		}
		return -int64(mag), nil
	}
	if mag > math.MaxInt64 {
		return 0, calcerr.ErrOverflow
	}
	return int64(mag), nil
}

// Encode renders n in base 8. Zero is "0"; negatives carry a '-' prefix.
func Encode(n int64) string {
	return strconv.FormatInt(n, 8)
}
