package octal

import (
	"errors"
	"math"
	"testing"

	"nickandperla.net/octcalc/internal/calcerr"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"1", 1},
		{"7", 7},
		{"10", 8},
		{"17", 15},
		{"100", 64},
		{"377", 255},
		{"-1", -1},
		{"-10", -8},
		{"-17", -15},
		{"  12  ", 10},
		{"0007", 7},
		{"777777777777777777777", math.MaxInt64},
		{"-1000000000000000000000", math.MinInt64},
	}

	for _, tt := range tests {
		got, err := Decode(tt.input)
		if err != nil {
			t.Errorf("Decode(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Decode(%q): got %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestDecodeInvalidDigit(t *testing.T) {
	tests := []struct {
		input string
		digit rune
	}{
		{"8", '8'},
		{"9", '9'},
		{"1a2", 'a'},
		{"-78", '8'},
		{"12 3", ' '},
	}

	for _, tt := range tests {
		_, err := Decode(tt.input)
		var de *calcerr.InvalidOctalDigitError
		if !errors.As(err, &de) {
			t.Errorf("Decode(%q): expected InvalidOctalDigitError, got %v", tt.input, err)
			continue
		}
		if de.Digit != tt.digit {
			t.Errorf("Decode(%q): got digit %q, want %q", tt.input, de.Digit, tt.digit)
		}
	}
}

func TestDecodeOverflow(t *testing.T) {
	for _, input := range []string{
		"1000000000000000000000",
		"-1000000000000000000001",
		"7777777777777777777777777",
	} {
		if _, err := Decode(input); !errors.Is(err, calcerr.ErrOverflow) {
			t.Errorf("Decode(%q): expected ErrOverflow, got %v", input, err)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, input := range []string{"", "-", "   "} {
		var pe *calcerr.ParseError
		if _, err := Decode(input); !errors.As(err, &pe) {
			t.Errorf("Decode(%q): expected ParseError, got %v", input, err)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{7, "7"},
		{8, "10"},
		{15, "17"},
		{64, "100"},
		{255, "377"},
		{-1, "-1"},
		{-8, "-10"},
		{-15, "-17"},
		{math.MaxInt64, "777777777777777777777"},
		{math.MinInt64, "-1000000000000000000000"},
	}

	for _, tt := range tests {
		if got := Encode(tt.input); got != tt.want {
			t.Errorf("Encode(%d): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	check := func(x int64) {
		got, err := Decode(Encode(x))
		if err != nil {
			t.Fatalf("Decode(Encode(%d)): unexpected error: %v", x, err)
		}
		if got != x {
			t.Fatalf("Decode(Encode(%d)): got %d", x, got)
		}
	}

	for x := int64(-5000); x <= 5000; x++ {
		check(x)
	}
	for _, x := range []int64{math.MaxInt64, math.MinInt64, math.MaxInt32, math.MinInt32, 1 << 40, -(1 << 40)} {
		check(x)
	}
}
