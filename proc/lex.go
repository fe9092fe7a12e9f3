// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package proc

import (
	"time"
)

// Low level scanners shared by the file decoders. Each scanner consumes
// a prefix of s and returns the unread remainder. A failed match is a
// regular outcome signalled by ok == false, not an error.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// skipSpace returns s without leading whitespace.
func skipSpace(s string) string {
	var i int
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

// scanToken reads the next whitespace delimited token.
func scanToken(s string) (tok, rest string, ok bool) {
	s = skipSpace(s)
	var i int
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// scanUint reads an unsigned decimal number. Accumulation wraps on
// overflow, which no counter field in procfs reaches in practice.
func scanUint(s string) (v uint64, rest string, ok bool) {
	s = skipSpace(s)
	if len(s) == 0 || !isDigit(s[0]) {
		return 0, s, false
	}
	var i int
	for i < len(s) && isDigit(s[i]) {
		v = v*10 + uint64(s[i]-'0')
		i++
	}
	return v, s[i:], true
}

// scanMillis reads a millisecond counter as a duration.
func scanMillis(s string) (time.Duration, string, bool) {
	v, rest, ok := scanUint(s)
	return time.Duration(v) * time.Millisecond, rest, ok
}

// expect matches a literal after optional whitespace.
func expect(s, lit string) (rest string, ok bool) {
	s = skipSpace(s)
	if len(s) < len(lit) || s[:len(lit)] != lit {
		return s, false
	}
	return s[len(lit):], true
}

// fracScale holds the nanosecond weight of each digit position after a
// decimal point.
var fracScale = [9]uint32{
	100_000_000, 10_000_000, 1_000_000, 100_000, 10_000, 1_000, 100, 10, 1,
}

// scanFrac reads the fractional part of a decimal number as
// nanoseconds, so "1" yields 100ms and "012" yields 12ms worth of
// nanos. More than nine digits cannot be represented and fails with an
// invariant error.
func scanFrac(s string) (ns uint32, rest string, ok bool, err error) {
	if len(s) == 0 || !isDigit(s[0]) {
		return 0, s, false, nil
	}
	var i int
	for i < len(s) && isDigit(s[i]) {
		if i >= len(fracScale) {
			return 0, s, false, invariantError("decimal fraction with more than %d digits", len(fracScale))
		}
		ns += uint32(s[i]-'0') * fracScale[i]
		i++
	}
	return ns, s[i:], true, nil
}
