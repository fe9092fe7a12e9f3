package proc

import (
	"math"
	"strconv"
	"testing"
	"time"
)

func TestSkipSpace(t *testing.T) {
	for _, v := range []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{" \t\r\n x", "x"},
		{"x  ", "x  "},
	} {
		if have := skipSpace(v.in); have != v.want {
			t.Errorf("skipSpace(%q) mismatch: have=%q want=%q", v.in, have, v.want)
		}
		// skipping twice must equal skipping once
		if have := skipSpace(skipSpace(v.in)); have != v.want {
			t.Errorf("skipSpace(skipSpace(%q)) mismatch: have=%q want=%q", v.in, have, v.want)
		}
	}
}

func TestScanToken(t *testing.T) {
	for _, v := range []struct {
		in, tok, rest string
		ok            bool
	}{
		{"", "", "", false},
		{"  \n", "", "", false},
		{"sda", "sda", "", true},
		{"  cpu0 123", "cpu0", " 123", true},
		{"a\tb", "a", "\tb", true},
	} {
		tok, rest, ok := scanToken(v.in)
		if tok != v.tok || rest != v.rest || ok != v.ok {
			t.Errorf("scanToken(%q) mismatch: have=%q,%q,%t want=%q,%q,%t",
				v.in, tok, rest, ok, v.tok, v.rest, v.ok)
		}
	}
}

func TestScanUint(t *testing.T) {
	for _, v := range []struct {
		in   string
		val  uint64
		rest string
		ok   bool
	}{
		{"", 0, "", false},
		{"x12", 0, "x12", false},
		{"0", 0, "", true},
		{" 42 tail", 42, " tail", true},
		{"007", 7, "", true},
		{"123abc", 123, "abc", true},
	} {
		val, rest, ok := scanUint(v.in)
		if val != v.val || rest != v.rest || ok != v.ok {
			t.Errorf("scanUint(%q) mismatch: have=%d,%q,%t want=%d,%q,%t",
				v.in, val, rest, ok, v.val, v.rest, v.ok)
		}
	}

	// every uint64 value survives a round trip through its decimal form
	for _, want := range []uint64{0, 1, 255, 1<<32 - 1, 1 << 62, math.MaxUint64} {
		val, rest, ok := scanUint(strconv.FormatUint(want, 10))
		if !ok || rest != "" || val != want {
			t.Errorf("scanUint round trip mismatch: have=%d,%q,%t want=%d", val, rest, ok, want)
		}
	}
}

func TestScanMillis(t *testing.T) {
	d, rest, ok := scanMillis(" 304934 0")
	if !ok || rest != " 0" || d != 304934*time.Millisecond {
		t.Errorf("scanMillis mismatch: have=%s,%q,%t want=%s", d, rest, ok, 304934*time.Millisecond)
	}
}

func TestExpect(t *testing.T) {
	for _, v := range []struct {
		in, lit, rest string
		ok            bool
	}{
		{"cpu 1", "cpu", " 1", true},
		{"  cpu 1", "cpu", " 1", true},
		{"cpx", "cpu", "cpx", false},
		{"", "cpu", "", false},
		{".5", ".", "5", true},
	} {
		rest, ok := expect(v.in, v.lit)
		if rest != v.rest || ok != v.ok {
			t.Errorf("expect(%q, %q) mismatch: have=%q,%t want=%q,%t",
				v.in, v.lit, rest, ok, v.rest, v.ok)
		}
	}
}

func TestScanFrac(t *testing.T) {
	for _, v := range []struct {
		in   string
		ns   uint32
		rest string
		ok   bool
	}{
		{"1", 100_000_000, "", true},
		{"012", 12_000_000, "", true},
		{"14 ", 140_000_000, " ", true},
		{"123456789", 123_456_789, "", true},
		{"", 0, "", false},
		{"x", 0, "x", false},
	} {
		ns, rest, ok, err := scanFrac(v.in)
		if err != nil {
			t.Errorf("scanFrac(%q) unexpected error: %v", v.in, err)
			continue
		}
		if ns != v.ns || rest != v.rest || ok != v.ok {
			t.Errorf("scanFrac(%q) mismatch: have=%d,%q,%t want=%d,%q,%t",
				v.in, ns, rest, ok, v.ns, v.rest, v.ok)
		}
	}

	// a tenth digit has no nanosecond representation
	if _, _, _, err := scanFrac("0123456789"); !IsInvariant(err) {
		t.Errorf("scanFrac(10 digits) error mismatch: have=%v want invariant", err)
	}
}
