package proc

import (
	"errors"
	"strings"
	"testing"
)

func TestLineReaderPeekConsume(t *testing.T) {
	r := NewLineReader(strings.NewReader("one\ntwo\n"))
	for i := 0; i < 3; i++ {
		line, err := r.Peek()
		if err != nil {
			t.Fatalf("peek %d: %v", i, err)
		}
		if line != "one\n" {
			t.Errorf("peek %d mismatch: have=%q want=%q", i, line, "one\n")
		}
	}
	r.Consume()
	line, err := r.Peek()
	if err != nil {
		t.Fatalf("peek after consume: %v", err)
	}
	if line != "two\n" {
		t.Errorf("second line mismatch: have=%q want=%q", line, "two\n")
	}
	r.Consume()
	if _, err := r.Peek(); !IsEndOfStream(err) {
		t.Errorf("peek at eof mismatch: have=%v want end-of-stream", err)
	}
}

func TestLineReaderLastLine(t *testing.T) {
	r := NewLineReader(strings.NewReader("no newline"))
	line, err := r.Peek()
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if line != "no newline" {
		t.Errorf("line mismatch: have=%q want=%q", line, "no newline")
	}
	r.Consume()
	if _, err := r.Peek(); !IsEndOfStream(err) {
		t.Errorf("peek at eof mismatch: have=%v want end-of-stream", err)
	}
}

func TestLineReaderParseLine(t *testing.T) {
	r := NewLineReader(strings.NewReader("keep\nnext\n"))
	fail := errors.New("no match")
	if err := r.ParseLine(func(string) error { return fail }); err != fail {
		t.Errorf("parse error mismatch: have=%v want=%v", err, fail)
	}
	// a failed parse must leave the line in place
	line, err := r.Peek()
	if err != nil {
		t.Fatalf("peek after failed parse: %v", err)
	}
	if line != "keep\n" {
		t.Errorf("line after failed parse mismatch: have=%q want=%q", line, "keep\n")
	}
	if err := r.ParseLine(func(l string) error {
		if l != "keep\n" {
			t.Errorf("parse line mismatch: have=%q want=%q", l, "keep\n")
		}
		return nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	line, err = r.Peek()
	if err != nil {
		t.Fatalf("peek after parse: %v", err)
	}
	if line != "next\n" {
		t.Errorf("line after parse mismatch: have=%q want=%q", line, "next\n")
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestLineReaderIOError(t *testing.T) {
	r := NewLineReader(brokenReader{})
	_, err := r.Peek()
	if !errors.Is(err, ErrIO) {
		t.Errorf("io error kind mismatch: have=%v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindIO || e.Unwrap() == nil {
		t.Errorf("io error shape mismatch: have=%#v", err)
	}
}
