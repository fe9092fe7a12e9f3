// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package proc

import (
	"bufio"
	"io"
)

// LineReader is a line cursor over an io.Reader. The current line stays
// buffered until it is explicitly consumed, so a decoder can look at a
// line, decide it belongs to the next section and leave it in place for
// the next decoder.
type LineReader struct {
	src  *bufio.Reader
	line string
	have bool
}

// NewLineReader returns a LineReader drawing lines from r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{src: bufio.NewReader(r)}
}

// Peek returns the current line including its trailing newline, reading
// from the source only when no line is buffered. An exhausted source
// yields an end-of-stream error, any other source failure an io error.
func (r *LineReader) Peek() (string, error) {
	if r.have {
		return r.line, nil
	}
	line, err := r.src.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", ioError(err)
		}
		// the last line of a file may lack its newline
		if len(line) == 0 {
			return "", endOfStream()
		}
	}
	r.line, r.have = line, true
	return line, nil
}

// Consume drops the buffered line so the next Peek fetches a fresh one.
func (r *LineReader) Consume() {
	r.line, r.have = "", false
}

// ParseLine feeds the current line to fn and consumes it only when fn
// succeeds. Errors from fn pass through unchanged.
func (r *LineReader) ParseLine(fn func(string) error) error {
	line, err := r.Peek()
	if err != nil {
		return err
	}
	if err := fn(line); err != nil {
		return err
	}
	r.Consume()
	return nil
}
