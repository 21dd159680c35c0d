package models

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// DefaultMaxLineLength bounds a single OBJ or MTL line.
const DefaultMaxLineLength = 64 * 1024

// lineCursor is a read position within one input line. Scanners consume
// from it and leave it just past what they read.
type lineCursor struct {
	line string
	pos  int
}

func newLineCursor(line string) *lineCursor {
	return &lineCursor{line: line}
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f'
}

func isLineEnd(ch byte) bool {
	return ch == '\r' || ch == '\n'
}

// eol reports whether the cursor reached the end of the record.
func (c *lineCursor) eol() bool {
	return c.pos >= len(c.line) || isLineEnd(c.line[c.pos])
}

// peek returns the current byte, or 0 at the end of the record.
func (c *lineCursor) peek() byte {
	if c.eol() {
		return 0
	}
	return c.line[c.pos]
}

// consume advances past ch if it is the current byte.
func (c *lineCursor) consume(ch byte) bool {
	if c.peek() != ch || ch == 0 {
		return false
	}
	c.pos++
	return true
}

// skipBlanks advances over whitespace other than line terminators. It
// returns false when the end of the record is reached.
func (c *lineCursor) skipBlanks() bool {
	for !c.eol() && isBlank(c.line[c.pos]) {
		c.pos++
	}
	return !c.eol()
}

// tokenEnd returns the index just past the run of non-whitespace at the
// cursor.
func (c *lineCursor) tokenEnd() int {
	end := c.pos
	for end < len(c.line) && !isBlank(c.line[end]) && !isLineEnd(c.line[end]) {
		end++
	}
	return end
}

// token consumes and returns the run of non-whitespace at the cursor.
func (c *lineCursor) token() string {
	end := c.tokenEnd()
	tok := c.line[c.pos:end]
	c.pos = end
	return tok
}

// rest returns everything from the cursor to the end of the record.
func (c *lineCursor) rest() string {
	end := c.pos
	for end < len(c.line) && !isLineEnd(c.line[end]) {
		end++
	}
	return c.line[c.pos:end]
}

// found describes what sits at the cursor, for error messages.
func (c *lineCursor) found() string {
	switch {
	case c.eol():
		return "end of line"
	case isBlank(c.line[c.pos]):
		return "whitespace"
	}
	return strconv.Quote(c.line[c.pos:c.tokenEnd()])
}

// scanFloats reads up to len(out) whitespace-separated floats. Running
// into the end of the line early is not an error: the returned count is
// simply smaller than len(out) and c.eol() is true. A token that is not a
// finite float is reported as a syntax error.
func scanFloats(c *lineCursor, out []float64) (int, error) {
	for n := range out {
		if !c.skipBlanks() {
			return n, nil
		}
		tok := c.token()
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return n, &syntaxError{expected: "number", found: strconv.Quote(tok)}
		}
		out[n] = v
	}
	return len(out), nil
}

// expectFloats is scanFloats where a short line is an error.
func expectFloats(c *lineCursor, out []float64, what string) error {
	n, err := scanFloats(c, out)
	if err != nil {
		return err
	}
	if n < len(out) {
		return &syntaxError{
			expected: strconv.Itoa(len(out)) + " " + what,
			found:    strconv.Itoa(n),
		}
	}
	return nil
}

// index consumes a 1-based decimal index and returns it 0-based.
func (c *lineCursor) index(what string) (int, error) {
	start := c.pos
	for c.pos < len(c.line) && c.line[c.pos] >= '0' && c.line[c.pos] <= '9' {
		c.pos++
	}
	n, err := strconv.Atoi(c.line[start:c.pos])
	if err != nil || n == 0 {
		c.pos = start
		return 0, &syntaxError{expected: "1-based " + what, found: c.found()}
	}
	return n - 1, nil
}

// newLineScanner returns a line iterator whose lines may be up to
// maxLine bytes long, not counting the line terminator. Longer lines stop
// the scan with bufio.ErrTooLong.
func newLineScanner(r io.Reader, maxLine int) *bufio.Scanner {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}
	scanner := bufio.NewScanner(r)
	// Room for a "\r\n" terminator on a line of exactly maxLine bytes.
	scanner.Buffer(make([]byte, 0, min(maxLine+2, 4096)), maxLine+2)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		if err == nil && len(token) > maxLine {
			return 0, nil, bufio.ErrTooLong
		}
		return advance, token, err
	})
	return scanner
}
