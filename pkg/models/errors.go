package models

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by errors.Is for every *FormatError.
var ErrFormat = errors.New("malformed input")

// FormatError reports a line whose tokens do not have the expected shape.
type FormatError struct {
	Source   string // file name or reader label
	Line     int    // 1-based line number
	Expected string
	Found    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: expected %s, found %s", e.Source, e.Line, e.Expected, e.Found)
}

// Is makes errors.Is(err, ErrFormat) true for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ReadError wraps a failure of the underlying file or reader. The wrapped
// error is the system error, so errors.Is(err, fs.ErrNotExist) and
// errors.As(err, &errno) keep working.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// syntaxError is raised by the scanners, which know the token but not the
// line; the line parsers promote it to a FormatError.
type syntaxError struct {
	expected string
	found    string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.expected, e.found)
}
