package models

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFloats(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		max     int
		want    []float64
		wantEOL bool
	}{
		{"exact", " 1 2 3", 3, []float64{1, 2, 3}, true},
		{"short line", " 1.5 -2", 3, []float64{1.5, -2}, true},
		{"short line with CR", " 1 2\r", 3, []float64{1, 2}, true},
		{"extra fields left", " 1 2 3 4", 3, []float64{1, 2, 3}, false},
		{"tabs and exponents", "\t1e2\t-3.5E-1  0", 3, []float64{100, -0.35, 0}, true},
		{"empty", "", 2, []float64{}, true},
		{"only blanks", "   \t ", 1, []float64{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newLineCursor(tt.line)
			out := make([]float64, tt.max)
			n, err := scanFloats(c, out)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.want, out[:n])
			if tt.wantEOL {
				assert.True(t, c.eol(), "cursor should be at end of line")
			} else {
				assert.False(t, c.eol())
			}
		})
	}
}

func TestScanFloatsShortLineIsNotAnError(t *testing.T) {
	c := newLineCursor(" 0.25 0.75\n")
	var out [3]float64
	n, err := scanFloats(c, out[:])
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, c.eol())
}

func TestScanFloatsMalformed(t *testing.T) {
	c := newLineCursor(" 1 abc 3")
	var out [3]float64
	n, err := scanFloats(c, out[:])
	assert.Equal(t, 1, n)

	var se *syntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "number", se.expected)
	assert.Equal(t, `"abc"`, se.found)
}

func TestScanFloatsRejectsNonFinite(t *testing.T) {
	for _, tok := range []string{"nan", "NaN", "inf", "-Inf", "infinity", "1e999"} {
		t.Run(tok, func(t *testing.T) {
			var out [1]float64
			_, err := scanFloats(newLineCursor(tok), out[:])

			var se *syntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "number", se.expected)
			assert.Equal(t, `"`+tok+`"`, se.found)
		})
	}
}

func TestExpectFloats(t *testing.T) {
	var out [3]float64
	err := expectFloats(newLineCursor(" 1 2"), out[:], "position coordinates")

	var se *syntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "3 position coordinates", se.expected)
	assert.Equal(t, "2", se.found)

	require.NoError(t, expectFloats(newLineCursor(" 1 2 3"), out[:], "position coordinates"))
	assert.Equal(t, [3]float64{1, 2, 3}, out)
}

func TestCursorIndex(t *testing.T) {
	tests := []struct {
		line    string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"42/", 41, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"", 0, true},
		{"x", 0, true},
		{"99999999999999999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := newLineCursor(tt.line).index("position index")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCursorRestStopsAtLineEnd(t *testing.T) {
	c := newLineCursor("map_Kd my tex.png\r\n")
	assert.Equal(t, "map_Kd", c.token())
	require.True(t, c.skipBlanks())
	assert.Equal(t, "my tex.png", c.rest())
}

func TestLineScannerLimitIsInclusive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines []string
		long  bool
	}{
		{"exact", "1234567\n", []string{"1234567"}, false},
		{"exact crlf", "1234567\r\nab\r\n", []string{"1234567", "ab"}, false},
		{"exact no terminator", "1234567", []string{"1234567"}, false},
		{"one over", "12345678\n", nil, true},
		{"one over no terminator", "12345678", nil, true},
		{"far over", strings.Repeat("x", 64) + "\n", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := newLineScanner(strings.NewReader(tt.input), 7)
			var lines []string
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			assert.Equal(t, tt.lines, lines)
			if tt.long {
				assert.ErrorIs(t, scanner.Err(), bufio.ErrTooLong)
			} else {
				assert.NoError(t, scanner.Err())
			}
		})
	}
}
