package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// CoefficientTable holds the 2^BitsQ rows of signed coefficients that
// parameterize the coding function family. It is immutable once loaded.
type CoefficientTable struct {
	rows [][]int32
	cols int
}

// Len returns the number of rows.
func (t CoefficientTable) Len() int { return len(t.rows) }

// Row returns row k's coefficients. It panics if k is out of range; callers
// within this package only ever index rows they know exist.
func (t CoefficientTable) Row(k int) []int32 { return t.rows[k] }

// LoadCoefficientsCSV reads a coefficient table from r. Each non-empty,
// non-comment ('#'-prefixed) line holds cols integers separated by commas
// or semicolons, with tolerated surrounding whitespace. The resulting
// table must have exactly 2^bitsQ rows.
func LoadCoefficientsCSV(r io.Reader, bitsQ, funType int) (CoefficientTable, *Error) {
	cols := 3
	if funType == 5 {
		cols = 4
	}
	want := 1 << uint(bitsQ)

	var rows [][]int32
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';'
		})
		if len(fields) != cols {
			return CoefficientTable{}, newError(InvalidCoefficients,
				"line %d: expected %d columns, got %d", lineNo, cols, len(fields))
		}
		row := make([]int32, cols)
		for i, f := range fields {
			v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 32)
			if err != nil {
				return CoefficientTable{}, newError(InvalidCoefficients,
					"line %d: cell %q is not a signed integer", lineNo, f)
			}
			row[i] = int32(v)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return CoefficientTable{}, newError(InvalidCoefficients, "read error: %v", err)
	}
	if len(rows) != want {
		return CoefficientTable{}, newError(InvalidCoefficients,
			"expected %d rows (2^%d), got %d", want, bitsQ, len(rows))
	}
	return CoefficientTable{rows: rows, cols: cols}, nil
}
