// Package corr computes the two-dimensional equality correlation between
// pairs of small byte matrices: for each (A, B) pair and each requested
// clockwise rotation of B, it slides rotated B over A at every translation
// with any overlap and counts equal, non-zero cell matches.
package corr

import "fmt"

// Matrix is a rectangular array of unsigned 8-bit cells addressed through
// explicit row/column byte-strides, the way nes/mapper0.go addresses ROM
// banks through an explicit base-offset-and-modulus rather than assuming a
// single contiguous layout.
type Matrix struct {
	H, W   int
	S0, S1 int
	Data   []byte
}

// NewMatrix builds a row-major contiguous Matrix (S0=W, S1=1) from the given
// rows. It panics if the rows are ragged; callers that need validated
// construction from untrusted input should use ValidateLists instead.
func NewMatrix(rows [][]byte) Matrix {
	h := len(rows)
	if h == 0 {
		return Matrix{}
	}
	w := len(rows[0])
	data := make([]byte, 0, h*w)
	for _, row := range rows {
		if len(row) != w {
			panic(fmt.Sprintf("corr: ragged matrix row: want width %d, got %d", w, len(row)))
		}
		data = append(data, row...)
	}
	return Matrix{H: h, W: w, S0: w, S1: 1, Data: data}
}

// At reads the cell at logical (row, col) through the matrix's strides.
func (m Matrix) At(row, col int) byte {
	return m.Data[row*m.S0+col*m.S1]
}

// contiguous reports whether the inner (column) stride is 1, the fast-path
// precondition the kernel's tight loop tests for.
func (m Matrix) contiguous() bool {
	return m.S1 == 1
}

// Rows materializes the matrix back into [][]byte, used by tests and by the
// rotation round-trip checks in §8.
func (m Matrix) Rows() [][]byte {
	rows := make([][]byte, m.H)
	for r := 0; r < m.H; r++ {
		row := make([]byte, m.W)
		for c := 0; c < m.W; c++ {
			row[c] = m.At(r, c)
		}
		rows[r] = row
	}
	return rows
}
