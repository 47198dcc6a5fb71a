package index

// Matrix is a sparse row-major (CSR) matrix. Row i occupies the half
// open range RowPtr[i]:RowPtr[i+1] of Cols and Vals. Rows written by
// the builder are L2-normalised, so cosine similarity against a
// normalised query reduces to a plain dot product.
type Matrix struct {
	// RowPtr has Rows+1 entries delimiting each row's slice.
	RowPtr []int

	// Cols holds the column index of every stored value.
	Cols []int

	// Vals holds the stored values, aligned with Cols.
	Vals []float64

	// Rows is the number of rows (chunks).
	Rows int

	// NumCols is the number of columns (vocabulary dimensions).
	NumCols int
}

// newMatrix creates an empty matrix with the given column count.
func newMatrix(cols int) *Matrix {
	return &Matrix{
		RowPtr:  []int{0},
		NumCols: cols,
	}
}

// appendRow adds one sparse row. Columns must be strictly increasing.
func (m *Matrix) appendRow(cols []int, vals []float64) {
	m.Cols = append(m.Cols, cols...)
	m.Vals = append(m.Vals, vals...)
	m.Rows++
	m.RowPtr = append(m.RowPtr, len(m.Cols))
}

// rowDot computes the dot product of row i with a sparse query vector
// given as a dimension->weight map.
func (m *Matrix) rowDot(i int, query map[int]float64) float64 {
	var sum float64
	for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
		if w, ok := query[m.Cols[k]]; ok {
			sum += m.Vals[k] * w
		}
	}
	return sum
}

// wellFormed reports whether the internal slices are mutually
// consistent. Used when validating a loaded bundle.
func (m *Matrix) wellFormed() bool {
	if m == nil || len(m.RowPtr) != m.Rows+1 {
		return false
	}
	if len(m.Cols) != len(m.Vals) {
		return false
	}
	if m.RowPtr[0] != 0 || m.RowPtr[m.Rows] != len(m.Cols) {
		return false
	}
	for i := 0; i < m.Rows; i++ {
		if m.RowPtr[i] > m.RowPtr[i+1] {
			return false
		}
	}
	for _, c := range m.Cols {
		if c < 0 || c >= m.NumCols {
			return false
		}
	}
	return true
}
