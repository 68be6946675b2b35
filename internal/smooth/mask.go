package smooth

// Mask flags grid cells that must be excluded from convolution. A true cell
// is invalid: its value passes through unsmoothed and its kernel weight is
// redistributed over the rest of the window. Cells are stored row-major in
// a flat slice, addressed via Idx.
type Mask struct {
	Rows, Cols int
	Cells      []bool // len = Rows * Cols
}

// NewMask returns an all-false mask of the given shape.
func NewMask(rows, cols int) *Mask {
	return &Mask{Rows: rows, Cols: cols, Cells: make([]bool, rows*cols)}
}

// Idx converts (row, col) to the flat cell index.
func (m *Mask) Idx(r, c int) int { return r*m.Cols + c }

// At reports whether the cell at (row, col) is masked.
func (m *Mask) At(r, c int) bool { return m.Cells[m.Idx(r, c)] }

// Set marks or clears the cell at (row, col).
func (m *Mask) Set(r, c int, v bool) { m.Cells[m.Idx(r, c)] = v }

// Any reports whether any cell is masked.
func (m *Mask) Any() bool {
	for _, v := range m.Cells {
		if v {
			return true
		}
	}
	return false
}

// TileReflect returns the 3x-scale mirror tiling of the mask, matching the
// tiling TileReflect applies to the grid so mask and grid windows stay
// aligned in tiled coordinates.
func (m *Mask) TileReflect() *Mask {
	out := NewMask(3*m.Rows, 3*m.Cols)
	for i := 0; i < out.Rows; i++ {
		si := reflectIndex(i-m.Rows, m.Rows)
		for j := 0; j < out.Cols; j++ {
			sj := reflectIndex(j-m.Cols, m.Cols)
			out.Set(i, j, m.At(si, sj))
		}
	}
	return out
}
