package smooth

import "gonum.org/v1/gonum/mat"

// TileReflect returns a (3*rows)x(3*cols) matrix whose centre tile is src
// and whose eight surrounding tiles are mirror reflections of src about its
// edges. Every interior window of the result that covers a centre-tile cell
// is therefore fully defined, which lets the convolver treat border cells
// identically to interior cells.
//
// Reflection is about the edge, not the cell centre: row 0 of src appears
// again in the tile row directly above the centre tile's top edge, and
// likewise on the other three sides, so values are continuous across every
// seam.
func TileReflect(src mat.Matrix) *mat.Dense {
	rows, cols := src.Dims()
	out := mat.NewDense(3*rows, 3*cols, nil)
	for i := 0; i < 3*rows; i++ {
		si := reflectIndex(i-rows, rows)
		for j := 0; j < 3*cols; j++ {
			out.Set(i, j, src.At(si, reflectIndex(j-cols, cols)))
		}
	}
	return out
}

// reflectIndex maps a coordinate in [-n, 2n) onto [0, n) by mirroring about
// the array edges: -1 maps to 0, n maps to n-1.
func reflectIndex(k, n int) int {
	switch {
	case k < 0:
		return -k - 1
	case k >= n:
		return 2*n - 1 - k
	default:
		return k
	}
}
