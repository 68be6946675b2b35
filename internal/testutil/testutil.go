// Package testutil provides shared test fixtures for grid-based tests.
//
// This package centralises common grid builders and tolerance assertions
// to reduce duplication across test files.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// ConstantGrid returns a rows x cols grid with every cell set to v.
func ConstantGrid(rows, cols int, v float64) *mat.Dense {
	g := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, v)
		}
	}
	return g
}

// ImpulseGrid returns a rows x cols grid of zeros with v at the centre cell.
func ImpulseGrid(rows, cols int, v float64) *mat.Dense {
	g := mat.NewDense(rows, cols, nil)
	g.Set(rows/2, cols/2, v)
	return g
}

// RampGrid returns a rows x cols grid whose cell (i, j) holds i*cols + j.
// Useful when a test needs every cell value to be distinct.
func RampGrid(rows, cols int) *mat.Dense {
	g := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, float64(i*cols+j))
		}
	}
	return g
}

// AssertGridsWithin fails the test if got and want differ in shape or by
// more than tol in any cell.
func AssertGridsWithin(t *testing.T, got, want mat.Matrix, tol float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("grid dims = %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for i := 0; i < gr; i++ {
		for j := 0; j < gc; j++ {
			if d := math.Abs(got.At(i, j) - want.At(i, j)); d > tol {
				t.Fatalf("cell (%d,%d) = %v, want %v (|diff| %g > %g)",
					i, j, got.At(i, j), want.At(i, j), d, tol)
			}
		}
	}
}
