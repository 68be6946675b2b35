package smooth

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGaussianKernelNormalized(t *testing.T) {
	sigmas := []float64{0.3, 0.9, 1.5, 2.0, 5.0}
	for _, sigma := range sigmas {
		k := GaussianKernel(sigma, DefaultTruncate)
		if d := math.Abs(mat.Sum(k) - 1); d > 1e-12 {
			t.Errorf("sigma=%v: kernel sum off by %g, want <= 1e-12", sigma, d)
		}
	}
}

func TestGaussianKernelShape(t *testing.T) {
	tests := []struct {
		sigma    float64
		truncate float64
		wantSide int
	}{
		{sigma: 0.9, truncate: 4.0, wantSide: 9},  // radius floor(3.6+0.5) = 4
		{sigma: 1.0, truncate: 4.0, wantSide: 9},  // radius floor(4.5) = 4
		{sigma: 2.0, truncate: 4.0, wantSide: 17}, // radius floor(8.5) = 8
		{sigma: 0.1, truncate: 4.0, wantSide: 1},  // radius floor(0.9) = 0
		{sigma: 1.0, truncate: 2.0, wantSide: 5},  // radius floor(2.5) = 2
	}
	for _, tt := range tests {
		k := GaussianKernel(tt.sigma, tt.truncate)
		r, c := k.Dims()
		if r != tt.wantSide || c != tt.wantSide {
			t.Errorf("sigma=%v truncate=%v: dims = %dx%d, want %dx%d",
				tt.sigma, tt.truncate, r, c, tt.wantSide, tt.wantSide)
		}
	}
}

func TestGaussianKernelCenterIsMaximum(t *testing.T) {
	k := GaussianKernel(1.2, DefaultTruncate)
	r, c := k.Dims()
	center := k.At(r/2, c/2)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if k.At(i, j) > center {
				t.Fatalf("weight at (%d,%d) = %g exceeds center %g", i, j, k.At(i, j), center)
			}
		}
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	k := GaussianKernel(0.9, DefaultTruncate)
	r, c := k.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if k.At(i, j) != k.At(r-1-i, c-1-j) {
				t.Errorf("kernel not symmetric at (%d,%d)", i, j)
			}
			if k.At(i, j) != k.At(j, i) {
				t.Errorf("kernel not transpose-symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestGaussianKernelPanicsOnBadSigma(t *testing.T) {
	for _, sigma := range []float64{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("sigma=%v: expected panic", sigma)
				}
			}()
			GaussianKernel(sigma, DefaultTruncate)
		}()
	}
}
