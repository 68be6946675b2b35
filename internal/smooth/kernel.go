package smooth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultTruncate is the kernel truncation radius in standard deviations.
const DefaultTruncate = 4.0

// GaussianKernel returns a square 2-D Gaussian weight matrix for the given
// spread (standard deviation), truncated at truncate standard deviations.
// The side length is 2*radius+1 with radius = floor(truncate*sigma + 0.5),
// so the kernel always has a unique centre cell. Weights are normalised to
// sum to 1, making a convolution with this kernel a true weighted average.
//
// GaussianKernel panics if sigma or truncate is not positive; callers are
// expected to validate configuration before reaching this point.
func GaussianKernel(sigma, truncate float64) *mat.Dense {
	if sigma <= 0 {
		panic(fmt.Sprintf("smooth: gaussian kernel sigma must be positive, got %v", sigma))
	}
	if truncate <= 0 {
		panic(fmt.Sprintf("smooth: gaussian kernel truncate must be positive, got %v", truncate))
	}

	radius := int(truncate*sigma + 0.5)
	side := 2*radius + 1

	k := mat.NewDense(side, side, nil)
	s2 := sigma * sigma
	for i := 0; i < side; i++ {
		x := float64(i - radius)
		for j := 0; j < side; j++ {
			y := float64(j - radius)
			k.Set(i, j, 2*math.Exp(-0.5*(x*x+y*y)/s2))
		}
	}

	k.Scale(1/mat.Sum(k), k)
	return k
}
