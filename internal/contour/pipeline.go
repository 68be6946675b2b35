package contour

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tremor-data/intensity.report/internal/smooth"
)

// SmoothingMethod selects how a grid is smoothed before contouring.
type SmoothingMethod int

const (
	// SmoothingNone passes the grid through unchanged.
	SmoothingNone SmoothingMethod = iota
	// SmoothingGaussian applies the windowed Gaussian convolution.
	SmoothingGaussian
)

// String returns the config-file spelling of the method.
func (m SmoothingMethod) String() string {
	switch m {
	case SmoothingNone:
		return "none"
	case SmoothingGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("SmoothingMethod(%d)", int(m))
	}
}

// ParseSmoothingMethod parses the config-file spelling of a method.
func ParseSmoothingMethod(s string) (SmoothingMethod, error) {
	switch s {
	case "none":
		return SmoothingNone, nil
	case "gaussian":
		return SmoothingGaussian, nil
	default:
		return 0, fmt.Errorf("unknown smoothing method %q (want none or gaussian)", s)
	}
}

// Defaults for shake-intensity contours.
const (
	DefaultSigma           = 0.9
	DefaultContourInterval = 0.5
	DefaultContourBase     = 0.0
)

// SmoothingParams configures one smoothing call. It is passed explicitly
// into Smooth; there is no ambient process-wide smoothing state.
type SmoothingParams struct {
	Method   SmoothingMethod
	Sigma    float64      // Gaussian spread; DefaultSigma if zero
	Truncate float64      // kernel truncation radius in sigmas; smooth.DefaultTruncate if zero
	Mask     *smooth.Mask // optional invalid-cell mask
	Workers  int          // row-sharded convolution workers; serial if < 2
}

// DefaultSmoothingParams returns the Gaussian defaults used for shakemaps.
func DefaultSmoothingParams() SmoothingParams {
	return SmoothingParams{
		Method:   SmoothingGaussian,
		Sigma:    DefaultSigma,
		Truncate: smooth.DefaultTruncate,
	}
}

// Validate reports whether the parameters describe a runnable smoothing call.
func (p SmoothingParams) Validate() error {
	if p.Method != SmoothingNone && p.Method != SmoothingGaussian {
		return fmt.Errorf("invalid smoothing method %d", int(p.Method))
	}
	if p.Method == SmoothingGaussian && p.Sigma < 0 {
		return fmt.Errorf("sigma must be non-negative, got %v", p.Sigma)
	}
	if p.Truncate < 0 {
		return fmt.Errorf("truncate must be non-negative, got %v", p.Truncate)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", p.Workers)
	}
	return nil
}

// Smooth applies the configured smoothing to grid. SmoothingNone returns
// the input grid unchanged; SmoothingGaussian builds a kernel from the
// spread and convolves in windowed mode. The output always has the input's
// shape.
func Smooth(grid *mat.Dense, p SmoothingParams) (*mat.Dense, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("smoothing params: %w", err)
	}

	switch p.Method {
	case SmoothingNone:
		return grid, nil
	case SmoothingGaussian:
		sigma := p.Sigma
		if sigma == 0 {
			sigma = DefaultSigma
		}
		truncate := p.Truncate
		if truncate == 0 {
			truncate = smooth.DefaultTruncate
		}
		kernel := smooth.GaussianKernel(sigma, truncate)
		out, err := smooth.Convolve(grid, kernel, smooth.Options{
			Mask:    p.Mask,
			Workers: p.Workers,
		})
		if err != nil {
			return nil, fmt.Errorf("gaussian smoothing: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid smoothing method %d", int(p.Method))
	}
}
