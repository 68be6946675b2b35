package smooth

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Mode selects the convolution implementation.
type Mode int

const (
	// ModeWindowed computes each output cell with one windowed
	// multiply-and-reduce over the tiled grid. It is the production path
	// and the only mode that supports masking.
	ModeWindowed Mode = iota

	// ModeReference computes each output cell by explicit nested iteration
	// over every kernel element. It exists as a correctness oracle for
	// ModeWindowed and does not support masking.
	ModeReference
)

// workingKernelTol bounds how far a redistributed kernel's total may drift
// from the original kernel's total before the call fails with ErrInternal.
// Redistribution conserves mass exactly in real arithmetic; anything beyond
// rounding noise here means the algorithm is broken and every output cell
// would be silently biased.
const workingKernelTol = 1e-12

// Options configures a Convolve call. The zero value requests the windowed
// mode, no mask, and a single worker.
type Options struct {
	Mode Mode

	// Mask excludes cells from smoothing. Masked cells are copied through
	// unchanged and contribute no weight to their neighbours' averages.
	// Must match the grid's shape and may only be combined with
	// ModeWindowed.
	Mask *Mask

	// Workers shards output rows across this many goroutines. Values < 2
	// run serially. Each cell writes only its own output, so no
	// synchronisation beyond the final join is needed.
	Workers int
}

// cellEval computes one output cell from its tiled-grid coordinates.
type cellEval func(i, j int) (float64, error)

// Convolve slides kernel over grid and returns a newly allocated output of
// the same shape. Borders are handled by reflective tiling (TileReflect),
// so the kernel must fit within a single reflection: each kernel dimension
// has to be smaller than the matching grid dimension + 1. Kernel dimensions
// must be odd.
//
// Either a fully populated output is returned, or a nil output with an
// error wrapping ErrInvalidInput or ErrInternal.
func Convolve(grid, kernel mat.Matrix, opts Options) (*mat.Dense, error) {
	rows, cols := grid.Dims()
	kr, kc := kernel.Dims()

	if kr%2 == 0 || kc%2 == 0 {
		return nil, fmt.Errorf("%w: kernel dimensions must be odd, got %dx%d", ErrInvalidInput, kr, kc)
	}
	if kr >= rows+1 || kc >= cols+1 {
		return nil, fmt.Errorf("%w: kernel %dx%d too large for grid %dx%d (one reflection per side)",
			ErrInvalidInput, kr, kc, rows, cols)
	}
	if opts.Mask != nil {
		if opts.Mode == ModeReference {
			return nil, fmt.Errorf("%w: masking is not supported by the reference mode", ErrInvalidInput)
		}
		if opts.Mask.Rows != rows || opts.Mask.Cols != cols {
			return nil, fmt.Errorf("%w: mask shape %dx%d does not match grid %dx%d",
				ErrInvalidInput, opts.Mask.Rows, opts.Mask.Cols, rows, cols)
		}
	}

	hr, hc := kr/2, kc/2
	tiled := TileReflect(grid)
	var tiledMask *Mask
	if opts.Mask != nil {
		tiledMask = opts.Mask.TileReflect()
	}

	// Masked cells pass through unchanged, so start from a copy.
	out := mat.DenseCopyOf(grid)

	var eval cellEval
	switch opts.Mode {
	case ModeReference:
		eval = func(i, j int) (float64, error) {
			var sum float64
			for k := 0; k < kr; k++ {
				for l := 0; l < kc; l++ {
					sum += tiled.At(i+k-hr, j+l-hc) * kernel.At(k, l)
				}
			}
			return sum, nil
		}
	case ModeWindowed:
		kernelSum := mat.Sum(kernel)
		eval = func(i, j int) (float64, error) {
			window := tiled.Slice(i-hr, i+hr+1, j-hc, j+hc+1)
			weights := kernel
			if tiledMask != nil {
				work, clobbered, err := redistributeWeights(kernel, func(k, l int) bool {
					return tiledMask.At(i+k-hr, j+l-hc)
				})
				if err != nil {
					return 0, err
				}
				if clobbered != 0 {
					if d := math.Abs(mat.Sum(work) - kernelSum); d > workingKernelTol {
						return 0, fmt.Errorf("%w: working kernel drifted by %g at tiled cell (%d,%d)",
							ErrInternal, d, i, j)
					}
					weights = work
				}
			}
			var prod mat.Dense
			prod.MulElem(window, weights)
			return mat.Sum(&prod), nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidInput, opts.Mode)
	}

	convRow := func(io int) error {
		i := io + rows
		for jo := 0; jo < cols; jo++ {
			if opts.Mask != nil && opts.Mask.At(io, jo) {
				continue
			}
			v, err := eval(i, jo+cols)
			if err != nil {
				return err
			}
			out.Set(io, jo, v)
		}
		return nil
	}

	if opts.Workers < 2 {
		for io := 0; io < rows; io++ {
			if err := convRow(io); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	workers := opts.Workers
	if workers > rows {
		workers = rows
	}
	rowCh := make(chan int, rows)
	for io := 0; io < rows; io++ {
		rowCh <- io
	}
	close(rowCh)

	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(slot int) {
			defer wg.Done()
			for io := range rowCh {
				if err := convRow(io); err != nil {
					errs[slot] = err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// redistributeWeights copies kernel, zeroes positions where masked reports
// true, and spreads the removed ("clobbered") mass evenly over the
// remaining nonzero weights so the kernel's total is conserved. The count
// of unmasked positions is guaranteed >= 1 by the caller, which only
// convolves unmasked centre cells; a fully masked window therefore
// indicates a bug and returns ErrInternal.
func redistributeWeights(kernel mat.Matrix, masked func(k, l int) bool) (*mat.Dense, float64, error) {
	kr, kc := kernel.Dims()
	work := mat.DenseCopyOf(kernel)

	var clobbered float64
	remaining := 0
	for k := 0; k < kr; k++ {
		for l := 0; l < kc; l++ {
			if masked(k, l) {
				clobbered += work.At(k, l)
				work.Set(k, l, 0)
			} else {
				remaining++
			}
		}
	}
	if remaining == 0 {
		return nil, 0, fmt.Errorf("%w: window fully masked", ErrInternal)
	}
	if clobbered == 0 {
		return work, 0, nil
	}

	correction := clobbered / float64(remaining)
	for k := 0; k < kr; k++ {
		for l := 0; l < kc; l++ {
			if v := work.At(k, l); v != 0 {
				work.Set(k, l, v+correction)
			}
		}
	}
	return work, clobbered, nil
}
