package smooth

import "errors"

// ErrInvalidInput marks caller errors: shape mismatches, oversized kernels,
// masking combined with the reference algorithm. No partial computation is
// attempted once one is detected.
var ErrInvalidInput = errors.New("smooth: invalid input")

// ErrInternal marks violations of internal numerical invariants, such as a
// redistributed kernel losing mass. Seeing one means an implementation bug,
// not a recoverable runtime condition.
var ErrInternal = errors.New("smooth: internal consistency violation")
