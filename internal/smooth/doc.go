// Package smooth implements Gaussian smoothing of 2-D scalar grids.
//
// Responsibilities: truncated Gaussian kernel construction, reflective
// border tiling, and masked 2-D convolution. The package is a pure
// numerical core: one grid in, one grid out, no I/O and no state shared
// between calls.
//
// Grids and kernels are gonum mat matrices. Invalid cells can be excluded
// from smoothing with a Mask; their kernel mass is redistributed over the
// remaining window so the weighted average stays unbiased.
package smooth
