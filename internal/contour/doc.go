// Package contour orchestrates the shake-intensity contouring pipeline:
// read a raster band, smooth it, hand the smoothed grid to a contour
// generator, and place the projection/style sidecars next to the output.
//
// Raster decoding and isoline generation are external collaborators behind
// the RasterSource and Generator interfaces; this package owns only the
// smoothing decision and the orchestration around it.
package contour
