// Package monitoring provides pipeline diagnostics: a replaceable package
// logger plus debugging views of intensity grids as PNG heat maps and an
// HTML report comparing a grid before and after smoothing.
package monitoring

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// gridXYZ adapts a mat.Matrix to plotter.GridXYZ with unit cell spacing.
// Matrix row 0 is drawn at the top, matching how raster grids are usually
// viewed.
type gridXYZ struct {
	m mat.Matrix
}

func (g gridXYZ) Dims() (c, r int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g gridXYZ) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g gridXYZ) X(c int) float64 { return float64(c) }
func (g gridXYZ) Y(r int) float64 { return float64(r) }

// SaveHeatmapPNG renders the grid as a heat map and writes it to path. The
// output format follows the path's extension (plot supports .png, .pdf,
// .svg and friends); the callers here use .png.
func SaveHeatmapPNG(g mat.Matrix, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"

	pal := moreland.SmoothBlueRed().Palette(255)
	p.Add(plotter.NewHeatMap(gridXYZ{m: g}, pal))

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("monitor: save heatmap %s: %w", path, err)
	}
	return nil
}
