package monitoring

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
)

// viridis-like ramp used for the visual map colour scale.
var heatColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// ReportMeta labels a smoothing run in the comparison report.
type ReportMeta struct {
	RunID  string
	Source string
	Method string
	Sigma  float64
}

// WriteComparisonReport renders an HTML page with raw and smoothed grids
// as side-by-side heat maps on a shared colour scale, so the effect of the
// smoothing pass can be eyeballed before contouring.
func WriteComparisonReport(w io.Writer, raw, smoothed mat.Matrix, meta ReportMeta) error {
	rr, rc := raw.Dims()
	sr, sc := smoothed.Dims()
	if rr != sr || rc != sc {
		return fmt.Errorf("monitor: grid shapes differ: %dx%d vs %dx%d", rr, rc, sr, sc)
	}

	// One scale across both charts makes the comparison honest.
	lo := min(mat.Min(raw), mat.Min(smoothed))
	hi := max(mat.Max(raw), mat.Max(smoothed))
	if hi == lo {
		hi = lo + 1
	}

	subtitle := fmt.Sprintf("run=%s source=%s method=%s sigma=%g", meta.RunID, meta.Source, meta.Method, meta.Sigma)

	page := components.NewPage()
	page.AddCharts(
		heatmapChart("Raw intensity", subtitle, raw, lo, hi),
		heatmapChart("Smoothed intensity", subtitle, smoothed, lo, hi),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("monitor: render report: %w", err)
	}
	return nil
}

func heatmapChart(title, subtitle string, m mat.Matrix, lo, hi float64) *charts.HeatMap {
	rows, cols := m.Dims()

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "column"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: heatColors},
		}),
	)

	xLabels := make([]string, cols)
	for j := 0; j < cols; j++ {
		xLabels[j] = strconv.Itoa(j)
	}

	data := make([]opts.HeatMapData, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			// echarts puts y=0 at the bottom; flip so matrix row 0 is on top.
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, rows - 1 - i, m.At(i, j)}})
		}
	}
	hm.SetXAxis(xLabels).AddSeries("intensity", data)
	return hm
}
