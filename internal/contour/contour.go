package contour

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/tremor-data/intensity.report/internal/fsutil"
	"github.com/tremor-data/intensity.report/internal/monitoring"
)

// Attribute fields written for every contour feature. The generator is
// expected to create this schema so downstream styling can rely on it.
const (
	FieldID     = "ID"     // feature identifier
	FieldMMI    = "MMI"    // intensity level of the isoline
	FieldX      = "X"      // label anchor x, centroid-aligned
	FieldY      = "Y"      // label anchor y, minimum of the contour
	FieldRGB    = "RGB"    // html hex colour for the intensity class
	FieldRoman  = "ROMAN"  // intensity in roman-numeral form
	FieldAlign  = "ALIGN"  // label horizontal alignment
	FieldVAlign = "VALIGN" // label vertical alignment
	FieldLength = "LEN"    // feature length, for filtering small features
)

// FieldNames lists the schema in creation order.
var FieldNames = []string{
	FieldID, FieldMMI, FieldX, FieldY, FieldRGB,
	FieldRoman, FieldAlign, FieldVAlign, FieldLength,
}

// Sidecar resources copied next to every generated contour layer.
const (
	ProjectionSidecar = "intensity-contours.prj"
	StyleSidecar      = "intensity-contours.qml"
)

// LevelParams fixes the contour levels: one isoline every Interval
// intensity units, starting from Base.
type LevelParams struct {
	Interval float64
	Base     float64
}

// DefaultLevelParams returns the fixed levels used for shake intensity.
func DefaultLevelParams() LevelParams {
	return LevelParams{Interval: DefaultContourInterval, Base: DefaultContourBase}
}

// RasterSource reads a band of sample values out of a raster source
// identifier. Implementations wrap an external raster I/O library.
type RasterSource interface {
	ReadBand(source string, band int) (*mat.Dense, error)
}

// Generator turns a scalar grid into vector isolines at the given levels
// and writes them to outputPath, creating the FieldNames attribute schema.
// Implementations wrap an external contouring library.
type Generator interface {
	Generate(grid *mat.Dense, levels LevelParams, outputPath string) error
}

// CreateParams configures one contour creation run.
type CreateParams struct {
	Source     string // raster source identifier, required
	Band       int    // raster band holding the intensity data; 1 if zero
	OutputPath string // derived from Source if empty
	// ResourceDir holds the projection and style sidecars. Sidecar copying
	// is skipped when empty.
	ResourceDir string
	Smoothing   SmoothingParams
	Levels      LevelParams
}

// OutputPathFor derives the default contour output path for a raster
// source: the source's directory and base name with a -contour.geojson
// suffix.
func OutputPathFor(source string) string {
	dir := filepath.Dir(source)
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, base+"-contour.geojson")
}

// Create runs the full pipeline: read the intensity band, smooth it, hand
// the smoothed grid to the generator, and copy the projection and style
// sidecars next to the output. It returns the output path written.
func Create(src RasterSource, gen Generator, fsys fsutil.FileSystem, p CreateParams) (string, error) {
	if p.Source == "" {
		return "", fmt.Errorf("contour: source is required")
	}
	band := p.Band
	if band == 0 {
		band = 1
	}
	outputPath := p.OutputPath
	if outputPath == "" {
		outputPath = OutputPathFor(p.Source)
	}
	levels := p.Levels
	if levels.Interval == 0 {
		levels = DefaultLevelParams()
	}

	grid, err := src.ReadBand(p.Source, band)
	if err != nil {
		return "", fmt.Errorf("contour: read band %d of %s: %w", band, p.Source, err)
	}
	rows, cols := grid.Dims()
	monitoring.Logf("contour: smoothing %dx%d grid from %s (method=%s)", rows, cols, p.Source, p.Smoothing.Method)

	smoothed, err := Smooth(grid, p.Smoothing)
	if err != nil {
		return "", fmt.Errorf("contour: %w", err)
	}

	if err := gen.Generate(smoothed, levels, outputPath); err != nil {
		return "", fmt.Errorf("contour: generate %s: %w", outputPath, err)
	}

	if p.ResourceDir != "" {
		if err := copySidecars(fsys, p.ResourceDir, outputPath); err != nil {
			return "", err
		}
	}
	return outputPath, nil
}

// copySidecars places the standard projection and QGIS style files next to
// the generated layer, since the generator itself only writes geometry.
func copySidecars(fsys fsutil.FileSystem, resourceDir, outputPath string) error {
	dir := filepath.Dir(outputPath)
	base := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))

	for _, sc := range []struct{ src, ext string }{
		{ProjectionSidecar, ".prj"},
		{StyleSidecar, ".qml"},
	} {
		src := filepath.Join(resourceDir, sc.src)
		dst := filepath.Join(dir, base+sc.ext)
		if err := fsutil.CopyFile(fsys, src, dst); err != nil {
			return fmt.Errorf("contour: sidecar: %w", err)
		}
	}
	return nil
}
