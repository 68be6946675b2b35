// Package gridio reads and writes scalar grids and cell masks as plain
// CSV. It is the boundary format for the command-line tools; geospatial
// raster formats stay behind the contour.RasterSource collaborator.
package gridio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/tremor-data/intensity.report/internal/fsutil"
	"github.com/tremor-data/intensity.report/internal/smooth"
)

// Read parses a CSV of float samples into a grid. Every row must have the
// same number of fields and the input must contain at least one cell.
func Read(r io.Reader) (*mat.Dense, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("gridio: parse csv: %w", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("gridio: empty grid")
	}

	rows, cols := len(records), len(records[0])
	g := mat.NewDense(rows, cols, nil)
	for i, record := range records {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("gridio: row %d col %d: %w", i, j, err)
			}
			g.Set(i, j, v)
		}
	}
	return g, nil
}

// Write encodes a grid as CSV, one row per line.
func Write(w io.Writer, g mat.Matrix) error {
	rows, cols := g.Dims()
	cw := csv.NewWriter(w)
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(g.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("gridio: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMask parses a CSV of 0/1 cells into a mask; 1 marks a cell invalid.
func ReadMask(r io.Reader) (*smooth.Mask, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("gridio: parse mask csv: %w", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("gridio: empty mask")
	}

	m := smooth.NewMask(len(records), len(records[0]))
	for i, record := range records {
		for j, field := range record {
			switch field {
			case "0":
			case "1":
				m.Set(i, j, true)
			default:
				return nil, fmt.Errorf("gridio: mask row %d col %d: want 0 or 1, got %q", i, j, field)
			}
		}
	}
	return m, nil
}

// ReadGridFile reads a grid CSV from the given filesystem.
func ReadGridFile(fsys fsutil.FileSystem, path string) (*mat.Dense, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridio: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteGridFile writes a grid CSV to the given filesystem.
func WriteGridFile(fsys fsutil.FileSystem, path string, g mat.Matrix) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("gridio: create %s: %w", path, err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadMaskFile reads a mask CSV from the given filesystem.
func ReadMaskFile(fsys fsutil.FileSystem, path string) (*smooth.Mask, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridio: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMask(f)
}
