// Command smooth applies Gaussian smoothing to a shake-intensity grid CSV.
// It can also emit before/after heat maps, an HTML comparison report, and
// a run record in a sqlite history database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/tremor-data/intensity.report/internal/config"
	"github.com/tremor-data/intensity.report/internal/contour"
	"github.com/tremor-data/intensity.report/internal/fsutil"
	"github.com/tremor-data/intensity.report/internal/gridio"
	"github.com/tremor-data/intensity.report/internal/intensity"
	"github.com/tremor-data/intensity.report/internal/monitoring"
	"github.com/tremor-data/intensity.report/internal/smooth"
	"github.com/tremor-data/intensity.report/internal/storage/sqlite"
	"github.com/tremor-data/intensity.report/internal/version"
)

// Config collects the command-line options.
type Config struct {
	Input      string
	Output     string
	MaskPath   string
	ConfigPath string
	Method     string
	Sigma      float64
	Truncate   float64
	Workers    int
	HeatmapDir string
	ReportPath string
	DBPath     string
	Version    bool
}

func main() {
	cfg := parseFlags()
	if cfg.Version {
		fmt.Println("smooth " + version.String())
		return
	}
	if err := run(cfg); err != nil {
		log.Fatalf("smooth: %v", err)
	}
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Input, "input", "", "Input grid CSV (required)")
	flag.StringVar(&cfg.Output, "output", "", "Output grid CSV (required)")
	flag.StringVar(&cfg.MaskPath, "mask", "", "Optional 0/1 mask CSV of invalid cells")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Optional tuning config JSON")
	flag.StringVar(&cfg.Method, "method", "", "Smoothing method: none or gaussian (overrides config)")
	flag.Float64Var(&cfg.Sigma, "sigma", 0, "Gaussian spread (overrides config)")
	flag.Float64Var(&cfg.Truncate, "truncate", 0, "Kernel truncation in sigmas (overrides config)")
	flag.IntVar(&cfg.Workers, "workers", 0, "Convolution worker goroutines (overrides config)")
	flag.StringVar(&cfg.HeatmapDir, "heatmaps", "", "Directory for before/after heat map PNGs")
	flag.StringVar(&cfg.ReportPath, "report", "", "Path for the HTML comparison report")
	flag.StringVar(&cfg.DBPath, "db", "", "Optional sqlite run-history database")
	flag.BoolVar(&cfg.Version, "version", false, "Print build information and exit")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	if cfg.Input == "" || cfg.Output == "" {
		return fmt.Errorf("both -input and -output are required")
	}

	params, err := resolveParams(cfg)
	if err != nil {
		return err
	}

	fsys := fsutil.OSFileSystem{}
	grid, err := gridio.ReadGridFile(fsys, cfg.Input)
	if err != nil {
		return err
	}
	rows, cols := grid.Dims()

	maskedCells := 0
	if cfg.MaskPath != "" {
		mask, err := gridio.ReadMaskFile(fsys, cfg.MaskPath)
		if err != nil {
			return err
		}
		params.Mask = mask
		for _, v := range mask.Cells {
			if v {
				maskedCells++
			}
		}
	}

	runID := uuid.New().String()
	log.Printf("run %s: smoothing %dx%d grid from %s (method=%s sigma=%g workers=%d)",
		runID, rows, cols, cfg.Input, params.Method, params.Sigma, params.Workers)

	start := time.Now()
	smoothed, err := contour.Smooth(grid, params)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	peak := mat.Max(smoothed)
	log.Printf("run %s: smoothed in %s, peak intensity %s (%.2f)",
		runID, elapsed, intensity.Romanize(peak), peak)

	if err := gridio.WriteGridFile(fsys, cfg.Output, smoothed); err != nil {
		return err
	}

	if cfg.HeatmapDir != "" {
		if err := fsys.MkdirAll(cfg.HeatmapDir, 0755); err != nil {
			return fmt.Errorf("heatmap dir: %w", err)
		}
		if err := monitoring.SaveHeatmapPNG(grid, "Raw intensity", cfg.HeatmapDir+"/raw.png"); err != nil {
			return err
		}
		if err := monitoring.SaveHeatmapPNG(smoothed, "Smoothed intensity", cfg.HeatmapDir+"/smoothed.png"); err != nil {
			return err
		}
	}

	if cfg.ReportPath != "" {
		f, err := os.Create(cfg.ReportPath)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		meta := monitoring.ReportMeta{RunID: runID, Source: cfg.Input, Method: params.Method.String(), Sigma: params.Sigma}
		if err := monitoring.WriteComparisonReport(f, grid, smoothed, meta); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		rec := &sqlite.RunRecord{
			RunID:         runID,
			Source:        cfg.Input,
			Method:        params.Method.String(),
			Sigma:         params.Sigma,
			Truncate:      params.Truncate,
			Rows:          rows,
			Cols:          cols,
			MaskedCells:   maskedCells,
			DurationNanos: elapsed.Nanoseconds(),
		}
		if err := store.Insert(rec); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	log.Printf("run %s: wrote %s", runID, cfg.Output)
	return nil
}

// resolveParams layers flag overrides on top of the tuning config file
// (or its built-in defaults when no file is given).
func resolveParams(cfg Config) (contour.SmoothingParams, error) {
	tuning := config.EmptyTuningConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadTuningConfig(cfg.ConfigPath)
		if err != nil {
			return contour.SmoothingParams{}, err
		}
		tuning = loaded
	}
	params := tuning.SmoothingParams()

	if cfg.Method != "" {
		m, err := contour.ParseSmoothingMethod(cfg.Method)
		if err != nil {
			return contour.SmoothingParams{}, err
		}
		params.Method = m
	}
	if cfg.Sigma != 0 {
		params.Sigma = cfg.Sigma
	}
	if cfg.Truncate != 0 {
		params.Truncate = cfg.Truncate
	}
	if cfg.Workers != 0 {
		params.Workers = cfg.Workers
	}
	if params.Truncate == 0 {
		params.Truncate = smooth.DefaultTruncate
	}
	if err := params.Validate(); err != nil {
		return contour.SmoothingParams{}, err
	}
	return params, nil
}
