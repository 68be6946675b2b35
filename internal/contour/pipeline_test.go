package contour

import (
	"errors"
	"testing"

	"github.com/tremor-data/intensity.report/internal/smooth"
	"github.com/tremor-data/intensity.report/internal/testutil"
)

func TestParseSmoothingMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    SmoothingMethod
		wantErr bool
	}{
		{in: "none", want: SmoothingNone},
		{in: "gaussian", want: SmoothingGaussian},
		{in: "scipy", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSmoothingMethod(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSmoothingMethod(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSmoothingMethod(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSmoothingMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSmoothingMethodRoundTrip(t *testing.T) {
	for _, m := range []SmoothingMethod{SmoothingNone, SmoothingGaussian} {
		got, err := ParseSmoothingMethod(m.String())
		if err != nil {
			t.Fatalf("%v: %v", m, err)
		}
		if got != m {
			t.Errorf("round trip of %v gave %v", m, got)
		}
	}
}

func TestSmoothNonePassesThrough(t *testing.T) {
	grid := testutil.RampGrid(6, 6)
	out, err := Smooth(grid, SmoothingParams{Method: SmoothingNone})
	if err != nil {
		t.Fatal(err)
	}
	if out != grid {
		t.Error("SmoothingNone must return the input grid unchanged")
	}
}

func TestSmoothGaussianDefaults(t *testing.T) {
	// Zero sigma and truncate fall back to the shakemap defaults
	// (sigma 0.9, truncate 4), i.e. a 9x9 kernel.
	grid := testutil.ConstantGrid(10, 12, 5.5)
	out, err := Smooth(grid, SmoothingParams{Method: SmoothingGaussian})
	if err != nil {
		t.Fatal(err)
	}
	if out == grid {
		t.Fatal("gaussian smoothing must allocate a new grid")
	}
	testutil.AssertGridsWithin(t, out, grid, 1e-12)
}

func TestSmoothGaussianMatchesConvolve(t *testing.T) {
	grid := testutil.RampGrid(12, 11)
	out, err := Smooth(grid, SmoothingParams{Method: SmoothingGaussian, Sigma: 1.2, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}

	kernel := smooth.GaussianKernel(1.2, smooth.DefaultTruncate)
	want, err := smooth.Convolve(grid, kernel, smooth.Options{})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertGridsWithin(t, out, want, 0)
}

func TestSmoothKernelTooLargeForGrid(t *testing.T) {
	// Default sigma yields a 9x9 kernel, which a 5x5 grid cannot satisfy
	// with a single reflection.
	grid := testutil.ConstantGrid(5, 5, 1)
	_, err := Smooth(grid, SmoothingParams{Method: SmoothingGaussian})
	if !errors.Is(err, smooth.ErrInvalidInput) {
		t.Fatalf("err = %v, want smooth.ErrInvalidInput", err)
	}
}

func TestSmoothingParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  SmoothingParams
		wantErr bool
	}{
		{name: "defaults", params: DefaultSmoothingParams()},
		{name: "none", params: SmoothingParams{Method: SmoothingNone}},
		{name: "negative sigma", params: SmoothingParams{Method: SmoothingGaussian, Sigma: -1}, wantErr: true},
		{name: "negative truncate", params: SmoothingParams{Method: SmoothingGaussian, Truncate: -2}, wantErr: true},
		{name: "negative workers", params: SmoothingParams{Method: SmoothingGaussian, Workers: -1}, wantErr: true},
		{name: "bogus method", params: SmoothingParams{Method: SmoothingMethod(42)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
