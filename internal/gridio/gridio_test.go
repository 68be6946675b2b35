package gridio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tremor-data/intensity.report/internal/fsutil"
	"github.com/tremor-data/intensity.report/internal/testutil"
)

func TestReadGrid(t *testing.T) {
	in := "0,0.5,1\n2,2.5,3\n"
	g, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	r, c := g.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", r, c)
	}
	want := []float64{0, 0.5, 1, 2, 2.5, 3}
	if diff := cmp.Diff(want, g.RawMatrix().Data); diff != "" {
		t.Errorf("grid data mismatch (-want +got):\n%s", diff)
	}
}

func TestReadGridErrors(t *testing.T) {
	tests := []struct {
		name, in string
	}{
		{"empty", ""},
		{"ragged rows", "1,2,3\n4,5\n"},
		{"non-numeric", "1,2\n3,x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGridRoundTrip(t *testing.T) {
	g := testutil.RampGrid(4, 5)
	g.Set(1, 1, 3.25)
	g.Set(2, 3, -0.125)

	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatal(err)
	}
	back, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertGridsWithin(t, back, g, 0)
}

func TestReadMask(t *testing.T) {
	m, err := ReadMask(strings.NewReader("0,1,0\n0,0,1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows != 2 || m.Cols != 3 {
		t.Fatalf("mask dims = %dx%d, want 2x3", m.Rows, m.Cols)
	}
	for _, tt := range []struct {
		r, c int
		want bool
	}{
		{0, 0, false}, {0, 1, true}, {0, 2, false},
		{1, 0, false}, {1, 1, false}, {1, 2, true},
	} {
		if got := m.At(tt.r, tt.c); got != tt.want {
			t.Errorf("mask (%d,%d) = %v, want %v", tt.r, tt.c, got, tt.want)
		}
	}
}

func TestReadMaskRejectsNonBinary(t *testing.T) {
	if _, err := ReadMask(strings.NewReader("0,2\n")); err == nil {
		t.Error("expected error for non-binary mask value")
	}
}

func TestGridFileHelpers(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	g := testutil.ConstantGrid(3, 3, 7)

	if err := WriteGridFile(mfs, "/data/grid.csv", g); err != nil {
		t.Fatal(err)
	}
	back, err := ReadGridFile(mfs, "/data/grid.csv")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertGridsWithin(t, back, g, 0)

	if _, err := ReadGridFile(mfs, "/data/absent.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMaskFileHelper(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/data/mask.csv", []byte("1,0\n0,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := ReadMaskFile(mfs, "/data/mask.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !m.At(0, 0) || m.At(0, 1) || m.At(1, 0) || !m.At(1, 1) {
		t.Error("mask cells decoded incorrectly")
	}
}
