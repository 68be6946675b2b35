package intensity

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		mmi  float64
		want bool
	}{
		{0.5, false},
		{1.0, true},
		{5.3, true},
		{12.0, true},
		{12.1, false},
		{-3, false},
	}
	for _, c := range cases {
		if got := IsValid(c.mmi); got != c.want {
			t.Errorf("IsValid(%g) = %v, want %v", c.mmi, got, c.want)
		}
	}
}

func TestClassRoundsAndClamps(t *testing.T) {
	cases := []struct {
		mmi  float64
		want int
	}{
		{4.4, 4},
		{4.5, 5},
		{0.2, 1},   // clamped to scale minimum
		{14.0, 12}, // clamped to scale maximum
	}
	for _, c := range cases {
		if got := Class(c.mmi); got != c.want {
			t.Errorf("Class(%g) = %d, want %d", c.mmi, got, c.want)
		}
	}
}

func TestRomanize(t *testing.T) {
	if got := Romanize(8.2); got != "VIII" {
		t.Errorf("Romanize(8.2) = %q, want VIII", got)
	}
	if got := Romanize(1.0); got != "I" {
		t.Errorf("Romanize(1.0) = %q, want I", got)
	}
	if got := Romanize(11.7); got != "XII" {
		t.Errorf("Romanize(11.7) = %q, want XII", got)
	}
}

func TestColour(t *testing.T) {
	if got := Colour(8.0); got != "#FFC800" {
		t.Errorf("Colour(8.0) = %q, want #FFC800", got)
	}
	if got := Colour(1.2); got != "#FFFFFF" {
		t.Errorf("Colour(1.2) = %q, want #FFFFFF", got)
	}
}
