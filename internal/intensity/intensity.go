// Package intensity provides shared constants and conversions for the
// modified Mercalli intensity (MMI) scale.
package intensity

import "math"

// Scale bounds. MMI is an ordinal scale from I to XII.
const (
	MinMMI = 1.0
	MaxMMI = 12.0
)

// romanNumerals indexed by integer MMI class.
var romanNumerals = []string{
	"", "I", "II", "III", "IV", "V", "VI",
	"VII", "VIII", "IX", "X", "XI", "XII",
}

// classColours maps integer MMI classes to the hex colours used for
// contour styling, matching the standard shakemap palette.
var classColours = []string{
	"", "#FFFFFF", "#BFCCFF", "#BFCCFF", "#A0E6FF", "#80FFFF", "#7AFF93",
	"#FFFF00", "#FFC800", "#FF9100", "#FF0000", "#C80000", "#800000",
}

// IsValid checks whether an intensity value falls inside the MMI scale.
func IsValid(mmi float64) bool {
	return mmi >= MinMMI && mmi <= MaxMMI
}

// Class rounds an intensity value to its integer MMI class, clamped to the
// scale bounds.
func Class(mmi float64) int {
	c := int(math.Floor(mmi + 0.5))
	if c < int(MinMMI) {
		return int(MinMMI)
	}
	if c > int(MaxMMI) {
		return int(MaxMMI)
	}
	return c
}

// Romanize returns the roman-numeral label for an intensity value.
func Romanize(mmi float64) string {
	return romanNumerals[Class(mmi)]
}

// Colour returns the html hex colour for an intensity value.
func Colour(mmi float64) string {
	return classColours[Class(mmi)]
}
