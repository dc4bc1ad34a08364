package label

import "fmt"

// Measurement units as they appear in label text
const (
	UnitMeters       = "m"
	UnitSquareMeters = "m²"
	UnitCubicMeters  = "m³"
	UnitDegrees      = "°"
)

// FormatValue renders a measured value with precision that grows as
// the value shrinks. Very small values fall back to Go's default
// float formatting so they stay distinguishable from zero.
func FormatValue(v float64) string {
	switch {
	case v < 0.0001:
		return fmt.Sprintf("%v", v)
	case v < 0.01:
		return fmt.Sprintf("%.4f", v)
	case v < 0.1:
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatMeasurement renders a value with its unit suffix
func FormatMeasurement(v float64, unit string) string {
	return FormatValue(v) + " " + unit
}
