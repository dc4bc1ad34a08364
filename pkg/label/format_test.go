package label

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{0.00005, "5e-05"},
		{0.0001, "0.0001"},
		{0.005, "0.0050"},
		{0.05, "0.050"},
		{0.01, "0.010"},
		{0.1, "0.10"},
		{0.5, "0.50"},
		{1.0, "1.00"},
		{123.456, "123.46"},
		{47.2483, "47.25"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.value); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatMeasurement(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{2.5, UnitMeters, "2.50 m"},
		{0.25, UnitSquareMeters, "0.25 m²"},
		{90.0, UnitDegrees, "90.00 °"},
	}

	for _, tt := range tests {
		if got := FormatMeasurement(tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatMeasurement(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}
