package convert

import "testing"

func TestRoundFloat64(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{10.125, 2, 10.13},
		{10.124, 2, 10.12},
		{1234.5, 0, 1235},
		{-3.14159, 3, -3.142},
	}
	for _, tt := range tests {
		if got := RoundFloat64(tt.in, tt.decimals); got != tt.want {
			t.Errorf("RoundFloat64(%v, %d) = %v, wanted %v", tt.in, tt.decimals, got, tt.want)
		}
	}
	if got := TwoDecimals(0.005); got != 0.01 {
		t.Errorf("TwoDecimals(0.005) = %v", got)
	}
}
