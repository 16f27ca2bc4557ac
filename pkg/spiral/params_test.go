package spiral

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		printMode bool
		want      Params
	}{
		{"empty", 0, false, Params{34, 85, 2.4}},
		{"short screen", 50, false, Params{34, 85, 2.4}},
		{"short print", 99, true, Params{34, 90, 2.4}},
		{"short boundary", 100, false, Params{28, 85, 2.4}},
		{"small boundary", 300, false, Params{28, 85, 2.4}},
		{"medium interpolated", 450, false, Params{23, 85, 2.4}},
		{"medium boundary", 600, false, Params{18, 85, 1.9}},
		{"long interpolated", 1050, true, Params{15, 90, 1.9}},
		{"long boundary", 1500, false, Params{12, 85, 1.9}},
		{"extended screen", 3000, false, Params{10, 75, 1.55}},
		{"extended print", 3000, true, Params{10, 80, 1.55}},
		{"extended floor", 4500, true, Params{9, 80, 1.55}},
		{"ultra screen", 5000, false, Params{6, 95, 1.35}},
		{"ultra print", 5000, true, Params{7, 70, 1.35}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.n, tt.printMode)
			if !approxEqual(got.FontSize, tt.want.FontSize) {
				t.Errorf("FontSize = %v, want %v", got.FontSize, tt.want.FontSize)
			}
			if got.StartRadius != tt.want.StartRadius {
				t.Errorf("StartRadius = %v, want %v", got.StartRadius, tt.want.StartRadius)
			}
			if got.PitchMultiplier != tt.want.PitchMultiplier {
				t.Errorf("PitchMultiplier = %v, want %v", got.PitchMultiplier, tt.want.PitchMultiplier)
			}
		})
	}
}

func TestSelectBandEdges(t *testing.T) {
	// 2200 still belongs to the default radius band.
	if got := Select(2200, false).StartRadius; got != 85 {
		t.Errorf("StartRadius(2200) = %v, want 85", got)
	}
	if got := Select(2201, false).StartRadius; got != 75 {
		t.Errorf("StartRadius(2201) = %v, want 75", got)
	}
	if got := Select(4500, false).PitchMultiplier; got != 1.55 {
		t.Errorf("PitchMultiplier(4500) = %v, want 1.55", got)
	}
	if got := Select(4501, false).PitchMultiplier; got != 1.35 {
		t.Errorf("PitchMultiplier(4501) = %v, want 1.35", got)
	}
	if got := Select(599, false).PitchMultiplier; got != 2.4 {
		t.Errorf("PitchMultiplier(599) = %v, want 2.4", got)
	}
}

func TestBaseFontSizeFloor(t *testing.T) {
	if got := baseFontSize(100000); got != 8 {
		t.Errorf("baseFontSize(100000) = %v, want 8", got)
	}
}

func TestSelectPositive(t *testing.T) {
	for _, printMode := range []bool{false, true} {
		for n := 0; n <= 10000; n += 7 {
			p := Select(n, printMode)
			if p.FontSize < 6 || p.StartRadius <= 0 || p.PitchMultiplier <= 0 {
				t.Fatalf("Select(%d, %v) = %+v, want positive values with font size >= 6", n, printMode, p)
			}
		}
	}
}

func TestFontSizeMonotone(t *testing.T) {
	prev := math.Inf(1)
	for n := 100; n <= 2200; n++ {
		size := fontSize(n, false)
		if size > prev+epsilon {
			t.Fatalf("fontSize(%d) = %v, grew from %v", n, size, prev)
		}
		prev = size
	}
}
