package artifact

import "testing"

func TestNormalizeFraction(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"fraction passes through", 0.28, 0.28},
		{"percent form rescales", 28.0, 0.28},
		{"exactly unity passes through", 1.0, 1.0},
		{"above unity stays a violation", 1.05, 1.05},
		{"percent above 100 rescales to above unity", 120.0, 1.2},
		{"boundary value stays a fraction", 2.0, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFraction(tt.in); got != tt.want {
				t.Errorf("NormalizeFraction(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNumberAt_FallbackPaths(t *testing.T) {
	d := Discovery{
		"performance": map[string]interface{}{"efficiency": 0.31},
	}
	got, ok := d.NumberAt("efficiency", "performance.efficiency")
	if !ok || got != 0.31 {
		t.Errorf("got %v ok=%v, want 0.31 from the nested path", got, ok)
	}
	if _, ok := d.NumberAt("missing", "also.missing"); ok {
		t.Errorf("absent paths should report no value")
	}
}
