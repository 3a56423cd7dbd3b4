package floats_test

import (
	"testing"

	"example.com/rt-loop/base/floats"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		x, lo, hi float64
		want      float64
	}{
		{
			name: "Within range",
			x:    1.0, lo: -2.0, hi: 2.0,
			want: 1.0,
		},
		{
			name: "Below lower bound",
			x:    -3.0, lo: -2.0, hi: 2.0,
			want: -2.0,
		},
		{
			name: "Above upper bound",
			x:    3.0, lo: -2.0, hi: 2.0,
			want: 2.0,
		},
		{
			name: "At lower bound",
			x:    -2.0, lo: -2.0, hi: 2.0,
			want: -2.0,
		},
		{
			name: "At upper bound",
			x:    2.0, lo: -2.0, hi: 2.0,
			want: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := floats.Clamp(tt.x, tt.lo, tt.hi)
			if got != tt.want {
				t.Errorf("floats.Clamp(%v, %v, %v) = %v, want %v",
					tt.x, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name      string
		input     []float64
		want      float64
		wantPanic bool
	}{
		{
			name:      "Empty slice",
			input:     []float64{},
			wantPanic: true,
		},
		{
			name:  "Single element",
			input: []float64{42.0},
			want:  42.0,
		},
		{
			name:  "Two elements",
			input: []float64{1.0, 2.0},
			want:  1.5,
		},
		{
			name:  "Three elements",
			input: []float64{3.0, 1.0, 2.0},
			want:  2.0,
		},
		{
			name:  "Four elements",
			input: []float64{4.0, 1.0, 3.0, 2.0},
			want:  2.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if tt.wantPanic && r == nil {
					t.Errorf("expected panic, got none")
				}
				if !tt.wantPanic && r != nil {
					t.Errorf("unexpected panic: %v", r)
				}
			}()
			got := floats.Median(tt.input)
			if got != tt.want {
				t.Errorf("floats.Median(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
