package mactime

import (
	"math"
	"testing"
	"time"
)

func TestNormalizeNil(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Errorf("Normalize(nil) = %v, want nil", got)
	}
}

func TestNormalizeUnitHeuristic(t *testing.T) {
	tests := []struct {
		name    string
		raw     float64
		seconds float64 // expected offset from the Apple epoch
	}{
		{"plain seconds", 600000000, 600000000},
		{"milliseconds above 1e10", 2e10, 2e7},
		{"microseconds above 1e12", 2e12, 2e6},
		{"large seconds below heuristic", 9e9, 9e9},
		{"boundary 1e12 stays milliseconds", 1e12, 1e9},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(&tt.raw)
			if got == nil {
				t.Fatalf("Normalize(%v) = nil", tt.raw)
			}
			want := Epoch().Add(time.Duration(tt.seconds * float64(time.Second))).Local()
			if !got.Equal(want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.raw, got, want)
			}
		})
	}
}

func TestNormalizeYieldsLocalTime(t *testing.T) {
	raw := 600000000.0
	got := Normalize(&raw)
	if got == nil {
		t.Fatal("Normalize returned nil")
	}
	if got.Location() != time.Local {
		t.Errorf("location = %v, want local", got.Location())
	}
}

func TestNormalizeUninterpretableYieldsNil(t *testing.T) {
	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Normalize(&raw); got != nil {
			t.Errorf("Normalize(%v) = %v, want nil", raw, got)
		}
	}
}

func TestNormalizeOverflowYieldsNil(t *testing.T) {
	// 1e10 sits on the seconds side of the heuristic but exceeds what a
	// Duration can hold. Overflow must swallow to nil, not error.
	raw := 1e10
	if got := Normalize(&raw); got != nil {
		t.Errorf("Normalize(%v) = %v, want nil", raw, got)
	}
	huge := math.MaxFloat64 / 1e7
	if got := Normalize(&huge); got != nil {
		t.Errorf("Normalize(huge) = %v, want nil", got)
	}
}
