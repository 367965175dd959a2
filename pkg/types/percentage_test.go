package types

import (
	"math"
	"testing"
)

func TestPercentage_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"middle", 42.5, 42.5},
		{"hundred", 100, 100},
		{"above", 150, 100},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPercentage(tt.in).Value(); got != tt.want {
				t.Errorf("NewPercentage(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if NewPercentage(-5) != NewPercentage(0) {
		t.Error("Percentage(-5) != Percentage(0)")
	}
	if NewPercentage(150) != NewPercentage(100) {
		t.Error("Percentage(150) != Percentage(100)")
	}
}

func TestPercentageOf(t *testing.T) {
	if got := PercentageOf(3, 0); got != NewPercentage(0) {
		t.Errorf("PercentageOf(3, 0) = %v, want 0%%", got)
	}
	if got := PercentageOf(1, 2).Value(); got != 50 {
		t.Errorf("PercentageOf(1, 2) = %v, want 50", got)
	}
	if got := PercentageOf(5, 2).Value(); got != 100 {
		t.Errorf("PercentageOf(5, 2) = %v, want 100 (clamped)", got)
	}
}

// TestRoundResult_ThresholdLaw 对所有阈值与计数组合验证 connected == (s/t*100 >= threshold)
func TestRoundResult_ThresholdLaw(t *testing.T) {
	for threshold := 0; threshold <= 100; threshold += 5 {
		for total := 1; total <= 10; total++ {
			for successes := 0; successes <= total; successes++ {
				r := RoundResult{
					Successes: successes,
					Failures:  total - successes,
					Total:     total,
					Threshold: NewPercentage(float64(threshold)),
				}
				want := float64(successes)/float64(total)*100 >= float64(threshold)
				if got := r.Connected(); got != want {
					t.Fatalf("threshold=%d successes=%d total=%d: Connected()=%v, want %v",
						threshold, successes, total, got, want)
				}
			}
		}
	}
}

func TestRoundResult_EmptyNeverConnected(t *testing.T) {
	r := RoundResult{Threshold: NewPercentage(0)}
	if r.Connected() {
		t.Error("empty round must not be connected")
	}
}

func TestPercentage_UnmarshalText(t *testing.T) {
	var p Percentage
	if err := p.UnmarshalText([]byte("75%")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if p.Value() != 75 {
		t.Errorf("got %v, want 75", p.Value())
	}
	if err := p.UnmarshalText([]byte("abc")); err == nil {
		t.Error("expected error for invalid percentage")
	}
}
