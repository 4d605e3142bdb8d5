package core

import (
	"math"
	"testing"
)

func TestIntervalContainsAndSurrounds(t *testing.T) {
	i := NewInterval(1, 2)

	tests := []struct {
		x         float64
		contains  bool
		surrounds bool
	}{
		{0.5, false, false},
		{1, true, false},
		{1.5, true, true},
		{2, true, false},
		{2.5, false, false},
	}

	for _, tt := range tests {
		if got := i.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%v): expected %v, got %v", tt.x, tt.contains, got)
		}
		if got := i.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%v): expected %v, got %v", tt.x, tt.surrounds, got)
		}
	}
}

func TestIntervalOrdersBounds(t *testing.T) {
	i := NewInterval(5, -1)
	if i.Min != -1 || i.Max != 5 {
		t.Errorf("Expected [-1, 5], got [%v, %v]", i.Min, i.Max)
	}
}

func TestIntervalExpand(t *testing.T) {
	i := NewInterval(0, 0).Expand(1)
	if i.Min != -0.5 || i.Max != 0.5 {
		t.Errorf("Expected [-0.5, 0.5], got [%v, %v]", i.Min, i.Max)
	}
}

func TestIntervalEmptyAndUniverse(t *testing.T) {
	if EmptyInterval.Contains(0) {
		t.Error("Empty interval should contain nothing")
	}
	if !UniverseInterval.Contains(math.MaxFloat64) {
		t.Error("Universe interval should contain everything")
	}
	combined := EmptyInterval.Combine(NewInterval(1, 2))
	if combined.Min != 1 || combined.Max != 2 {
		t.Errorf("Expected combining with empty to be identity, got [%v, %v]", combined.Min, combined.Max)
	}
}

func TestIntervalClamp(t *testing.T) {
	i := NewInterval(0, 1)
	if i.Clamp(-1) != 0 || i.Clamp(2) != 1 || i.Clamp(0.3) != 0.3 {
		t.Error("Clamp did not restrict values to the interval")
	}
}
