package scroll

import (
	"fmt"
	"math"
)

// Viewport describes the scrolled content in logical items: the total
// number of items, how many of them are visible, and the index of the first
// visible one.
type Viewport struct {
	Start   float64
	Total   float64
	Visible float64
}

// MaxStart returns the largest valid start, never below zero.
func (v Viewport) MaxStart() float64 {
	return max(v.Total-v.Visible, 0)
}

// Scrollable reports whether there is anything to scroll.
func (v Viewport) Scrollable() bool {
	return v.Total > v.Visible
}

// ClampStart clamps start to [0, MaxStart()].
func (v Viewport) ClampStart(start float64) float64 {
	return clamp(start, 0, v.MaxStart())
}

// Validate checks that all fields are finite and the counts are not
// negative. Start is not checked against the bounds as it is clamped on use.
func (v Viewport) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"start", v.Start},
		{"total", v.Total},
		{"visible", v.Visible},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: viewport %s is not a finite number", ErrInvalidOperation, f.name)
		}
	}
	if v.Total < 0 || v.Visible < 0 {
		return fmt.Errorf("%w: viewport counts must not be negative (total=%g, visible=%g)", ErrInvalidOperation, v.Total, v.Visible)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
