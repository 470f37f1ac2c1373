// Package layout computes split-pane geometry and renders two panes side by
// side in a terminal.
package layout

import (
	"math"

	"fortio.org/safecast"
)

// Ratio bounds for the left pane.
const (
	MinRatio     = 0.2
	MaxRatio     = 0.8
	DefaultRatio = 0.5
)

// DividerWidth is the number of columns taken by the divider.
const DividerWidth = 1

// Split is the left pane's share of the available width.
type Split struct {
	ratio float64
}

// NewSplit returns a split at ratio, clamped to [MinRatio, MaxRatio].
// NaN selects DefaultRatio.
func NewSplit(ratio float64) Split {
	return Split{ratio: Clamp(ratio)}
}

// Clamp limits ratio to [MinRatio, MaxRatio].
func Clamp(ratio float64) float64 {
	switch {
	case math.IsNaN(ratio):
		return DefaultRatio
	case ratio < MinRatio:
		return MinRatio
	case ratio > MaxRatio:
		return MaxRatio
	}
	return ratio
}

// Ratio returns the left pane's share. The zero Split reports DefaultRatio.
func (s Split) Ratio() float64 {
	if s.ratio == 0 {
		return DefaultRatio
	}
	return s.ratio
}

// Drag moves the divider by delta out of total units, as a pointer drag
// across a container of that size would.
func (s Split) Drag(delta, total float64) Split {
	if total <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return s
	}
	return NewSplit(s.Ratio() + delta/total)
}

// Widths divides total columns into left and right pane widths, leaving
// room for the divider. Each pane gets at least one column when total allows.
func (s Split) Widths(total int) (left, right int) {
	avail := total - DividerWidth
	if avail <= 0 {
		return 0, 0
	}
	left, err := safecast.Convert[int](math.Round(float64(avail) * s.Ratio()))
	if err != nil {
		left = avail / 2
	}
	if avail >= 2 {
		left = min(max(left, 1), avail-1)
	}
	return left, avail - left
}
