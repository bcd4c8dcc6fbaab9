package chrono

import (
	"fmt"
	"math"
)

// Diff returns d minus other in the given unit. Months, quarters and years
// use calendar month arithmetic anchored on d; days and weeks ignore
// differences in UTC offset between the two instants; clock units use the
// raw millisecond difference. Unless precise is set, the result is truncated
// toward zero. Invalid operands yield NaN. It panics on units that are not
// spans.
//
// The result is negative when d is the earlier value: 2024-01-31 diffed
// against 2024-03-31 is -2 months, and the reverse call is 2.
func (d DateTime) Diff(other DateTime, unit Unit, precise bool) float64 {
	normalized, ok := durationUnit(unit)
	if !ok {
		panic(fmt.Sprintf("chrono: Diff: unsupported unit %v", unit))
	}
	if !d.valid || !other.valid {
		return math.NaN()
	}

	that := d.inZoneOf(other)
	delta := float64(d.ms - that.ms)
	zoneDelta := float64(that.UTCOffset()-d.UTCOffset()) * msPerMinute

	var out float64
	switch normalized {
	case Year:
		out = monthDiff(d, that) / 12
	case Quarter:
		out = monthDiff(d, that) / 3
	case Month:
		out = monthDiff(d, that)
	case Second:
		out = delta / msPerSecond
	case Minute:
		out = delta / msPerMinute
	case Hour:
		out = delta / msPerHour
	case Day:
		out = (delta - zoneDelta) / msPerDay
	case Week:
		out = (delta - zoneDelta) / msPerWeek
	default:
		out = delta
	}
	if precise {
		return out
	}
	return absFloor(out)
}

// DiffUnit is Diff with a unit name.
func (d DateTime) DiffUnit(other DateTime, name string, precise bool) (float64, error) {
	unit, err := ParseUnit(name)
	if err != nil {
		return math.NaN(), err
	}
	if _, ok := durationUnit(unit); !ok {
		return math.NaN(), fmt.Errorf("%w: %q cannot be used for differences", ErrUnknownUnit, name)
	}
	return d.Diff(other, unit, precise), nil
}

// monthDiff returns a minus b in months. Whole months are counted from a
// and the remainder is the fraction of the month surrounding b.
func monthDiff(a, b DateTime) float64 {
	if a.Date() < b.Date() {
		return -monthDiff(b, a)
	}

	whole := (b.Year()-a.Year())*12 + (b.Month() - a.Month())
	anchor := a.addMonths(whole)

	var adjust float64
	if b.ms-anchor.ms < 0 {
		prev := a.addMonths(whole - 1)
		adjust = float64(b.ms-anchor.ms) / float64(anchor.ms-prev.ms)
	} else {
		next := a.addMonths(whole + 1)
		adjust = float64(b.ms-anchor.ms) / float64(next.ms-anchor.ms)
	}

	out := -(float64(whole) + adjust)
	if out == 0 {
		// avoid -0
		return 0
	}
	return out
}
