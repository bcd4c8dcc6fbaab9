package chrono

// Inclusivity strings accepted by IsBetween.
const (
	ExcludeBoth  = "()"
	IncludeBoth  = "[]"
	IncludeStart = "[)"
	IncludeEnd   = "(]"
)

func granularity(units []Unit) Unit {
	if len(units) == 0 {
		return Millisecond
	}
	return units[0]
}

// IsBefore compares instants, or whole units when a unit is given: the
// value is before other when the unit containing it ends before other.
// Comparisons involving an invalid value are false.
func (d DateTime) IsBefore(other DateTime, unit ...Unit) bool {
	if !d.valid || !other.valid {
		return false
	}
	u := granularity(unit)
	if u == Millisecond {
		return d.ms < other.ms
	}
	return d.EndOf(u).ms < other.ms
}

// IsAfter is the mirror of IsBefore: other lies before the start of the
// unit containing the value.
func (d DateTime) IsAfter(other DateTime, unit ...Unit) bool {
	if !d.valid || !other.valid {
		return false
	}
	u := granularity(unit)
	if u == Millisecond {
		return d.ms > other.ms
	}
	return other.ms < d.StartOf(u).ms
}

// IsSame reports whether other falls inside the unit containing the value.
func (d DateTime) IsSame(other DateTime, unit ...Unit) bool {
	if !d.valid || !other.valid {
		return false
	}
	u := granularity(unit)
	if u == Millisecond {
		return d.ms == other.ms
	}
	return d.StartOf(u).ms <= other.ms && other.ms <= d.EndOf(u).ms
}

func (d DateTime) IsSameOrBefore(other DateTime, unit ...Unit) bool {
	return d.IsSame(other, unit...) || d.IsBefore(other, unit...)
}

func (d DateTime) IsSameOrAfter(other DateTime, unit ...Unit) bool {
	return d.IsSame(other, unit...) || d.IsAfter(other, unit...)
}

// IsBetween reports whether the value lies between from and to. The
// inclusivity string uses "(" or "[" for the start and ")" or "]" for the
// end; an empty string excludes both ends.
func (d DateTime) IsBetween(from, to DateTime, inclusivity string, unit ...Unit) bool {
	if !d.valid || !from.valid || !to.valid {
		return false
	}
	if len(inclusivity) != 2 {
		inclusivity = ExcludeBoth
	}

	var afterStart, beforeEnd bool
	if inclusivity[0] == '[' {
		afterStart = !d.IsBefore(from, unit...)
	} else {
		afterStart = d.IsAfter(from, unit...)
	}
	if inclusivity[1] == ']' {
		beforeEnd = !d.IsAfter(to, unit...)
	} else {
		beforeEnd = d.IsBefore(to, unit...)
	}
	return afterStart && beforeEnd
}

// Equal reports whether both values hold the same instant.
func (d DateTime) Equal(other DateTime) bool {
	return d.IsSame(other)
}
