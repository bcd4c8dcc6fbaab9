package chrono

// StartOf returns the first millisecond of the unit containing the value.
// Week starts on the locale's first day of the week, ISOWeek on Monday.
func (d DateTime) StartOf(unit Unit) DateTime {
	unit.mustValid("StartOf")
	if !d.valid {
		return d
	}
	return d.boundary("startOf", unit, false)
}

// EndOf returns the last millisecond of the unit containing the value,
// computed as the start of the next unit minus one millisecond.
func (d DateTime) EndOf(unit Unit) DateTime {
	unit.mustValid("EndOf")
	if !d.valid {
		return d
	}
	return d.boundary("endOf", unit, true)
}

func (d DateTime) boundary(op string, unit Unit, end bool) DateTime {
	next := 0
	if end {
		next = 1
	}

	f := d.fields()
	start := dateFields{year: f.year, month: 0, day: 1}
	switch unit {
	case Year:
		start.year += next
	case Quarter:
		start.month = f.month - f.month%3 + 3*next
	case Month:
		start.month = f.month + next
	case Week:
		start.month = f.month
		start.day = f.day - d.Weekday() + 7*next
	case ISOWeek:
		start.month = f.month
		start.day = f.day - (d.ISOWeekday() - 1) + 7*next
	case Day, Date, Weekday, ISOWeekday, DayOfYear:
		start.month = f.month
		start.day = f.day + next
	case Hour:
		return updateOffset(op, d, d.alignMillis(msPerHour, end), true)
	case Minute:
		return updateOffset(op, d, d.alignMillis(msPerMinute, end), true)
	case Second:
		return updateOffset(op, d, d.alignMillis(msPerSecond, end), true)
	default:
		return d
	}

	out := d.withFields(start)
	if end {
		out = out.withMillis(out.ms - 1)
	}
	return updateOffset(op, d, out, true)
}

// alignMillis truncates the local time to a multiple of size.
func (d DateTime) alignMillis(size int64, end bool) DateTime {
	local := d.ms + int64(d.UTCOffset())*msPerMinute
	start := d.ms - mod64(local, size)
	if end {
		return d.withMillis(start + size - 1)
	}
	return d.withMillis(start)
}
