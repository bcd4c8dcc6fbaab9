package chrono

import "fmt"

func (d DateTime) Year() int {
	if !d.valid {
		return InvalidField
	}
	return d.asTime().Year()
}

// Month returns the zero based month.
func (d DateTime) Month() int {
	if !d.valid {
		return InvalidField
	}
	return int(d.asTime().Month()) - 1
}

// Date returns the day of the month.
func (d DateTime) Date() int {
	if !d.valid {
		return InvalidField
	}
	return d.asTime().Day()
}

func (d DateTime) Hour() int {
	if !d.valid {
		return InvalidField
	}
	return d.asTime().Hour()
}

func (d DateTime) Minute() int {
	if !d.valid {
		return InvalidField
	}
	return d.asTime().Minute()
}

func (d DateTime) Second() int {
	if !d.valid {
		return InvalidField
	}
	return d.asTime().Second()
}

func (d DateTime) Millisecond() int {
	if !d.valid {
		return InvalidField
	}
	return int(mod64(d.ms, 1000))
}

// Day returns the day of the week, 0 for Sunday.
func (d DateTime) Day() int {
	if !d.valid {
		return InvalidField
	}
	return int(d.asTime().Weekday())
}

func (d DateTime) DayOfYear() int {
	if !d.valid {
		return InvalidField
	}
	return d.asTime().YearDay()
}

// Quarter returns 1 to 4.
func (d DateTime) Quarter() int {
	if !d.valid {
		return InvalidField
	}
	return d.Month()/3 + 1
}

// DaysInMonth returns the length of the value's month.
func (d DateTime) DaysInMonth() int {
	if !d.valid {
		return InvalidField
	}
	return DaysInMonth(d.Year(), d.Month())
}

// IsLeapYear reports whether the value's year is a leap year.
func (d DateTime) IsLeapYear() bool {
	return d.valid && IsLeapYear(d.Year())
}

// setField rebuilds the value with one local field changed and runs the
// offset hooks.
func (d DateTime) setField(op string, change func(*dateFields)) DateTime {
	if !d.valid {
		return d
	}
	f := d.fields()
	change(&f)
	return updateOffset(op, d, d.withFields(f), false)
}

// SetYear sets the year. February 29th clamps to the 28th in common years.
func (d DateTime) SetYear(year int) DateTime {
	return d.setField("year", func(f *dateFields) {
		if f.month == 1 && f.day == 29 {
			f.day = DaysInMonth(year, 1)
		}
		f.year = year
	})
}

// SetMonth sets the zero based month. The day of the month is clamped to the
// length of the target month instead of rolling over. Months outside 0-11
// carry into the year.
func (d DateTime) SetMonth(month int) DateTime {
	return d.setField("month", func(f *dateFields) {
		f.day = min(f.day, DaysInMonth(f.year, month))
		f.month = month
	})
}

// SetMonthName sets the month from a name in the value's locale. Unknown
// names leave the value unchanged.
func (d DateTime) SetMonthName(name string) DateTime {
	if !d.valid {
		return d
	}
	month, ok := d.Locale().MonthIndex(name, "MMMM", false)
	if !ok {
		return d
	}
	return d.SetMonth(month)
}

// SetDate sets the day of the month; out of range values roll over.
func (d DateTime) SetDate(day int) DateTime {
	return d.setField("date", func(f *dateFields) { f.day = day })
}

func (d DateTime) SetHour(hour int) DateTime {
	return d.setField("hour", func(f *dateFields) { f.hour = hour })
}

func (d DateTime) SetMinute(minute int) DateTime {
	return d.setField("minute", func(f *dateFields) { f.minute = minute })
}

func (d DateTime) SetSecond(second int) DateTime {
	return d.setField("second", func(f *dateFields) { f.second = second })
}

func (d DateTime) SetMillisecond(ms int) DateTime {
	return d.setField("millisecond", func(f *dateFields) { f.milli = ms })
}

// SetDayOfYear moves to a day of the current year.
func (d DateTime) SetDayOfYear(day int) DateTime {
	if !d.valid {
		return d
	}
	return d.addDays("dayOfYear", day-d.DayOfYear())
}

// SetQuarter moves to the same month position inside another quarter.
func (d DateTime) SetQuarter(quarter int) DateTime {
	if !d.valid {
		return d
	}
	return d.SetMonth((quarter-1)*3 + d.Month()%3)
}

func (d DateTime) addDays(op string, days int) DateTime {
	return d.setField(op, func(f *dateFields) { f.day += days })
}

// Get reads a field by unit. It panics on an unknown unit.
func (d DateTime) Get(unit Unit) int {
	unit.mustValid("Get")
	switch unit {
	case Millisecond:
		return d.Millisecond()
	case Second:
		return d.Second()
	case Minute:
		return d.Minute()
	case Hour:
		return d.Hour()
	case Day:
		return d.Day()
	case Date:
		return d.Date()
	case Week:
		return d.Week()
	case ISOWeek:
		return d.ISOWeek()
	case Month:
		return d.Month()
	case Quarter:
		return d.Quarter()
	case Year:
		return d.Year()
	case Weekday:
		return d.Weekday()
	case ISOWeekday:
		return d.ISOWeekday()
	case DayOfYear:
		return d.DayOfYear()
	case WeekYear:
		return d.WeekYear()
	default:
		return d.ISOWeekYear()
	}
}

// Set writes a field by unit. It panics on an unknown unit.
func (d DateTime) Set(unit Unit, value int) DateTime {
	unit.mustValid("Set")
	switch unit {
	case Millisecond:
		return d.SetMillisecond(value)
	case Second:
		return d.SetSecond(value)
	case Minute:
		return d.SetMinute(value)
	case Hour:
		return d.SetHour(value)
	case Day:
		return d.SetDay(value)
	case Date:
		return d.SetDate(value)
	case Week:
		return d.SetWeek(value)
	case ISOWeek:
		return d.SetISOWeek(value)
	case Month:
		return d.SetMonth(value)
	case Quarter:
		return d.SetQuarter(value)
	case Year:
		return d.SetYear(value)
	case Weekday:
		return d.SetWeekday(value)
	case ISOWeekday:
		return d.SetISOWeekday(value)
	case DayOfYear:
		return d.SetDayOfYear(value)
	case WeekYear:
		return d.SetWeekYear(value)
	default:
		return d.SetISOWeekYear(value)
	}
}

// SetFields applies several fields, larger units first, so that
// {"month": 1, "date": 29} behaves the same regardless of map order.
func (d DateTime) SetFields(fields map[string]int) (DateTime, error) {
	values, unknown := normalizeFields(fields)
	if len(unknown) > 0 {
		return d, fmt.Errorf("%w: %v", ErrUnknownUnit, unknown)
	}
	for _, v := range values {
		d = d.Set(v.unit, v.value)
	}
	return d, nil
}

func mod64(n, m int64) int64 {
	return ((n % m) + m) % m
}
