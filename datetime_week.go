package chrono

func (d DateTime) weekRule() WeekRule {
	return d.Locale().Week()
}

func (d DateTime) weekOf(rule WeekRule) (int, int) {
	return WeekOfYear(d.Year(), d.DayOfYear(), rule)
}

// Weekday returns the day of the week relative to the locale's first day
// of the week (0 is the first day).
func (d DateTime) Weekday() int {
	if !d.valid {
		return InvalidField
	}
	return (d.Day() + 7 - d.weekRule().Dow) % 7
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func (d DateTime) ISOWeekday() int {
	if !d.valid {
		return InvalidField
	}
	if day := d.Day(); day != 0 {
		return day
	}
	return 7
}

// Week returns the locale week of the year.
func (d DateTime) Week() int {
	if !d.valid {
		return InvalidField
	}
	_, week := d.weekOf(d.weekRule())
	return week
}

func (d DateTime) ISOWeek() int {
	if !d.valid {
		return InvalidField
	}
	_, week := d.weekOf(ISOWeekRule)
	return week
}

// WeekYear returns the year the locale week belongs to.
func (d DateTime) WeekYear() int {
	if !d.valid {
		return InvalidField
	}
	year, _ := d.weekOf(d.weekRule())
	return year
}

func (d DateTime) ISOWeekYear() int {
	if !d.valid {
		return InvalidField
	}
	year, _ := d.weekOf(ISOWeekRule)
	return year
}

// WeeksInYear returns the number of locale weeks of the value's year.
func (d DateTime) WeeksInYear() int {
	if !d.valid {
		return InvalidField
	}
	return WeeksInYear(d.Year(), d.weekRule())
}

func (d DateTime) ISOWeeksInYear() int {
	if !d.valid {
		return InvalidField
	}
	return WeeksInYear(d.Year(), ISOWeekRule)
}

// SetDay moves to a day of the current week (0 = Sunday); values outside
// 0-6 move into adjacent weeks.
func (d DateTime) SetDay(day int) DateTime {
	if !d.valid {
		return d
	}
	return d.addDays("day", day-d.Day())
}

// SetDayName moves to a named day of the current week. Unknown names leave
// the value unchanged.
func (d DateTime) SetDayName(name string) DateTime {
	if !d.valid {
		return d
	}
	day, ok := d.Locale().WeekdayIndex(name, "dddd", false)
	if !ok {
		return d
	}
	return d.SetDay(day)
}

func (d DateTime) SetWeekday(weekday int) DateTime {
	if !d.valid {
		return d
	}
	return d.addDays("weekday", weekday-d.Weekday())
}

// SetISOWeekday moves to an ISO weekday of the current ISO week; Sunday
// belongs to the week that started on the previous Monday.
func (d DateTime) SetISOWeekday(weekday int) DateTime {
	if !d.valid {
		return d
	}
	if d.Day() == 0 {
		return d.SetDay(weekday - 7)
	}
	return d.SetDay(weekday)
}

func (d DateTime) SetWeek(week int) DateTime {
	if !d.valid {
		return d
	}
	return d.addDays("week", (week-d.Week())*7)
}

func (d DateTime) SetISOWeek(week int) DateTime {
	if !d.valid {
		return d
	}
	return d.addDays("isoWeek", (week-d.ISOWeek())*7)
}

// SetWeekYear keeps the locale week and weekday and moves to another week
// year. A week 53 that does not exist in the target year becomes week 52.
func (d DateTime) SetWeekYear(year int) DateTime {
	if !d.valid {
		return d
	}
	return d.setWeekYear("weekYear", year, d.Week(), d.Day(), d.weekRule())
}

func (d DateTime) SetISOWeekYear(year int) DateTime {
	if !d.valid {
		return d
	}
	return d.setWeekYear("isoWeekYear", year, d.ISOWeek(), d.ISOWeekday(), ISOWeekRule)
}

func (d DateTime) setWeekYear(op string, weekYear, week, weekday int, rule WeekRule) DateTime {
	week = min(week, WeeksInYear(weekYear, rule))
	year, dayOfYear := DayOfYearFromWeeks(weekYear, week, weekday, rule)
	return d.setField(op, func(f *dateFields) {
		f.year = year
		f.month = 0
		f.day = dayOfYear
	})
}
