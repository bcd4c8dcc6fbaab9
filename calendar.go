package chrono

import (
	"math"
	"time"
)

// WeekRule describes a week numbering convention. Dow is the first day of the
// week (0 = Sunday) and Doy is picked so that the week holding January
// (7 + Dow - Doy) is week 1.
type WeekRule struct {
	Dow int `json:"dow" yaml:"dow"`
	Doy int `json:"doy" yaml:"doy"`
}

// ISOWeekRule is the ISO 8601 convention: weeks start on Monday and week 1
// holds the first Thursday of the year.
var ISOWeekRule = WeekRule{Dow: 1, Doy: 4}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the length of a zero based month. Months outside 0-11
// carry into the adjacent years.
func DaysInMonth(year, month int) int {
	m := mod(month, 12)
	year += (month - m) / 12
	// day zero of the following month is the last day of this one
	return time.Date(year, time.Month(m+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekOffset is the signed distance in days between January 1st and the
// first day of week 1.
func FirstWeekOffset(year int, rule WeekRule) int {
	fwd := 7 + rule.Dow - rule.Doy
	fwdlw := (7 + int(time.Date(year, time.January, fwd, 0, 0, 0, 0, time.UTC).Weekday()) - rule.Dow) % 7
	return -fwdlw + fwd - 1
}

// DayOfYearFromWeeks converts a (weekYear, week, weekday) triple into a
// calendar year and a day of that year. Results outside the week year roll
// into the adjacent calendar year.
func DayOfYearFromWeeks(year, week, weekday int, rule WeekRule) (int, int) {
	localWeekday := (7 + weekday - rule.Dow) % 7
	dayOfYear := 1 + 7*(week-1) + localWeekday + FirstWeekOffset(year, rule)

	switch {
	case dayOfYear <= 0:
		prev := year - 1
		return prev, DaysInYear(prev) + dayOfYear
	case dayOfYear > DaysInYear(year):
		return year + 1, dayOfYear - DaysInYear(year)
	default:
		return year, dayOfYear
	}
}

// WeekOfYear returns the week year and the week number of the given day of
// a calendar year.
func WeekOfYear(year, dayOfYear int, rule WeekRule) (int, int) {
	week := floorDiv(dayOfYear-FirstWeekOffset(year, rule)-1, 7) + 1

	switch {
	case week < 1:
		prev := year - 1
		return prev, week + WeeksInYear(prev, rule)
	case week > WeeksInYear(year, rule):
		return year + 1, week - WeeksInYear(year, rule)
	default:
		return year, week
	}
}

// WeeksInYear returns the number of weeks (52 or 53) of a week year.
func WeeksInYear(year int, rule WeekRule) int {
	offset := FirstWeekOffset(year, rule)
	next := FirstWeekOffset(year+1, rule)
	return (DaysInYear(year) - offset + next) / 7
}

// DaysToMonths converts days into months using the 400 year Gregorian cycle
// (146097 days per 4800 months).
func DaysToMonths(days float64) float64 {
	return days * 4800 / 146097
}

// MonthsToDays is the inverse of DaysToMonths.
func MonthsToDays(months float64) float64 {
	return months * 146097 / 4800
}

// Breakdown is the canonical split of a span into calendar and clock units.
type Breakdown struct {
	Years        float64
	Months       float64
	Days         float64
	Hours        float64
	Minutes      float64
	Seconds      float64
	Milliseconds float64
}

// Bubble normalizes a raw (milliseconds, days, months) triple. Mixed signs
// are first collapsed into milliseconds through the mean month length, then
// the clock units are carved out of the milliseconds, whole months out of the
// days, and years out of the months.
func Bubble(milliseconds, days, months float64) Breakdown {
	allPositive := milliseconds >= 0 && days >= 0 && months >= 0
	allNegative := milliseconds <= 0 && days <= 0 && months <= 0
	if !allPositive && !allNegative {
		milliseconds += absCeil(MonthsToDays(months)+days) * msPerDay
		days = 0
		months = 0
	}

	var out Breakdown
	out.Milliseconds = math.Mod(milliseconds, 1000)

	seconds := absFloor(milliseconds / 1000)
	out.Seconds = math.Mod(seconds, 60)

	minutes := absFloor(seconds / 60)
	out.Minutes = math.Mod(minutes, 60)

	hours := absFloor(minutes / 60)
	out.Hours = math.Mod(hours, 24)

	days += absFloor(hours / 24)

	monthsFromDays := absFloor(DaysToMonths(days))
	months += monthsFromDays
	days -= absCeil(MonthsToDays(monthsFromDays))

	out.Years = absFloor(months / 12)
	out.Months = math.Mod(months, 12)
	out.Days = days
	return out
}

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay
)

func mod(n, m int) int {
	return ((n % m) + m) % m
}

func floorDiv(n, d int) int {
	q := n / d
	if (n%d != 0) && ((n < 0) != (d < 0)) {
		q--
	}
	return q
}

// jsRound rounds half up, like Math.round.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

func absFloor(x float64) float64 {
	if x < 0 {
		return math.Ceil(x)
	}
	return math.Floor(x)
}

func absCeil(x float64) float64 {
	if x < 0 {
		return math.Floor(x)
	}
	return math.Ceil(x)
}

func absRound(x float64) float64 {
	if x < 0 {
		return -jsRound(-x)
	}
	return jsRound(x)
}

func signOf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
