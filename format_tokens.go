package chrono

import (
	"strconv"
	"strings"
)

// zeroFill pads the absolute value of n to width digits and prefixes the
// sign ("+" only when forceSign is set).
func zeroFill(n, width int, forceSign bool) string {
	abs := n
	sign := ""
	switch {
	case n < 0:
		abs = -n
		sign = "-"
	case forceSign:
		sign = "+"
	}
	digits := strconv.Itoa(abs)
	if pad := width - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return sign + digits
}

func numberToken(get func(DateTime) int, width int, forceSign bool) tokenRenderer {
	return func(d DateTime, _ *Locale, _ string) string {
		return zeroFill(get(d), width, forceSign)
	}
}

func ordinalToken(get func(DateTime) int, token string) tokenRenderer {
	return func(d DateTime, loc *Locale, _ string) string {
		return loc.Ordinal(get(d), token)
	}
}

func hour12(d DateTime) int {
	if h := d.Hour() % 12; h != 0 {
		return h
	}
	return 12
}

func hour24(d DateTime) int {
	if h := d.Hour(); h != 0 {
		return h
	}
	return 24
}

func month1(d DateTime) int { return d.Month() + 1 }

func offsetToken(sep string) tokenRenderer {
	return func(d DateTime, _ *Locale, _ string) string {
		offset := d.UTCOffset()
		sign := "+"
		if offset < 0 {
			offset = -offset
			sign = "-"
		}
		return sign + zeroFill(offset/60, 2, false) + sep + zeroFill(offset%60, 2, false)
	}
}

func fractionToken(width int) tokenRenderer {
	return func(d DateTime, _ *Locale, _ string) string {
		ms := d.Millisecond()
		switch {
		case width == 1:
			return strconv.Itoa(ms / 100)
		case width == 2:
			return zeroFill(ms/10, 2, false)
		default:
			scale := 1
			for i := 3; i < width; i++ {
				scale *= 10
			}
			return zeroFill(ms*scale, width, false)
		}
	}
}

var formatTokenFuncs = buildFormatTokens()

func buildFormatTokens() map[string]tokenRenderer {
	tokens := map[string]tokenRenderer{
		"M":  numberToken(month1, 0, false),
		"MM": numberToken(month1, 2, false),
		"Mo": ordinalToken(month1, "M"),
		"MMM": func(d DateTime, loc *Locale, layout string) string {
			return loc.MonthShortName(d.Month(), layout)
		},
		"MMMM": func(d DateTime, loc *Locale, layout string) string {
			return loc.MonthName(d.Month(), layout)
		},

		"Y": func(d DateTime, _ *Locale, _ string) string {
			if y := d.Year(); y > 9999 {
				return "+" + strconv.Itoa(y)
			}
			return zeroFill(d.Year(), 4, false)
		},
		"YY":     numberToken(func(d DateTime) int { return d.Year() % 100 }, 2, false),
		"YYYY":   numberToken(DateTime.Year, 4, false),
		"YYYYY":  numberToken(DateTime.Year, 5, false),
		"YYYYYY": numberToken(DateTime.Year, 6, true),

		"Q":  numberToken(DateTime.Quarter, 0, false),
		"Qo": ordinalToken(DateTime.Quarter, "Q"),

		"D":    numberToken(DateTime.Date, 0, false),
		"DD":   numberToken(DateTime.Date, 2, false),
		"Do":   ordinalToken(DateTime.Date, "D"),
		"DDD":  numberToken(DateTime.DayOfYear, 0, false),
		"DDDD": numberToken(DateTime.DayOfYear, 3, false),
		"DDDo": ordinalToken(DateTime.DayOfYear, "DDD"),

		"d":  numberToken(DateTime.Day, 0, false),
		"do": ordinalToken(DateTime.Day, "d"),
		"dd": func(d DateTime, loc *Locale, layout string) string {
			return loc.WeekdayMinName(d.Day(), layout)
		},
		"ddd": func(d DateTime, loc *Locale, layout string) string {
			return loc.WeekdayShortName(d.Day(), layout)
		},
		"dddd": func(d DateTime, loc *Locale, layout string) string {
			return loc.WeekdayName(d.Day(), layout)
		},
		"e": numberToken(DateTime.Weekday, 0, false),
		"E": numberToken(DateTime.ISOWeekday, 0, false),

		"w":  numberToken(DateTime.Week, 0, false),
		"ww": numberToken(DateTime.Week, 2, false),
		"wo": ordinalToken(DateTime.Week, "w"),
		"W":  numberToken(DateTime.ISOWeek, 0, false),
		"WW": numberToken(DateTime.ISOWeek, 2, false),
		"Wo": ordinalToken(DateTime.ISOWeek, "W"),

		"gg":    numberToken(func(d DateTime) int { return d.WeekYear() % 100 }, 2, false),
		"gggg":  numberToken(DateTime.WeekYear, 4, false),
		"ggggg": numberToken(DateTime.WeekYear, 5, false),
		"GG":    numberToken(func(d DateTime) int { return d.ISOWeekYear() % 100 }, 2, false),
		"GGGG":  numberToken(DateTime.ISOWeekYear, 4, false),
		"GGGGG": numberToken(DateTime.ISOWeekYear, 5, false),

		"H":  numberToken(DateTime.Hour, 0, false),
		"HH": numberToken(DateTime.Hour, 2, false),
		"h":  numberToken(hour12, 0, false),
		"hh": numberToken(hour12, 2, false),
		"k":  numberToken(hour24, 0, false),
		"kk": numberToken(hour24, 2, false),

		"hmm": func(d DateTime, _ *Locale, _ string) string {
			return strconv.Itoa(hour12(d)) + zeroFill(d.Minute(), 2, false)
		},
		"hmmss": func(d DateTime, _ *Locale, _ string) string {
			return strconv.Itoa(hour12(d)) + zeroFill(d.Minute(), 2, false) + zeroFill(d.Second(), 2, false)
		},
		"Hmm": func(d DateTime, _ *Locale, _ string) string {
			return strconv.Itoa(d.Hour()) + zeroFill(d.Minute(), 2, false)
		},
		"Hmmss": func(d DateTime, _ *Locale, _ string) string {
			return strconv.Itoa(d.Hour()) + zeroFill(d.Minute(), 2, false) + zeroFill(d.Second(), 2, false)
		},

		"a": func(d DateTime, loc *Locale, _ string) string {
			return loc.Meridiem(d.Hour(), d.Minute(), true)
		},
		"A": func(d DateTime, loc *Locale, _ string) string {
			return loc.Meridiem(d.Hour(), d.Minute(), false)
		},

		"m":  numberToken(DateTime.Minute, 0, false),
		"mm": numberToken(DateTime.Minute, 2, false),
		"s":  numberToken(DateTime.Second, 0, false),
		"ss": numberToken(DateTime.Second, 2, false),

		"z":  func(d DateTime, _ *Locale, _ string) string { return d.ZoneAbbr() },
		"zz": func(d DateTime, _ *Locale, _ string) string { return d.ZoneName() },
		"Z":  offsetToken(":"),
		"ZZ": offsetToken(""),

		"X": func(d DateTime, _ *Locale, _ string) string { return strconv.FormatInt(d.Unix(), 10) },
		"x": func(d DateTime, _ *Locale, _ string) string { return strconv.FormatInt(d.UnixMilli(), 10) },
	}

	for width := 1; width <= 9; width++ {
		tokens[strings.Repeat("S", width)] = fractionToken(width)
	}
	return tokens
}
