package chrono

import (
	"strconv"
	"strings"
)

// localeRules holds the computed phrases of the built-in locales. The YAML
// tables hold the literal data; these rules are merged on top when the
// built-ins are loaded. It is filled in init because the phrases call back
// into DateTime, which reaches the default config and the built-ins.
var localeRules map[string]LocaleSpec

func init() {
	localeRules = map[string]LocaleSpec{
		"en": {
			Ordinal: OrdinalFunc(func(n int, _ string) string {
				return strconv.Itoa(n) + englishOrdinalSuffix(n)
			}),
		},
		"de": {
			RelativeTime: map[string]RelativePhrase{
				"m":  germanRelative("m"),
				"h":  germanRelative("h"),
				"d":  germanRelative("d"),
				"dd": germanRelative("dd"),
				"w":  germanRelative("w"),
				"M":  germanRelative("M"),
				"MM": germanRelative("MM"),
				"y":  germanRelative("y"),
				"yy": germanRelative("yy"),
			},
		},
		"es": {
			Calendar: map[string]CalendarPhrase{
				CalendarSameDay:  spanishCalendar("[hoy a la%s] LT"),
				CalendarNextDay:  spanishCalendar("[mañana a la%s] LT"),
				CalendarNextWeek: spanishCalendar("dddd [a la%s] LT"),
				CalendarLastDay:  spanishCalendar("[ayer a la%s] LT"),
				CalendarLastWeek: spanishCalendar("[el] dddd [pasado a la%s] LT"),
			},
		},
		"fr": {
			Ordinal: OrdinalFunc(func(n int, token string) string {
				switch token {
				case "D":
					if n == 1 {
						return "1er"
					}
					return strconv.Itoa(n)
				case "w", "W":
					if n == 1 {
						return "1re"
					}
					return strconv.Itoa(n) + "e"
				default:
					if n == 1 {
						return "1er"
					}
					return strconv.Itoa(n) + "e"
				}
			}),
		},
		"ru": {
			RelativeTime: map[string]RelativePhrase{
				"ss": RelativeFunc(russianRelative),
				"m":  RelativeFunc(russianRelative),
				"mm": RelativeFunc(russianRelative),
				"hh": RelativeFunc(russianRelative),
				"dd": RelativeFunc(russianRelative),
				"ww": RelativeFunc(russianRelative),
				"MM": RelativeFunc(russianRelative),
				"yy": RelativeFunc(russianRelative),
			},
			Calendar: map[string]CalendarPhrase{
				CalendarNextWeek: CalendarFunc(func(d, now DateTime) string {
					return russianWeekCalendar(d, now, [3]string{"[В следующее]", "[В следующий]", "[В следующую]"})
				}),
				CalendarLastWeek: CalendarFunc(func(d, now DateTime) string {
					return russianWeekCalendar(d, now, [3]string{"[В прошлое]", "[В прошлый]", "[В прошлую]"})
				}),
			},
			Ordinal: OrdinalFunc(func(n int, token string) string {
				switch token {
				case "M", "d", "DDD":
					return strconv.Itoa(n) + "-й"
				case "D":
					return strconv.Itoa(n) + "-го"
				case "w", "W":
					return strconv.Itoa(n) + "-я"
				default:
					return strconv.Itoa(n)
				}
			}),
			Meridiem: func(hour, _ int, _ bool) string {
				switch {
				case hour < 4:
					return "ночи"
				case hour < 12:
					return "утра"
				case hour < 17:
					return "дня"
				default:
					return "вечера"
				}
			},
			IsPM: func(input string) bool {
				input = strings.ToLower(input)
				return input == "дня" || input == "вечера"
			},
		},
	}
}

func withLocaleRules(name string, spec LocaleSpec) LocaleSpec {
	rules, ok := localeRules[normalizeLocale(name)]
	if !ok {
		return spec
	}
	return mergeSpecs(spec, rules)
}

func englishOrdinalSuffix(value int) string {
	abs := value
	if abs < 0 {
		abs = -abs
	}
	mod100 := abs % 100
	if mod100 >= 11 && mod100 <= 13 {
		return "th"
	}
	switch abs % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// German phrases take the dative after "vor" and "in".
func germanRelative(key string) RelativeFunc {
	forms := map[string][2]string{
		"m":  {"eine Minute", "einer Minute"},
		"h":  {"eine Stunde", "einer Stunde"},
		"d":  {"ein Tag", "einem Tag"},
		"dd": {"%d Tage", "%d Tagen"},
		"w":  {"eine Woche", "einer Woche"},
		"M":  {"ein Monat", "einem Monat"},
		"MM": {"%d Monate", "%d Monaten"},
		"y":  {"ein Jahr", "einem Jahr"},
		"yy": {"%d Jahre", "%d Jahren"},
	}[key]
	return func(n int, withoutSuffix bool, _ string, _ bool) string {
		form := forms[1]
		if withoutSuffix {
			form = forms[0]
		}
		return replacePlaceholder(form, 'd', strconv.Itoa(n))
	}
}

// Spanish uses the singular article for one o'clock.
func spanishCalendar(layout string) CalendarFunc {
	return func(d, _ DateTime) string {
		plural := "s"
		if d.Hour() == 1 {
			plural = ""
		}
		return strings.Replace(layout, "%s", plural, 1)
	}
}

func russianPlural(forms string, n int) string {
	words := strings.Split(forms, "_")
	switch {
	case n%10 == 1 && n%100 != 11:
		return words[0]
	case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
		return words[1]
	default:
		return words[2]
	}
}

func russianRelative(n int, withoutSuffix bool, key string, _ bool) string {
	if key == "m" {
		if withoutSuffix {
			return "минута"
		}
		return "минуту"
	}
	forms := map[string]string{
		"hh": "час_часа_часов",
		"dd": "день_дня_дней",
		"ww": "неделя_недели_недель",
		"MM": "месяц_месяца_месяцев",
		"yy": "год_года_лет",
	}
	switch key {
	case "ss":
		forms[key] = "секунду_секунды_секунд"
		if withoutSuffix {
			forms[key] = "секунда_секунды_секунд"
		}
	case "mm":
		forms[key] = "минуту_минуты_минут"
		if withoutSuffix {
			forms[key] = "минута_минуты_минут"
		}
	}
	return strconv.Itoa(n) + " " + russianPlural(forms[key], n)
}

// russianWeekCalendar picks the preposition and gender of "next"/"last" from
// the weekday; within the same week only the preposition is used.
func russianWeekCalendar(d, now DateTime, adjectives [3]string) string {
	day := d.Day()
	if now.Week() != d.Week() {
		switch day {
		case 0:
			return adjectives[0] + " dddd, [в] LT"
		case 1, 2, 4:
			return adjectives[1] + " dddd, [в] LT"
		default:
			return adjectives[2] + " dddd, [в] LT"
		}
	}
	if day == 2 {
		return "[Во] dddd, [в] LT"
	}
	return "[В] dddd, [в] LT"
}
