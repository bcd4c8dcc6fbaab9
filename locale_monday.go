package chrono

import (
	"slices"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// LocaleFromMonday seeds a LocaleSpec with the month and weekday names of a
// monday locale. Phrases, long date formats and the week rule are inherited
// from parent (or the base table) when the result is defined.
func LocaleFromMonday(parent string, locale monday.Locale) LocaleSpec {
	spec := LocaleSpec{Parent: parent}

	months := make([]string, 12)
	monthsGenitive := make([]string, 12)
	short := make([]string, 12)
	shortGenitive := make([]string, 12)
	for m := 0; m < 12; m++ {
		t := time.Date(2001, time.Month(m+1), 2, 12, 0, 0, 0, time.UTC)
		months[m] = monday.Format(t, "January", locale)
		monthsGenitive[m] = strings.TrimPrefix(monday.Format(t, "2 January", locale), "2 ")
		short[m] = monday.Format(t, "Jan", locale)
		shortGenitive[m] = strings.TrimPrefix(monday.Format(t, "2 Jan", locale), "2 ")
	}
	spec.Months = inflectedNames(monthsGenitive, months)
	spec.MonthsShort = inflectedNames(shortGenitive, short)

	weekdays := make([]string, 7)
	weekdaysShort := make([]string, 7)
	weekdaysMin := make([]string, 7)
	for d := 0; d < 7; d++ {
		// 2001-01-07 was a Sunday
		t := time.Date(2001, time.January, 7+d, 12, 0, 0, 0, time.UTC)
		weekdays[d] = monday.Format(t, "Monday", locale)
		weekdaysShort[d] = monday.Format(t, "Mon", locale)
		weekdaysMin[d] = minimalName(weekdaysShort[d])
	}
	spec.Weekdays = PlainNames(weekdays...)
	spec.WeekdaysShort = PlainNames(weekdaysShort...)
	spec.WeekdaysMin = PlainNames(weekdaysMin...)

	return spec
}

func inflectedNames(format, standalone []string) *Names {
	if slices.Equal(format, standalone) {
		return PlainNames(standalone...)
	}
	return &Names{Format: format, Standalone: standalone}
}

func minimalName(short string) string {
	runes := []rune(strings.TrimSuffix(short, "."))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}
