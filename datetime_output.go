package chrono

import (
	"encoding/json"
	"fmt"
)

const (
	isoLayoutUTC        = "YYYY-MM-DD[T]HH:mm:ss.SSS[Z]"
	isoLayoutOffset     = "YYYY-MM-DD[T]HH:mm:ss.SSSZ"
	isoLayoutUTCWide    = "YYYYYY-MM-DD[T]HH:mm:ss.SSS[Z]"
	isoLayoutOffsetWide = "YYYYYY-MM-DD[T]HH:mm:ss.SSSZ"
	stringLayout        = "ddd MMM DD YYYY HH:mm:ss [GMT]ZZ"
)

// ToISOString renders the instant in UTC as "2024-01-15T13:05:09.000Z", or
// in its own offset when keepOffset is set. Years outside 0-9999 use the
// six digit signed form. Invalid values render as an empty string.
func (d DateTime) ToISOString(keepOffset bool) string {
	if !d.valid {
		return ""
	}
	m := d
	if !keepOffset {
		m = d.InUTC(false)
	}
	wide := m.Year() < 0 || m.Year() > 9999
	var layout string
	switch {
	case !keepOffset && wide:
		layout = isoLayoutUTCWide
	case !keepOffset:
		layout = isoLayoutUTC
	case wide:
		layout = isoLayoutOffsetWide
	default:
		layout = isoLayoutOffset
	}
	return m.render(layout, m.Locale())
}

// String renders an English, JavaScript style description such as
// "Mon Jan 15 2024 13:05:09 GMT+0000".
func (d DateTime) String() string {
	loc := d.config().catalog.Resolve(BaseLocale)
	if !d.valid {
		return loc.InvalidDate()
	}
	return d.render(stringLayout, loc)
}

// GoString supports %#v with an expression that rebuilds the value: the
// constructor reflects local, UTC and fixed offset values.
func (d DateTime) GoString() string {
	if !d.valid {
		return "chrono.Invalid()"
	}
	switch {
	case d.IsUTC():
		return fmt.Sprintf("chrono.UTC(%q)", d.render(isoLayoutUTC, d.Locale()))
	case d.isUTC:
		return fmt.Sprintf("chrono.ParseZone(%q)", d.render(isoLayoutOffset, d.Locale()))
	default:
		return fmt.Sprintf("chrono.New(%q)", d.render(isoLayoutOffset, d.Locale()))
	}
}

// ToArray returns [year, month, date, hour, minute, second, millisecond]
// with a zero based month.
func (d DateTime) ToArray() []int {
	if !d.valid {
		return nil
	}
	f := d.fields()
	return []int{f.year, f.month, f.day, f.hour, f.minute, f.second, f.milli}
}

// ToObject returns the local fields keyed by unit name.
func (d DateTime) ToObject() map[string]int {
	if !d.valid {
		return nil
	}
	f := d.fields()
	return map[string]int{
		"years":        f.year,
		"months":       f.month,
		"date":         f.day,
		"hours":        f.hour,
		"minutes":      f.minute,
		"seconds":      f.second,
		"milliseconds": f.milli,
	}
}

// MarshalJSON encodes the UTC ISO form, or null when invalid.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.ToISOString(false))
}

// UnmarshalJSON accepts an ISO 8601 string, a millisecond timestamp or
// null.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	cfg := d.config()
	if string(data) == "null" {
		*d = cfg.Invalid()
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		*d = cfg.FromUnixMilli(ms)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("chrono: decode date: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

func (d DateTime) MarshalText() ([]byte, error) {
	if !d.valid {
		return nil, fmt.Errorf("chrono: marshal invalid date")
	}
	return []byte(d.ToISOString(true)), nil
}

// UnmarshalText parses ISO 8601 input keeping the offset it carries.
func (d *DateTime) UnmarshalText(text []byte) error {
	parsed := d.config().ParseZone(string(text), Layouts(ISO8601))
	if !parsed.valid {
		return fmt.Errorf("chrono: invalid date %q", string(text))
	}
	*d = parsed
	return nil
}

// From describes the distance from other to d, e.g. "in 3 days" or
// "3 days" without the suffix.
func (d DateTime) From(other DateTime, withoutSuffix bool) string {
	if !d.valid || !other.valid {
		return d.Locale().InvalidDate()
	}
	return Between(other, d).WithConfig(d.config()).WithLocaleTable(d.Locale()).Humanize(!withoutSuffix)
}

// FromNow is From relative to the configured clock.
func (d DateTime) FromNow(withoutSuffix bool) string {
	return d.From(d.config().Now(), withoutSuffix)
}

// To describes the distance from d to other.
func (d DateTime) To(other DateTime, withoutSuffix bool) string {
	if !d.valid || !other.valid {
		return d.Locale().InvalidDate()
	}
	return Between(d, other).WithConfig(d.config()).WithLocaleTable(d.Locale()).Humanize(!withoutSuffix)
}

func (d DateTime) ToNow(withoutSuffix bool) string {
	return d.To(d.config().Now(), withoutSuffix)
}

// CalendarKey picks the calendar phrase for d relative to the start of the
// day holding now.
func (d DateTime) CalendarKey(now DateTime) string {
	sod := d.inZoneOf(now).StartOf(Day)
	diff := d.Diff(sod, Day, true)
	switch {
	case diff < -6:
		return CalendarSameElse
	case diff < -1:
		return CalendarLastWeek
	case diff < 0:
		return CalendarLastDay
	case diff < 1:
		return CalendarSameDay
	case diff < 2:
		return CalendarNextDay
	case diff < 7:
		return CalendarNextWeek
	default:
		return CalendarSameElse
	}
}

// Calendar renders d relative to now ("Today at 2:30 PM", "Last Monday at
// 9:00 AM"). Without a reference the configured clock is used.
func (d DateTime) Calendar(reference ...DateTime) string {
	return d.CalendarWith(nil, reference...)
}

// CalendarWith is Calendar with per-call phrase overrides.
func (d DateTime) CalendarWith(overrides map[string]CalendarPhrase, reference ...DateTime) string {
	if !d.valid {
		return d.Locale().InvalidDate()
	}
	now := d.config().Now()
	if len(reference) > 0 && reference[0].valid {
		now = reference[0]
	}

	key := d.CalendarKey(now)
	var layout string
	if phrase, ok := overrides[key]; ok && phrase != nil {
		layout = phrase.CalendarLayout(d, now)
	}
	if layout == "" {
		layout = d.Locale().Calendar(key, d, now)
	}
	return d.Format(layout)
}
