package chrono

import (
	"math"
	"time"
)

// InvalidField is returned by field getters of invalid values.
const InvalidField = math.MinInt

// maxMillis is the range of representable instants, ±100,000,000 days
// around the epoch.
const maxMillis = 8.64e15

// DateTime is an instant together with its zone context and locale. Values
// are immutable: every setter and arithmetic method returns a new DateTime.
// The zero value is invalid.
type DateTime struct {
	ms    int64
	valid bool

	// isUTC selects a fixed offset (minutes east of UTC) instead of loc
	isUTC  bool
	offset int
	loc    *time.Location

	locale *Locale
	cfg    *Config

	flags  *ParsingFlags
	strict bool
	input  string
	layout string

	inHook bool
}

func (d DateTime) config() *Config {
	if d.cfg != nil {
		return d.cfg
	}
	return Default()
}

// Locale returns the locale the value renders with.
func (d DateTime) Locale() *Locale {
	if d.locale != nil {
		return d.locale
	}
	return d.config().catalog.Active()
}

// WithLocale returns a copy rendering with the best match for tags. Unknown
// tags keep the current locale.
func (d DateTime) WithLocale(tags ...string) DateTime {
	if loc, ok := d.config().catalog.Find(tags...); ok {
		d.locale = loc
	}
	return d
}

// WithLocaleTable pins an already resolved locale.
func (d DateTime) WithLocaleTable(loc *Locale) DateTime {
	if loc != nil {
		d.locale = loc
	}
	return d
}

func (d DateTime) location() *time.Location {
	if d.isUTC {
		if d.offset == 0 {
			return time.UTC
		}
		return time.FixedZone("", d.offset*60)
	}
	if d.loc != nil {
		return d.loc
	}
	return d.config().location
}

func (d DateTime) asTime() time.Time {
	return time.UnixMilli(d.ms).In(d.location())
}

// IsValid reports whether the value holds a real instant.
func (d DateTime) IsValid() bool {
	return d.valid
}

// ParsingFlags returns the diagnostics recorded when the value was built.
func (d DateTime) ParsingFlags() ParsingFlags {
	if d.flags == nil {
		return ParsingFlags{Overflow: -1}
	}
	return d.flags.clone()
}

// InvalidAt returns the unit that overflowed during parsing, if any.
func (d DateTime) InvalidAt() (Unit, bool) {
	if d.flags == nil || d.flags.Overflow < 0 {
		return 0, false
	}
	return overflowUnits[d.flags.Overflow], true
}

// CreationData describes how a parsed value was built.
type CreationData struct {
	Input  string
	Layout string
	Locale string
	Strict bool
	IsUTC  bool
}

func (d DateTime) CreationData() CreationData {
	return CreationData{
		Input:  d.input,
		Layout: d.layout,
		Locale: d.Locale().Name(),
		Strict: d.strict,
		IsUTC:  d.isUTC,
	}
}

// Clone returns an independent copy. DateTime is a value type, so this is
// the identity; it exists for readability at call sites.
func (d DateTime) Clone() DateTime {
	return d
}

// ToTime converts to a time.Time in the value's zone. Invalid values yield
// the zero time.
func (d DateTime) ToTime() time.Time {
	if !d.valid {
		return time.Time{}
	}
	return d.asTime()
}

// UnixMilli returns milliseconds since the epoch.
func (d DateTime) UnixMilli() int64 {
	return d.ms
}

// Unix returns whole seconds since the epoch.
func (d DateTime) Unix() int64 {
	return int64(math.Floor(float64(d.ms) / 1000))
}

// ValueOf returns milliseconds since the epoch, or NaN for invalid values.
func (d DateTime) ValueOf() float64 {
	if !d.valid {
		return math.NaN()
	}
	return float64(d.ms)
}

// withMillis moves the instant and re-checks the representable range.
func (d DateTime) withMillis(ms int64) DateTime {
	d.ms = ms
	if math.Abs(float64(ms)) > maxMillis {
		d.valid = false
	}
	return d
}

// dateFields is a calendar breakdown with a zero based month.
type dateFields struct {
	year, month, day            int
	hour, minute, second, milli int
}

func (d DateTime) fields() dateFields {
	t := d.asTime()
	return dateFields{
		year:   t.Year(),
		month:  int(t.Month()) - 1,
		day:    t.Day(),
		hour:   t.Hour(),
		minute: t.Minute(),
		second: t.Second(),
		milli:  t.Nanosecond() / int(time.Millisecond),
	}
}

// withFields rebuilds the instant from local fields. Out of range fields
// roll into the neighbouring units.
func (d DateTime) withFields(f dateFields) DateTime {
	t := time.Date(f.year, time.Month(f.month+1), f.day, f.hour, f.minute, f.second, 0, d.location())
	return d.withMillis(t.UnixMilli() + int64(f.milli))
}
