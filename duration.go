package chrono

import (
	"encoding/json"
	"fmt"
	"math"
)

// Duration is a signed span kept as three independent components:
// milliseconds, days and months. Days and months are calendar amounts whose
// length depends on where the span is applied. The zero value is a valid
// empty duration.
type Duration struct {
	milliseconds float64
	days         float64
	months       float64
	invalid      bool

	locale *Locale
	cfg    *Config
}

// durationOrder lists the units a duration accepts, largest first. Only the
// smallest unit present may carry a fraction.
var durationOrder = []Unit{Year, Quarter, Month, Week, Day, Hour, Minute, Second, Millisecond}

func durationUnit(unit Unit) (Unit, bool) {
	switch unit {
	case Year, Quarter, Month, Week, Day, Hour, Minute, Second, Millisecond:
		return unit, true
	case ISOWeek:
		return Week, true
	case Date:
		return Day, true
	default:
		return 0, false
	}
}

func durationFromUnits(values map[Unit]float64) Duration {
	var d Duration
	for unit, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return InvalidDuration()
		}
		switch unit {
		case Year:
			d.months += value * 12
		case Quarter:
			d.months += value * 3
		case Month:
			d.months += value
		case Week:
			d.days += value * 7
		case Day:
			d.days += value
		case Hour:
			d.milliseconds += value * msPerHour
		case Minute:
			d.milliseconds += value * msPerMinute
		case Second:
			d.milliseconds += value * msPerSecond
		case Millisecond:
			d.milliseconds += value
		}
	}

	fractional := false
	for _, unit := range durationOrder {
		value, ok := values[unit]
		if !ok || value == 0 {
			continue
		}
		if fractional {
			return InvalidDuration()
		}
		if value != math.Trunc(value) {
			fractional = true
		}
	}
	return d
}

// NewDuration builds a duration of amount units. Units that are not spans
// (weekday, day of year, week year) produce an invalid duration.
func NewDuration(amount float64, unit Unit) Duration {
	normalized, ok := durationUnit(unit)
	if !ok {
		return InvalidDuration()
	}
	return durationFromUnits(map[Unit]float64{normalized: amount})
}

// Milliseconds builds a duration of n milliseconds.
func Milliseconds(n float64) Duration {
	return NewDuration(n, Millisecond)
}

// DurationOf builds a duration from unit names ("years", "M", "days", ...).
// Unknown names or a fraction on anything but the smallest unit given
// produce an invalid duration.
func DurationOf(values map[string]float64) Duration {
	units := make(map[Unit]float64, len(values))
	for name, value := range values {
		unit, err := ParseUnit(name)
		if err != nil {
			return InvalidDuration()
		}
		unit, ok := durationUnit(unit)
		if !ok {
			return InvalidDuration()
		}
		units[unit] += value
	}
	return durationFromUnits(units)
}

// Between returns the span from one value to another: whole months first,
// then the remaining milliseconds.
func Between(from, to DateTime) Duration {
	if !from.valid || !to.valid {
		return InvalidDuration()
	}
	to = from.inZoneOf(to)

	var months, ms float64
	if from.IsBefore(to) {
		months, ms = positiveDifference(from, to)
	} else {
		months, ms = positiveDifference(to, from)
		months, ms = -months, -ms
	}
	d := Duration{milliseconds: ms, months: months, locale: from.locale, cfg: from.cfg}
	return d
}

func positiveDifference(base, other DateTime) (float64, float64) {
	months := other.Month() - base.Month() + (other.Year()-base.Year())*12
	if base.addMonths(months).IsAfter(other) {
		months--
	}
	return float64(months), float64(other.ms - base.addMonths(months).ms)
}

// InvalidDuration returns a duration that reports IsValid false.
func InvalidDuration() Duration {
	return Duration{invalid: true}
}

func (d Duration) IsValid() bool {
	return !d.invalid
}

func (d Duration) config() *Config {
	if d.cfg != nil {
		return d.cfg
	}
	return Default()
}

// Locale returns the locale used by Humanize.
func (d Duration) Locale() *Locale {
	if d.locale != nil {
		return d.locale
	}
	return d.config().catalog.Active()
}

// WithLocale returns a copy humanizing with the best match for tags.
func (d Duration) WithLocale(tags ...string) Duration {
	if loc, ok := d.config().catalog.Find(tags...); ok {
		d.locale = loc
	}
	return d
}

// WithLocaleTable pins an already resolved locale.
func (d Duration) WithLocaleTable(loc *Locale) Duration {
	if loc != nil {
		d.locale = loc
	}
	return d
}

// WithConfig binds the duration to a configuration.
func (d Duration) WithConfig(cfg *Config) Duration {
	d.cfg = cfg
	return d
}

func (d Duration) Clone() Duration {
	return d
}

// Raw returns the stored milliseconds, days and months.
func (d Duration) Raw() (milliseconds, days, months float64) {
	return d.milliseconds, d.days, d.months
}

// Add sums the raw components of both durations.
func (d Duration) Add(other Duration) Duration {
	if d.invalid || other.invalid {
		return d.invalidate()
	}
	d.milliseconds += other.milliseconds
	d.days += other.days
	d.months += other.months
	return d
}

func (d Duration) Subtract(other Duration) Duration {
	return d.Add(other.negate())
}

func (d Duration) negate() Duration {
	d.milliseconds = -d.milliseconds
	d.days = -d.days
	d.months = -d.months
	return d
}

func (d Duration) invalidate() Duration {
	d.invalid = true
	return d
}

// Abs drops the sign of every component.
func (d Duration) Abs() Duration {
	d.milliseconds = math.Abs(d.milliseconds)
	d.days = math.Abs(d.days)
	d.months = math.Abs(d.months)
	return d
}

// Breakdown returns the bubbled components.
func (d Duration) Breakdown() Breakdown {
	if d.invalid {
		nan := math.NaN()
		return Breakdown{nan, nan, nan, nan, nan, nan, nan}
	}
	return Bubble(d.milliseconds, d.days, d.months)
}

func (d Duration) Milliseconds() float64 { return d.Breakdown().Milliseconds }
func (d Duration) Seconds() float64      { return d.Breakdown().Seconds }
func (d Duration) Minutes() float64      { return d.Breakdown().Minutes }
func (d Duration) Hours() float64        { return d.Breakdown().Hours }
func (d Duration) Days() float64         { return d.Breakdown().Days }
func (d Duration) Months() float64       { return d.Breakdown().Months }
func (d Duration) Years() float64        { return d.Breakdown().Years }

// Weeks returns the whole weeks of the bubbled days.
func (d Duration) Weeks() float64 {
	return absFloor(d.Days() / 7)
}

// Get returns one bubbled component. It panics on non-span units.
func (d Duration) Get(unit Unit) float64 {
	normalized, ok := durationUnit(unit)
	if !ok {
		panic(fmt.Sprintf("chrono: Duration.Get: unsupported unit %v", unit))
	}
	switch normalized {
	case Millisecond:
		return d.Milliseconds()
	case Second:
		return d.Seconds()
	case Minute:
		return d.Minutes()
	case Hour:
		return d.Hours()
	case Day:
		return d.Days()
	case Week:
		return d.Weeks()
	case Month:
		return d.Months()
	case Quarter:
		return absFloor(d.Months() / 3)
	default:
		return d.Years()
	}
}

// As converts the whole duration into one unit. Months, quarters and years
// go through the mean month length; the other units convert the months into
// whole days first. It panics on non-span units.
func (d Duration) As(unit Unit) float64 {
	normalized, ok := durationUnit(unit)
	if !ok {
		panic(fmt.Sprintf("chrono: Duration.As: unsupported unit %v", unit))
	}
	if d.invalid {
		return math.NaN()
	}

	switch normalized {
	case Month, Quarter, Year:
		days := d.days + d.milliseconds/msPerDay
		months := d.months + DaysToMonths(days)
		switch normalized {
		case Month:
			return months
		case Quarter:
			return months / 3
		default:
			return months / 12
		}
	}

	days := d.days + jsRound(MonthsToDays(d.months))
	switch normalized {
	case Week:
		return days/7 + d.milliseconds/msPerWeek
	case Day:
		return days + d.milliseconds/msPerDay
	case Hour:
		return days*24 + d.milliseconds/msPerHour
	case Minute:
		return days*1440 + d.milliseconds/msPerMinute
	case Second:
		return days*86400 + d.milliseconds/msPerSecond
	default:
		return math.Floor(days*msPerDay) + d.milliseconds
	}
}

// AsUnit is As with a unit name.
func (d Duration) AsUnit(name string) (float64, error) {
	unit, err := ParseUnit(name)
	if err != nil {
		return math.NaN(), err
	}
	if _, ok := durationUnit(unit); !ok {
		return math.NaN(), fmt.Errorf("%w: %q is not a span", ErrUnknownUnit, name)
	}
	return d.As(unit), nil
}

func (d Duration) AsMilliseconds() float64 { return d.As(Millisecond) }
func (d Duration) AsSeconds() float64      { return d.As(Second) }
func (d Duration) AsMinutes() float64      { return d.As(Minute) }
func (d Duration) AsHours() float64        { return d.As(Hour) }
func (d Duration) AsDays() float64         { return d.As(Day) }
func (d Duration) AsWeeks() float64        { return d.As(Week) }
func (d Duration) AsMonths() float64       { return d.As(Month) }
func (d Duration) AsQuarters() float64     { return d.As(Quarter) }
func (d Duration) AsYears() float64        { return d.As(Year) }

// ValueOf approximates the duration in milliseconds with 30 day months and
// 365 day years.
func (d Duration) ValueOf() float64 {
	if d.invalid {
		return math.NaN()
	}
	return d.milliseconds +
		d.days*msPerDay +
		math.Mod(d.months, 12)*2592e6 +
		math.Trunc(d.months/12)*31536e6
}

// ToObject returns the bubbled components keyed by unit name.
func (d Duration) ToObject() map[string]float64 {
	b := d.Breakdown()
	return map[string]float64{
		"years":        b.Years,
		"months":       b.Months,
		"days":         b.Days,
		"hours":        b.Hours,
		"minutes":      b.Minutes,
		"seconds":      b.Seconds,
		"milliseconds": b.Milliseconds,
	}
}

func (d Duration) String() string {
	return d.ToISOString()
}

// MarshalJSON encodes the ISO 8601 form, or null when invalid.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.invalid {
		return []byte("null"), nil
	}
	return json.Marshal(d.ToISOString())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = InvalidDuration()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
