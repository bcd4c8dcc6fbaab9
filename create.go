package chrono

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// CreateOption tunes how New, UTC and the Parse family read their input.
type CreateOption func(*createOptions)

type createOptions struct {
	layouts    []string
	hasLayouts bool
	strict     bool
	locale     []string
}

// Layouts parses string input against the given layouts. Several layouts
// compete and the best valid match wins. The ISO8601 and RFC2822 sentinels
// may be mixed with token layouts.
func Layouts(layouts ...string) CreateOption {
	return func(o *createOptions) {
		o.layouts = append(o.layouts, layouts...)
		o.hasLayouts = true
	}
}

// Strict requires layouts to match the whole input exactly.
func Strict() CreateOption {
	return func(o *createOptions) {
		o.strict = true
	}
}

// InLocale parses and renders with the best match for tags.
func InLocale(tags ...string) CreateOption {
	return func(o *createOptions) {
		o.locale = append(o.locale, tags...)
	}
}

type zoneMode int

const (
	zoneLocal zoneMode = iota
	zoneUTC
	zoneParsed
)

// Now returns the current instant from the configured clock.
func (cfg *Config) Now() DateTime {
	return cfg.New(nil)
}

// New builds a local value from input:
//
//   - nil: the current instant
//   - time.Time, DateTime: the same instant
//   - int, int64, float64: milliseconds since the epoch
//   - string: ISO 8601, RFC 2822 or, with Layouts, token layouts
//   - []int: year, month (zero based), day, hour, minute, second, millisecond
//   - map[string]int: the same fields keyed by unit name
//
// Other input types go through the lenient fallback parser and are
// reported through the deprecation sink.
func (cfg *Config) New(input any, opts ...CreateOption) DateTime {
	return cfg.create(input, zoneLocal, opts)
}

// UTC is New with the result in UTC mode; strings without an offset are
// read as UTC.
func (cfg *Config) UTC(input any, opts ...CreateOption) DateTime {
	return cfg.create(input, zoneUTC, opts)
}

// Parse reads input, against layouts when given.
func (cfg *Config) Parse(input string, layouts ...string) DateTime {
	if len(layouts) == 0 {
		return cfg.create(input, zoneLocal, nil)
	}
	return cfg.create(input, zoneLocal, []CreateOption{Layouts(layouts...)})
}

// ParseStrict is Parse in strict mode.
func (cfg *Config) ParseStrict(input string, layouts ...string) DateTime {
	opts := []CreateOption{Strict()}
	if len(layouts) > 0 {
		opts = append(opts, Layouts(layouts...))
	}
	return cfg.create(input, zoneLocal, opts)
}

// ParseZone reads input and keeps the UTC offset it carries instead of
// converting to the local zone.
func (cfg *Config) ParseZone(input string, opts ...CreateOption) DateTime {
	return cfg.create(input, zoneParsed, opts)
}

// Unix builds a value from seconds since the epoch.
func (cfg *Config) Unix(seconds float64) DateTime {
	return cfg.New(seconds * 1000)
}

// FromUnixMilli builds a value from milliseconds since the epoch.
func (cfg *Config) FromUnixMilli(ms int64) DateTime {
	return cfg.New(ms)
}

// FromTime keeps the instant and location of t.
func (cfg *Config) FromTime(t time.Time) DateTime {
	return cfg.New(t)
}

// Invalid returns an invalid value carrying flags, or flagged as
// invalidated by the caller when no flags are given.
func (cfg *Config) Invalid(flags ...ParsingFlags) DateTime {
	record := newParsingFlags()
	if len(flags) > 0 {
		*record = flags[0].clone()
	} else {
		record.UserInvalidated = true
	}
	return DateTime{cfg: cfg, isUTC: true, flags: record}
}

// Min returns the earliest of values, or the first invalid one. Without
// values it returns the current instant.
func (cfg *Config) Min(values ...DateTime) DateTime {
	return cfg.pick(values, DateTime.IsBefore)
}

// Max returns the latest of values, or the first invalid one.
func (cfg *Config) Max(values ...DateTime) DateTime {
	return cfg.pick(values, DateTime.IsAfter)
}

func (cfg *Config) pick(values []DateTime, better func(DateTime, DateTime, ...Unit) bool) DateTime {
	if len(values) == 0 {
		return cfg.Now()
	}
	res := values[0]
	for _, v := range values[1:] {
		if !v.valid || better(v, res) {
			res = v
		}
	}
	return res
}

func (cfg *Config) locale(tags []string) *Locale {
	if len(tags) == 0 {
		return cfg.catalog.Active()
	}
	return cfg.catalog.Resolve(tags...)
}

func (cfg *Config) create(input any, mode zoneMode, opts []CreateOption) DateTime {
	var o createOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	loc := cfg.locale(o.locale)
	base := DateTime{cfg: cfg, locale: loc, strict: o.strict, isUTC: mode != zoneLocal}

	var out DateTime
	switch v := input.(type) {
	case nil:
		out = base.withInstant(cfg.clock().UnixMilli())
	case DateTime:
		out = v
		if !v.valid {
			return v
		}
	case *DateTime:
		if v == nil {
			return cfg.create(nil, mode, opts)
		}
		return cfg.create(*v, mode, opts)
	case time.Time:
		out = base.withInstant(v.UnixMilli())
		if mode == zoneLocal {
			out.loc = v.Location()
		}
	case int:
		out = base.withInstant(int64(v))
	case int64:
		out = base.withInstant(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return cfg.Invalid()
		}
		out = base.withInstant(int64(math.Trunc(v)))
	case string:
		return cfg.createFromString(base, v, mode, o)
	case []int:
		out = cfg.createFromArray(base, v, mode == zoneLocal)
	case map[string]int:
		out = cfg.createFromObject(base, v, mode == zoneLocal)
	default:
		cfg.warn("createFromInputFallback", fmt.Sprintf("unsupported input type %s; falling back to heuristic parsing", reflect.TypeOf(input)))
		return cfg.createFromString(base, fmt.Sprint(input), mode, o)
	}

	if mode != zoneLocal && out.valid {
		out = out.InUTC(false)
	}
	return updateOffset("create", base, out, false)
}

func (d DateTime) withInstant(ms int64) DateTime {
	d.valid = true
	return d.withMillis(ms)
}

func (cfg *Config) createFromArray(base DateTime, values []int, local bool) DateTime {
	if len(values) == 0 {
		return base.withInstant(cfg.clock().UnixMilli())
	}
	s := newParseState(cfg, base.locale, "", false, !local)
	for i, v := range values {
		if i >= partCount {
			break
		}
		s.parts.put(i, v)
	}
	return s.finish(base, zoneLocal)
}

// createFromObject reads unit keyed fields. "day" is read as the day of the
// month when no "date" is given.
func (cfg *Config) createFromObject(base DateTime, fields map[string]int, local bool) DateTime {
	if len(fields) == 0 {
		return base.withInstant(cfg.clock().UnixMilli())
	}
	s := newParseState(cfg, base.locale, "", false, !local)
	var day, date *int
	for name, value := range fields {
		unit, err := ParseUnit(name)
		if err != nil {
			continue
		}
		v := value
		switch unit {
		case Year:
			s.parts.put(partYear, v)
		case Month:
			s.parts.put(partMonth, v)
		case Day:
			day = &v
		case Date:
			date = &v
		case Hour:
			s.parts.put(partHour, v)
		case Minute:
			s.parts.put(partMinute, v)
		case Second:
			s.parts.put(partSecond, v)
		case Millisecond:
			s.parts.put(partMillisecond, v)
		}
	}
	switch {
	case day != nil:
		s.parts.put(partDate, *day)
	case date != nil:
		s.parts.put(partDate, *date)
	}
	return s.finish(base, zoneLocal)
}

func (cfg *Config) createFromString(base DateTime, input string, mode zoneMode, o createOptions) DateTime {
	if input == "" && !o.hasLayouts {
		flags := newParsingFlags()
		flags.NullInput = true
		out := cfg.Invalid(*flags)
		out.locale = base.locale
		return out
	}

	input = base.locale.Preparse(input)
	s := newParseState(cfg, base.locale, input, o.strict, mode != zoneLocal)
	switch {
	case !o.hasLayouts:
		s.parseString()
	case len(o.layouts) == 1:
		s.parseLayout(o.layouts[0])
	default:
		s = s.parseLayouts(o.layouts)
	}
	return updateOffset("create", base, s.finish(base, mode), false)
}

// finish turns a completed parse state into a value.
func (s *parseState) finish(base DateTime, mode zoneMode) DateTime {
	if !s.hasInstant && !s.invalid && !s.hasParts {
		s.fromParts()
	}
	s.checkOverflow()

	out := base
	out.flags = s.flags
	out.input = s.input
	out.layout = s.layout
	out.ms = s.ms
	out.valid = s.valid()
	if !out.valid {
		return out
	}

	if s.nextDay {
		out = out.addDays("create", 1)
	}

	switch mode {
	case zoneUTC:
		out = out.InUTC(false)
	case zoneParsed:
		out = out.InUTC(false)
		if s.hasTZM {
			out = out.SetUTCOffset(s.tzm, false)
		} else if minutes, ok := offsetFrom(matchOffset, s.input); ok {
			out = out.SetUTCOffset(minutes, false)
		}
	}
	return out
}

// Now returns the current instant using the default configuration.
func Now() DateTime {
	return Default().Now()
}

// New builds a local value using the default configuration.
func New(input any, opts ...CreateOption) DateTime {
	return Default().New(input, opts...)
}

// UTC builds a UTC mode value using the default configuration.
func UTC(input any, opts ...CreateOption) DateTime {
	return Default().UTC(input, opts...)
}

func Parse(input string, layouts ...string) DateTime {
	return Default().Parse(input, layouts...)
}

func ParseStrict(input string, layouts ...string) DateTime {
	return Default().ParseStrict(input, layouts...)
}

func ParseZone(input string, opts ...CreateOption) DateTime {
	return Default().ParseZone(input, opts...)
}

func Unix(seconds float64) DateTime {
	return Default().Unix(seconds)
}

func FromUnixMilli(ms int64) DateTime {
	return Default().FromUnixMilli(ms)
}

func FromTime(t time.Time) DateTime {
	return Default().FromTime(t)
}

func Invalid(flags ...ParsingFlags) DateTime {
	return Default().Invalid(flags...)
}

func Min(values ...DateTime) DateTime {
	return Default().Min(values...)
}

func Max(values ...DateTime) DateTime {
	return Default().Max(values...)
}
