package chrono

import (
	"math"
	"time"
)

// UTCOffset returns the offset from UTC in minutes (east positive).
func (d DateTime) UTCOffset() int {
	if !d.valid {
		return InvalidField
	}
	if d.isUTC {
		return d.offset
	}
	_, seconds := d.asTime().Zone()
	return int(math.Round(float64(seconds) / 60))
}

// SetUTCOffset switches to a fixed offset in minutes. The instant is kept
// unless keepLocalTime is set, in which case the wall clock is kept.
func (d DateTime) SetUTCOffset(minutes int, keepLocalTime bool) DateTime {
	if !d.valid {
		return d
	}
	out := d
	out.isUTC = true
	out.offset = minutes
	if keepLocalTime {
		out = out.withFields(d.fields())
	}
	return updateOffset("utcOffset", d, out, keepLocalTime)
}

// SetUTCOffsetString parses "+05:30", "-0800" or "Z" and switches to that
// offset. Unparseable input leaves the value unchanged.
func (d DateTime) SetUTCOffsetString(offset string, keepLocalTime bool) DateTime {
	minutes, ok := offsetFromString(offset)
	if !ok {
		return d
	}
	return d.SetUTCOffset(minutes, keepLocalTime)
}

// InUTC switches to UTC.
func (d DateTime) InUTC(keepLocalTime bool) DateTime {
	return d.SetUTCOffset(0, keepLocalTime)
}

// InLocal switches back to the configured local zone.
func (d DateTime) InLocal(keepLocalTime bool) DateTime {
	return d.InLocation(d.config().location, keepLocalTime)
}

// InLocation switches to a named zone.
func (d DateTime) InLocation(loc *time.Location, keepLocalTime bool) DateTime {
	if !d.valid || loc == nil {
		return d
	}
	out := d
	out.isUTC = false
	out.offset = 0
	out.loc = loc
	if keepLocalTime {
		out = out.withFields(d.fields())
	}
	return updateOffset("local", d, out, keepLocalTime)
}

// IsUTC reports whether the value is in UTC mode with a zero offset.
func (d DateTime) IsUTC() bool {
	return d.isUTC && d.offset == 0
}

// IsUTCOffset reports whether the value uses a fixed offset (UTC included).
func (d DateTime) IsUTCOffset() bool {
	return d.valid && d.isUTC
}

func (d DateTime) IsLocal() bool {
	return d.valid && !d.isUTC
}

// IsDST reports whether daylight saving time is in effect for local values.
func (d DateTime) IsDST() bool {
	if !d.valid || d.isUTC {
		return false
	}
	return d.asTime().IsDST()
}

// HasAlignedHourOffset reports whether the value's offset differs from the
// other's (or from UTC) by whole hours.
func (d DateTime) HasAlignedHourOffset(other ...DateTime) bool {
	if !d.valid {
		return false
	}
	base := 0
	if len(other) > 0 && other[0].valid {
		base = other[0].UTCOffset()
	}
	return (d.UTCOffset()-base)%60 == 0
}

// ZoneAbbr returns "UTC" in UTC mode, nothing for other fixed offsets and
// the zone abbreviation for local values.
func (d DateTime) ZoneAbbr() string {
	if !d.valid {
		return ""
	}
	if d.isUTC {
		if d.offset == 0 {
			return "UTC"
		}
		return ""
	}
	name, _ := d.asTime().Zone()
	return name
}

// ZoneName is ZoneAbbr with the location name for local values.
func (d DateTime) ZoneName() string {
	if !d.valid {
		return ""
	}
	if d.isUTC {
		return d.ZoneAbbr()
	}
	return d.location().String()
}

// inZoneOf returns other re-expressed in d's zone context.
func (d DateTime) inZoneOf(other DateTime) DateTime {
	out := d
	out.ms = other.ms
	out.valid = other.valid
	return out
}
