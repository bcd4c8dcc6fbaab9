package chrono

import (
	"math"
	"strconv"
	"strings"
)

// Humanize renders the duration as a phrase such as "2 minutes", or
// "in 2 minutes" / "2 minutes ago" when withSuffix is set.
func (d Duration) Humanize(withSuffix bool) string {
	return d.HumanizeWith(withSuffix, nil)
}

// HumanizeWith is Humanize with threshold overrides for this call. Passing
// "s" without "ss" moves "ss" to one below "s".
func (d Duration) HumanizeWith(withSuffix bool, overrides map[string]float64) string {
	loc := d.Locale()
	if d.invalid {
		return loc.InvalidDate()
	}

	thresholds, round := d.config().relativeTimeSettings()
	for key, value := range overrides {
		if _, ok := thresholdKeys[key]; !ok {
			continue
		}
		thresholds[key] = value
	}
	if s, ok := overrides["s"]; ok {
		if _, hasSS := overrides["ss"]; !hasSS {
			thresholds["ss"] = s - 1
		}
	}

	output := d.relativePhrase(loc, !withSuffix, thresholds, round)
	if withSuffix {
		output = loc.PastFuture(d.ValueOf(), output)
	}
	return loc.Postformat(output)
}

// relativePhrase picks the humanize key for the duration's magnitude.
func (d Duration) relativePhrase(loc *Locale, withoutSuffix bool, thresholds map[string]float64, round func(float64) float64) string {
	abs := d.Abs()
	seconds := round(abs.As(Second))
	minutes := round(abs.As(Minute))
	hours := round(abs.As(Hour))
	days := round(abs.As(Day))
	weeks := round(abs.As(Week))
	months := round(abs.As(Month))
	years := round(abs.As(Year))

	below := func(value float64, key string) bool {
		limit, ok := thresholds[key]
		return ok && value < limit
	}

	key, n := "", 0.0
	switch {
	case seconds <= thresholdOr(thresholds, "ss", math.Inf(-1)):
		key, n = "s", seconds
	case below(seconds, "s"):
		key, n = "ss", seconds
	case minutes <= 1:
		key = "m"
	case below(minutes, "m"):
		key, n = "mm", minutes
	case hours <= 1:
		key = "h"
	case below(hours, "h"):
		key, n = "hh", hours
	case days <= 1:
		key = "d"
	case below(days, "d"):
		key, n = "dd", days
	}

	if key == "" {
		if _, ok := thresholds["w"]; ok {
			switch {
			case weeks <= 1:
				key = "w"
			case below(weeks, "w"):
				key, n = "ww", weeks
			}
		}
	}

	if key == "" {
		switch {
		case months <= 1:
			key = "M"
		case below(months, "M"):
			key, n = "MM", months
		case years <= 1:
			key = "y"
		default:
			key, n = "yy", years
		}
	}

	count := int(n)
	if count == 0 {
		count = 1
	}
	return loc.RelativeTime(count, withoutSuffix, key, d.ValueOf() > 0)
}

func thresholdOr(thresholds map[string]float64, key string, fallback float64) float64 {
	if value, ok := thresholds[key]; ok {
		return value
	}
	return fallback
}

// ToISOString renders the duration in ISO 8601 form ("P1Y2M3DT4H5M6.5S").
// Components whose sign differs from the total carry their own minus sign.
// Invalid durations render as the locale's invalid date text.
func (d Duration) ToISOString() string {
	if d.invalid {
		return d.Locale().InvalidDate()
	}

	total := d.As(Second)
	if total == 0 {
		return "P0D"
	}

	seconds := math.Abs(d.milliseconds) / 1000
	days := math.Abs(d.days)
	months := math.Abs(d.months)

	minutes := absFloor(seconds / 60)
	hours := absFloor(minutes / 60)
	seconds = math.Mod(seconds, 60)
	minutes = math.Mod(minutes, 60)

	years := absFloor(months / 12)
	months = math.Mod(months, 12)

	totalSign := ""
	if total < 0 {
		totalSign = "-"
	}
	signFor := func(component float64) string {
		if signOf(component) != signOf(total) {
			return "-"
		}
		return ""
	}
	ymSign := signFor(d.months)
	daysSign := signFor(d.days)
	hmsSign := signFor(d.milliseconds)

	var b strings.Builder
	b.WriteString(totalSign)
	b.WriteByte('P')
	if years != 0 {
		b.WriteString(ymSign + formatNumber(years) + "Y")
	}
	if months != 0 {
		b.WriteString(ymSign + formatNumber(months) + "M")
	}
	if days != 0 {
		b.WriteString(daysSign + formatNumber(days) + "D")
	}
	if hours != 0 || minutes != 0 || seconds != 0 {
		b.WriteByte('T')
	}
	if hours != 0 {
		b.WriteString(hmsSign + formatNumber(hours) + "H")
	}
	if minutes != 0 {
		b.WriteString(hmsSign + formatNumber(minutes) + "M")
	}
	if seconds != 0 {
		s := strconv.FormatFloat(seconds, 'f', 3, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
		b.WriteString(hmsSign + s + "S")
	}
	return b.String()
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
