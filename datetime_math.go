package chrono

import "math"

// Add moves the value by amount units. Clock units shift the instant;
// days and weeks move the calendar date (keeping the wall clock across DST
// changes) and months, quarters and years move the month, clamping the day
// of the month. Fractional days and months are rounded.
func (d DateTime) Add(amount float64, unit Unit) DateTime {
	return d.AddDuration(NewDuration(amount, unit))
}

func (d DateTime) Subtract(amount float64, unit Unit) DateTime {
	return d.Add(-amount, unit)
}

// AddDuration applies a duration. Milliseconds go first, then days, then
// months. An invalid duration produces an invalid value.
func (d DateTime) AddDuration(span Duration) DateTime {
	return d.applyDuration(span, 1)
}

func (d DateTime) SubtractDuration(span Duration) DateTime {
	return d.applyDuration(span, -1)
}

func (d DateTime) applyDuration(span Duration, sign float64) DateTime {
	if !d.valid {
		return d
	}
	if span.invalid {
		d.valid = false
		return d
	}

	ms := math.Trunc(span.milliseconds * sign)
	days := int(absRound(span.days) * sign)
	months := int(absRound(span.months) * sign)

	before := d
	out := d
	out.inHook = true
	if ms != 0 {
		out = out.withMillis(out.ms + int64(ms))
	}
	if days != 0 && out.valid {
		out = out.addDays("add", days)
	}
	if months != 0 && out.valid {
		out = out.addMonths(months)
	}
	out.inHook = before.inHook
	return updateOffset("add", before, out, days != 0 || months != 0)
}

// addMonths shifts the month, clamping the day of the month.
func (d DateTime) addMonths(months int) DateTime {
	if !d.valid || months == 0 {
		return d
	}
	return d.SetMonth(d.Month() + months)
}
