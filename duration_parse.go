package chrono

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// [-+][d.]hh:mm[:ss[.fff]], as produced by .NET TimeSpan
	aspNetDuration = regexp.MustCompile(`^(-|\+)?(?:(\d*)[. ])?(\d+):(\d+)(?::(\d+)(\.\d*)?)?$`)

	isoDuration = regexp.MustCompile(`^(-|\+)?P(?:([-+]?[0-9,.]*)Y)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)W)?(?:([-+]?[0-9,.]*)D)?(?:T(?:([-+]?[0-9,.]*)H)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)S)?)?$`)
)

// ParseDuration reads a duration from an ISO 8601 string ("P1Y2M3DT4H",
// "-PT1.5S"), a .NET style time span ("1.02:03:04.5") or a plain number of
// milliseconds.
func ParseDuration(input string) (Duration, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return InvalidDuration(), fmt.Errorf("%w: empty input", ErrInvalidDuration)
	}

	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return InvalidDuration(), fmt.Errorf("%w: %q is not finite", ErrInvalidDuration, input)
		}
		return Milliseconds(ms), nil
	}

	if m := aspNetDuration.FindStringSubmatch(s); m != nil {
		sign := 1.0
		if m[1] == "-" {
			sign = -1
		}
		fraction, _ := strconv.ParseFloat("0"+m[6], 64)
		return durationFromUnits(map[Unit]float64{
			Day:         atof(m[2]) * sign,
			Hour:        atof(m[3]) * sign,
			Minute:      atof(m[4]) * sign,
			Second:      atof(m[5]) * sign,
			Millisecond: absRound(fraction*1000) * sign,
		}), nil
	}

	if m := isoDuration.FindStringSubmatch(s); m != nil {
		sign := 1.0
		if m[1] == "-" {
			sign = -1
		}
		d := durationFromUnits(map[Unit]float64{
			Year:   isoComponent(m[2], sign),
			Month:  isoComponent(m[3], sign),
			Week:   isoComponent(m[4], sign),
			Day:    isoComponent(m[5], sign),
			Hour:   isoComponent(m[6], sign),
			Minute: isoComponent(m[7], sign),
			Second: isoComponent(m[8], sign),
		})
		if !d.IsValid() {
			return d, fmt.Errorf("%w: %q: only the smallest component may be fractional", ErrInvalidDuration, input)
		}
		return d, nil
	}

	return InvalidDuration(), fmt.Errorf("%w: %q", ErrInvalidDuration, input)
}

// MustParseDuration is ParseDuration that panics on error.
func MustParseDuration(input string) Duration {
	d, err := ParseDuration(input)
	if err != nil {
		panic(err)
	}
	return d
}

func atof(s string) float64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return math.Trunc(n)
}

// isoComponent accepts a comma as the decimal separator; empty or
// unparseable components count as zero.
func isoComponent(s string, sign float64) float64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(leadingNumber(strings.Replace(s, ",", ".", 1)), 64)
	if err != nil || math.IsNaN(n) {
		return 0
	}
	return n * sign
}

// leadingNumber trims trailing characters that cannot continue a decimal
// number, so "1.5.2" reads as 1.5.
func leadingNumber(s string) string {
	end := 0
	dot := false
	for i, r := range s {
		switch {
		case i == 0 && (r == '-' || r == '+'):
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return s[:end]
		}
		end = i + 1
	}
	return s[:end]
}
