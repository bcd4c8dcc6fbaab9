package chrono

import (
	"fmt"
	"sort"
	"strings"
)

// Unit names a calendar or clock field. Units double as granularities for
// StartOf/EndOf, comparisons, Diff and Duration conversions.
type Unit int

const (
	Millisecond Unit = iota + 1
	Second
	Minute
	Hour
	// Day is the weekday (0 = Sunday) when used as a field and a calendar
	// day when used as an amount or granularity.
	Day
	// Date is the day of the month.
	Date
	Week
	ISOWeek
	Month
	Quarter
	Year
	Weekday
	ISOWeekday
	DayOfYear
	WeekYear
	ISOWeekYear
)

var unitNames = map[Unit]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Date:        "date",
	Week:        "week",
	ISOWeek:     "isoWeek",
	Month:       "month",
	Quarter:     "quarter",
	Year:        "year",
	Weekday:     "weekday",
	ISOWeekday:  "isoWeekday",
	DayOfYear:   "dayOfYear",
	WeekYear:    "weekYear",
	ISOWeekYear: "isoWeekYear",
}

var unitShorthands = map[Unit]string{
	Millisecond: "ms",
	Second:      "s",
	Minute:      "m",
	Hour:        "h",
	Day:         "d",
	Date:        "D",
	Week:        "w",
	ISOWeek:     "W",
	Month:       "M",
	Quarter:     "Q",
	Year:        "y",
	Weekday:     "e",
	ISOWeekday:  "E",
	DayOfYear:   "DDD",
	WeekYear:    "gg",
	ISOWeekYear: "GG",
}

// setter priority, lower values are applied first by SetFields
var unitPriorities = map[Unit]int{
	Year:        1,
	WeekYear:    1,
	ISOWeekYear: 1,
	DayOfYear:   4,
	Week:        5,
	ISOWeek:     5,
	Quarter:     7,
	Month:       8,
	Date:        9,
	Day:         11,
	Weekday:     11,
	ISOWeekday:  11,
	Hour:        13,
	Minute:      14,
	Second:      15,
	Millisecond: 16,
}

var unitAliases = buildUnitAliases()

func buildUnitAliases() map[string]Unit {
	aliases := make(map[string]Unit, len(unitNames)*4)
	for unit, name := range unitNames {
		aliases[name] = unit
		aliases[name+"s"] = unit
		aliases[strings.ToLower(name)] = unit
		aliases[strings.ToLower(name)+"s"] = unit
	}
	// shorthands are case sensitive (M is month, m is minute)
	for unit, short := range unitShorthands {
		aliases[short] = unit
	}
	return aliases
}

// ParseUnit normalizes a unit name, plural form or shorthand ("months", "M",
// "isoweek") into a Unit.
func ParseUnit(name string) (Unit, error) {
	if unit, ok := unitAliases[name]; ok {
		return unit, nil
	}
	if unit, ok := unitAliases[strings.ToLower(name)]; ok {
		return unit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool {
	_, ok := unitNames[u]
	return ok
}

func (u Unit) mustValid(op string) {
	if !u.Valid() {
		panic(fmt.Sprintf("chrono: %s: unknown unit %v", op, u))
	}
}

type unitValue struct {
	unit     Unit
	value    int
	priority int
}

// normalizeFields maps loosely named keys onto units, ordered by setter
// priority. Unknown keys are reported back so callers can decide how strict
// to be.
func normalizeFields(fields map[string]int) ([]unitValue, []string) {
	out := make([]unitValue, 0, len(fields))
	var unknown []string
	for key, value := range fields {
		unit, err := ParseUnit(key)
		if err != nil {
			unknown = append(unknown, key)
			continue
		}
		out = append(out, unitValue{unit: unit, value: value, priority: unitPriorities[unit]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority == out[j].priority {
			return out[i].unit < out[j].unit
		}
		return out[i].priority < out[j].priority
	})
	sort.Strings(unknown)
	return out, unknown
}
