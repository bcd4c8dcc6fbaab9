package chrono

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"
	"time"
)

func mustValid(t *testing.T, d DateTime) DateTime {
	t.Helper()
	if !d.IsValid() {
		t.Fatalf("expected a valid value, flags %+v", d.ParsingFlags())
	}
	return d
}

func TestDateTimeGetters(t *testing.T) {
	cfg := newTestConfig(t)
	d := mustValid(t, cfg.New("2024-01-15T13:05:09.123Z"))

	tests := []struct {
		unit Unit
		want int
	}{
		{Year, 2024},
		{Month, 0},
		{Date, 15},
		{Hour, 13},
		{Minute, 5},
		{Second, 9},
		{Millisecond, 123},
		{Day, 1},
		{DayOfYear, 15},
		{Quarter, 1},
		{Week, 3},
		{ISOWeek, 3},
		{Weekday, 1},
		{ISOWeekday, 1},
		{WeekYear, 2024},
		{ISOWeekYear, 2024},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			if got := d.Get(tt.unit); got != tt.want {
				t.Fatalf("Get(%v) = %d, want %d", tt.unit, got, tt.want)
			}
		})
	}

	if d.DaysInMonth() != 31 || !d.IsLeapYear() {
		t.Fatalf("DaysInMonth = %d, IsLeapYear = %v", d.DaysInMonth(), d.IsLeapYear())
	}
	if d.Unix() != 1705323909 || d.UnixMilli() != 1705323909123 {
		t.Fatalf("Unix = %d, UnixMilli = %d", d.Unix(), d.UnixMilli())
	}
}

func TestDateTimeWeekYearBoundary(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		input       string
		isoWeek     int
		isoWeekYear int
		week        int
		weekYear    int
	}{
		{"2021-01-01", 53, 2020, 1, 2021},
		{"2024-12-30", 1, 2025, 1, 2025},
		{"2023-01-01", 52, 2022, 1, 2023},
		{"2026-12-31", 53, 2026, 1, 2027},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := mustValid(t, cfg.New(tt.input))
			if d.ISOWeek() != tt.isoWeek || d.ISOWeekYear() != tt.isoWeekYear {
				t.Fatalf("ISO week = %d/%d, want %d/%d", d.ISOWeek(), d.ISOWeekYear(), tt.isoWeek, tt.isoWeekYear)
			}
			if d.Week() != tt.week || d.WeekYear() != tt.weekYear {
				t.Fatalf("locale week = %d/%d, want %d/%d", d.Week(), d.WeekYear(), tt.week, tt.weekYear)
			}
		})
	}
}

func TestDateTimeSetters(t *testing.T) {
	cfg := newTestConfig(t)
	base := mustValid(t, cfg.New("2024-01-15T13:05:09.123Z"))
	endOfJan := mustValid(t, cfg.New("2024-01-31T10:00:00Z"))

	tests := []struct {
		name string
		got  DateTime
		want string
	}{
		{"month clamps day", endOfJan.SetMonth(1), "2024-02-29T10:00:00.000Z"},
		{"month carries into year", base.SetMonth(12), "2025-01-15T13:05:09.123Z"},
		{"leap day to common year", cfg.New("2024-02-29").SetYear(2023), "2023-02-28T00:00:00.000Z"},
		{"date rolls over", base.SetDate(32), "2024-02-01T13:05:09.123Z"},
		{"hour rolls over", base.SetHour(25), "2024-01-16T01:05:09.123Z"},
		{"minute", base.SetMinute(59), "2024-01-15T13:59:09.123Z"},
		{"second", base.SetSecond(0), "2024-01-15T13:05:00.123Z"},
		{"millisecond", base.SetMillisecond(999), "2024-01-15T13:05:09.999Z"},
		{"day of week", base.SetDay(0), "2024-01-14T13:05:09.123Z"},
		{"day past the week", base.SetDay(7), "2024-01-21T13:05:09.123Z"},
		{"day name", base.SetDayName("friday"), "2024-01-19T13:05:09.123Z"},
		{"unknown day name", base.SetDayName("someday"), "2024-01-15T13:05:09.123Z"},
		{"locale weekday", base.SetWeekday(0), "2024-01-14T13:05:09.123Z"},
		{"iso weekday", base.SetISOWeekday(7), "2024-01-21T13:05:09.123Z"},
		{"iso weekday from sunday", cfg.New("2024-01-21").SetISOWeekday(1), "2024-01-15T00:00:00.000Z"},
		{"week", base.SetWeek(5), "2024-01-29T13:05:09.123Z"},
		{"iso week", base.SetISOWeek(1), "2024-01-01T13:05:09.123Z"},
		{"quarter", base.SetQuarter(3), "2024-07-15T13:05:09.123Z"},
		{"day of year", base.SetDayOfYear(60), "2024-02-29T13:05:09.123Z"},
		{"month name", base.SetMonthName("march"), "2024-03-15T13:05:09.123Z"},
		{"set by unit", base.Set(Year, 2020), "2020-01-15T13:05:09.123Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.ToISOString(false); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}

	if base.ToISOString(false) != "2024-01-15T13:05:09.123Z" {
		t.Fatal("setters must not modify the receiver")
	}
}

func TestDateTimeSetFields(t *testing.T) {
	cfg := newTestConfig(t)
	d := mustValid(t, cfg.New("2023-01-31"))

	got, err := d.SetFields(map[string]int{"date": 29, "month": 1, "year": 2024})
	if err != nil {
		t.Fatalf("SetFields: %v", err)
	}
	if got.Format("YYYY-MM-DD") != "2024-02-29" {
		t.Fatalf("SetFields = %s", got.Format("YYYY-MM-DD"))
	}

	if _, err := d.SetFields(map[string]int{"fortnight": 1}); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestDateTimeAdd(t *testing.T) {
	cfg := newTestConfig(t)
	base := mustValid(t, cfg.New("2024-01-15T13:05:09.123Z"))

	tests := []struct {
		name string
		got  DateTime
		want string
	}{
		{"month end clamps in leap year", cfg.New("2024-01-31").Add(1, Month), "2024-02-29T00:00:00.000Z"},
		{"month end clamps in common year", cfg.New("2023-01-31").Add(1, Month), "2023-02-28T00:00:00.000Z"},
		{"years", base.Add(1, Year), "2025-01-15T13:05:09.123Z"},
		{"quarter", base.Add(1, Quarter), "2024-04-15T13:05:09.123Z"},
		{"weeks", base.Add(2, Week), "2024-01-29T13:05:09.123Z"},
		{"fractional days round", base.Add(1.5, Day), "2024-01-17T13:05:09.123Z"},
		{"fractional hours", base.Add(1.5, Hour), "2024-01-15T14:35:09.123Z"},
		{"negative", base.Add(-16, Day), "2023-12-30T13:05:09.123Z"},
		{"subtract", base.Subtract(30, Minute), "2024-01-15T12:35:09.123Z"},
		{"milliseconds", base.Add(877, Millisecond), "2024-01-15T13:05:10.000Z"},
		{"days before months", cfg.New("2024-01-31").AddDuration(DurationOf(map[string]float64{"months": 1, "days": 1})), "2024-03-01T00:00:00.000Z"},
		{"subtract duration", base.SubtractDuration(MustParseDuration("P1M1D")), "2023-12-14T13:05:09.123Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustValid(t, tt.got).ToISOString(false); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}

	if base.AddDuration(InvalidDuration()).IsValid() {
		t.Fatal("adding an invalid duration should invalidate")
	}
	if base.Add(1, DayOfYear).IsValid() {
		t.Fatal("adding a non span unit should invalidate")
	}
}

func TestDateTimeAddKeepsWallClockAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("zone data unavailable: %v", err)
	}
	cfg := newTestConfig(t, WithLocation(ny))
	d := mustValid(t, cfg.New("2024-03-09T12:00:00"))

	next := d.Add(1, Day)
	if got := next.Format("YYYY-MM-DD HH:mm Z"); got != "2024-03-10 12:00 -04:00" {
		t.Fatalf("Add(1, Day) = %s", got)
	}
	if hours := next.Diff(d, Hour, false); hours != 23 {
		t.Fatalf("elapsed hours = %v, want 23", hours)
	}
	if days := next.Diff(d, Day, false); days != 1 {
		t.Fatalf("Diff in days = %v, want 1", days)
	}
	if later := d.Add(24, Hour); later.Format("HH:mm") != "13:00" {
		t.Fatalf("Add(24, Hour) = %s", later.Format("HH:mm"))
	}
	if !next.IsDST() || d.IsDST() {
		t.Fatalf("IsDST before=%v after=%v", d.IsDST(), next.IsDST())
	}
}

func TestDateTimeStartEndOf(t *testing.T) {
	cfg := newTestConfig(t)
	d := mustValid(t, cfg.New("2024-01-17T13:05:09.123Z"))

	tests := []struct {
		unit  Unit
		start string
		end   string
	}{
		{Year, "2024-01-01T00:00:00.000Z", "2024-12-31T23:59:59.999Z"},
		{Quarter, "2024-01-01T00:00:00.000Z", "2024-03-31T23:59:59.999Z"},
		{Month, "2024-01-01T00:00:00.000Z", "2024-01-31T23:59:59.999Z"},
		{Week, "2024-01-14T00:00:00.000Z", "2024-01-20T23:59:59.999Z"},
		{ISOWeek, "2024-01-15T00:00:00.000Z", "2024-01-21T23:59:59.999Z"},
		{Day, "2024-01-17T00:00:00.000Z", "2024-01-17T23:59:59.999Z"},
		{Date, "2024-01-17T00:00:00.000Z", "2024-01-17T23:59:59.999Z"},
		{Hour, "2024-01-17T13:00:00.000Z", "2024-01-17T13:59:59.999Z"},
		{Minute, "2024-01-17T13:05:00.000Z", "2024-01-17T13:05:59.999Z"},
		{Second, "2024-01-17T13:05:09.000Z", "2024-01-17T13:05:09.999Z"},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			start := d.StartOf(tt.unit)
			if got := start.ToISOString(false); got != tt.start {
				t.Fatalf("StartOf = %s, want %s", got, tt.start)
			}
			if got := d.EndOf(tt.unit).ToISOString(false); got != tt.end {
				t.Fatalf("EndOf = %s, want %s", got, tt.end)
			}
			if again := start.StartOf(tt.unit); again.UnixMilli() != start.UnixMilli() {
				t.Fatalf("StartOf is not idempotent: %s", again.ToISOString(false))
			}
			end := d.EndOf(tt.unit)
			if again := end.EndOf(tt.unit); again.UnixMilli() != end.UnixMilli() {
				t.Fatalf("EndOf is not idempotent: %s", again.ToISOString(false))
			}
		})
	}
}

func TestDateTimeStartOfFollowsLocaleAndOffset(t *testing.T) {
	cfg := newTestConfig(t)

	fr := cfg.New("2024-01-17T13:05:09Z", InLocale("fr"))
	if got := fr.StartOf(Week).Format("YYYY-MM-DD"); got != "2024-01-15" {
		t.Fatalf("fr week start = %s", got)
	}

	zoned := cfg.ParseZone("2024-01-17T01:30:00+05:30")
	if got := zoned.StartOf(Day).Format("YYYY-MM-DDTHH:mmZ"); got != "2024-01-17T00:00+05:30" {
		t.Fatalf("StartOf(Day) with offset = %s", got)
	}
	if got := zoned.StartOf(Hour).Format("HH:mm"); got != "01:00" {
		t.Fatalf("StartOf(Hour) with half hour offset = %s", got)
	}
}

func TestDateTimeCompare(t *testing.T) {
	cfg := newTestConfig(t)
	morning := mustValid(t, cfg.New("2024-01-15T10:00:00Z"))
	evening := mustValid(t, cfg.New("2024-01-15T18:00:00Z"))
	tomorrow := mustValid(t, cfg.New("2024-01-16T10:00:00Z"))

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"before", morning.IsBefore(evening), true},
		{"before by day", morning.IsBefore(evening, Day), false},
		{"before next day", morning.IsBefore(tomorrow, Day), true},
		{"after", evening.IsAfter(morning), true},
		{"after by day", evening.IsAfter(morning, Day), false},
		{"same instant", morning.IsSame(morning.Clone()), true},
		{"same day", morning.IsSame(evening, Day), true},
		{"same month", morning.IsSame(tomorrow, Month), true},
		{"same or before", morning.IsSameOrBefore(evening, Day), true},
		{"same or after", tomorrow.IsSameOrAfter(evening, Hour), true},
		{"between exclusive", evening.IsBetween(morning, tomorrow, ExcludeBoth), true},
		{"between excludes ends", morning.IsBetween(morning, tomorrow, ExcludeBoth), false},
		{"between includes start", morning.IsBetween(morning, tomorrow, IncludeStart), true},
		{"between includes end", tomorrow.IsBetween(morning, tomorrow, IncludeEnd), true},
		{"between both", tomorrow.IsBetween(morning, tomorrow, IncludeBoth), true},
		{"between reversed", evening.IsBetween(tomorrow, morning, IncludeBoth), false},
		{"between by day", evening.IsBetween(morning, tomorrow, ExcludeBoth, Day), false},
		{"between default", evening.IsBetween(morning, tomorrow, ""), true},
		{"equal", morning.Equal(cfg.New("2024-01-15T12:00:00+02:00")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestDateTimeInvalidPropagates(t *testing.T) {
	cfg := newTestConfig(t)
	bad := cfg.Invalid()
	good := cfg.Now()

	if !bad.ParsingFlags().UserInvalidated {
		t.Fatal("Invalid() should be user invalidated")
	}
	if bad.Add(1, Day).IsValid() || bad.StartOf(Month).IsValid() || bad.SetYear(2020).IsValid() {
		t.Fatal("operations on invalid values must stay invalid")
	}
	if bad.Year() != InvalidField || bad.UTCOffset() != InvalidField {
		t.Fatalf("getters = %d, %d", bad.Year(), bad.UTCOffset())
	}
	if bad.IsBefore(good) || good.IsAfter(bad) || bad.IsSame(bad) || good.IsBetween(bad, good, IncludeBoth) {
		t.Fatal("comparisons with invalid values are false")
	}
	if !math.IsNaN(bad.Diff(good, Day, false)) || !math.IsNaN(bad.ValueOf()) {
		t.Fatal("Diff and ValueOf should be NaN")
	}
	if bad.Format() != "Invalid date" || bad.ToISOString(false) != "" || bad.FromNow(false) != "Invalid date" {
		t.Fatalf("rendering = %q %q %q", bad.Format(), bad.ToISOString(false), bad.FromNow(false))
	}
	if bad.ToArray() != nil || bad.ToObject() != nil || !bad.ToTime().IsZero() {
		t.Fatal("conversions of invalid values should be empty")
	}

	custom := cfg.Invalid(ParsingFlags{InvalidMonth: "Foo"})
	if custom.ParsingFlags().InvalidMonth != "Foo" || custom.ParsingFlags().UserInvalidated {
		t.Fatalf("custom flags = %+v", custom.ParsingFlags())
	}

	var zero DateTime
	if zero.IsValid() {
		t.Fatal("zero DateTime should be invalid")
	}
}

func TestDateTimeOffsets(t *testing.T) {
	cfg := newTestConfig(t)
	noon := mustValid(t, cfg.New("2024-01-15T12:00:00Z"))

	india := noon.SetUTCOffset(330, false)
	if india.Format("HH:mm Z") != "17:30 +05:30" || india.UTCOffset() != 330 {
		t.Fatalf("SetUTCOffset = %s (%d)", india.Format("HH:mm Z"), india.UTCOffset())
	}
	if india.IsUTC() || !india.IsUTCOffset() || india.IsLocal() {
		t.Fatal("fixed offset mode flags are wrong")
	}
	if india.HasAlignedHourOffset() {
		t.Fatal("+05:30 is not aligned to an hour")
	}
	if india.ZoneAbbr() != "" {
		t.Fatalf("ZoneAbbr = %q", india.ZoneAbbr())
	}

	kept := noon.SetUTCOffset(-300, true)
	if kept.Format("HH:mm Z") != "12:00 -05:00" || kept.ToISOString(false) != "2024-01-15T17:00:00.000Z" {
		t.Fatalf("keepLocalTime = %s / %s", kept.Format("HH:mm Z"), kept.ToISOString(false))
	}
	if !kept.HasAlignedHourOffset() {
		t.Fatal("-05:00 is aligned")
	}

	pacific := noon.SetUTCOffsetString("-08:00", false)
	if pacific.UTCOffset() != -480 || pacific.Hour() != 4 {
		t.Fatalf("SetUTCOffsetString = %d, %d", pacific.UTCOffset(), pacific.Hour())
	}
	if same := noon.SetUTCOffsetString("nonsense", false); same.UTCOffset() != noon.UTCOffset() {
		t.Fatal("unparseable offsets leave the value unchanged")
	}

	back := india.InUTC(false)
	if !back.IsUTC() || back.ZoneAbbr() != "UTC" || back.UnixMilli() != noon.UnixMilli() {
		t.Fatal("InUTC should keep the instant")
	}
	if local := india.InLocal(false); !local.IsLocal() || local.UnixMilli() != noon.UnixMilli() {
		t.Fatal("InLocal should keep the instant")
	}

	tokyo := noon.InLocation(time.FixedZone("JST", 9*3600), false)
	if tokyo.Format("HH:mm z") != "21:00 JST" || tokyo.ZoneName() != "JST" {
		t.Fatalf("InLocation = %s / %s", tokyo.Format("HH:mm z"), tokyo.ZoneName())
	}
}

func TestDateTimeJSON(t *testing.T) {
	cfg := newTestConfig(t)
	type event struct {
		At DateTime `json:"at"`
	}

	data, err := json.Marshal(event{At: cfg.New("2024-01-15T13:05:09.123Z")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"at":"2024-01-15T13:05:09.123Z"}` {
		t.Fatalf("Marshal = %s", data)
	}

	invalid, _ := json.Marshal(event{At: cfg.Invalid()})
	if string(invalid) != `{"at":null}` {
		t.Fatalf("Marshal invalid = %s", invalid)
	}

	tests := []struct {
		name   string
		input  string
		ms     int64
		offset int
	}{
		{"iso with offset", `{"at":"2024-01-15T15:05:09.123+02:00"}`, 1705323909123, 120},
		{"milliseconds", `{"at":1705323909123}`, 1705323909123, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev event
			if err := json.Unmarshal([]byte(tt.input), &ev); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if ev.At.UnixMilli() != tt.ms {
				t.Fatalf("UnixMilli = %d", ev.At.UnixMilli())
			}
			if tt.offset != 0 && ev.At.UTCOffset() != tt.offset {
				t.Fatalf("UTCOffset = %d", ev.At.UTCOffset())
			}
		})
	}

	var ev event
	if err := json.Unmarshal([]byte(`{"at":null}`), &ev); err != nil || ev.At.IsValid() {
		t.Fatalf("null should decode to an invalid value: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"at":"yesterday-ish"}`), &ev); err == nil {
		t.Fatal("expected error for non ISO input")
	}

	text, err := cfg.ParseZone("2024-01-15T13:05:09+05:30").MarshalText()
	if err != nil || string(text) != "2024-01-15T13:05:09.000+05:30" {
		t.Fatalf("MarshalText = %s, %v", text, err)
	}
}

func TestDateTimeStrings(t *testing.T) {
	cfg := newTestConfig(t)
	d := mustValid(t, cfg.UTC("2024-01-15T13:05:09Z"))

	if got := d.String(); got != "Mon Jan 15 2024 13:05:09 GMT+0000" {
		t.Fatalf("String = %q", got)
	}
	if got := fmt.Sprintf("%#v", d); got != `chrono.UTC("2024-01-15T13:05:09.000Z")` {
		t.Fatalf("GoString = %s", got)
	}
	if got := fmt.Sprintf("%#v", d.SetUTCOffset(330, false)); got != `chrono.ParseZone("2024-01-15T18:35:09.000+05:30")` {
		t.Fatalf("GoString offset = %s", got)
	}
	if got := fmt.Sprintf("%#v", cfg.Invalid()); got != "chrono.Invalid()" {
		t.Fatalf("GoString invalid = %s", got)
	}
	if got := d.WithLocale("fr").String(); got != "Mon Jan 15 2024 13:05:09 GMT+0000" {
		t.Fatalf("String should ignore the locale, got %q", got)
	}
	if got := d.ToISOString(true); got != "2024-01-15T13:05:09.000+00:00" {
		t.Fatalf("ToISOString(true) = %q", got)
	}
	if got := cfg.New([]int{12345, 0, 1}).ToISOString(false); got != "+012345-01-01T00:00:00.000Z" {
		t.Fatalf("wide year = %q", got)
	}
}

func TestDateTimeArrayAndObject(t *testing.T) {
	cfg := newTestConfig(t)
	d := mustValid(t, cfg.New("2024-01-15T13:05:09.123Z"))

	if got := d.ToArray(); !slices.Equal(got, []int{2024, 0, 15, 13, 5, 9, 123}) {
		t.Fatalf("ToArray = %v", got)
	}
	if obj := d.ToObject(); obj["years"] != 2024 || obj["months"] != 0 || obj["date"] != 15 || obj["milliseconds"] != 123 {
		t.Fatalf("ToObject = %v", obj)
	}

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"array", []int{2024, 1, 29}, "2024-02-29T00:00:00.000Z"},
		{"array with time", []int{2024, 0, 15, 13, 5, 9, 123}, "2024-01-15T13:05:09.123Z"},
		{"year only", []int{2024}, "2024-01-01T00:00:00.000Z"},
		{"object", map[string]int{"year": 2024, "month": 0, "day": 15, "hour": 10}, "2024-01-15T10:00:00.000Z"},
		{"object aliases", map[string]int{"y": 2024, "M": 2, "D": 1, "m": 30}, "2024-03-01T00:30:00.000Z"},
		{"time", time.Date(2024, time.January, 15, 13, 5, 9, 0, time.UTC), "2024-01-15T13:05:09.000Z"},
		{"millis", int64(1705323909123), "2024-01-15T13:05:09.123Z"},
		{"float millis", 1705323909123.9, "2024-01-15T13:05:09.123Z"},
		{"copy", d, "2024-01-15T13:05:09.123Z"},
		{"empty array is now", []int{}, "2024-01-15T12:00:00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustValid(t, cfg.New(tt.input)).ToISOString(false); got != tt.want {
				t.Fatalf("New(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	overflow := cfg.New([]int{2023, 1, 29})
	if unit, ok := overflow.InvalidAt(); overflow.IsValid() || !ok || unit != Date {
		t.Fatalf("[2023, 1, 29] should overflow the date, got %v %v", unit, ok)
	}
	if cfg.New(math.NaN()).IsValid() {
		t.Fatal("NaN should be invalid")
	}
}

func TestDateTimeUnixAndTime(t *testing.T) {
	cfg := newTestConfig(t)
	if got := cfg.Unix(1705323909.5).UnixMilli(); got != 1705323909500 {
		t.Fatalf("Unix = %d", got)
	}
	if got := cfg.FromUnixMilli(0).ToISOString(false); got != "1970-01-01T00:00:00.000Z" {
		t.Fatalf("FromUnixMilli = %s", got)
	}

	zone := time.FixedZone("CET", 3600)
	d := cfg.FromTime(time.Date(2024, time.January, 15, 13, 0, 0, 0, zone))
	if d.Format("HH:mm Z") != "13:00 +01:00" {
		t.Fatalf("FromTime = %s", d.Format("HH:mm Z"))
	}
	if !d.ToTime().Equal(time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("ToTime = %v", d.ToTime())
	}
}

func TestMinMax(t *testing.T) {
	cfg := newTestConfig(t)
	a := cfg.New("2024-01-01")
	b := cfg.New("2024-06-01")
	c := cfg.New("2023-06-01")

	if got := cfg.Min(a, b, c); !got.IsSame(c) {
		t.Fatalf("Min = %s", got.ToISOString(false))
	}
	if got := cfg.Max(a, b, c); !got.IsSame(b) {
		t.Fatalf("Max = %s", got.ToISOString(false))
	}
	if cfg.Max(a, cfg.Invalid(), b).IsValid() {
		t.Fatal("an invalid argument wins")
	}
	if got := cfg.Min(); got.UnixMilli() != fixedNow.UnixMilli() {
		t.Fatalf("Min() = %s, want now", got.ToISOString(false))
	}
}

func TestOffsetHooks(t *testing.T) {
	var ops []string
	record := OffsetHookFunc(func(ctx *OffsetHookContext) {
		ops = append(ops, ctx.Op)
	})
	shift := OffsetHookFunc(func(ctx *OffsetHookContext) {
		if ctx.Op != "month" {
			return
		}
		ctx.SetMetadata("shifted", true)
		ctx.Result = ctx.Result.SetUTCOffset(60, false)
	})
	cfg := newTestConfig(t, WithOffsetHooks(record, shift))

	d := cfg.New("2024-01-15T12:00:00Z")
	ops = nil

	added := d.Add(1, Day).Add(1, Month)
	if !slices.Equal(ops, []string{"add", "add"}) {
		t.Fatalf("hooks saw %v, want one call per operation", ops)
	}
	if added.UTCOffset() != 0 {
		t.Fatal("add should not trigger the month hook")
	}

	moved := d.SetMonth(3)
	if moved.UTCOffset() != 60 || moved.Format("MM-DD HH:mm") != "04-15 13:00" {
		t.Fatalf("hook result not used: %s (%d)", moved.Format("MM-DD HH:mm"), moved.UTCOffset())
	}

	var ctx *OffsetHookContext
	ctx.SetMetadata("ignored", 1)
	if _, ok := ctx.MetadataValue("ignored"); ok {
		t.Fatal("nil context should hold no metadata")
	}
}
