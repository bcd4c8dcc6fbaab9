package chrono

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestDurationConstruction(t *testing.T) {
	tests := []struct {
		name   string
		span   Duration
		valid  bool
		ms     float64
		days   float64
		months float64
	}{
		{"hours", NewDuration(1.5, Hour), true, 5400000, 0, 0},
		{"weeks are days", NewDuration(2, Week), true, 0, 14, 0},
		{"iso week is a week", NewDuration(1, ISOWeek), true, 0, 7, 0},
		{"years are months", NewDuration(2, Year), true, 0, 0, 24},
		{"quarters are months", NewDuration(1, Quarter), true, 0, 0, 3},
		{"mixed units", DurationOf(map[string]float64{"days": 1, "hours": 1.5}), true, 5400000, 1, 0},
		{"shorthands", DurationOf(map[string]float64{"M": 1, "m": 1}), true, 60000, 0, 1},
		{"fraction on a larger unit", DurationOf(map[string]float64{"hours": 1.5, "minutes": 30}), false, 0, 0, 0},
		{"unknown unit", DurationOf(map[string]float64{"fortnight": 1}), false, 0, 0, 0},
		{"field unit", NewDuration(1, Weekday), false, 0, 0, 0},
		{"nan", Milliseconds(math.NaN()), false, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.span.IsValid() != tt.valid {
				t.Fatalf("IsValid = %v, want %v", tt.span.IsValid(), tt.valid)
			}
			if !tt.valid {
				return
			}
			ms, days, months := tt.span.Raw()
			if ms != tt.ms || days != tt.days || months != tt.months {
				t.Fatalf("Raw = (%v, %v, %v), want (%v, %v, %v)", ms, days, months, tt.ms, tt.days, tt.months)
			}
		})
	}

	var zero Duration
	if !zero.IsValid() || zero.As(Second) != 0 {
		t.Fatal("the zero Duration is a valid empty span")
	}
}

func TestDurationBreakdown(t *testing.T) {
	tests := []struct {
		name string
		span Duration
		want Breakdown
	}{
		{"clock units", Milliseconds(90061001), Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Milliseconds: 1}},
		{"days bubble into months", NewDuration(400, Day), Breakdown{Years: 1, Months: 1, Days: 4}},
		{"negative", Milliseconds(-90061001), Breakdown{Days: -1, Hours: -1, Minutes: -1, Seconds: -1, Milliseconds: -1}},
		{"mixed signs collapse", DurationOf(map[string]float64{"months": 1, "days": -1}), Breakdown{Days: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Breakdown(); got != tt.want {
				t.Fatalf("Breakdown = %+v, want %+v", got, tt.want)
			}
		})
	}

	span := NewDuration(15, Day)
	if span.Weeks() != 2 || span.Get(Week) != 2 || span.Get(Date) != 15 {
		t.Fatalf("Weeks = %v, Get(Week) = %v", span.Weeks(), span.Get(Week))
	}
	if obj := Milliseconds(90061001).ToObject(); obj["hours"] != 1 || obj["days"] != 1 {
		t.Fatalf("ToObject = %v", obj)
	}
	if b := InvalidDuration().Breakdown(); !math.IsNaN(b.Days) {
		t.Fatalf("invalid Breakdown = %+v", b)
	}
}

func TestDurationAs(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"seconds to minutes", Milliseconds(90000).As(Minute), 1.5},
		{"month in days", NewDuration(1, Month).As(Day), 30},
		{"month in weeks", NewDuration(1, Month).As(Week), 30.0 / 7},
		{"year in months", NewDuration(1, Year).As(Month), 12},
		{"year in quarters", NewDuration(1, Year).As(Quarter), 4},
		{"days in months", NewDuration(146097, Day).As(Year), 400},
		{"weeks in days", NewDuration(2, Week).As(Day), 14},
		{"day in hours", NewDuration(1, Day).As(Hour), 24},
		{"mixed in milliseconds", DurationOf(map[string]float64{"days": 1, "seconds": 1}).As(Millisecond), 86401000},
		{"negative", NewDuration(-3, Hour).As(Minute), -180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got, err := NewDuration(2, Hour).AsUnit("minutes"); err != nil || got != 120 {
		t.Fatalf("AsUnit = %v, %v", got, err)
	}
	if _, err := NewDuration(2, Hour).AsUnit("weekday"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
	if !math.IsNaN(InvalidDuration().As(Day)) {
		t.Fatal("As on invalid duration should be NaN")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("As with a field unit should panic")
		}
	}()
	NewDuration(1, Day).As(DayOfYear)
}

func TestDurationArithmetic(t *testing.T) {
	sum := NewDuration(1, Day).Add(NewDuration(2, Hour)).Add(NewDuration(1, Month))
	if ms, days, months := sum.Raw(); ms != 7200000 || days != 1 || months != 1 {
		t.Fatalf("Add = (%v, %v, %v)", ms, days, months)
	}

	diff := NewDuration(1, Day).Subtract(NewDuration(36, Hour))
	if ms, days, _ := diff.Raw(); ms != -129600000 || days != 1 {
		t.Fatalf("Subtract = (%v, %v)", ms, days)
	}
	if abs := NewDuration(-2, Day).Abs(); abs.As(Day) != 2 {
		t.Fatalf("Abs = %v", abs.As(Day))
	}
	if NewDuration(1, Day).Add(InvalidDuration()).IsValid() {
		t.Fatal("adding an invalid duration should invalidate")
	}

	tests := []struct {
		span Duration
		want float64
	}{
		{NewDuration(1, Month), 2592e6},
		{NewDuration(13, Month), 2592e6 + 31536e6},
		{NewDuration(1, Day), 864e5},
		{NewDuration(-1, Year), -31536e6},
	}
	for _, tt := range tests {
		if got := tt.span.ValueOf(); got != tt.want {
			t.Fatalf("ValueOf(%s) = %v, want %v", tt.span, got, tt.want)
		}
	}
}

func TestBetween(t *testing.T) {
	cfg := newTestConfig(t)
	from := cfg.New("2024-01-31")
	to := cfg.New("2024-03-01")

	span := Between(from, to)
	if ms, days, months := span.Raw(); ms != 864e5 || days != 0 || months != 1 {
		t.Fatalf("Between = (%v, %v, %v)", ms, days, months)
	}
	if got := from.AddDuration(span); !got.IsSame(to) {
		t.Fatalf("from + Between(from, to) = %s", got.ToISOString(false))
	}

	back := Between(to, from)
	if ms, _, months := back.Raw(); ms != -864e5 || months != -1 {
		t.Fatalf("reverse Between = (%v, %v)", ms, months)
	}
	if Between(from, cfg.Invalid()).IsValid() {
		t.Fatal("Between with an invalid operand should be invalid")
	}
}

func TestDurationISOString(t *testing.T) {
	tests := []struct {
		name string
		span Duration
		want string
	}{
		{"all components", DurationOf(map[string]float64{"years": 1, "months": 2, "days": 3, "hours": 4, "minutes": 5, "seconds": 6.5}), "P1Y2M3DT4H5M6.5S"},
		{"zero", Duration{}, "P0D"},
		{"negative", Milliseconds(-1500), "-PT1.5S"},
		{"mixed signs", DurationOf(map[string]float64{"days": 1, "hours": -1}), "P1DT-1H"},
		{"minutes carry into hours", NewDuration(90, Minute), "PT1H30M"},
		{"weeks as days", NewDuration(2, Week), "P14D"},
		{"months carry into years", NewDuration(14, Month), "P1Y2M"},
		{"invalid", InvalidDuration(), "Invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.ToISOString(); got != tt.want {
				t.Fatalf("ToISOString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		ms    float64
	}{
		{"PT1.5S", 1500},
		{"PT1,5S", 1500},
		{"P1DT2H", 93600000},
		{"-P3D", -259200000},
		{"P-3D", -259200000},
		{"P2W", 1209600000},
		{"1.02:03:04.5", 93784500},
		{"02:03", 7380000},
		{"-00:30", -1800000},
		{"1500", 1500},
		{"-250.5", -250.5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			span, err := ParseDuration(tt.input)
			if err != nil {
				t.Fatalf("ParseDuration(%q): %v", tt.input, err)
			}
			if got := span.As(Millisecond); got != tt.ms {
				t.Fatalf("ParseDuration(%q) = %v ms, want %v", tt.input, got, tt.ms)
			}
		})
	}

	round := MustParseDuration("P1Y2M3DT4H5M6S")
	if got := round.ToISOString(); got != "P1Y2M3DT4H5M6S" {
		t.Fatalf("round trip = %q", got)
	}

	for _, input := range []string{"", "abc", "P1.5DT2H", "1 day", "NaN", "Inf", "+Inf", "-infinity"} {
		span, err := ParseDuration(input)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("ParseDuration(%q) error = %v, want ErrInvalidDuration", input, err)
		}
		if span.IsValid() {
			t.Fatalf("ParseDuration(%q) returned a valid duration", input)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustParseDuration should panic on bad input")
		}
	}()
	MustParseDuration("soon")
}

func TestDurationJSON(t *testing.T) {
	type job struct {
		Timeout Duration `json:"timeout"`
	}

	data, err := json.Marshal(job{Timeout: NewDuration(90, Minute)})
	if err != nil || string(data) != `{"timeout":"PT1H30M"}` {
		t.Fatalf("Marshal = %s, %v", data, err)
	}
	if data, _ := json.Marshal(job{Timeout: InvalidDuration()}); string(data) != `{"timeout":null}` {
		t.Fatalf("Marshal invalid = %s", data)
	}

	var j job
	if err := json.Unmarshal([]byte(`{"timeout":"P1D"}`), &j); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if j.Timeout.As(Hour) != 24 {
		t.Fatalf("Unmarshal = %v hours", j.Timeout.As(Hour))
	}
	if err := json.Unmarshal([]byte(`{"timeout":null}`), &j); err != nil || j.Timeout.IsValid() {
		t.Fatalf("null should decode to an invalid duration: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"timeout":"forever"}`), &j); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}
