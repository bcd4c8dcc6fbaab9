package chrono

import (
	"math"
	"testing"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name   string
		span   Duration
		suffix bool
		want   string
	}{
		{"zero", Duration{}, false, "a few seconds"},
		{"zero with suffix is past", Duration{}, true, "a few seconds ago"},
		{"44 seconds", NewDuration(44, Second), false, "a few seconds"},
		{"45 seconds", NewDuration(45, Second), false, "a minute"},
		{"90 seconds", NewDuration(90, Second), false, "2 minutes"},
		{"44 minutes", NewDuration(44, Minute), false, "44 minutes"},
		{"45 minutes", NewDuration(45, Minute), false, "an hour"},
		{"21 hours", NewDuration(21, Hour), false, "21 hours"},
		{"22 hours", NewDuration(22, Hour), false, "a day"},
		{"25 days", NewDuration(25, Day), false, "25 days"},
		{"26 days", NewDuration(26, Day), false, "a month"},
		{"45 days", NewDuration(45, Day), false, "a month"},
		{"10 months", NewDuration(10, Month), false, "10 months"},
		{"11 months", NewDuration(11, Month), false, "a year"},
		{"2 years", NewDuration(2, Year), false, "2 years"},
		{"past", NewDuration(-3, Day), true, "3 days ago"},
		{"future", NewDuration(3, Day), true, "in 3 days"},
		{"future hour", NewDuration(1, Hour), true, "in an hour"},
		{"invalid", InvalidDuration(), false, "Invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Humanize(tt.suffix); got != tt.want {
				t.Fatalf("Humanize(%v) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}

func TestHumanizeThresholdOverrides(t *testing.T) {
	tests := []struct {
		name      string
		span      Duration
		overrides map[string]float64
		want      string
	}{
		{"raise seconds", NewDuration(50, Second), map[string]float64{"s": 60}, "a few seconds"},
		{"count seconds", NewDuration(30, Second), map[string]float64{"ss": 3}, "30 seconds"},
		{"weeks enabled", NewDuration(14, Day), map[string]float64{"w": 5, "d": 7}, "2 weeks"},
		{"single week", NewDuration(8, Day), map[string]float64{"w": 5, "d": 7}, "a week"},
		{"unknown keys ignored", NewDuration(90, Second), map[string]float64{"fortnight": 1}, "2 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.HumanizeWith(false, tt.overrides); got != tt.want {
				t.Fatalf("HumanizeWith = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHumanizeUsesConfig(t *testing.T) {
	floor := newTestConfig(t, WithRelativeTimeRounding(math.Floor))
	if got := NewDuration(90, Second).WithConfig(floor).Humanize(false); got != "a minute" {
		t.Fatalf("floor rounding = %q", got)
	}

	weeks := newTestConfig(t, WithRelativeTimeThreshold("w", 4))
	if got := NewDuration(30, Day).WithConfig(weeks).Humanize(false); got != "a month" {
		t.Fatalf("30 days with week threshold = %q", got)
	}

	fr := newTestConfig(t, WithActiveLocale("fr"))
	if got := NewDuration(2, Hour).WithConfig(fr).Humanize(true); got != "dans 2 heures" {
		t.Fatalf("active locale = %q", got)
	}
}

func TestHumanizeLocales(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		locale string
		span   Duration
		suffix bool
		want   string
	}{
		{"de", NewDuration(3, Hour), false, "3 Stunden"},
		{"de", NewDuration(-1, Day), true, "vor einem Tag"},
		{"de", NewDuration(1, Day), false, "ein Tag"},
		{"de", NewDuration(5, Month), true, "in 5 Monaten"},
		{"es", NewDuration(-2, Hour), true, "hace 2 horas"},
		{"ru", NewDuration(2, Minute), false, "2 минуты"},
		{"ru", NewDuration(5, Minute), false, "5 минут"},
		{"ru", NewDuration(21, Minute), false, "21 минута"},
		{"ru", NewDuration(21, Minute), true, "через 21 минуту"},
		{"ru", NewDuration(1, Minute), true, "через минуту"},
		{"ru", NewDuration(-3, Day), true, "3 дня назад"},
		{"ru", NewDuration(11, Day), false, "11 дней"},
	}
	for _, tt := range tests {
		t.Run(tt.locale+" "+tt.want, func(t *testing.T) {
			got := tt.span.WithConfig(cfg).WithLocale(tt.locale).Humanize(tt.suffix)
			if got != tt.want {
				t.Fatalf("Humanize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeToNow(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"from now past", cfg.New("2024-01-15T09:00:00Z").FromNow(false), "3 hours ago"},
		{"from now without suffix", cfg.New("2024-01-15T09:00:00Z").FromNow(true), "3 hours"},
		{"to now", cfg.New("2024-01-15T09:00:00Z").ToNow(false), "in 3 hours"},
		{"from now future", cfg.New("2024-02-20T12:00:00Z").FromNow(false), "in a month"},
		{"from other", cfg.New("2024-01-20").From(cfg.New("2024-01-15"), false), "in 5 days"},
		{"to other", cfg.New("2024-01-20").To(cfg.New("2024-01-15"), false), "5 days ago"},
		{"localized", cfg.New("2024-01-15T09:00:00Z").WithLocale("fr").FromNow(false), "il y a 3 heures"},
		{"invalid", cfg.Invalid().FromNow(false), "Invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestCalendar(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		name   string
		input  string
		locale string
		key    string
		want   string
	}{
		{"same day", "2024-01-15T15:30:00Z", "en", CalendarSameDay, "Today at 3:30 PM"},
		{"next day", "2024-01-16T09:00:00Z", "en", CalendarNextDay, "Tomorrow at 9:00 AM"},
		{"last day", "2024-01-14T20:00:00Z", "en", CalendarLastDay, "Yesterday at 8:00 PM"},
		{"next week", "2024-01-18T10:00:00Z", "en", CalendarNextWeek, "Thursday at 10:00 AM"},
		{"last week", "2024-01-10T10:00:00Z", "en", CalendarLastWeek, "Last Wednesday at 10:00 AM"},
		{"same else", "2024-01-01T10:00:00Z", "en", CalendarSameElse, "01/01/2024"},
		{"far future", "2024-01-22T10:00:00Z", "en", CalendarSameElse, "01/22/2024"},
		{"german", "2024-01-16T09:00:00Z", "de", CalendarNextDay, "morgen um 09:00 Uhr"},
		{"spanish one o'clock", "2024-01-16T01:00:00Z", "es", CalendarNextDay, "mañana a la 1:00"},
		{"spanish plural", "2024-01-16T09:00:00Z", "es", CalendarNextDay, "mañana a las 9:00"},
		{"russian this week", "2024-01-19T10:00:00Z", "ru", CalendarNextWeek, "В пятницу, в 10:00"},
		{"russian next day", "2024-01-16T10:00:00Z", "ru", CalendarNextDay, "Завтра, в 10:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustValid(t, cfg.New(tt.input, InLocale(tt.locale)))
			if got := d.CalendarKey(cfg.Now()); got != tt.key {
				t.Fatalf("CalendarKey = %q, want %q", got, tt.key)
			}
			if got := d.Calendar(); got != tt.want {
				t.Fatalf("Calendar = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalendarReferenceAndOverrides(t *testing.T) {
	cfg := newTestConfig(t)
	d := cfg.New("2024-03-01T08:00:00Z")
	ref := cfg.New("2024-02-29T23:00:00Z")

	if got := d.Calendar(ref); got != "Tomorrow at 8:00 AM" {
		t.Fatalf("Calendar(ref) = %q", got)
	}

	overrides := map[string]CalendarPhrase{
		CalendarNextDay: CalendarText("[Tomorrow] HH:mm"),
	}
	if got := d.CalendarWith(overrides, ref); got != "Tomorrow 08:00" {
		t.Fatalf("CalendarWith = %q", got)
	}

	dynamic := map[string]CalendarPhrase{
		CalendarNextDay: CalendarFunc(func(d, now DateTime) string {
			if d.Hour() < 12 {
				return "[Tomorrow morning]"
			}
			return "[Tomorrow afternoon]"
		}),
	}
	if got := d.CalendarWith(dynamic, ref); got != "Tomorrow morning" {
		t.Fatalf("CalendarWith func = %q", got)
	}
	if got := cfg.Invalid().Calendar(); got != "Invalid date" {
		t.Fatalf("invalid Calendar = %q", got)
	}
}
