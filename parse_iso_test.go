package chrono

import (
	"testing"
	"time"
)

func TestParseISO8601(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-15", "2024-01-15T00:00:00.000Z"},
		{"2024-01", "2024-01-01T00:00:00.000Z"},
		{"2024-01-15T13:05", "2024-01-15T13:05:00.000Z"},
		{"2024-01-15T13", "2024-01-15T13:00:00.000Z"},
		{"2024-01-15T13:05:09.123Z", "2024-01-15T13:05:09.123Z"},
		{"2024-01-15 13:05:09,5", "2024-01-15T13:05:09.500Z"},
		{"2024-01-15T13:05:09.123456789Z", "2024-01-15T13:05:09.123Z"},
		{"2024-01-15T13:05+0100", "2024-01-15T12:05:00.000Z"},
		{"2024-01-15T13:05:09-08:00", "2024-01-15T21:05:09.000Z"},
		{"2024-01-15T24:00", "2024-01-16T00:00:00.000Z"},
		{"20240115", "2024-01-15T00:00:00.000Z"},
		{"20240115T130509Z", "2024-01-15T13:05:09.000Z"},
		{"2024-W03", "2024-01-15T00:00:00.000Z"},
		{"2024-W03-3", "2024-01-17T00:00:00.000Z"},
		{"2024W033", "2024-01-17T00:00:00.000Z"},
		{"2021-W01-1", "2021-01-04T00:00:00.000Z"},
		{"2024-046", "2024-02-15T00:00:00.000Z"},
		{"+002024-01-15", "2024-01-15T00:00:00.000Z"},
		{"  2024-01-15", "2024-01-15T00:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := cfg.New(tt.input)
			if !d.IsValid() {
				t.Fatalf("New(%q) invalid: %+v", tt.input, d.ParsingFlags())
			}
			if got := d.ToISOString(false); got != tt.want {
				t.Fatalf("New(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if !d.ParsingFlags().ISO {
				t.Fatalf("New(%q) should be flagged ISO", tt.input)
			}
			if d.CreationData().Layout != ISO8601 {
				t.Fatalf("layout = %q", d.CreationData().Layout)
			}
		})
	}
}

func TestParseISO8601Invalid(t *testing.T) {
	cfg := newTestConfig(t)

	for _, input := range []string{
		"2024-01-15T25:00",
		"2024-01-15T",
		"2024-01-15T1",
		"2024-W03T10:00",
		"2024-02-30",
		"2024-13",
	} {
		t.Run(input, func(t *testing.T) {
			if d := cfg.New(input); d.IsValid() {
				t.Fatalf("New(%q) = %s, want invalid", input, d.ToISOString(false))
			}
		})
	}
}

func TestParseRFC2822(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		input string
		want  string
	}{
		{"Mon, 15 Jan 2024 13:05:09 +0000", "2024-01-15T13:05:09.000Z"},
		{"Mon, 15 Jan 2024 13:05:09 GMT", "2024-01-15T13:05:09.000Z"},
		{"15 Jan 2024 13:05 +0530", "2024-01-15T07:35:00.000Z"},
		{"15 Jan 24 13:05 PST", "2024-01-15T21:05:00.000Z"},
		{"15 Jan 2024 13:05:09 EDT", "2024-01-15T17:05:09.000Z"},
		{"15 Jan 2024 13:05:09 Z", "2024-01-15T13:05:09.000Z"},
		{"Mon, 15 Jan 2024 13:05:09 (Eastern) -0500", "2024-01-15T18:05:09.000Z"},
		{"Mon,  15  Jan 2024 13:05:09 +0000", "2024-01-15T13:05:09.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := cfg.New(tt.input)
			if !d.IsValid() {
				t.Fatalf("New(%q) invalid: %+v", tt.input, d.ParsingFlags())
			}
			if got := d.ToISOString(false); got != tt.want {
				t.Fatalf("New(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if !d.ParsingFlags().RFC2822 {
				t.Fatal("RFC2822 flag not set")
			}
		})
	}

	mismatch := cfg.New("Tue, 15 Jan 2024 13:05:09 +0000")
	if mismatch.IsValid() || !mismatch.ParsingFlags().WeekdayMismatch {
		t.Fatalf("weekday mismatch should invalidate: %+v", mismatch.ParsingFlags())
	}
}

func TestParseZoneKeepsRFC2822Offset(t *testing.T) {
	cfg := newTestConfig(t)
	d := cfg.ParseZone("15 Jan 2024 13:05 PST")
	if d.UTCOffset() != -480 {
		t.Fatalf("UTCOffset = %d", d.UTCOffset())
	}
	if got := d.Format("HH:mm"); got != "13:05" {
		t.Fatalf("Format = %q", got)
	}
}

func TestUntruncateYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"24", 2024},
		{"49", 2049},
		{"50", 1950},
		{"99", 1999},
		{"124", 2024},
		{"2024", 2024},
	}
	for _, tt := range tests {
		if got := untruncateYear(tt.input); got != tt.want {
			t.Fatalf("untruncateYear(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseASPNetDate(t *testing.T) {
	cfg := newTestConfig(t)
	for _, input := range []string{"/Date(1705323909123)/", "/Date(1705323909123+0100)/", "Date(1705323909123)"} {
		d := cfg.New(input)
		if !d.IsValid() || d.UnixMilli() != 1705323909123 {
			t.Fatalf("New(%q) = %v valid=%v", input, d.UnixMilli(), d.IsValid())
		}
	}
}

func TestParseFallback(t *testing.T) {
	var warnings []string
	cfg, err := NewConfig(
		WithLocation(time.UTC),
		WithNow(func() time.Time { return fixedNow }),
		WithDeprecationHandler(func(name, _ string) { warnings = append(warnings, name) }),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	d := cfg.New("January 15, 2024")
	if !d.IsValid() {
		t.Fatal("fallback should read a long English date")
	}
	if got := d.ToISOString(false); got != "2024-01-15T00:00:00.000Z" {
		t.Fatalf("fallback = %s", got)
	}
	if len(warnings) != 1 || warnings[0] != "createFromInputFallback" {
		t.Fatalf("warnings = %v", warnings)
	}

	if cfg.New("not a date at all").IsValid() {
		t.Fatal("garbage should stay invalid")
	}
	if cfg.New("January 15, 2024", Strict()).IsValid() {
		t.Fatal("strict construction must not fall back")
	}

	noFallback := newTestConfig(t, WithoutInputFallback())
	if noFallback.New("January 15, 2024").IsValid() {
		t.Fatal("fallback disabled, expected invalid")
	}
}

func TestParseEmptyInput(t *testing.T) {
	cfg := newTestConfig(t)
	d := cfg.New("")
	if d.IsValid() || !d.ParsingFlags().NullInput {
		t.Fatalf("empty input flags = %+v", d.ParsingFlags())
	}

	now := cfg.New(nil)
	if !now.IsValid() || now.UnixMilli() != fixedNow.UnixMilli() {
		t.Fatalf("nil input should be now, got %v", now)
	}
}
