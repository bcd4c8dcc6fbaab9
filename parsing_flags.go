package chrono

// Indexes of ParsingFlags.Overflow.
const (
	overflowYear = iota
	overflowMonth
	overflowDate
	overflowHour
	overflowMinute
	overflowSecond
	overflowMillisecond
	overflowWeek
	overflowWeekday
)

var overflowUnits = map[int]Unit{
	overflowYear:        Year,
	overflowMonth:       Month,
	overflowDate:        Date,
	overflowHour:        Hour,
	overflowMinute:      Minute,
	overflowSecond:      Second,
	overflowMillisecond: Millisecond,
	overflowWeek:        Week,
	overflowWeekday:     Weekday,
}

// ParsingFlags is the diagnostic record of a parse or construction.
type ParsingFlags struct {
	Empty           bool
	UnusedTokens    []string
	UnusedInput     []string
	Overflow        int
	CharsLeftOver   int
	NullInput       bool
	InvalidEra      bool
	InvalidMonth    string
	InvalidWeekday  bool
	InvalidFormat   bool
	UserInvalidated bool
	ISO             bool
	RFC2822         bool
	WeekdayMismatch bool
	// BigHour is set when an hour above 12 was parsed with a 12 hour token.
	BigHour      bool
	Meridiem     string
	ParsedParts  []string
	ParsedFormat string

	// set when DDD overflowed the year, or week/weekday overflowed
	overflowDayOfYear bool
	overflowWeeks     bool
	overflowWeekday   bool
}

func newParsingFlags() *ParsingFlags {
	return &ParsingFlags{Overflow: -2}
}

func (p ParsingFlags) clone() ParsingFlags {
	out := p
	out.UnusedTokens = append([]string(nil), p.UnusedTokens...)
	out.UnusedInput = append([]string(nil), p.UnusedInput...)
	out.ParsedParts = append([]string(nil), p.ParsedParts...)
	return out
}

// valid applies the validity predicate to the diagnostics alone.
func (p *ParsingFlags) valid(strict bool) bool {
	parsedMeridiem := p.Meridiem != "" && len(p.ParsedParts) > 0
	ok := p.Overflow < 0 &&
		!p.Empty &&
		p.InvalidMonth == "" &&
		!p.InvalidWeekday &&
		!p.WeekdayMismatch &&
		!p.NullInput &&
		!p.InvalidFormat &&
		!p.UserInvalidated &&
		!p.InvalidEra &&
		(p.Meridiem == "" || parsedMeridiem)
	if strict {
		ok = ok &&
			p.CharsLeftOver == 0 &&
			len(p.UnusedTokens) == 0 &&
			!p.BigHour
	}
	return ok
}
