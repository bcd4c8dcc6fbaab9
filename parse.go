package chrono

import (
	"time"
)

// Indexes of the date part array.
const (
	partYear = iota
	partMonth
	partDate
	partHour
	partMinute
	partSecond
	partMillisecond
	partCount
)

var partNames = [partCount]string{"year", "month", "date", "hour", "minute", "second", "millisecond"}

type dateParts struct {
	values [partCount]int
	set    [partCount]bool
}

func (p *dateParts) put(part, value int) {
	p.values[part] = value
	p.set[part] = true
}

func (p *dateParts) names() []string {
	var out []string
	for i, ok := range p.set {
		if ok {
			out = append(out, partNames[i])
		}
	}
	return out
}

// parseState accumulates the fields of one construction attempt.
type parseState struct {
	cfg    *Config
	locale *Locale
	input  string
	layout string
	strict bool
	useUTC bool
	flags  *ParsingFlags

	parts        dateParts
	hasParts     bool
	week         map[string]int
	dayOfYear    int
	hasDayOfYear bool
	tzm          int
	hasTZM       bool
	meridiem     string
	nextDay      bool

	ms         int64
	hasInstant bool
	invalid    bool
}

func newParseState(cfg *Config, loc *Locale, input string, strict, useUTC bool) *parseState {
	return &parseState{
		cfg:    cfg,
		locale: loc,
		input:  input,
		strict: strict,
		useUTC: useUTC,
		flags:  newParsingFlags(),
	}
}

// fork copies the settings of s into a fresh state for another layout.
func (s *parseState) fork() *parseState {
	return newParseState(s.cfg, s.locale, s.input, s.strict, s.useUTC)
}

func (s *parseState) weekField(key string, value int) {
	if s.week == nil {
		s.week = make(map[string]int)
	}
	s.week[key] = value
}

func (s *parseState) setInstant(ms int64) {
	s.ms, s.hasInstant = ms, true
}

// parseLayout runs the token engine for one layout.
func (s *parseState) parseLayout(layout string) {
	s.layout = layout
	s.flags.ParsedFormat = layout
	switch layout {
	case ISO8601:
		s.parseISO()
		return
	case RFC2822:
		s.parseRFC2822()
		return
	}

	s.flags.Empty = true
	rest := s.input
	consumed := 0
	tokens := formattingTokens.FindAllString(ExpandLayout(layout, s.locale), -1)

	for _, token := range tokens {
		match, start, ok := patternFor(token, s.strict, s.locale).find(rest)
		if ok && match == "" {
			ok = false
		}
		if ok {
			if start > 0 {
				s.flags.UnusedInput = append(s.flags.UnusedInput, rest[:start])
			}
			rest = rest[start+len(match):]
			consumed += len(match)
		}

		if _, isToken := formatTokenFuncs[token]; isToken {
			if !ok {
				s.flags.UnusedTokens = append(s.flags.UnusedTokens, token)
				continue
			}
			s.flags.Empty = false
			if set, ok := parseTokenSetters[token]; ok {
				set(s, match, token)
			}
		} else if s.strict && !ok {
			s.flags.UnusedTokens = append(s.flags.UnusedTokens, token)
		}
	}

	s.flags.CharsLeftOver = len(s.input) - consumed
	if rest != "" {
		s.flags.UnusedInput = append(s.flags.UnusedInput, rest)
	}

	if hour := s.parts.values[partHour]; s.parts.set[partHour] && s.flags.BigHour && hour > 0 && hour <= 12 {
		s.flags.BigHour = false
	}
	s.flags.ParsedParts = s.parts.names()
	s.flags.Meridiem = s.meridiem
	if s.meridiem != "" && s.parts.set[partHour] {
		s.parts.values[partHour] = s.fixMeridiem(s.parts.values[partHour])
	}

	s.fromParts()
	s.checkOverflow()
}

func (s *parseState) fixMeridiem(hour int) int {
	pm := s.locale.IsPM(s.meridiem)
	switch {
	case pm && hour < 12:
		return hour + 12
	case !pm && hour == 12:
		return 0
	default:
		return hour
	}
}

// zone is the location the parts are interpreted in.
func (s *parseState) zone() *time.Location {
	if s.useUTC {
		return time.UTC
	}
	return s.cfg.location
}

func (s *parseState) now() time.Time {
	return s.cfg.clock().In(s.zone())
}

// fromParts turns the collected parts into an instant. Leading parts that
// were not given default to today; trailing ones to their minimum.
func (s *parseState) fromParts() {
	if s.hasInstant {
		return
	}
	s.hasParts = true
	now := s.now()

	if s.week != nil && !s.parts.set[partDate] && !s.parts.set[partMonth] {
		s.dayOfYearFromWeekInfo(now)
	}

	if s.hasDayOfYear {
		year := now.Year()
		if s.parts.set[partYear] {
			year = s.parts.values[partYear]
		}
		if s.dayOfYear > DaysInYear(year) || s.dayOfYear == 0 {
			s.flags.overflowDayOfYear = true
		}
		date := time.Date(year, time.January, s.dayOfYear, 0, 0, 0, 0, time.UTC)
		s.parts.put(partMonth, int(date.Month())-1)
		s.parts.put(partDate, date.Day())
	}

	current := [3]int{now.Year(), int(now.Month()) - 1, now.Day()}
	i := 0
	for ; i < 3 && !s.parts.set[i]; i++ {
		s.parts.put(i, current[i])
	}
	for ; i < partCount; i++ {
		if s.parts.set[i] {
			continue
		}
		if i == partDate {
			s.parts.put(i, 1)
		} else {
			s.parts.put(i, 0)
		}
	}

	p := &s.parts.values
	if p[partHour] == 24 && p[partMinute] == 0 && p[partSecond] == 0 && p[partMillisecond] == 0 {
		s.nextDay = true
		p[partHour] = 0
	}

	t := time.Date(p[partYear], time.Month(p[partMonth]+1), p[partDate], p[partHour], p[partMinute], p[partSecond], 0, s.zone())
	s.ms = t.UnixMilli() + int64(p[partMillisecond])
	if s.hasTZM {
		s.ms -= int64(s.tzm) * msPerMinute
	}
	if s.nextDay {
		p[partHour] = 24
	}

	if day, ok := s.week["d"]; ok && day != int(t.Weekday()) {
		s.flags.WeekdayMismatch = true
	}
}

func (s *parseState) dayOfYearFromWeekInfo(now time.Time) {
	w := s.week
	defaultYear := func(key string, fallback int) int {
		if v, ok := w[key]; ok {
			return v
		}
		if s.parts.set[partYear] {
			return s.parts.values[partYear]
		}
		return fallback
	}
	get := func(key string, fallback int) int {
		if v, ok := w[key]; ok {
			return v
		}
		return fallback
	}

	var rule WeekRule
	var weekYear, week, weekday int
	weekdayOverflow := false

	_, hasGG := w["GG"]
	_, hasW := w["W"]
	_, hasE := w["E"]
	if hasGG || hasW || hasE {
		rule = ISOWeekRule
		curYear, _ := WeekOfYear(now.Year(), now.YearDay(), rule)
		weekYear = defaultYear("GG", curYear)
		week = get("W", 1)
		weekday = get("E", 1)
		if weekday < 1 || weekday > 7 {
			weekdayOverflow = true
		}
	} else {
		rule = s.locale.Week()
		curYear, curWeek := WeekOfYear(now.Year(), now.YearDay(), rule)
		weekYear = defaultYear("gg", curYear)
		week = get("w", curWeek)
		if d, ok := w["d"]; ok {
			weekday = d
			if d < 0 || d > 6 {
				weekdayOverflow = true
			}
		} else if e, ok := w["e"]; ok {
			weekday = e + rule.Dow
			if e < 0 || e > 6 {
				weekdayOverflow = true
			}
		} else {
			weekday = rule.Dow
		}
	}

	switch {
	case week < 1 || week > WeeksInYear(weekYear, rule):
		s.flags.overflowWeeks = true
	case weekdayOverflow:
		s.flags.overflowWeekday = true
	default:
		year, dayOfYear := DayOfYearFromWeeks(weekYear, week, weekday, rule)
		s.parts.put(partYear, year)
		s.dayOfYear, s.hasDayOfYear = dayOfYear, true
	}
}

// checkOverflow records the first part that is out of range.
func (s *parseState) checkOverflow() {
	if !s.hasParts || s.flags.Overflow != -2 {
		return
	}
	p := s.parts.values
	overflow := -1
	switch {
	case p[partMonth] < 0 || p[partMonth] > 11:
		overflow = overflowMonth
	case p[partDate] < 1 || p[partDate] > DaysInMonth(p[partYear], p[partMonth]):
		overflow = overflowDate
	case p[partHour] < 0 || p[partHour] > 24 ||
		(p[partHour] == 24 && (p[partMinute] != 0 || p[partSecond] != 0 || p[partMillisecond] != 0)):
		overflow = overflowHour
	case p[partMinute] < 0 || p[partMinute] > 59:
		overflow = overflowMinute
	case p[partSecond] < 0 || p[partSecond] > 59:
		overflow = overflowSecond
	case p[partMillisecond] < 0 || p[partMillisecond] > 999:
		overflow = overflowMillisecond
	}

	if s.flags.overflowDayOfYear && (overflow < overflowYear || overflow > overflowDate) {
		overflow = overflowDate
	}
	if s.flags.overflowWeeks && overflow == -1 {
		overflow = overflowWeek
	}
	if s.flags.overflowWeekday && overflow == -1 {
		overflow = overflowWeekday
	}
	s.flags.Overflow = overflow
}

// valid applies the validity predicate to the finished state.
func (s *parseState) valid() bool {
	if s.invalid {
		return false
	}
	if !s.hasInstant && !s.hasParts {
		return false
	}
	if float64(s.ms) > maxMillis || float64(s.ms) < -maxMillis {
		return false
	}
	return s.flags.valid(s.strict)
}

// score ranks a candidate layout; lower is better.
func (s *parseState) score() int {
	return s.flags.CharsLeftOver + 10*len(s.flags.UnusedTokens)
}

// parseLayouts tries every candidate. The valid candidate with the lowest
// score wins and ties keep the earlier layout. When no candidate is valid
// the last one is returned.
func (s *parseState) parseLayouts(layouts []string) *parseState {
	if len(layouts) == 0 {
		s.flags.InvalidFormat = true
		s.invalid = true
		return s
	}

	var best, last *parseState
	for _, layout := range layouts {
		candidate := s.fork()
		candidate.parseLayout(layout)
		last = candidate
		if !candidate.valid() {
			continue
		}
		if best == nil || candidate.score() < best.score() {
			best = candidate
		}
	}
	if best != nil {
		return best
	}
	return last
}
