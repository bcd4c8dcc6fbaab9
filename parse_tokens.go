package chrono

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var (
	match1           = regexp.MustCompile(`\d`)
	match2           = regexp.MustCompile(`\d\d`)
	match3           = regexp.MustCompile(`\d{3}`)
	match4           = regexp.MustCompile(`\d{4}`)
	match6           = regexp.MustCompile(`[+-]?\d{6}`)
	match1to2        = regexp.MustCompile(`\d\d?`)
	match3to4        = regexp.MustCompile(`\d\d\d\d?`)
	match5to6        = regexp.MustCompile(`\d\d\d\d\d\d?`)
	match1to3        = regexp.MustCompile(`\d{1,3}`)
	match1to4        = regexp.MustCompile(`\d{1,4}`)
	match1to6        = regexp.MustCompile(`[+-]?\d{1,6}`)
	matchUnsigned    = regexp.MustCompile(`\d+`)
	matchSigned      = regexp.MustCompile(`[+-]?\d+`)
	matchOffset      = regexp.MustCompile(`(?i)Z|[+-]\d\d:?\d\d`)
	matchShortOffset = regexp.MustCompile(`(?i)Z|[+-]\d\d(?::?\d\d)?`)
	matchTimestamp   = regexp.MustCompile(`[+-]?\d+(?:\.\d{1,3})?`)
	matchWord        = regexp.MustCompile(`(?i)[0-9]{0,256}['a-z\x{00A0}-\x{05FF}\x{0700}-\x{D7FF}\x{F007}-\x{FFEF}]{1,256}|[\x{0600}-\x{06FF}/]{1,256}(?:\s*?[\x{0600}-\x{06FF}]{1,256}){1,2}`)

	offsetChunker = regexp.MustCompile(`[+-]|\d\d`)
)

// tokenPattern returns the matcher used for a token in the given mode.
type tokenPattern func(strict bool, loc *Locale) matcher

func digits(lenient, strict *regexp.Regexp) tokenPattern {
	return func(isStrict bool, _ *Locale) matcher {
		if isStrict && strict != nil {
			return stdMatcher{re: strict}
		}
		return stdMatcher{re: lenient}
	}
}

func names(strictOf func(*Locale) matcher) tokenPattern {
	return func(isStrict bool, loc *Locale) matcher {
		if isStrict {
			return strictOf(loc)
		}
		return stdMatcher{re: matchWord}
	}
}

var parseTokenPatterns = map[string]tokenPattern{
	"M":    digits(match1to2, nil),
	"MM":   digits(match1to2, match2),
	"MMM":  names(func(l *Locale) matcher { return l.monthsShortStrict }),
	"MMMM": names(func(l *Locale) matcher { return l.monthsStrict }),
	"Q":    digits(match1, nil),

	"Y":      digits(matchSigned, nil),
	"YY":     digits(match1to2, match2),
	// YYYY reads digits only, so "-0002" parses as year 2. Signed years
	// round trip through YYYYYY or Y.
	"YYYY":   digits(match1to4, match4),
	"YYYYY":  digits(match1to6, match6),
	"YYYYYY": digits(match1to6, match6),

	"D":  digits(match1to2, nil),
	"DD": digits(match1to2, match2),
	"Do": func(strict bool, loc *Locale) matcher {
		if strict {
			return loc.ordinalParse
		}
		return loc.ordinalParseLenient
	},
	"DDD":  digits(match1to3, nil),
	"DDDD": digits(match3, nil),

	"d":    digits(match1to2, nil),
	"e":    digits(match1to2, nil),
	"E":    digits(match1to2, nil),
	"dd":   names(func(l *Locale) matcher { return l.weekdaysMinStrict }),
	"ddd":  names(func(l *Locale) matcher { return l.weekdaysShortStrict }),
	"dddd": names(func(l *Locale) matcher { return l.weekdaysStrict }),

	"w":  digits(match1to2, nil),
	"ww": digits(match1to2, match2),
	"W":  digits(match1to2, nil),
	"WW": digits(match1to2, match2),

	"gg":    digits(match1to2, match2),
	"gggg":  digits(match1to4, match4),
	"ggggg": digits(match1to6, match6),
	"GG":    digits(match1to2, match2),
	"GGGG":  digits(match1to4, match4),
	"GGGGG": digits(match1to6, match6),

	"a": func(_ bool, loc *Locale) matcher { return loc.meridiemParse },
	"A": func(_ bool, loc *Locale) matcher { return loc.meridiemParse },

	"H":     digits(match1to2, nil),
	"HH":    digits(match1to2, match2),
	"h":     digits(match1to2, nil),
	"hh":    digits(match1to2, match2),
	"k":     digits(match1to2, nil),
	"kk":    digits(match1to2, match2),
	"hmm":   digits(match3to4, nil),
	"hmmss": digits(match5to6, nil),
	"Hmm":   digits(match3to4, nil),
	"Hmmss": digits(match5to6, nil),

	"m":  digits(match1to2, nil),
	"mm": digits(match1to2, match2),
	"s":  digits(match1to2, nil),
	"ss": digits(match1to2, match2),

	"S":   digits(match1to3, match1),
	"SS":  digits(match1to3, match2),
	"SSS": digits(match1to3, match3),

	"Z":  digits(matchShortOffset, nil),
	"ZZ": digits(matchShortOffset, nil),
	"X":  digits(matchTimestamp, nil),
	"x":  digits(matchSigned, nil),
}

func init() {
	for width := 4; width <= 9; width++ {
		parseTokenPatterns[strings.Repeat("S", width)] = digits(matchUnsigned, nil)
	}
}

var literalPatterns sync.Map // map[string]matcher

// patternFor returns the matcher for a layout token. Tokens without a
// dedicated pattern match their own literal text.
func patternFor(token string, strict bool, loc *Locale) matcher {
	if p, ok := parseTokenPatterns[token]; ok {
		return p(strict, loc)
	}
	if cached, ok := literalPatterns.Load(token); ok {
		return cached.(matcher)
	}
	m := stdMatcher{re: regexp.MustCompile(regexp.QuoteMeta(removeFormattingTokens(token)))}
	literalPatterns.Store(token, m)
	return m
}

// tokenSetter records the value captured for a token.
type tokenSetter func(s *parseState, input, token string)

func setPart(part int) tokenSetter {
	return func(s *parseState, input, _ string) {
		s.parts.put(part, toInt(input))
	}
}

func setHour12(s *parseState, input, _ string) {
	s.parts.put(partHour, toInt(input))
	s.flags.BigHour = true
}

// splitClock stores "hmm" style input: the last two digits of each group are
// minutes and seconds, the rest is the hour.
func splitClock(bigHour, withSeconds bool) tokenSetter {
	return func(s *parseState, input, _ string) {
		n := len(input)
		if withSeconds {
			s.parts.put(partHour, toInt(input[:n-4]))
			s.parts.put(partMinute, toInt(input[n-4:n-2]))
			s.parts.put(partSecond, toInt(input[n-2:]))
		} else {
			s.parts.put(partHour, toInt(input[:n-2]))
			s.parts.put(partMinute, toInt(input[n-2:]))
		}
		if bigHour {
			s.flags.BigHour = true
		}
	}
}

func setMonthName(s *parseState, input, token string) {
	if month, ok := s.locale.MonthIndex(input, token, s.strict); ok {
		s.parts.put(partMonth, month)
		return
	}
	s.flags.InvalidMonth = input
}

func setWeekdayName(s *parseState, input, token string) {
	if day, ok := s.locale.WeekdayIndex(input, token, s.strict); ok {
		s.weekField("d", day)
		return
	}
	s.flags.InvalidWeekday = true
}

func setWeekField(key func(token string) string) tokenSetter {
	return func(s *parseState, input, token string) {
		s.weekField(key(token), toInt(input))
	}
}

func firstChar(token string) string { return token[:1] }
func firstTwo(token string) string  { return token[:2] }

func setTwoDigitWeekYear(s *parseState, input, token string) {
	s.weekField(token, s.cfg.twoDigitYear(input))
}

var parseTokenSetters = map[string]tokenSetter{
	"M":    setMonthNumber,
	"MM":   setMonthNumber,
	"MMM":  setMonthName,
	"MMMM": setMonthName,
	"Q": func(s *parseState, input, _ string) {
		s.parts.put(partMonth, (toInt(input)-1)*3)
	},

	"Y": func(s *parseState, input, _ string) {
		if len(input) == 2 {
			s.parts.put(partYear, s.cfg.twoDigitYear(input))
			return
		}
		s.parts.put(partYear, toInt(input))
	},
	"YY": func(s *parseState, input, _ string) {
		s.parts.put(partYear, s.cfg.twoDigitYear(input))
	},
	"YYYY": func(s *parseState, input, _ string) {
		if len(input) == 2 {
			s.parts.put(partYear, s.cfg.twoDigitYear(input))
			return
		}
		s.parts.put(partYear, toInt(input))
	},
	"YYYYY":  setPart(partYear),
	"YYYYYY": setPart(partYear),

	"D":  setPart(partDate),
	"DD": setPart(partDate),
	"Do": func(s *parseState, input, _ string) {
		s.parts.put(partDate, toInt(match1to2.FindString(input)))
	},
	"DDD": func(s *parseState, input, _ string) {
		s.dayOfYear, s.hasDayOfYear = toInt(input), true
	},
	"DDDD": func(s *parseState, input, _ string) {
		s.dayOfYear, s.hasDayOfYear = toInt(input), true
	},

	"d":    setWeekField(firstChar),
	"e":    setWeekField(firstChar),
	"E":    setWeekField(firstChar),
	"dd":   setWeekdayName,
	"ddd":  setWeekdayName,
	"dddd": setWeekdayName,

	"w":  setWeekField(firstChar),
	"ww": setWeekField(firstChar),
	"W":  setWeekField(firstChar),
	"WW": setWeekField(firstChar),

	"gg":    setTwoDigitWeekYear,
	"GG":    setTwoDigitWeekYear,
	"gggg":  setWeekField(firstTwo),
	"ggggg": setWeekField(firstTwo),
	"GGGG":  setWeekField(firstTwo),
	"GGGGG": setWeekField(firstTwo),

	"a": setMeridiem,
	"A": setMeridiem,

	"H":  setPart(partHour),
	"HH": setPart(partHour),
	"h":  setHour12,
	"hh": setHour12,
	"k": func(s *parseState, input, _ string) {
		hour := toInt(input)
		if hour == 24 {
			hour = 0
		}
		s.parts.put(partHour, hour)
	},
	"hmm":   splitClock(true, false),
	"hmmss": splitClock(true, true),
	"Hmm":   splitClock(false, false),
	"Hmmss": splitClock(false, true),

	"m":  setPart(partMinute),
	"mm": setPart(partMinute),
	"s":  setPart(partSecond),
	"ss": setPart(partSecond),

	"Z":  setOffset,
	"ZZ": setOffset,

	"X": func(s *parseState, input, _ string) {
		seconds, _ := strconv.ParseFloat(input, 64)
		s.setInstant(int64(seconds * 1000))
	},
	"x": func(s *parseState, input, _ string) {
		ms, _ := strconv.ParseInt(input, 10, 64)
		s.setInstant(ms)
	},
}

func init() {
	parseTokenSetters["kk"] = parseTokenSetters["k"]
	for width := 1; width <= 9; width++ {
		parseTokenSetters[strings.Repeat("S", width)] = setFraction
	}
}

func setMonthNumber(s *parseState, input, _ string) {
	s.parts.put(partMonth, toInt(input)-1)
}

func setMeridiem(s *parseState, input, _ string) {
	s.meridiem = input
}

func setOffset(s *parseState, input, _ string) {
	s.useUTC = true
	if minutes, ok := offsetFromString(input); ok {
		s.tzm, s.hasTZM = minutes, true
	}
}

// setFraction reads a fractional second: the first three digits are the
// milliseconds, the rest is dropped.
func setFraction(s *parseState, input, _ string) {
	frac := input
	if len(frac) > 3 {
		frac = frac[:3]
	}
	for len(frac) < 3 {
		frac += "0"
	}
	s.parts.put(partMillisecond, toInt(frac))
}

// toInt converts captured digits; malformed input counts as zero.
func toInt(input string) int {
	input = strings.TrimPrefix(input, "+")
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0
	}
	return n
}

// offsetFromString reads the last "+05:30", "-0800", "+05" or "Z" in s as
// minutes east of UTC.
func offsetFromString(s string) (int, bool) {
	return offsetFrom(matchShortOffset, s)
}

func offsetFrom(re *regexp.Regexp, s string) (int, bool) {
	matches := re.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, false
	}
	parts := offsetChunker.FindAllString(matches[len(matches)-1], -1)
	if len(parts) < 2 {
		return 0, true
	}
	minutes := toInt(parts[1]) * 60
	if len(parts) > 2 {
		minutes += toInt(parts[2])
	}
	if parts[0] == "-" {
		return -minutes, true
	}
	return minutes, true
}
