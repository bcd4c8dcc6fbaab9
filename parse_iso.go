package chrono

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layout sentinels accepted wherever a layout is: they select the ISO 8601
// and RFC 2822 grammars instead of a token layout.
const (
	ISO8601 = "\x00ISO8601"
	RFC2822 = "\x00RFC2822"
)

var (
	extendedISO = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})-(?:\d\d-\d\d|W\d\d-\d|W\d\d|\d\d\d|\d\d))(?:(T| )(\d\d(?::\d\d(?::\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	basicISO    = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})(?:\d\d\d\d|W\d\d\d|W\d\d|\d\d\d|\d\d|))(?:(T| )(\d\d(?:\d\d(?:\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	isoZone     = regexp.MustCompile(`Z|[+-]\d\d(?::?\d\d)?`)

	// an ISO date followed by a time separator
	isoDateWithTime = regexp.MustCompile(`^\s*(?:[+-]\d{6}|\d{4})-(?:\d\d-\d\d|W\d\d(?:-\d)?|\d\d\d)T`)

	aspNetDate = regexp.MustCompile(`(?i)^/?Date\((-?\d+)`)

	rfc2822Pattern = regexp.MustCompile(`^(?:(Mon|Tue|Wed|Thu|Fri|Sat|Sun),?\s)?(\d{1,2})\s(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s(\d{2,4})\s(\d\d):(\d\d)(?::(\d\d))?\s(?:(UT|GMT|[ECMP][SD]T)|([Zz])|([+-]\d{4}))$`)
	rfc2822Comments = regexp.MustCompile(`\([^()]*\)|[\n\t]`)
	rfc2822Spaces   = regexp.MustCompile(`\s\s+`)
)

type isoLayout struct {
	layout    string
	pattern   *regexp.Regexp
	allowTime bool
}

// most specific first
var isoDates = []isoLayout{
	{"YYYYYY-MM-DD", regexp.MustCompile(`[+-]\d{6}-\d\d-\d\d`), true},
	{"YYYY-MM-DD", regexp.MustCompile(`\d{4}-\d\d-\d\d`), true},
	{"GGGG-[W]WW-E", regexp.MustCompile(`\d{4}-W\d\d-\d`), true},
	{"GGGG-[W]WW", regexp.MustCompile(`\d{4}-W\d\d`), false},
	{"YYYY-DDD", regexp.MustCompile(`\d{4}-\d{3}`), true},
	{"YYYY-MM", regexp.MustCompile(`\d{4}-\d\d`), false},
	{"YYYYYYMMDD", regexp.MustCompile(`[+-]\d{10}`), true},
	{"YYYYMMDD", regexp.MustCompile(`\d{8}`), true},
	{"GGGG[W]WWE", regexp.MustCompile(`\d{4}W\d{3}`), true},
	{"GGGG[W]WW", regexp.MustCompile(`\d{4}W\d{2}`), false},
	{"YYYYDDD", regexp.MustCompile(`\d{7}`), true},
	{"YYYYMM", regexp.MustCompile(`\d{6}`), false},
	{"YYYY", regexp.MustCompile(`\d{4}`), false},
}

var isoTimes = []isoLayout{
	{"HH:mm:ss.SSSS", regexp.MustCompile(`\d\d:\d\d:\d\d\.\d+`), true},
	{"HH:mm:ss,SSSS", regexp.MustCompile(`\d\d:\d\d:\d\d,\d+`), true},
	{"HH:mm:ss", regexp.MustCompile(`\d\d:\d\d:\d\d`), true},
	{"HH:mm", regexp.MustCompile(`\d\d:\d\d`), true},
	{"HHmmss.SSSS", regexp.MustCompile(`\d\d\d\d\d\d\.\d+`), true},
	{"HHmmss,SSSS", regexp.MustCompile(`\d\d\d\d\d\d,\d+`), true},
	{"HHmmss", regexp.MustCompile(`\d\d\d\d\d\d`), true},
	{"HHmm", regexp.MustCompile(`\d\d\d\d`), true},
	{"HH", regexp.MustCompile(`\d\d`), true},
}

// rfc2822Offsets maps the obsolete zone names to minutes east of UTC.
var rfc2822Offsets = map[string]int{
	"UT":  0,
	"GMT": 0,
	"EDT": -4 * 60,
	"EST": -5 * 60,
	"CDT": -5 * 60,
	"CST": -6 * 60,
	"MDT": -6 * 60,
	"MST": -7 * 60,
	"PDT": -7 * 60,
	"PST": -8 * 60,
}

var (
	rfc2822Months   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	rfc2822Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// parseString handles string input without a layout: the ASP.NET JSON
// form, ISO 8601, RFC 2822 and finally the lenient fallback.
func (s *parseState) parseString() {
	if m := aspNetDate.FindStringSubmatch(s.input); m != nil {
		ms, _ := strconv.ParseInt(m[1], 10, 64)
		s.setInstant(ms)
		return
	}

	iso := s.fork()
	if iso.parseISO() {
		*s = *iso
		return
	}
	if isoDateWithTime.MatchString(s.input) {
		// a calendar date with an unreadable time is not handed to the
		// lenient grammars
		*s = *iso
		s.invalid = true
		return
	}

	rfc := s.fork()
	if rfc.parseRFC2822() {
		*s = *rfc
		return
	}

	if s.strict || !s.cfg.inputFallback {
		s.invalid = true
		return
	}
	s.parseFallback()
}

// parseISO applies the ISO 8601 grammar. It reports false when the input
// is not ISO 8601.
func (s *parseState) parseISO() bool {
	m := extendedISO.FindStringSubmatch(s.input)
	if m == nil {
		m = basicISO.FindStringSubmatch(s.input)
	}
	if m == nil {
		s.invalid = true
		return false
	}
	s.flags.ISO = true

	var date *isoLayout
	for i := range isoDates {
		if isoDates[i].pattern.MatchString(m[1]) {
			date = &isoDates[i]
			break
		}
	}
	if date == nil {
		s.invalid = true
		return false
	}

	timeLayout := ""
	if m[3] != "" {
		for _, candidate := range isoTimes {
			if candidate.pattern.MatchString(m[3]) {
				sep := m[2]
				if sep == "" {
					sep = " "
				}
				timeLayout = sep + candidate.layout
				break
			}
		}
		if timeLayout == "" {
			s.invalid = true
			return false
		}
	}
	if !date.allowTime && timeLayout != "" {
		s.invalid = true
		return false
	}

	zoneLayout := ""
	if m[4] != "" {
		if !isoZone.MatchString(m[4]) {
			s.invalid = true
			return false
		}
		zoneLayout = "Z"
	}

	layout := date.layout + timeLayout + zoneLayout
	s.parseLayout(layout)
	s.flags.ISO = true
	s.layout = ISO8601
	return true
}

func preprocessRFC2822(input string) string {
	out := rfc2822Comments.ReplaceAllString(input, " ")
	out = rfc2822Spaces.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// parseRFC2822 applies the RFC 2822 grammar. It reports false when the
// input does not match it.
func (s *parseState) parseRFC2822() bool {
	s.layout = RFC2822
	m := rfc2822Pattern.FindStringSubmatch(preprocessRFC2822(s.input))
	if m == nil {
		s.invalid = true
		return false
	}

	year := untruncateYear(m[4])
	month := indexOf(rfc2822Months, m[3])
	day := toInt(m[2])
	s.parts.put(partYear, year)
	s.parts.put(partMonth, month)
	s.parts.put(partDate, day)
	s.parts.put(partHour, toInt(m[5]))
	s.parts.put(partMinute, toInt(m[6]))
	s.parts.put(partSecond, toInt(m[7]))
	s.parts.put(partMillisecond, 0)
	s.hasParts = true

	if m[1] != "" {
		actual := int(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC).Weekday())
		if indexOf(rfc2822Weekdays, m[1]) != actual {
			s.flags.WeekdayMismatch = true
			s.invalid = true
			return true
		}
	}

	switch {
	case m[8] != "":
		s.tzm = rfc2822Offsets[m[8]]
	case m[9] != "":
		s.tzm = 0
	default:
		hm := toInt(strings.TrimPrefix(m[10], "+"))
		s.tzm = (hm/100)*60 + hm%100
	}
	s.hasTZM = true

	p := s.parts.values
	t := time.Date(p[partYear], time.Month(p[partMonth]+1), p[partDate], p[partHour], p[partMinute], p[partSecond], 0, time.UTC)
	s.ms = t.UnixMilli() - int64(s.tzm)*msPerMinute
	s.flags.RFC2822 = true
	s.checkOverflow()
	return true
}

// untruncateYear expands two and three digit years: 00-49 are 2000-2049,
// 50-999 are 1950-2899.
func untruncateYear(input string) int {
	year := toInt(input)
	switch {
	case year <= 49:
		return 2000 + year
	case year <= 999:
		return 1900 + year
	default:
		return year
	}
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}

// parseFallback hands input no grammar recognized to dateparse. The
// result depends on heuristics, so every use is reported through the
// deprecation sink.
func (s *parseState) parseFallback() {
	s.cfg.warn("createFromInputFallback",
		"value provided is not in a recognized RFC2822 or ISO format; falling back to heuristic parsing, which is not reliable across inputs")

	t, err := dateparse.ParseIn(s.input, s.zone())
	if err != nil {
		s.invalid = true
		return
	}
	s.flags = newParsingFlags()
	s.setInstant(t.UnixMilli())
	if _, offset := t.Zone(); t.Location() != s.zone() {
		s.tzm, s.hasTZM = offset/60, true
	}
}
