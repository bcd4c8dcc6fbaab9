package chrono

import (
	"fmt"
	"maps"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
)

// Calendar phrase keys.
const (
	CalendarSameDay  = "sameDay"
	CalendarNextDay  = "nextDay"
	CalendarLastDay  = "lastDay"
	CalendarNextWeek = "nextWeek"
	CalendarLastWeek = "lastWeek"
	CalendarSameElse = "sameElse"
)

var calendarKeys = []string{
	CalendarSameDay, CalendarNextDay, CalendarLastDay,
	CalendarNextWeek, CalendarLastWeek, CalendarSameElse,
}

var relativeKeys = []string{"s", "ss", "m", "mm", "h", "hh", "d", "dd", "w", "ww", "M", "MM", "y", "yy"}

var longDateKeys = []string{"LTS", "LT", "L", "LL", "LLL", "LLLL"}

// Names holds month or weekday names. Locales that inflect names keep the
// form used inside a date phrase in Format and the nominative form in
// Standalone.
type Names struct {
	Format     []string
	Standalone []string
	// IsFormat is an ECMAScript pattern tested against the whole layout; a
	// match selects Format over Standalone.
	IsFormat string
}

func (n *Names) clone() *Names {
	if n == nil {
		return nil
	}
	return &Names{
		Format:     append([]string(nil), n.Format...),
		Standalone: append([]string(nil), n.Standalone...),
		IsFormat:   n.IsFormat,
	}
}

func (n *Names) all() []string {
	if n == nil {
		return nil
	}
	out := append([]string(nil), n.Format...)
	return append(out, n.Standalone...)
}

// PlainNames builds Names without grammatical case variants.
func PlainNames(names ...string) *Names {
	return &Names{Format: names}
}

// RelativePhrase renders a relative time unit ("5 minutes").
type RelativePhrase interface {
	RelativeTime(n int, withoutSuffix bool, key string, isFuture bool) string
}

// RelativeText is a literal relative phrase; %d is replaced with the count.
type RelativeText string

func (t RelativeText) RelativeTime(n int, _ bool, _ string, _ bool) string {
	return replacePlaceholder(string(t), 'd', strconv.Itoa(n))
}

// RelativeFunc computes a relative phrase, typically to apply plural rules.
type RelativeFunc func(n int, withoutSuffix bool, key string, isFuture bool) string

func (f RelativeFunc) RelativeTime(n int, withoutSuffix bool, key string, isFuture bool) string {
	return f(n, withoutSuffix, key, isFuture)
}

// SuffixPhrase wraps a relative phrase into its future or past form.
type SuffixPhrase interface {
	Wrap(output string) string
}

// SuffixText is a literal wrapper; %s is replaced with the relative phrase.
type SuffixText string

func (t SuffixText) Wrap(output string) string {
	return replacePlaceholder(string(t), 's', output)
}

// SuffixFunc computes the wrapped phrase.
type SuffixFunc func(output string) string

func (f SuffixFunc) Wrap(output string) string {
	return f(output)
}

// CalendarPhrase yields the layout used by DateTime.Calendar for one of the
// calendar keys.
type CalendarPhrase interface {
	CalendarLayout(d, now DateTime) string
}

// CalendarText is a literal calendar layout.
type CalendarText string

func (t CalendarText) CalendarLayout(_, _ DateTime) string {
	return string(t)
}

// CalendarFunc computes the layout from the rendered value and the reference time.
type CalendarFunc func(d, now DateTime) string

func (f CalendarFunc) CalendarLayout(d, now DateTime) string {
	return f(d, now)
}

// Ordinal renders ordinal numbers; token is the format token being rendered
// ("D", "M", "w", ...).
type Ordinal interface {
	Ordinal(n int, token string) string
}

// OrdinalText is a literal ordinal; %d is replaced with the number.
type OrdinalText string

func (t OrdinalText) Ordinal(n int, _ string) string {
	return replacePlaceholder(string(t), 'd', strconv.Itoa(n))
}

// OrdinalFunc computes an ordinal.
type OrdinalFunc func(n int, token string) string

func (f OrdinalFunc) Ordinal(n int, token string) string {
	return f(n, token)
}

// MeridiemFunc renders the AM/PM marker.
type MeridiemFunc func(hour, minute int, lower bool) string

// LocaleSpec is the mergeable definition of a locale. Zero fields inherit
// from the parent locale when the LocaleSpec is registered.
type LocaleSpec struct {
	Parent string

	Months        *Names
	MonthsShort   *Names
	Weekdays      *Names
	WeekdaysShort *Names
	WeekdaysMin   *Names

	// MonthsParse and WeekdaysParse are optional ECMAScript patterns, one
	// per index, used for lenient name parsing.
	MonthsParse   []string
	WeekdaysParse []string

	LongDateFormat map[string]string
	Calendar       map[string]CalendarPhrase
	RelativeTime   map[string]RelativePhrase
	Future         SuffixPhrase
	Past           SuffixPhrase

	Ordinal                Ordinal
	DayOfMonthOrdinalParse string

	MeridiemParse string
	Meridiem      MeridiemFunc
	IsPM          func(input string) bool

	Week        *WeekRule
	InvalidDate string

	Preparse   func(string) string
	Postformat func(string) string
}

// Clone returns a deep copy of s. Function values are shared.
func (s LocaleSpec) Clone() LocaleSpec {
	out := s
	out.Months = s.Months.clone()
	out.MonthsShort = s.MonthsShort.clone()
	out.Weekdays = s.Weekdays.clone()
	out.WeekdaysShort = s.WeekdaysShort.clone()
	out.WeekdaysMin = s.WeekdaysMin.clone()
	out.MonthsParse = append([]string(nil), s.MonthsParse...)
	out.WeekdaysParse = append([]string(nil), s.WeekdaysParse...)
	out.LongDateFormat = maps.Clone(s.LongDateFormat)
	out.Calendar = maps.Clone(s.Calendar)
	out.RelativeTime = maps.Clone(s.RelativeTime)
	if s.Week != nil {
		week := *s.Week
		out.Week = &week
	}
	return out
}

// mergeSpecs lays child over parent: set scalar fields replace, maps merge
// key by key, name lists replace wholesale.
func mergeSpecs(parent, child LocaleSpec) LocaleSpec {
	out := parent.Clone()

	if child.Parent != "" {
		out.Parent = child.Parent
	}
	if child.Months != nil {
		out.Months = child.Months.clone()
	}
	if child.MonthsShort != nil {
		out.MonthsShort = child.MonthsShort.clone()
	}
	if child.Weekdays != nil {
		out.Weekdays = child.Weekdays.clone()
	}
	if child.WeekdaysShort != nil {
		out.WeekdaysShort = child.WeekdaysShort.clone()
	}
	if child.WeekdaysMin != nil {
		out.WeekdaysMin = child.WeekdaysMin.clone()
	}
	if child.MonthsParse != nil {
		out.MonthsParse = append([]string(nil), child.MonthsParse...)
	}
	if child.WeekdaysParse != nil {
		out.WeekdaysParse = append([]string(nil), child.WeekdaysParse...)
	}

	out.LongDateFormat = mergeMap(out.LongDateFormat, child.LongDateFormat)
	out.Calendar = mergeMap(out.Calendar, child.Calendar)
	out.RelativeTime = mergeMap(out.RelativeTime, child.RelativeTime)

	if child.Future != nil {
		out.Future = child.Future
	}
	if child.Past != nil {
		out.Past = child.Past
	}
	if child.Ordinal != nil {
		out.Ordinal = child.Ordinal
	}
	if child.DayOfMonthOrdinalParse != "" {
		out.DayOfMonthOrdinalParse = child.DayOfMonthOrdinalParse
	}
	if child.MeridiemParse != "" {
		out.MeridiemParse = child.MeridiemParse
	}
	if child.Meridiem != nil {
		out.Meridiem = child.Meridiem
	}
	if child.IsPM != nil {
		out.IsPM = child.IsPM
	}
	if child.Week != nil {
		week := *child.Week
		out.Week = &week
	}
	if child.InvalidDate != "" {
		out.InvalidDate = child.InvalidDate
	}
	if child.Preparse != nil {
		out.Preparse = child.Preparse
	}
	if child.Postformat != nil {
		out.Postformat = child.Postformat
	}
	return out
}

func mergeMap[V any](base, override map[string]V) map[string]V {
	if len(override) == 0 {
		return base
	}
	out := make(map[string]V, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// Locale is a compiled, immutable locale table. Locales are owned by a
// LocaleCatalog and shared by every value that references them.
type Locale struct {
	name string
	spec LocaleSpec

	isFormat      [5]*regexp2.Regexp
	monthsParse   []*regexp2.Regexp
	weekdaysParse []*regexp2.Regexp

	monthsStrict        matcher
	monthsShortStrict   matcher
	weekdaysStrict      matcher
	weekdaysShortStrict matcher
	weekdaysMinStrict   matcher

	ordinalParse        matcher
	ordinalParseLenient matcher
	meridiemParse       matcher

	longDate map[string]string
}

const defaultMonthsIsFormat = `D[oD]?(\[[^\[\]]*\]|\s)+MMMM?`

func newLocale(name string, spec LocaleSpec) (*Locale, error) {
	if err := validateSpec(spec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLocale, name, err)
	}

	l := &Locale{name: name, spec: spec.Clone()}

	var err error
	for kind, names := range l.nameTables() {
		pattern := names.IsFormat
		if pattern == "" && nameKind(kind) <= monthsShortNames {
			pattern = defaultMonthsIsFormat
		}
		if pattern == "" {
			continue
		}
		if l.isFormat[kind], err = regexp2.Compile(pattern, regexp2.ECMAScript); err != nil {
			return nil, fmt.Errorf("%w: %s: isFormat: %v", ErrInvalidLocale, name, err)
		}
	}
	if l.monthsParse, err = compileECMAList(spec.MonthsParse); err != nil {
		return nil, fmt.Errorf("%w: %s: monthsParse: %v", ErrInvalidLocale, name, err)
	}
	if l.weekdaysParse, err = compileECMAList(spec.WeekdaysParse); err != nil {
		return nil, fmt.Errorf("%w: %s: weekdaysParse: %v", ErrInvalidLocale, name, err)
	}

	l.monthsStrict = namesMatcher(spec.Months.all())
	l.monthsShortStrict = namesMatcher(spec.MonthsShort.all())
	l.weekdaysStrict = namesMatcher(spec.Weekdays.all())
	l.weekdaysShortStrict = namesMatcher(spec.WeekdaysShort.all())
	l.weekdaysMinStrict = namesMatcher(spec.WeekdaysMin.all())

	ordinal := spec.DayOfMonthOrdinalParse
	if ordinal == "" {
		ordinal = `\d{1,2}`
	}
	strict, err := compileECMA(ordinal)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: ordinal parse: %v", ErrInvalidLocale, name, err)
	}
	lenient, err := compileECMA(ordinal + `|\d{1,2}`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: ordinal parse: %v", ErrInvalidLocale, name, err)
	}
	l.ordinalParse = ecmaMatcher{re: strict}
	l.ordinalParseLenient = ecmaMatcher{re: lenient}

	meridiem := spec.MeridiemParse
	if meridiem == "" {
		meridiem = `[ap]\.?m?\.?`
	}
	meridiemRe, err := compileECMA(meridiem)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: meridiem parse: %v", ErrInvalidLocale, name, err)
	}
	l.meridiemParse = ecmaMatcher{re: meridiemRe}

	l.longDate = make(map[string]string, len(spec.LongDateFormat)+4)
	maps.Copy(l.longDate, spec.LongDateFormat)
	for _, key := range []string{"l", "ll", "lll", "llll"} {
		if _, ok := l.longDate[key]; ok {
			continue
		}
		if upper, ok := l.longDate[strings.ToUpper(key)]; ok {
			l.longDate[key] = shortenLongDateFormat(upper)
		}
	}

	return l, nil
}

func validateSpec(spec LocaleSpec) error {
	checks := []struct {
		name  string
		names *Names
		size  int
	}{
		{"months", spec.Months, 12},
		{"monthsShort", spec.MonthsShort, 12},
		{"weekdays", spec.Weekdays, 7},
		{"weekdaysShort", spec.WeekdaysShort, 7},
		{"weekdaysMin", spec.WeekdaysMin, 7},
	}
	for _, check := range checks {
		if check.names == nil || len(check.names.Format) != check.size {
			return fmt.Errorf("%s must list %d names", check.name, check.size)
		}
		if len(check.names.Standalone) != 0 && len(check.names.Standalone) != check.size {
			return fmt.Errorf("%s standalone must list %d names", check.name, check.size)
		}
	}
	for _, key := range longDateKeys {
		if spec.LongDateFormat[key] == "" {
			return fmt.Errorf("missing long date format %s", key)
		}
	}
	for _, key := range calendarKeys {
		if spec.Calendar[key] == nil {
			return fmt.Errorf("missing calendar phrase %s", key)
		}
	}
	for _, key := range relativeKeys {
		if spec.RelativeTime[key] == nil {
			return fmt.Errorf("missing relative time phrase %s", key)
		}
	}
	if spec.Future == nil || spec.Past == nil {
		return fmt.Errorf("missing future/past phrase")
	}
	if spec.Ordinal == nil {
		return fmt.Errorf("missing ordinal")
	}
	if spec.Week == nil {
		return fmt.Errorf("missing week rule")
	}
	return nil
}

type nameKind int

const (
	monthNames nameKind = iota
	monthsShortNames
	weekdayNames
	weekdaysShortNames
	weekdaysMinNames
)

func (l *Locale) nameTables() [5]*Names {
	return [5]*Names{
		l.spec.Months, l.spec.MonthsShort,
		l.spec.Weekdays, l.spec.WeekdaysShort, l.spec.WeekdaysMin,
	}
}

func (l *Locale) pick(kind nameKind, layout string) []string {
	return pickNames(l.nameTables()[kind], l.isFormat[kind], layout)
}

// Name returns the registered name of the locale.
func (l *Locale) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// Spec returns a copy of the merged definition of the locale.
func (l *Locale) Spec() LocaleSpec {
	return l.spec.Clone()
}

// Parent returns the name of the locale this one was derived from.
func (l *Locale) Parent() string {
	return l.spec.Parent
}

// Week returns the week numbering convention.
func (l *Locale) Week() WeekRule {
	return *l.spec.Week
}

// InvalidDate returns the text rendered for invalid values.
func (l *Locale) InvalidDate() string {
	if l.spec.InvalidDate == "" {
		return "Invalid date"
	}
	return l.spec.InvalidDate
}

func pickNames(names *Names, isFormat *regexp2.Regexp, layout string) []string {
	if len(names.Standalone) == 0 {
		return names.Format
	}
	if isFormat != nil && layout != "" {
		if ok, _ := isFormat.MatchString(layout); ok {
			return names.Format
		}
	}
	return names.Standalone
}

// MonthName returns the long name of a zero based month as it should appear
// inside layout.
func (l *Locale) MonthName(month int, layout string) string {
	return l.pick(monthNames, layout)[mod(month, 12)]
}

// MonthShortName returns the abbreviated month name.
func (l *Locale) MonthShortName(month int, layout string) string {
	return l.pick(monthsShortNames, layout)[mod(month, 12)]
}

// WeekdayName returns the long name of a weekday (0 = Sunday).
func (l *Locale) WeekdayName(day int, layout string) string {
	return l.pick(weekdayNames, layout)[mod(day, 7)]
}

// WeekdayShortName returns the abbreviated weekday name.
func (l *Locale) WeekdayShortName(day int, layout string) string {
	return l.pick(weekdaysShortNames, layout)[mod(day, 7)]
}

// WeekdayMinName returns the two letter weekday name.
func (l *Locale) WeekdayMinName(day int, layout string) string {
	return l.pick(weekdaysMinNames, layout)[mod(day, 7)]
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// MonthIndex resolves a month name to its zero based index. Strict parsing
// requires an exact (case-insensitive) name for the token width; lenient
// parsing accepts any input starting with a long or short name.
func (l *Locale) MonthIndex(input, token string, strict bool) (int, bool) {
	folded := fold(input)
	if strict {
		names := l.spec.Months
		if token == "MMM" {
			names = l.spec.MonthsShort
		}
		return exactIndex(folded, names, 12)
	}
	if idx, ok := regexIndex(input, l.monthsParse); ok {
		return idx, true
	}
	return prefixIndex(folded, 12, l.spec.Months, l.spec.MonthsShort)
}

// WeekdayIndex resolves a weekday name to 0 (Sunday) through 6.
func (l *Locale) WeekdayIndex(input, token string, strict bool) (int, bool) {
	folded := fold(input)
	if strict {
		names := l.spec.Weekdays
		switch token {
		case "ddd":
			names = l.spec.WeekdaysShort
		case "dd":
			names = l.spec.WeekdaysMin
		}
		return exactIndex(folded, names, 7)
	}
	if idx, ok := regexIndex(input, l.weekdaysParse); ok {
		return idx, true
	}
	return prefixIndex(folded, 7, l.spec.Weekdays, l.spec.WeekdaysShort, l.spec.WeekdaysMin)
}

func exactIndex(folded string, names *Names, size int) (int, bool) {
	for _, list := range [][]string{names.Format, names.Standalone} {
		for i := 0; i < len(list) && i < size; i++ {
			if fold(list[i]) == folded {
				return i, true
			}
		}
	}
	return -1, false
}

func regexIndex(input string, patterns []*regexp2.Regexp) (int, bool) {
	for i, re := range patterns {
		if re == nil {
			continue
		}
		if ok, _ := re.MatchString(input); ok {
			return i, true
		}
	}
	return -1, false
}

func prefixIndex(folded string, size int, sets ...*Names) (int, bool) {
	for i := 0; i < size; i++ {
		for _, set := range sets {
			for _, list := range [][]string{set.Format, set.Standalone} {
				if i >= len(list) {
					continue
				}
				name := strings.TrimSuffix(fold(list[i]), ".")
				if name != "" && strings.HasPrefix(folded, name) {
					return i, true
				}
			}
		}
	}
	return -1, false
}

// LongDateFormat returns the layout behind a localized shorthand token
// (LT, LTS, L, LL, LLL, LLLL and the lower case short forms).
func (l *Locale) LongDateFormat(key string) (string, bool) {
	layout, ok := l.longDate[key]
	return layout, ok
}

// shortenLongDateFormat derives the "l" family from the "L" family by
// abbreviating month and weekday names and unpadding the day.
func shortenLongDateFormat(layout string) string {
	var b strings.Builder
	for _, token := range formattingTokens.FindAllString(layout, -1) {
		switch token {
		case "MMMM", "MM", "DD", "dddd":
			b.WriteString(token[1:])
		default:
			b.WriteString(token)
		}
	}
	return b.String()
}

// Ordinal renders n as an ordinal for the given token.
func (l *Locale) Ordinal(n int, token string) string {
	return l.spec.Ordinal.Ordinal(n, token)
}

// Meridiem renders the AM/PM marker for a time of day.
func (l *Locale) Meridiem(hour, minute int, lower bool) string {
	if l.spec.Meridiem != nil {
		return l.spec.Meridiem(hour, minute, lower)
	}
	switch {
	case hour > 11 && lower:
		return "pm"
	case hour > 11:
		return "PM"
	case lower:
		return "am"
	default:
		return "AM"
	}
}

// IsPM reports whether a parsed meridiem marker denotes the afternoon.
func (l *Locale) IsPM(input string) bool {
	if l.spec.IsPM != nil {
		return l.spec.IsPM(input)
	}
	return strings.HasPrefix(strings.ToLower(input), "p")
}

// RelativeTime renders the phrase for a humanize key ("mm", "d", ...).
func (l *Locale) RelativeTime(n int, withoutSuffix bool, key string, isFuture bool) string {
	phrase, ok := l.spec.RelativeTime[key]
	if !ok || phrase == nil {
		return strconv.Itoa(n)
	}
	return phrase.RelativeTime(n, withoutSuffix, key, isFuture)
}

// PastFuture wraps output into the future phrase when diff is positive and
// into the past phrase otherwise.
func (l *Locale) PastFuture(diff float64, output string) string {
	if diff > 0 {
		return l.spec.Future.Wrap(output)
	}
	return l.spec.Past.Wrap(output)
}

// Calendar returns the layout registered for a calendar key.
func (l *Locale) Calendar(key string, d, now DateTime) string {
	phrase, ok := l.spec.Calendar[key]
	if !ok || phrase == nil {
		phrase = l.spec.Calendar[CalendarSameElse]
	}
	return phrase.CalendarLayout(d, now)
}

// Preparse is applied to string input before parsing.
func (l *Locale) Preparse(input string) string {
	if l.spec.Preparse == nil {
		return input
	}
	return l.spec.Preparse(input)
}

// Postformat is applied to formatted output.
func (l *Locale) Postformat(output string) string {
	if l.spec.Postformat == nil {
		return output
	}
	return l.spec.Postformat(output)
}

func replacePlaceholder(text string, verb byte, value string) string {
	for i := 0; i+1 < len(text); i++ {
		if text[i] == '%' && (text[i+1] == verb || text[i+1] == verb-'a'+'A') {
			return text[:i] + value + text[i+2:]
		}
	}
	return text
}

// matcher finds the first occurrence of a token pattern in the remaining input.
type matcher interface {
	find(s string) (match string, start int, ok bool)
}

type stdMatcher struct {
	re *regexp.Regexp
}

func (m stdMatcher) find(s string) (string, int, bool) {
	loc := m.re.FindStringIndex(s)
	if loc == nil {
		return "", 0, false
	}
	return s[loc[0]:loc[1]], loc[0], true
}

type ecmaMatcher struct {
	re *regexp2.Regexp
}

func (m ecmaMatcher) find(s string) (string, int, bool) {
	match, err := m.re.FindStringMatch(s)
	if err != nil || match == nil {
		return "", 0, false
	}
	// regexp2 reports rune offsets
	start := len(string([]rune(s)[:match.Index]))
	return match.String(), start, true
}

func compileECMA(pattern string) (*regexp2.Regexp, error) {
	return regexp2.Compile(pattern, regexp2.ECMAScript|regexp2.IgnoreCase)
}

func compileECMAList(patterns []string) ([]*regexp2.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]*regexp2.Regexp, len(patterns))
	for i, pattern := range patterns {
		if pattern == "" {
			continue
		}
		re, err := compileECMA(pattern)
		if err != nil {
			return nil, err
		}
		out[i] = re
	}
	return out, nil
}

// namesMatcher matches any of the given names, longest first, ignoring case.
func namesMatcher(names []string) matcher {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return len([]rune(unique[i])) > len([]rune(unique[j]))
	})
	quoted := make([]string, len(unique))
	for i, name := range unique {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return stdMatcher{re: regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)}
}
