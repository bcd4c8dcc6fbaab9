package chrono

import (
	"regexp"
	"strings"
	"sync"
)

var (
	formattingTokens = regexp.MustCompile(`(?s)(\[[^\[]*\])|(\\)?([Hh]mm(ss)?|Mo|MM?M?M?|Do|DDDo|DD?D?D?|ddd?d?|do?|w[o|w]?|W[o|W]?|Qo?|YYYYYY|YYYYY|YYYY|YY|gg(ggg?)?|GG(GGG?)?|e|E|a|A|hh?|HH?|kk?|mm?|ss?|S{1,9}|x|X|zz?|ZZ?|.)`)
	localFormattingTokens = regexp.MustCompile(`(\[[^\[]*\])|(\\)?(LTS|LT|LL?L?L?|l{1,4})`)
)

// maxLayoutExpansions bounds the substitution of long date tokens that
// expand into further long date tokens.
const maxLayoutExpansions = 6

// tokenRenderer renders one token of a compiled layout.
type tokenRenderer func(d DateTime, loc *Locale, layout string) string

// compiledLayout is the token stream of a layout after long date expansion.
type compiledLayout []tokenRenderer

var layoutCache sync.Map // map[string]compiledLayout

// ExpandLayout substitutes the locale's long date tokens (LT, LTS, L, LL,
// LLL, LLLL and the lower case forms) into layout.
func ExpandLayout(layout string, loc *Locale) string {
	for i := 0; i < maxLayoutExpansions; i++ {
		expanded := localFormattingTokens.ReplaceAllStringFunc(layout, func(token string) string {
			if v, ok := loc.LongDateFormat(token); ok {
				return v
			}
			return token
		})
		if expanded == layout {
			break
		}
		layout = expanded
	}
	return layout
}

func compileLayout(layout string) compiledLayout {
	if cached, ok := layoutCache.Load(layout); ok {
		return cached.(compiledLayout)
	}

	tokens := formattingTokens.FindAllString(layout, -1)
	compiled := make(compiledLayout, len(tokens))
	for i, token := range tokens {
		if render, ok := formatTokenFuncs[token]; ok {
			compiled[i] = render
			continue
		}
		literal := removeFormattingTokens(token)
		compiled[i] = func(DateTime, *Locale, string) string { return literal }
	}
	layoutCache.Store(layout, compiled)
	return compiled
}

func removeFormattingTokens(token string) string {
	if len(token) >= 2 && token[0] == '[' && token[len(token)-1] == ']' {
		return token[1 : len(token)-1]
	}
	return strings.ReplaceAll(token, `\`, "")
}

// Format renders the value with layout, or with the configured default
// layout when none is given. Invalid values render the locale's invalid
// date text.
func (d DateTime) Format(layout ...string) string {
	loc := d.Locale()
	if !d.valid {
		return loc.InvalidDate()
	}

	pattern := ""
	if len(layout) > 0 {
		pattern = layout[0]
	}
	if pattern == "" {
		cfg := d.config()
		pattern = cfg.defaultFormat
		if d.IsUTC() {
			pattern = cfg.defaultFormatUTC
		}
	}

	return loc.Postformat(d.render(ExpandLayout(pattern, loc), loc))
}

func (d DateTime) render(layout string, loc *Locale) string {
	var b strings.Builder
	for _, token := range compileLayout(layout) {
		b.WriteString(token(d, loc, layout))
	}
	return b.String()
}
