package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	chrono "github.com/goliatone/go-chrono"
	"golang.org/x/text/language"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

type localeSpec struct {
	Locale    string
	Territory string
}

type generatorConfig struct {
	out      string
	parent   string
	cldrPath string
	locales  []localeSpec
}

var emptyRegion language.Region

var cldrWeekdays = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

type localeFlag struct {
	items []string
}

func (f *localeFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *localeFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "chrono-locales: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var localeList localeFlag

	flag.StringVar(&cfg.out, "out", "locales", "directory the locale documents are written to")
	flag.StringVar(&cfg.parent, "parent", "", "parent locale recorded in every document")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects subdirectories like main/ and supplemental/)")
	flag.Var(&localeList, "locale", "locale to generate (optionally include territory using locale:REGION). Repeat flag to add more.")

	flag.Parse()

	if len(localeList.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}

	for _, spec := range localeList.items {
		parsed, err := parseLocaleSpec(spec)
		if err != nil {
			return generatorConfig{}, err
		}
		cfg.locales = append(cfg.locales, parsed)
	}

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}
	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	supplemental := data.Supplemental()
	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return err
	}

	for _, spec := range cfg.locales {
		if err := normalizeLocaleSpec(&spec); err != nil {
			return err
		}

		doc, err := buildDocument(data, supplemental, spec)
		if err != nil {
			return fmt.Errorf("build document for %s: %w", spec.Locale, err)
		}
		doc.Parent = cfg.parent

		// round trip through the loader schema so broken tables fail here
		if _, err := chrono.NewLocaleCatalog().Define(doc.Name, doc.Spec()); err != nil {
			return fmt.Errorf("validate %s: %w", doc.Name, err)
		}

		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %s: %w", doc.Name, err)
		}
		path := filepath.Join(cfg.out, doc.Name+".yaml")
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", path)
	}
	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main", "supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func parseLocaleSpec(input string) (localeSpec, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return localeSpec{}, errors.New("empty locale value")
	}

	spec := localeSpec{Locale: input}
	if locale, territory, ok := strings.Cut(input, ":"); ok {
		spec.Locale = strings.TrimSpace(locale)
		spec.Territory = strings.ToUpper(strings.TrimSpace(territory))
	}

	if spec.Locale == "" {
		return localeSpec{}, fmt.Errorf("invalid locale spec %q", input)
	}
	return spec, nil
}

func normalizeLocaleSpec(spec *localeSpec) error {
	if spec == nil {
		return errors.New("nil locale spec")
	}

	spec.Locale = strings.ReplaceAll(strings.TrimSpace(spec.Locale), "_", "-")
	if spec.Locale == "" {
		return errors.New("empty locale identifier")
	}
	if spec.Territory != "" {
		return nil
	}

	// the likely region decides the week rule
	if tag, err := language.Parse(spec.Locale); err == nil {
		if region, _ := tag.Region(); region != emptyRegion {
			spec.Territory = strings.ToUpper(region.String())
		}
	}
	return nil
}

func buildDocument(data *cldr.CLDR, supplemental *cldr.SupplementalData, spec localeSpec) (chrono.LocaleDocument, error) {
	doc := chrono.LocaleDocument{Name: strings.ToLower(spec.Locale)}

	ldml := findLDML(data, spec.Locale)
	if ldml == nil {
		return doc, fmt.Errorf("missing LDML data")
	}
	cal := gregorian(ldml)
	if cal == nil {
		return doc, fmt.Errorf("missing gregorian calendar")
	}

	doc.Months = monthNames(cal, "wide")
	doc.MonthsShort = monthNames(cal, "abbreviated")
	doc.Weekdays = dayNames(cal, "wide")
	doc.WeekdaysShort = dayNames(cal, "abbreviated")
	doc.WeekdaysMin = dayNames(cal, "short")
	doc.Meridiem = meridiem(cal)
	doc.Week = weekRule(supplemental, spec.Territory)

	if doc.Months == nil || doc.Weekdays == nil {
		return doc, fmt.Errorf("incomplete month or weekday names")
	}
	return doc, nil
}

func findLDML(data *cldr.CLDR, locale string) *cldr.LDML {
	if data == nil {
		return nil
	}
	candidate := strings.ReplaceAll(locale, "-", "_")
	for candidate != "" {
		if ldml := data.RawLDML(candidate); ldml != nil {
			return ldml
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return data.RawLDML("root")
}

func gregorian(ldml *cldr.LDML) *cldr.Calendar {
	if ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return nil
	}
	for _, cal := range ldml.Dates.Calendars.Calendar {
		if cal != nil && cal.Type == "gregorian" {
			return cal
		}
	}
	return nil
}

// monthNames reads the format and stand-alone contexts of one width. The
// stand-alone list is kept only when it differs.
func monthNames(cal *cldr.Calendar, width string) *chrono.NamesDocument {
	if cal.Months == nil {
		return nil
	}
	contexts := map[string][]string{}
	for _, ctx := range cal.Months.MonthContext {
		if ctx == nil {
			continue
		}
		for _, w := range ctx.MonthWidth {
			if w == nil || w.Type != width {
				continue
			}
			names := make([]string, 12)
			for _, m := range w.Month {
				if m == nil || m.Alt != "" {
					continue
				}
				if i, err := strconv.Atoi(m.Type); err == nil && i >= 1 && i <= 12 {
					names[i-1] = m.Data()
				}
			}
			contexts[ctx.Type] = names
		}
	}
	return namesDocument(contexts["format"], contexts["stand-alone"])
}

func dayNames(cal *cldr.Calendar, width string) *chrono.NamesDocument {
	if cal.Days == nil {
		return nil
	}
	contexts := map[string][]string{}
	for _, ctx := range cal.Days.DayContext {
		if ctx == nil {
			continue
		}
		for _, w := range ctx.DayWidth {
			if w == nil || w.Type != width {
				continue
			}
			names := make([]string, 7)
			for _, d := range w.Day {
				if d == nil || d.Alt != "" {
					continue
				}
				if i, ok := cldrWeekdays[d.Type]; ok {
					names[i] = d.Data()
				}
			}
			contexts[ctx.Type] = names
		}
	}
	return namesDocument(contexts["format"], contexts["stand-alone"])
}

func namesDocument(format, standalone []string) *chrono.NamesDocument {
	if !complete(format) {
		if !complete(standalone) {
			return nil
		}
		format, standalone = standalone, nil
	}
	doc := &chrono.NamesDocument{Format: format}
	if complete(standalone) && strings.Join(standalone, "\x00") != strings.Join(format, "\x00") {
		doc.Standalone = standalone
	}
	return doc
}

func complete(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, name := range names {
		if name == "" {
			return false
		}
	}
	return true
}

func meridiem(cal *cldr.Calendar) *chrono.MeridiemDocument {
	if cal.DayPeriods == nil {
		return nil
	}
	var doc chrono.MeridiemDocument
	for _, ctx := range cal.DayPeriods.DayPeriodContext {
		if ctx == nil || ctx.Type != "format" {
			continue
		}
		for _, w := range ctx.DayPeriodWidth {
			if w == nil || w.Type != "abbreviated" {
				continue
			}
			for _, p := range w.DayPeriod {
				if p == nil || p.Alt != "" {
					continue
				}
				switch p.Type {
				case "am":
					doc.AM = p.Data()
				case "pm":
					doc.PM = p.Data()
				}
			}
		}
	}
	if doc.AM == "" || doc.PM == "" {
		return nil
	}
	return &doc
}

// weekRule derives dow and doy from the CLDR week data: week 1 is the week
// holding January (minDays), so doy = 7 + dow - minDays.
func weekRule(supplemental *cldr.SupplementalData, territory string) *chrono.WeekRule {
	if supplemental == nil || supplemental.WeekData == nil {
		return nil
	}
	dow, minDays := -1, -1
	world := [2]int{-1, -1}

	for _, entry := range supplemental.WeekData.FirstDay {
		if entry == nil || entry.Alt != "" {
			continue
		}
		day, ok := cldrWeekdays[entry.Day]
		if !ok {
			continue
		}
		territories := strings.Fields(entry.Territories)
		if territory != "" && slices.Contains(territories, territory) {
			dow = day
		}
		if slices.Contains(territories, "001") {
			world[0] = day
		}
	}
	for _, entry := range supplemental.WeekData.MinDays {
		if entry == nil || entry.Alt != "" {
			continue
		}
		count, err := strconv.Atoi(entry.Count)
		if err != nil {
			continue
		}
		territories := strings.Fields(entry.Territories)
		if territory != "" && slices.Contains(territories, territory) {
			minDays = count
		}
		if slices.Contains(territories, "001") {
			world[1] = count
		}
	}

	if dow < 0 {
		dow = world[0]
	}
	if minDays < 0 {
		minDays = world[1]
	}
	if dow < 0 || minDays < 0 {
		return nil
	}
	return &chrono.WeekRule{Dow: dow, Doy: 7 + dow - minDays}
}
