package chrono

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var builtinLocaleFS embed.FS

// LocaleDefinition pairs a locale name with its spec, ready for Define.
type LocaleDefinition struct {
	Name string
	Spec LocaleSpec
}

// LocaleLoader retrieves locale definitions used to seed a catalog.
type LocaleLoader interface {
	Load() ([]LocaleDefinition, error)
}

// LocaleLoaderFunc adapts a bare function to LocaleLoader.
type LocaleLoaderFunc func() ([]LocaleDefinition, error)

// Load implements LocaleLoader for LocaleLoaderFunc.
func (fn LocaleLoaderFunc) Load() ([]LocaleDefinition, error) {
	return fn()
}

// LoadInto registers every definition produced by loader. Existing locales
// are updated in place; definitions whose parent is still missing stay
// queued in the catalog.
func LoadInto(catalog *LocaleCatalog, loader LocaleLoader) error {
	if catalog == nil || loader == nil {
		return nil
	}
	defs, err := loader.Load()
	if err != nil {
		return err
	}

	var errs errors.M
	for _, def := range defs {
		if _, exists := catalog.Lookup(def.Name); exists {
			_, err = catalog.Update(def.Name, def.Spec)
		} else {
			_, err = catalog.Define(def.Name, def.Spec)
		}
		if err != nil {
			errs.Append(fmt.Errorf("chrono: load locale %s: %w", def.Name, err))
		}
	}
	return errs.Err()
}

// NamesDocument is the serialized form of Names. A plain list is accepted
// in place of the mapping when a locale has no standalone forms.
type NamesDocument struct {
	Format     []string `yaml:"format,omitempty" json:"format,omitempty"`
	Standalone []string `yaml:"standalone,omitempty" json:"standalone,omitempty"`
	IsFormat   string   `yaml:"isFormat,omitempty" json:"isFormat,omitempty"`
}

type namesDocumentFields NamesDocument

func (n *NamesDocument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&n.Format)
	}
	return node.Decode((*namesDocumentFields)(n))
}

func (n *NamesDocument) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &n.Format)
	}
	return json.Unmarshal(data, (*namesDocumentFields)(n))
}

func (n *NamesDocument) names() *Names {
	if n == nil || len(n.Format) == 0 {
		return nil
	}
	return &Names{
		Format:     append([]string(nil), n.Format...),
		Standalone: append([]string(nil), n.Standalone...),
		IsFormat:   n.IsFormat,
	}
}

// MeridiemDocument lists the four meridiem markers of a locale.
type MeridiemDocument struct {
	AM      string `yaml:"am" json:"am"`
	PM      string `yaml:"pm" json:"pm"`
	AMLower string `yaml:"amLower,omitempty" json:"amLower,omitempty"`
	PMLower string `yaml:"pmLower,omitempty" json:"pmLower,omitempty"`
}

func (m *MeridiemDocument) fn() MeridiemFunc {
	if m == nil || m.AM == "" || m.PM == "" {
		return nil
	}
	markers := *m
	if markers.AMLower == "" {
		markers.AMLower = strings.ToLower(markers.AM)
	}
	if markers.PMLower == "" {
		markers.PMLower = strings.ToLower(markers.PM)
	}
	return func(hour, _ int, lower bool) string {
		switch {
		case hour < 12 && lower:
			return markers.AMLower
		case hour < 12:
			return markers.AM
		case lower:
			return markers.PMLower
		default:
			return markers.PM
		}
	}
}

// LocaleDocument is the YAML/JSON schema of a locale table. Only literal
// phrases can be expressed; plural rules and computed calendar phrases are
// attached in Go.
type LocaleDocument struct {
	Name   string `yaml:"name" json:"name"`
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`

	Months        *NamesDocument `yaml:"months,omitempty" json:"months,omitempty"`
	MonthsShort   *NamesDocument `yaml:"monthsShort,omitempty" json:"monthsShort,omitempty"`
	Weekdays      *NamesDocument `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`
	WeekdaysShort *NamesDocument `yaml:"weekdaysShort,omitempty" json:"weekdaysShort,omitempty"`
	WeekdaysMin   *NamesDocument `yaml:"weekdaysMin,omitempty" json:"weekdaysMin,omitempty"`

	MonthsParse   []string `yaml:"monthsParse,omitempty" json:"monthsParse,omitempty"`
	WeekdaysParse []string `yaml:"weekdaysParse,omitempty" json:"weekdaysParse,omitempty"`

	LongDateFormat map[string]string `yaml:"longDateFormat,omitempty" json:"longDateFormat,omitempty"`
	Calendar       map[string]string `yaml:"calendar,omitempty" json:"calendar,omitempty"`
	// RelativeTime holds the unit phrases plus the "future" and "past" wrappers.
	RelativeTime map[string]string `yaml:"relativeTime,omitempty" json:"relativeTime,omitempty"`

	Ordinal                string            `yaml:"ordinal,omitempty" json:"ordinal,omitempty"`
	DayOfMonthOrdinalParse string            `yaml:"dayOfMonthOrdinalParse,omitempty" json:"dayOfMonthOrdinalParse,omitempty"`
	MeridiemParse          string            `yaml:"meridiemParse,omitempty" json:"meridiemParse,omitempty"`
	Meridiem               *MeridiemDocument `yaml:"meridiem,omitempty" json:"meridiem,omitempty"`

	Week        *WeekRule `yaml:"week,omitempty" json:"week,omitempty"`
	InvalidDate string    `yaml:"invalidDate,omitempty" json:"invalidDate,omitempty"`
}

// Spec converts the document into a LocaleSpec.
func (d LocaleDocument) Spec() LocaleSpec {
	spec := LocaleSpec{
		Parent:                 d.Parent,
		Months:                 d.Months.names(),
		MonthsShort:            d.MonthsShort.names(),
		Weekdays:               d.Weekdays.names(),
		WeekdaysShort:          d.WeekdaysShort.names(),
		WeekdaysMin:            d.WeekdaysMin.names(),
		MonthsParse:            append([]string(nil), d.MonthsParse...),
		WeekdaysParse:          append([]string(nil), d.WeekdaysParse...),
		DayOfMonthOrdinalParse: d.DayOfMonthOrdinalParse,
		MeridiemParse:          d.MeridiemParse,
		Meridiem:               d.Meridiem.fn(),
		InvalidDate:            d.InvalidDate,
	}
	if len(spec.MonthsParse) == 0 {
		spec.MonthsParse = nil
	}
	if len(spec.WeekdaysParse) == 0 {
		spec.WeekdaysParse = nil
	}
	if len(d.LongDateFormat) > 0 {
		spec.LongDateFormat = make(map[string]string, len(d.LongDateFormat))
		for key, layout := range d.LongDateFormat {
			spec.LongDateFormat[key] = layout
		}
	}
	if len(d.Calendar) > 0 {
		spec.Calendar = make(map[string]CalendarPhrase, len(d.Calendar))
		for key, layout := range d.Calendar {
			spec.Calendar[key] = CalendarText(layout)
		}
	}
	for key, phrase := range d.RelativeTime {
		switch key {
		case "future":
			spec.Future = SuffixText(phrase)
		case "past":
			spec.Past = SuffixText(phrase)
		default:
			if spec.RelativeTime == nil {
				spec.RelativeTime = make(map[string]RelativePhrase, len(d.RelativeTime))
			}
			spec.RelativeTime[key] = RelativeText(phrase)
		}
	}
	if d.Ordinal != "" {
		spec.Ordinal = OrdinalText(d.Ordinal)
	}
	if d.Week != nil {
		week := *d.Week
		spec.Week = &week
	}
	return spec
}

type localeFile struct {
	LocaleDocument `yaml:",inline"`
	Locales        []LocaleDocument `yaml:"locales,omitempty" json:"locales,omitempty"`
}

func (f localeFile) documents() []LocaleDocument {
	docs := append([]LocaleDocument(nil), f.Locales...)
	if f.Name != "" {
		docs = append([]LocaleDocument{f.LocaleDocument}, docs...)
	}
	return docs
}

// FileLoader reads locale documents from YAML or JSON files. A file holds
// either a single document (with a name key) or a locales list.
type FileLoader struct {
	paths []string
}

var _ LocaleLoader = &FileLoader{}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// Load decodes every configured file. Failures are collected so one broken
// file does not hide problems in the others.
func (l *FileLoader) Load() ([]LocaleDefinition, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, ErrNoLoaderPaths
	}

	var (
		defs []LocaleDefinition
		errs errors.M
	)
	for _, p := range l.paths {
		data, err := os.ReadFile(p)
		if err != nil {
			errs.Append(fmt.Errorf("chrono: read %s: %w", p, err))
			continue
		}
		docs, err := decodeLocaleFile(filepath.Ext(p), data)
		if err != nil {
			errs.Append(fmt.Errorf("chrono: decode %s: %w", p, err))
			continue
		}
		for _, doc := range docs {
			defs = append(defs, LocaleDefinition{Name: doc.Name, Spec: doc.Spec()})
		}
	}
	return defs, errs.Err()
}

func decodeLocaleFile(ext string, data []byte) ([]LocaleDocument, error) {
	var file localeFile
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	docs := file.documents()
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no locale documents", ErrInvalidLocale)
	}
	for _, doc := range docs {
		if strings.TrimSpace(doc.Name) == "" {
			return nil, fmt.Errorf("%w: locale document without name", ErrInvalidLocale)
		}
	}
	return docs, nil
}

// BuiltinLocales returns a loader for the embedded locale tables with their
// computed phrases attached.
func BuiltinLocales() LocaleLoader {
	return LocaleLoaderFunc(loadBuiltinLocales)
}

func loadBuiltinLocales() ([]LocaleDefinition, error) {
	entries, err := fs.ReadDir(builtinLocaleFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("chrono: read builtin locales: %w", err)
	}

	var defs []LocaleDefinition
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := builtinLocaleFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("chrono: read %s: %w", name, err)
		}
		docs, err := decodeLocaleFile(path.Ext(name), data)
		if err != nil {
			return nil, fmt.Errorf("chrono: decode %s: %w", name, err)
		}
		for _, doc := range docs {
			defs = append(defs, LocaleDefinition{Name: doc.Name, Spec: withLocaleRules(doc.Name, doc.Spec())})
		}
	}
	return defs, nil
}

var baseLocale = sync.OnceValues(func() (*Locale, error) {
	data, err := builtinLocaleFS.ReadFile("locales/en.yaml")
	if err != nil {
		return nil, err
	}
	docs, err := decodeLocaleFile(".yaml", data)
	if err != nil {
		return nil, err
	}
	return newLocale(BaseLocale, withLocaleRules(BaseLocale, docs[0].Spec()))
})

func mustBaseLocale() *Locale {
	loc, err := baseLocale()
	if err != nil {
		panic(fmt.Sprintf("chrono: base locale: %v", err))
	}
	return loc
}
