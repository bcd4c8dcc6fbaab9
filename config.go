package chrono

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Default layouts used by Format when no layout is given.
const (
	DefaultFormat    = "YYYY-MM-DDTHH:mm:ssZ"
	DefaultFormatUTC = "YYYY-MM-DDTHH:mm:ss[Z]"
)

// Config captures the engine setup: locale catalog, clock, zone, warning
// sink and humanize thresholds. Values keep a non-owning pointer to the
// Config they were created from.
type Config struct {
	catalog      *LocaleCatalog
	localeFiles  []string
	loaders      []LocaleLoader
	activeLocale []string

	location *time.Location
	now      func() time.Time

	logger     *slog.Logger
	handler    func(name, msg string)
	suppressed bool
	sink       *deprecationSink

	defaultFormat    string
	defaultFormatUTC string
	twoDigitYear     func(string) int
	hooks            []OffsetHook
	inputFallback    bool

	mu         sync.RWMutex
	thresholds map[string]float64
	rounding   func(float64) float64
}

// Option mutates Config during construction
type Option func(*Config) error

var defaultThresholds = map[string]float64{
	"ss": 44,
	"s":  45,
	"m":  45,
	"h":  22,
	"d":  26,
	"M":  11,
}

// thresholds that may be configured; "w" is unset by default
var thresholdKeys = map[string]struct{}{
	"ss": {}, "s": {}, "m": {}, "h": {}, "d": {}, "w": {}, "M": {},
}

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		defaultFormat:    DefaultFormat,
		defaultFormatUTC: DefaultFormatUTC,
		twoDigitYear:     parseTwoDigitYear,
		inputFallback:    true,
		thresholds:       maps.Clone(defaultThresholds),
		rounding:         jsRound,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	cfg.sink = newDeprecationSink(cfg.logger, cfg.handler, cfg.suppressed)

	if cfg.catalog == nil {
		catalog, err := NewBuiltinCatalog(WithCatalogWarnings(cfg.sink.warn))
		if err != nil {
			return nil, err
		}
		cfg.catalog = catalog
	}

	if len(cfg.localeFiles) > 0 {
		cfg.loaders = append(cfg.loaders, NewFileLoader(cfg.localeFiles...))
	}
	for _, loader := range cfg.loaders {
		if err := LoadInto(cfg.catalog, loader); err != nil {
			return nil, err
		}
	}

	if len(cfg.activeLocale) > 0 {
		if _, ok := cfg.catalog.resolveExact(cfg.activeLocale); !ok {
			return nil, fmt.Errorf("%w: %v", ErrLocaleNotFound, cfg.activeLocale)
		}
		cfg.catalog.SetActive(cfg.activeLocale...)
	}

	if cfg.location == nil {
		cfg.location = time.Local
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}

	return cfg, nil
}

// WithCatalog uses an existing catalog instead of the built-in one.
func WithCatalog(catalog *LocaleCatalog) Option {
	return func(c *Config) error {
		c.catalog = catalog
		return nil
	}
}

// WithLocaleFiles loads YAML/JSON locale documents into the catalog.
func WithLocaleFiles(paths ...string) Option {
	return func(c *Config) error {
		c.localeFiles = append(c.localeFiles, paths...)
		return nil
	}
}

// WithLocaleLoader registers the definitions produced by loader.
func WithLocaleLoader(loader LocaleLoader) Option {
	return func(c *Config) error {
		if loader != nil {
			c.loaders = append(c.loaders, loader)
		}
		return nil
	}
}

// WithActiveLocale selects the active locale; it must resolve to a
// registered locale.
func WithActiveLocale(tags ...string) Option {
	return func(c *Config) error {
		c.activeLocale = append(c.activeLocale, tags...)
		return nil
	}
}

// WithLocation sets the zone used for local values.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		if loc == nil {
			return fmt.Errorf("chrono: nil location")
		}
		c.location = loc
		return nil
	}
}

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(c *Config) error {
		c.now = now
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithDeprecationHandler receives every deprecation warning.
func WithDeprecationHandler(fn func(name, msg string)) Option {
	return func(c *Config) error {
		c.handler = fn
		return nil
	}
}

func SuppressDeprecationWarnings() Option {
	return func(c *Config) error {
		c.suppressed = true
		return nil
	}
}

// WithDefaultFormat sets the layouts used by Format() for local and UTC
// values. Empty strings keep the current layout.
func WithDefaultFormat(local, utc string) Option {
	return func(c *Config) error {
		if local != "" {
			c.defaultFormat = local
		}
		if utc != "" {
			c.defaultFormatUTC = utc
		}
		return nil
	}
}

func WithRelativeTimeThreshold(key string, value float64) Option {
	return func(c *Config) error {
		if !c.SetRelativeTimeThreshold(key, value) {
			return fmt.Errorf("chrono: unknown relative time threshold %q", key)
		}
		return nil
	}
}

func WithRelativeTimeRounding(fn func(float64) float64) Option {
	return func(c *Config) error {
		c.SetRelativeTimeRounding(fn)
		return nil
	}
}

// WithTwoDigitYearParser replaces the YY expansion rule.
func WithTwoDigitYearParser(fn func(input string) int) Option {
	return func(c *Config) error {
		if fn != nil {
			c.twoDigitYear = fn
		}
		return nil
	}
}

func WithOffsetHooks(hooks ...OffsetHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.hooks = append(c.hooks, hook)
		}
		return nil
	}
}

// WithoutInputFallback makes strings that match no known grammar invalid
// instead of handing them to the lenient fallback parser.
func WithoutInputFallback() Option {
	return func(c *Config) error {
		c.inputFallback = false
		return nil
	}
}

// Catalog returns the locale catalog.
func (cfg *Config) Catalog() *LocaleCatalog {
	return cfg.catalog
}

// Location returns the zone used for local values.
func (cfg *Config) Location() *time.Location {
	return cfg.location
}

// Logger returns the structured logger.
func (cfg *Config) Logger() *slog.Logger {
	return cfg.logger
}

func (cfg *Config) clock() time.Time {
	return cfg.now()
}

func (cfg *Config) warn(name, msg string) {
	cfg.sink.warn(name, msg)
}

// LoadLocales registers the definitions produced by loader.
func (cfg *Config) LoadLocales(loader LocaleLoader) error {
	return LoadInto(cfg.catalog, loader)
}

// SetRelativeTimeThreshold changes a humanize threshold. Setting "s" also
// moves "ss" to one below it. NaN unsets the threshold. Unknown keys are
// rejected.
func (cfg *Config) SetRelativeTimeThreshold(key string, value float64) bool {
	if _, ok := thresholdKeys[key]; !ok {
		return false
	}
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	if math.IsNaN(value) {
		delete(cfg.thresholds, key)
		return true
	}
	cfg.thresholds[key] = value
	if key == "s" {
		cfg.thresholds["ss"] = value - 1
	}
	return true
}

// RelativeTimeThreshold reports a humanize threshold.
func (cfg *Config) RelativeTimeThreshold(key string) (float64, bool) {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	value, ok := cfg.thresholds[key]
	return value, ok
}

// SetRelativeTimeRounding changes the rounding applied to humanized counts.
func (cfg *Config) SetRelativeTimeRounding(fn func(float64) float64) {
	if fn == nil {
		return
	}
	cfg.mu.Lock()
	cfg.rounding = fn
	cfg.mu.Unlock()
}

func (cfg *Config) relativeTimeSettings() (map[string]float64, func(float64) float64) {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return maps.Clone(cfg.thresholds), cfg.rounding
}

// parseTwoDigitYear maps 69-99 to the 1900s and 00-68 to the 2000s.
func parseTwoDigitYear(input string) int {
	n, _ := strconv.Atoi(input)
	if n > 68 {
		return n + 1900
	}
	return n + 2000
}

var defaultConfig atomic.Pointer[Config]

var initDefault = sync.OnceFunc(func() {
	if defaultConfig.Load() != nil {
		return
	}
	cfg, err := NewConfig()
	if err != nil {
		panic(fmt.Sprintf("chrono: default config: %v", err))
	}
	defaultConfig.CompareAndSwap(nil, cfg)
})

// Default returns the process-wide configuration backing the package level
// constructors.
func Default() *Config {
	if cfg := defaultConfig.Load(); cfg != nil {
		return cfg
	}
	initDefault()
	return defaultConfig.Load()
}

// SetDefault replaces the process-wide configuration.
func SetDefault(cfg *Config) {
	if cfg != nil {
		defaultConfig.Store(cfg)
	}
}
