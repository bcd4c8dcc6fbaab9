package chrono

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BaseLocale is the name of the table every locale ultimately inherits from.
const BaseLocale = "en"

// LocaleCatalog owns the registered locale tables and tracks the active one.
// Lookups take a read lock; registrations are rare and take the write lock.
type LocaleCatalog struct {
	mu      sync.RWMutex
	specs   map[string]LocaleSpec
	locales map[string]*Locale
	pending map[string][]pendingLocale
	base    *Locale
	active  *Locale
	warn    func(name, msg string)
}

type pendingLocale struct {
	name string
	spec LocaleSpec
}

// CatalogOption configures a LocaleCatalog.
type CatalogOption func(*LocaleCatalog)

// WithCatalogWarnings routes catalog warnings (locale redefinition, unknown
// active locale) to fn.
func WithCatalogWarnings(fn func(name, msg string)) CatalogOption {
	return func(c *LocaleCatalog) {
		c.warn = fn
	}
}

// NewLocaleCatalog returns a catalog holding only the base English table.
func NewLocaleCatalog(opts ...CatalogOption) *LocaleCatalog {
	base := mustBaseLocale()
	c := &LocaleCatalog{
		specs:   map[string]LocaleSpec{BaseLocale: base.spec},
		locales: map[string]*Locale{BaseLocale: base},
		pending: make(map[string][]pendingLocale),
		base:    base,
		active:  base,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// NewBuiltinCatalog returns a catalog preloaded with every embedded locale.
func NewBuiltinCatalog(opts ...CatalogOption) (*LocaleCatalog, error) {
	c := NewLocaleCatalog(opts...)
	if err := LoadInto(c, BuiltinLocales()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *LocaleCatalog) warning(name, msg string) {
	if c.warn != nil {
		c.warn(name, msg)
	}
}

// Define registers a locale built by merging spec onto its parent (or the
// base table). Redefining an existing locale merges onto the previous
// definition and reports a defineLocaleOverride warning. When the parent is
// not registered yet the definition is queued and Define returns (nil, nil);
// it is completed as soon as the parent is defined.
func (c *LocaleCatalog) Define(name string, spec LocaleSpec) (*Locale, error) {
	key := normalizeLocale(name)
	if key == "" {
		return nil, fmt.Errorf("%w: empty locale name", ErrInvalidLocale)
	}

	c.mu.Lock()
	_, exists := c.specs[key]
	loc, err := c.defineLocked(key, spec)
	c.mu.Unlock()

	if exists && err == nil {
		c.warning("defineLocaleOverride", fmt.Sprintf(
			"use Update(%q, ...) to change an existing locale; Define should only create new locales", key))
	}
	return loc, err
}

func (c *LocaleCatalog) defineLocked(key string, spec LocaleSpec) (*Locale, error) {
	parent := c.base.spec
	if prev, ok := c.specs[key]; ok {
		parent = prev
		spec.Parent = prev.Parent
	} else if spec.Parent != "" {
		parentKey := normalizeLocale(spec.Parent)
		prevParent, ok := c.specs[parentKey]
		if !ok {
			c.pending[parentKey] = append(c.pending[parentKey], pendingLocale{name: key, spec: spec})
			return nil, nil
		}
		parent = prevParent
		spec.Parent = parentKey
	}

	merged := mergeSpecs(parent, spec)
	if key == BaseLocale {
		merged.Parent = ""
	}
	loc, err := newLocale(key, merged)
	if err != nil {
		return nil, err
	}
	c.install(key, merged, loc)

	children := c.pending[key]
	delete(c.pending, key)
	for _, child := range children {
		if _, err := c.defineLocked(child.name, child.spec); err != nil {
			return loc, fmt.Errorf("define %s (child of %s): %w", child.name, key, err)
		}
	}
	return loc, nil
}

func (c *LocaleCatalog) install(key string, spec LocaleSpec, loc *Locale) {
	c.specs[key] = spec
	c.locales[key] = loc
	if c.active != nil && c.active.name == key {
		c.active = loc
	}
	if key == BaseLocale {
		c.base = loc
	}
}

// Update merges spec onto an existing locale. A missing locale is defined
// instead, falling back to the base table when its parent is unknown.
func (c *LocaleCatalog) Update(name string, spec LocaleSpec) (*Locale, error) {
	key := normalizeLocale(name)
	if key == "" {
		return nil, fmt.Errorf("%w: empty locale name", ErrInvalidLocale)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.specs[key]; ok {
		return c.defineLocked(key, spec)
	}
	if spec.Parent != "" {
		if _, ok := c.specs[normalizeLocale(spec.Parent)]; !ok {
			spec.Parent = ""
		}
	}
	return c.defineLocked(key, spec)
}

// Remove drops a locale. Removing the active locale reverts to the base
// table; the base table itself cannot be removed.
func (c *LocaleCatalog) Remove(name string) bool {
	key := normalizeLocale(name)
	if key == BaseLocale {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.locales[key]; !ok {
		return false
	}
	delete(c.specs, key)
	delete(c.locales, key)
	if c.active != nil && c.active.name == key {
		c.active = c.base
	}
	return true
}

// Lookup returns the locale registered under exactly name.
func (c *LocaleCatalog) Lookup(name string) (*Locale, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	loc, ok := c.locales[normalizeLocale(name)]
	return loc, ok
}

// Resolve picks the best registered locale for an ordered preference list.
// Each tag is tried with trailing subtags stripped one at a time; a tag stops
// early when the next preference shares its prefix, leaving the shorter form
// to that preference. Nothing matching yields the active locale.
func (c *LocaleCatalog) Resolve(tags ...string) *Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if loc, ok := c.findLocked(tags); ok {
		return loc
	}
	return c.active
}

func (c *LocaleCatalog) findLocked(tags []string) (*Locale, bool) {
	for i := 0; i < len(tags); i++ {
		current := normalizeLocale(tags[i])
		if current == "" {
			continue
		}
		split := strings.Split(current, "-")

		var next []string
		if i+1 < len(tags) {
			if n := normalizeLocale(tags[i+1]); n != "" {
				next = strings.Split(n, "-")
			}
		}

		for j := len(split); j > 0; j-- {
			if loc, ok := c.locales[strings.Join(split[:j], "-")]; ok {
				return loc, true
			}
			if next != nil && len(next) >= j && commonPrefix(split, next) >= j-1 {
				break
			}
		}
	}
	return nil, false
}

// SetActive switches the active locale to the best match for tags and
// returns the active name. An unknown tag leaves the active locale unchanged.
func (c *LocaleCatalog) SetActive(tags ...string) string {
	if len(tags) == 0 {
		return c.ActiveName()
	}

	c.mu.Lock()
	loc, ok := c.findLocked(tags)
	if ok {
		c.active = loc
	}
	name := c.active.name
	c.mu.Unlock()

	if !ok {
		c.warning("unknownLocale", fmt.Sprintf("locale %q not found, keeping %q", strings.Join(tags, ","), name))
	}
	return name
}

// Active returns the locale used by values that do not pin one.
func (c *LocaleCatalog) Active() *Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// ActiveName returns the name of the active locale.
func (c *LocaleCatalog) ActiveName() string {
	return c.Active().Name()
}

// Names returns every registered locale name, sorted.
func (c *LocaleCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.locales))
	for name := range c.locales {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Pending returns the names of definitions waiting for their parent.
func (c *LocaleCatalog) Pending() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for _, children := range c.pending {
		for _, child := range children {
			out = append(out, child.name)
		}
	}
	sort.Strings(out)
	return out
}

// Fallbacks returns the inheritance chain of a locale from the closest
// parent to the base table, followed by any registered CLDR parents not
// already listed.
func (c *LocaleCatalog) Fallbacks(name string) []string {
	key := normalizeLocale(name)

	c.mu.RLock()
	defer c.mu.RUnlock()

	spec, ok := c.specs[key]
	if !ok {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{key: {}}
	for parent := spec.Parent; parent != ""; {
		if _, dup := seen[parent]; dup {
			break
		}
		seen[parent] = struct{}{}
		chain = append(chain, parent)
		parent = c.specs[parent].Parent
	}
	for _, parent := range localeParentChain(key) {
		if _, dup := seen[parent]; dup {
			continue
		}
		if _, registered := c.locales[parent]; registered {
			seen[parent] = struct{}{}
			chain = append(chain, parent)
		}
	}
	if _, dup := seen[BaseLocale]; !dup && key != BaseLocale {
		chain = append(chain, BaseLocale)
	}
	return chain
}

// Find is Resolve without the fallback to the active locale.
func (c *LocaleCatalog) Find(tags ...string) (*Locale, bool) {
	return c.resolveExact(tags)
}

func (c *LocaleCatalog) resolveExact(tags []string) (*Locale, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.findLocked(tags)
}
