package chrono

import "errors"

// ErrUnknownUnit indicates that a unit name could not be normalized.
var ErrUnknownUnit = errors.New("chrono: unknown unit")

// ErrInvalidLocale reports a locale definition that cannot be compiled.
var ErrInvalidLocale = errors.New("chrono: invalid locale")

// ErrLocaleNotFound indicates that no locale is registered under the given name.
var ErrLocaleNotFound = errors.New("chrono: locale not found")

// ErrInvalidDuration reports a duration string that matches none of the supported grammars.
var ErrInvalidDuration = errors.New("chrono: invalid duration")

// ErrNoLoaderPaths is returned by loaders configured without any source.
var ErrNoLoaderPaths = errors.New("chrono: no loader paths configured")
