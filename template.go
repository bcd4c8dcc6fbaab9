package chrono

import (
	"fmt"
	"time"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey is read from map contexts to pick the rendering locale
	LocaleKey string
	// DefaultLayout is used by date_format when the template passes none
	DefaultLayout string
}

// TemplateHelpers exposes date and duration helpers for go-template. The
// first argument of most helpers is the template context: a locale tag, or
// a map holding one under LocaleKey.
func TemplateHelpers(cfg *Config, helper HelperConfig) map[string]any {
	if cfg == nil {
		cfg = Default()
	}
	if helper.LocaleKey == "" {
		helper.LocaleKey = "locale"
	}

	localize := func(ctx any, d DateTime) DateTime {
		if tag := localeFromContext(ctx, helper.LocaleKey); tag != "" {
			return d.WithLocale(tag)
		}
		return d
	}

	return map[string]any{
		"current_locale": func(ctx any) string {
			return localeFromContext(ctx, helper.LocaleKey)
		},
		"date_format": func(ctx any, value any, layout ...string) string {
			d := localize(ctx, cfg.New(value))
			if len(layout) == 0 && helper.DefaultLayout != "" {
				return d.Format(helper.DefaultLayout)
			}
			return d.Format(layout...)
		},
		"date_from_now": func(ctx any, value any) string {
			return localize(ctx, cfg.New(value)).FromNow(false)
		},
		"date_calendar": func(ctx any, value any) string {
			return localize(ctx, cfg.New(value)).Calendar()
		},
		"date_iso": func(value any) string {
			return cfg.New(value).ToISOString(false)
		},
		"duration_humanize": func(ctx any, value any, withSuffix ...bool) string {
			span := durationFromValue(value).WithConfig(cfg)
			if tag := localeFromContext(ctx, helper.LocaleKey); tag != "" {
				span = span.WithLocale(tag)
			}
			return span.Humanize(len(withSuffix) > 0 && withSuffix[0])
		},
	}
}

func localeFromContext(ctx any, key string) string {
	switch v := ctx.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]string:
		return v[key]
	case map[string]any:
		if s, ok := v[key].(string); ok {
			return s
		}
	case interface{ Locale() string }:
		return v.Locale()
	}
	return ""
}

func durationFromValue(value any) Duration {
	switch v := value.(type) {
	case Duration:
		return v
	case time.Duration:
		return Milliseconds(float64(v.Milliseconds()))
	case string:
		span, err := ParseDuration(v)
		if err != nil {
			return InvalidDuration()
		}
		return span
	case int:
		return Milliseconds(float64(v))
	case int64:
		return Milliseconds(float64(v))
	case float64:
		return Milliseconds(v)
	default:
		span, err := ParseDuration(fmt.Sprint(v))
		if err != nil {
			return InvalidDuration()
		}
		return span
	}
}
