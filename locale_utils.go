package chrono

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale turns a user supplied tag into a catalog key: trimmed,
// lower case, hyphen separated and canonical when BCP 47 accepts it
// ("EN_gb" becomes "en-gb").
func normalizeLocale(tag string) string {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if key == "" {
		return ""
	}
	parsed, err := language.Parse(key)
	if err != nil {
		return key
	}
	if canonical := strings.ToLower(parsed.String()); canonical != "und" {
		return canonical
	}
	return key
}

// localeParentChain lists the ancestors of a catalog key, closest first:
// CLDR parents ("en-001" for "en-gb"), then the subtag truncations that CLDR
// did not already name.
func localeParentChain(key string) []string {
	var chain []string
	listed := map[string]bool{key: true}
	push := func(name string) bool {
		if name == "" || name == "und" || listed[name] {
			return false
		}
		listed[name] = true
		chain = append(chain, name)
		return true
	}

	if tag, err := language.Parse(key); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			if !push(strings.ToLower(parent.String())) {
				break
			}
		}
	}
	for rest := key; ; {
		cut := strings.LastIndexByte(rest, '-')
		if cut <= 0 {
			break
		}
		rest = rest[:cut]
		push(rest)
	}
	return chain
}

// commonPrefix counts the leading subtags shared by two split tags.
func commonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
