package menuscan

import "strings"

// defaultMenuKeywords mark URLs that plausibly point at menu pages.
var defaultMenuKeywords = []string{
	"menu", "dinner", "lunch", "brunch", "breakfast",
	"drinks", "cocktails", "wine", "dessert", "catering",
}

// URLFilter selects candidate menu URLs from a discovered URL set by
// case-insensitive substring match. The zero value matches menu-shaped
// URLs using a built-in keyword list.
type URLFilter struct {
	// Patterns override the built-in keywords when non-empty.
	Patterns []string
}

// Match reports whether the URL looks like a menu page.
func (f URLFilter) Match(url string) bool {
	patterns := f.Patterns
	if len(patterns) == 0 {
		patterns = defaultMenuKeywords
	}
	lower := strings.ToLower(url)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
