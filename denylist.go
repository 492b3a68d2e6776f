package menuscan

import (
	"regexp"
	"strings"
)

// Denylist is a set of boilerplate phrases that never belong to a menu
// item. A line matching the denylist terminates any in-progress item
// accumulation and is silently dropped, not reported as an error.
type Denylist struct {
	phrases []string
}

var pageNumberRe = regexp.MustCompile(`^(page\s+)?\d{1,3}(\s*(of|/)\s*\d{1,3})?$`)

// defaultDenyPhrases are substrings (case-insensitive) of footer and
// disclaimer text observed across restaurant menus.
var defaultDenyPhrases = []string{
	"prices subject to change",
	"all major credit cards",
	"consuming raw or undercooked",
	"please inform your server",
	"food allergy",
	"nutrition information",
	"calories a day",
	"gratuity",
	"kitchen administration fee",
	"ask your server about menu items",
	"follow us on",
	"gift cards available",
}

// NewDenylist returns a denylist with the default phrases plus any
// additional phrases. Phrases match as case-insensitive substrings.
func NewDenylist(extra ...string) Denylist {
	phrases := make([]string, 0, len(defaultDenyPhrases)+len(extra))
	phrases = append(phrases, defaultDenyPhrases...)
	for _, p := range extra {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return Denylist{phrases: phrases}
}

// Match reports whether the line is boilerplate: a denylist phrase or a
// bare page number.
func (d Denylist) Match(line string) bool {
	s := strings.ToLower(strings.TrimSpace(line))
	if s == "" {
		return false
	}
	if pageNumberRe.MatchString(s) {
		return true
	}
	for _, p := range d.phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
