package menuscan

import (
	"context"
	"regexp"
	"strings"
)

// Line is one unit of a LineCorpus: a text line with optional style hints.
// Order within the corpus encodes reading order and is the only signal for
// associating a price with the name or description near it.
type Line struct {
	// Text is the visible text of the line, whitespace-trimmed.
	Text string `json:"text"`

	// FontSize is a relative font size hint, 0 when unknown. For PDF
	// sources it is the dominant glyph size; for HTML sources it is
	// synthesized from heading levels.
	FontSize float64 `json:"fontSize,omitempty"`

	// Bold reports whether the line is rendered bold, when known.
	Bold bool `json:"bold,omitempty"`

	// Indent is a relative indentation level, 0 for flush-left.
	Indent int `json:"indent,omitempty"`

	// Page is the 1-based source page for paginated sources, 0 otherwise.
	Page int `json:"page,omitempty"`

	// Item holds pre-segmented fields when the vision capability already
	// split the line into name/description/price/section. Lines carrying
	// an Item bypass the heuristic parser entirely.
	Item *SegmentedItem `json:"item,omitempty"`
}

// PreParsed reports whether the line carries pre-segmented fields.
func (l Line) PreParsed() bool { return l.Item != nil }

// SegmentedItem is a rough menu item as segmented by the vision capability:
// approximate fields, possibly noisy, not yet validated or normalized.
type SegmentedItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Section     string `json:"section"`
}

// LineCorpus is the ordered sequence of lines derived from one resource.
type LineCorpus []Line

// CorpusExtractor turns a resource into a line corpus. One implementation
// exists per extraction strategy. An empty corpus means "no content found"
// and is not an error; an unreadable source returns an EEXTRACTION error.
type CorpusExtractor interface {
	Extract(ctx context.Context, res *Resource) (LineCorpus, error)
}

// Converter converts an HTML fragment to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// ContentExtractor extracts main content from a full HTML page, removing
// boilerplate regions (nav, footer, sidebar, scripts).
type ContentExtractor interface {
	ExtractContent(html string) (title string, contentHTML string, err error)
}

// Heading font sizes synthesized for markdown-derived corpora. Body text
// carries no size hint; the parser only compares sizes relatively.
const markdownBaseHeadingSize = 24.0

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletRe    = regexp.MustCompile(`^([-*+]|\d+[.)])\s+`)
	tableSepRe  = regexp.MustCompile(`^\|?[\s:|-]+\|?$`)
	imageRe     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	emphasisRe  = regexp.MustCompile(`(\*\*|__|\*|_)`)
	fenceMarker = "```"
)

// LinesFromMarkdown converts a markdown document into a line corpus.
// Headings become lines with synthetic font-size hints (larger for higher
// levels), bold-only lines are flagged, list nesting becomes indentation,
// and table rows keep their cell delimiters so multi-price rows survive.
// Code fences and images are dropped.
func LinesFromMarkdown(markdown string, page int) LineCorpus {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	var corpus LineCorpus
	inFence := false

	for _, raw := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, fenceMarker) {
			inFence = !inFence
			continue
		}
		if inFence || trimmed == "" {
			continue
		}
		if tableSepRe.MatchString(trimmed) && strings.Contains(trimmed, "-") {
			continue
		}

		line := Line{Page: page}

		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			level := len(m[1])
			line.FontSize = markdownBaseHeadingSize - 2*float64(level-1)
			line.Bold = true
			trimmed = m[2]
		} else {
			line.Indent = indentLevel(raw)
			trimmed = bulletRe.ReplaceAllString(trimmed, "")
			if isBoldOnly(trimmed) {
				line.Bold = true
			}
		}

		trimmed = imageRe.ReplaceAllString(trimmed, "")
		trimmed = linkRe.ReplaceAllString(trimmed, "$1")
		trimmed = strings.Trim(trimmed, "|")
		trimmed = emphasisRe.ReplaceAllString(trimmed, "")
		trimmed = strings.TrimSpace(collapseWhitespace(trimmed))
		if trimmed == "" {
			continue
		}

		line.Text = trimmed
		corpus = append(corpus, line)
	}

	return corpus
}

// indentLevel derives a nesting level from leading whitespace, two spaces
// (or one tab) per level.
func indentLevel(raw string) int {
	spaces := 0
	for _, r := range raw {
		switch r {
		case ' ':
			spaces++
		case '\t':
			spaces += 2
		default:
			return spaces / 2
		}
	}
	return 0
}

// isBoldOnly reports whether the whole line is wrapped in markdown strong
// emphasis, e.g. "**APPETIZERS**".
func isBoldOnly(s string) bool {
	for _, wrap := range []string{"**", "__"} {
		if len(s) > 2*len(wrap) && strings.HasPrefix(s, wrap) && strings.HasSuffix(s, wrap) &&
			!strings.Contains(s[len(wrap):len(s)-len(wrap)], wrap) {
			return true
		}
	}
	return false
}

var spaceRe = regexp.MustCompile(`\s+`)

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}
