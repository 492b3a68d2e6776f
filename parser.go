package menuscan

import (
	"strings"
	"unicode"
)

// lookaheadBound limits how far ahead the parser looks when deciding
// whether a price-less line opens a new item. Keeps the pass linear.
const lookaheadBound = 2

// sectionMinFontSize is the style-hint threshold above which a line is
// treated as an outsized section header. Markdown-derived corpora put
// h1-h4 at or above this size.
const sectionMinFontSize = 18.0

// ParseOptions configures the item parser.
type ParseOptions struct {
	// Denylist filters boilerplate lines. Zero value matches nothing.
	Denylist Denylist

	// Locale drives price-pattern recognition.
	Locale PriceLocale

	// SourceURL is recorded on every produced item.
	SourceURL string
}

// ParseItems consumes a line corpus and produces candidate raw items:
// adjacent lines grouped by a bounded-lookahead state machine over line
// features. Pre-parsed lines map directly to items with no heuristics.
// The function is pure: it never mutates the corpus and two calls with
// the same input yield identical output.
func ParseItems(corpus LineCorpus, opts ParseOptions) []RawItem {
	p := &itemParser{
		corpus:  corpus,
		opts:    opts,
		scanner: newPriceScanner(opts.Locale),
	}
	return p.run()
}

type itemParser struct {
	corpus  LineCorpus
	opts    ParseOptions
	scanner *priceScanner

	items   []RawItem
	current *RawItem
	section string
}

func (p *itemParser) run() []RawItem {
	for i, line := range p.corpus {
		if line.PreParsed() {
			p.flush()
			p.emitSegmented(line.Item)
			continue
		}

		text := strings.TrimSpace(line.Text)
		if text == "" || p.opts.Denylist.Match(text) {
			// Blank lines and boilerplate terminate the current item
			// without starting a new one.
			p.flush()
			continue
		}

		addonShape := addonPrefixRe.MatchString(text)
		head, fragments, hasPrice := p.scanner.SplitPriceTail(text, addonShape)

		if !hasPrice {
			// A section-shaped line directly above a price-only line
			// is an item name, not a section; plain lines get the
			// full lookahead bound.
			depth := lookaheadBound
			sectionShape := p.isSectionHeader(line, text)
			if sectionShape {
				depth = 1
			}
			if p.priceOnlyAhead(i, depth) {
				p.flush()
				p.current = &RawItem{
					Name:        text,
					SectionHint: p.section,
					SourceURL:   p.opts.SourceURL,
				}
				continue
			}
			if sectionShape {
				p.flush()
				p.section = sectionTitle(text)
				continue
			}
			// Continuation: append to the open item's description.
			if p.current != nil {
				if p.current.Description != "" {
					p.current.Description += " "
				}
				p.current.Description += text
			}
			continue
		}

		if addonShape {
			head = cleanAddonName(head)
			fragments = markAddonFragments(fragments)
		}
		if head == "" {
			// Price-only line: prices for the item opened above.
			if p.current != nil {
				p.current.PriceFragments = append(p.current.PriceFragments, fragments...)
			}
			continue
		}
		p.flush()
		p.current = &RawItem{
			Name:           head,
			PriceFragments: fragments,
			SectionHint:    p.section,
			SourceURL:      p.opts.SourceURL,
		}
	}
	p.flush()
	return p.items
}

func (p *itemParser) flush() {
	if p.current != nil && p.current.Name != "" {
		p.items = append(p.items, *p.current)
	}
	p.current = nil
}

func (p *itemParser) emitSegmented(seg *SegmentedItem) {
	name := strings.TrimSpace(seg.Name)
	if name == "" {
		return
	}
	section := strings.TrimSpace(seg.Section)
	if section == "" {
		section = p.section
	} else {
		p.section = section
	}
	item := RawItem{
		Name:        name,
		Description: strings.TrimSpace(seg.Description),
		SectionHint: section,
		SourceURL:   p.opts.SourceURL,
	}
	if price := strings.TrimSpace(seg.Price); price != "" {
		item.PriceFragments = []string{price}
	}
	p.items = append(p.items, item)
}

// priceOnlyAhead reports whether a price-only line appears within depth
// lines, with nothing but plain continuation lines in between.
func (p *itemParser) priceOnlyAhead(i int, depth int) bool {
	for j := i + 1; j <= i+depth && j < len(p.corpus); j++ {
		next := p.corpus[j]
		if next.PreParsed() {
			return false
		}
		text := strings.TrimSpace(next.Text)
		if text == "" || p.opts.Denylist.Match(text) {
			return false
		}
		head, _, ok := p.scanner.SplitPriceTail(text, addonPrefixRe.MatchString(text))
		if ok {
			return head == ""
		}
		if p.isSectionHeader(next, text) {
			return false
		}
	}
	return false
}

// isSectionHeader classifies a price-less line as a section header: short
// all-caps text, an outsized font hint, or a short bold line.
func (p *itemParser) isSectionHeader(line Line, text string) bool {
	words := len(strings.Fields(text))
	if line.FontSize >= sectionMinFontSize && words <= 6 {
		return true
	}
	if line.Bold && words <= 4 {
		return true
	}
	return isAllCaps(text) && words <= 4
}

// isAllCaps reports whether the text has letters and no lowercase ones.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// sectionTitle strips decorative framing from a section header line,
// e.g. "-SHARED-" becomes "SHARED".
func sectionTitle(text string) string {
	return strings.TrimSpace(strings.Trim(text, "-–—=*~ "))
}

// cleanAddonName strips the add-on marker from an item name:
// "+ Avocado" becomes "Avocado", "ADD CHICKEN" becomes "CHICKEN".
func cleanAddonName(head string) string {
	head = strings.TrimSpace(strings.TrimLeft(head, "+ "))
	for _, prefix := range []string{"add ", "Add ", "ADD ", "extra ", "Extra ", "EXTRA "} {
		if strings.HasPrefix(head, prefix) {
			return strings.TrimSpace(head[len(prefix):])
		}
	}
	return head
}

// markAddonFragments prefixes fragments from an add-on shaped line so the
// price normalizer tags them IsAddon even without an add-on section hint.
func markAddonFragments(fragments []string) []string {
	marked := make([]string, len(fragments))
	for i, f := range fragments {
		if addonPrefixRe.MatchString(f) {
			marked[i] = f
		} else {
			marked[i] = "add " + f
		}
	}
	return marked
}
