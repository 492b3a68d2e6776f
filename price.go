package menuscan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxPlausiblePrice bounds bare numbers accepted as prices when no
// currency marker or decimal point is present. Keeps phone numbers,
// street numbers, and years out of price lists.
const maxPlausiblePrice = 500

// sizeVocabulary matches the size/quantity labels that commonly precede a
// bare price number ("Small 8", "Cup 6.99", "5 for 12").
const sizeVocabulary = `(?:small|medium|large|cup|bowl|crock|glass|bottle|pint|half|full|single|double|dozen|two\s+dozen|each|sm|med|lg|[SML])`

var (
	addonPrefixRe  = regexp.MustCompile(`(?i)^\s*(?:\+|add\b|extra\b)`)
	addonSectionRe = regexp.MustCompile(`(?i)\b(?:add[\s-]?ons?|extras?|additions?|toppings)\b`)
	fragmentSplit  = regexp.MustCompile(`\s*(?:/|\||,\s+or\s+|\bor\b)\s*`)
)

// IsAddonSection reports whether a section hint names an add-on/extras
// section. Items under such sections carry add-on prices, never
// alternative sizes of a base item.
func IsAddonSection(section string) bool {
	return addonSectionRe.MatchString(section)
}

// codeForSymbol returns the ISO currency code for a locale that declares
// only a symbol, so parsed prices never carry an empty currency.
func codeForSymbol(symbol string) string {
	switch symbol {
	case "€":
		return "EUR"
	case "£":
		return "GBP"
	case "¥":
		return "JPY"
	default:
		return "USD"
	}
}

// priceScanner holds the locale-compiled patterns used by both the item
// parser (trailing-price detection) and the price normalizer.
type priceScanner struct {
	loc PriceLocale

	// marked matches amounts with explicit currency evidence: a symbol
	// or code, or a full decimal amount ("$12", "USD 12", "12.00").
	marked *regexp.Regexp

	// labeled matches a size-vocabulary label followed by a bare amount
	// ("Small 8", "Cup 6.99").
	labeled *regexp.Regexp

	// amount extracts the numeric part of a token.
	amount *regexp.Regexp

	// bareTail matches a bare trailing number, accepted only on add-on
	// shaped lines ("+ Avocado 2").
	bareTail *regexp.Regexp
}

func newPriceScanner(loc PriceLocale) *priceScanner {
	if loc.Symbol == "" {
		loc.Symbol = DefaultPriceLocale().Symbol
	}
	if loc.Code == "" {
		loc.Code = codeForSymbol(loc.Symbol)
	}
	sym := regexp.QuoteMeta(loc.Symbol)
	code := regexp.QuoteMeta(loc.Code)
	dec := `\.`
	if loc.DecimalComma {
		dec = `,`
	}
	num := `\d{1,4}(?:` + dec + `\d{1,2})?`
	return &priceScanner{
		loc:      loc,
		marked:   regexp.MustCompile(fmt.Sprintf(`(?:%s\s*%s|\b%s\s*%s|\b\d{1,4}%s\d{2}\b)`, sym, num, code, num, dec)),
		labeled:  regexp.MustCompile(fmt.Sprintf(`(?i)(?:\b%s\b|\b\d+\s+for\b)[\s:–-]*(?:%s\s*)?%s`, sizeVocabulary, sym, num)),
		amount:   regexp.MustCompile(`\d{1,4}(?:` + dec + `\d{1,2})?`),
		bareTail: regexp.MustCompile(num + `\s*$`),
	}
}

// tokenAt returns whether the text contains a price token and the span of
// the earliest token found by either pattern.
func (s *priceScanner) findTokens(text string) [][]int {
	spans := s.marked.FindAllStringIndex(text, -1)
	for _, l := range s.labeled.FindAllStringIndex(text, -1) {
		overlap := false
		for _, m := range spans {
			if l[0] < m[1] && m[0] < l[1] {
				overlap = true
				break
			}
		}
		if !overlap {
			spans = append(spans, l)
		}
	}
	sortSpans(spans)
	return spans
}

func sortSpans(spans [][]int) {
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j][0] < spans[j-1][0]; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
}

// trailingDelimiters may separate price tokens within one tail.
var tailGapRe = regexp.MustCompile(`^[\s/|,&–—-]*$`)

// unpricedTailRe matches "no price printed" markers. Lines ending in one
// open an item whose price is flagged unresolved rather than dropped.
var unpricedTailRe = regexp.MustCompile(`(?i)\b(?:market\s+price|m\.?p\.?|price\s+varies|ask\s+your\s+server)\s*$`)

// SplitPriceTail splits a corpus line into its non-price head and the
// price fragments at its end. ok is false when the line carries no
// trailing price pattern. Multi-price tails are split on delimiters in
// encounter order, each fragment keeping its preceding label token.
func (s *priceScanner) SplitPriceTail(line string, addonShape bool) (head string, fragments []string, ok bool) {
	text := strings.TrimRight(strings.TrimSpace(line), " .)")
	if text == "" {
		return "", nil, false
	}

	spans := s.findTokens(text)
	if len(spans) == 0 && addonShape {
		// Add-on lines accept a bare trailing number: "+ Avocado 2".
		if m := s.bareTail.FindStringIndex(text); m != nil {
			spans = [][]int{m}
		}
	}
	if len(spans) == 0 {
		if m := unpricedTailRe.FindStringIndex(text); m != nil {
			head = strings.Trim(strings.TrimSpace(text[:m[0]]), "-–—…. ")
			if head == "" {
				return "", nil, false
			}
			return head, []string{strings.TrimSpace(text[m[0]:])}, true
		}
		return "", nil, false
	}

	// The last token must close the line.
	last := spans[len(spans)-1]
	if !tailGapRe.MatchString(text[last[1]:]) {
		return "", nil, false
	}

	// Extend the tail backward while the gaps between tokens hold only
	// delimiters.
	start := last[0]
	for i := len(spans) - 2; i >= 0; i-- {
		gap := text[spans[i][1]:start]
		if !tailGapRe.MatchString(gap) {
			break
		}
		start = spans[i][0]
	}

	head = strings.Trim(strings.TrimSpace(text[:start]), "-–—…. ")
	tail := strings.TrimSpace(text[start:])
	for _, part := range fragmentSplit.Split(tail, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			fragments = append(fragments, part)
		}
	}
	if len(fragments) == 0 {
		return "", nil, false
	}
	return head, fragments, true
}

// NormalizePrices parses price fragments into price entries. Multi-size
// fragments are split on delimiters, each sub-fragment paired with its
// label by position. Fragments shaped like add-ons (leading "add"/"+"),
// or any fragment when addonHint is set, yield entries tagged IsAddon.
//
// unresolved reports that fragments were present but none parsed
// ("Market Price", "MP", "ASK YOUR SERVER"); the owning item keeps an
// empty price list and a flag rather than being dropped.
func NormalizePrices(fragments []string, loc PriceLocale, addonHint bool) (entries []PriceEntry, unresolved bool) {
	s := newPriceScanner(loc)
	for _, frag := range fragments {
		entries = append(entries, s.parseFragment(frag, addonHint)...)
	}
	return entries, len(fragments) > 0 && len(entries) == 0
}

func (s *priceScanner) parseFragment(fragment string, addonHint bool) []PriceEntry {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil
	}
	addon := addonHint || addonPrefixRe.MatchString(fragment)
	cleaned := addonPrefixRe.ReplaceAllString(fragment, "")

	parts := fragmentSplit.Split(cleaned, -1)
	var entries []PriceEntry
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entry, ok := s.parsePart(part, addon, len(parts) > 1)
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parsePart parses one delimiter-separated sub-fragment: an optional label
// followed by one amount. multi indicates the part came from a multi-price
// fragment, which counts as secondary evidence for bare numbers.
func (s *priceScanner) parsePart(part string, addon bool, multi bool) (PriceEntry, bool) {
	numSpans := s.amount.FindAllStringIndex(part, -1)
	if len(numSpans) == 0 {
		return PriceEntry{}, false
	}
	// The amount is the last number; earlier digits belong to the label
	// ("5 for $12", "Two Dozen - 32.99").
	numSpan := numSpans[len(numSpans)-1]
	numText := part[numSpan[0]:numSpan[1]]

	marked := s.marked.MatchString(part)
	decimalPoint := strings.ContainsAny(numText, ".,")
	label := strings.Trim(strings.TrimSpace(part[:numSpan[0]]), ":–—- ")
	label = strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(label, s.loc.Symbol)), "-")
	label = strings.TrimSpace(label)

	if s.loc.DecimalComma {
		numText = strings.Replace(numText, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(numText)
	if err != nil || !amount.IsPositive() {
		return PriceEntry{}, false
	}
	if !marked && !decimalPoint {
		// Bare integer: accept only with secondary evidence (a label,
		// sibling prices, or add-on shape) and a plausible magnitude.
		if !multi && label == "" && !addon {
			return PriceEntry{}, false
		}
		if amount.GreaterThan(decimal.NewFromInt(maxPlausiblePrice)) {
			return PriceEntry{}, false
		}
	}

	return PriceEntry{
		Label:    label,
		Amount:   amount,
		Currency: s.loc.Code,
		IsAddon:  addon,
	}, true
}
