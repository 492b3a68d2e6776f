// Package goquery extracts line corpora from HTML menu pages, using CSS
// selector hints when a site provides them.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jwalczak/menuscan"
)

// Ensure Extractor implements menuscan.CorpusExtractor at compile time.
var _ menuscan.CorpusExtractor = (*Extractor)(nil)

// Extractor builds a line corpus from an HTML resource. When Selectors
// match, only those regions are read; otherwise the main content located
// by the fallback extractor is used.
type Extractor struct {
	converter menuscan.Converter
	content   menuscan.ContentExtractor

	// Selectors are site-specific CSS hints pointing at menu regions.
	Selectors []string
}

// NewExtractor creates an Extractor. The content extractor is used as a
// fallback when no selector matches and may be nil if selectors are
// guaranteed to match.
func NewExtractor(converter menuscan.Converter, content menuscan.ContentExtractor) *Extractor {
	return &Extractor{converter: converter, content: content}
}

// WithSelectors returns a copy of the extractor scoped to the given
// selector hints.
func (e *Extractor) WithSelectors(selectors []string) *Extractor {
	scoped := *e
	scoped.Selectors = selectors
	return &scoped
}

// Extract parses the resource body and converts the selected regions to
// an ordered line corpus.
func (e *Extractor) Extract(ctx context.Context, res *menuscan.Resource) (menuscan.LineCorpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rawHTML := string(res.Body)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, menuscan.Errorf(menuscan.EEXTRACTION, "goquery: parse %s: %s", res.URL, err)
	}

	regions := e.selectRegions(doc)
	if len(regions) == 0 {
		region, err := e.fallbackRegion(rawHTML, res.URL)
		if err != nil {
			return nil, err
		}
		regions = []string{region}
	}

	var corpus menuscan.LineCorpus
	for _, region := range regions {
		markdown, err := e.converter.Convert(region)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, menuscan.LinesFromMarkdown(markdown, 1)...)
	}
	if len(corpus) == 0 {
		return nil, menuscan.Errorf(menuscan.EEXTRACTION, "goquery: no text content in %s", res.URL)
	}
	return corpus, nil
}

// selectRegions returns the outer HTML of every node matched by the
// selector hints, in document order per selector.
func (e *Extractor) selectRegions(doc *goquery.Document) []string {
	var regions []string
	for _, selector := range e.Selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if strings.TrimSpace(sel.Text()) == "" {
				return
			}
			if outer, err := goquery.OuterHtml(sel); err == nil {
				regions = append(regions, outer)
			}
		})
	}
	return regions
}

func (e *Extractor) fallbackRegion(rawHTML, url string) (string, error) {
	if e.content == nil {
		return "", menuscan.Errorf(menuscan.EEXTRACTION, "goquery: no selector matched %s", url)
	}
	_, contentHTML, err := e.content.ExtractContent(rawHTML)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(contentHTML) == "" {
		return "", menuscan.Errorf(menuscan.EEXTRACTION, "goquery: no main content in %s", url)
	}
	return contentHTML, nil
}
