// Package trafilatura extracts the main content region from menu pages
// that provide no CSS selector hints.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/jwalczak/menuscan"
)

// Ensure Extractor implements menuscan.ContentExtractor at compile time.
var _ menuscan.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to locate a page's main content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the page title and the
// main content region rendered back to HTML.
func (e *Extractor) ExtractContent(rawHTML string) (string, string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", "", menuscan.Errorf(menuscan.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", menuscan.Errorf(menuscan.EEXTRACTION, "trafilatura: %s", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return "", "", err
		}
	}

	return result.Metadata.Title, contentHTML, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
