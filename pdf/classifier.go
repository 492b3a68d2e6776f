package pdf

import (
	"strings"

	"github.com/jwalczak/menuscan"
)

// Classifier routes a fetched resource to an extraction strategy based on
// its sniffed content type, probing PDF bodies for embedded text.
type Classifier struct {
	// MinCharsPerPage is the density threshold separating text PDFs
	// from scanned ones. Zero means DefaultMinCharsPerPage.
	MinCharsPerPage int
}

var _ menuscan.SourceClassifier = (*Classifier)(nil)

// NewClassifier returns a Classifier with the default density threshold.
func NewClassifier() *Classifier {
	return &Classifier{MinCharsPerPage: DefaultMinCharsPerPage}
}

// Classify never fails; resources it cannot positively identify fall
// through to the most general strategy for their shape.
func (c *Classifier) Classify(res *menuscan.Resource) menuscan.Strategy {
	typ := res.SniffedType()
	switch {
	case typ == "text/html" || typ == "application/xhtml+xml":
		return menuscan.StrategyHTML
	case typ == "application/pdf":
		return c.classifyPDF(res.Body)
	case strings.HasPrefix(typ, "image/"):
		return menuscan.StrategyImage
	default:
		return menuscan.StrategyImage
	}
}

func (c *Classifier) classifyPDF(body []byte) menuscan.Strategy {
	min := c.MinCharsPerPage
	if min == 0 {
		min = DefaultMinCharsPerPage
	}
	res, err := probe(body)
	if err != nil || res.charsPerPage() < min {
		return menuscan.StrategyPDFImage
	}
	return menuscan.StrategyPDFText
}
