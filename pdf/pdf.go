// Package pdf provides PDF-based source classification and text
// extraction using github.com/ledongthuc/pdf. Scanned or image-only
// PDFs fail the textual-density probe and are routed to the vision
// strategy instead.
package pdf

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// DefaultMinCharsPerPage is the textual-density threshold below which a
// PDF is treated as scanned images rather than embedded text.
const DefaultMinCharsPerPage = 200

// probeResult summarizes the text content of a PDF.
type probeResult struct {
	pages int
	chars int
}

// charsPerPage returns the average character density.
func (p probeResult) charsPerPage() int {
	if p.pages == 0 {
		return 0
	}
	return p.chars / p.pages
}

// probe walks every page and counts decodable characters. The underlying
// library panics on malformed font tables, so a failed decode is reported
// as an error rather than a crash; callers treat that as "not a text PDF".
func probe(raw []byte) (res probeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errUndecodable
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return probeResult{}, err
	}

	res.pages = reader.NumPage()
	for i := 1; i <= res.pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, t := range page.Content().Text {
			res.chars += len(t.S)
		}
	}
	return res, nil
}

type undecodableError struct{}

func (undecodableError) Error() string { return "pdf: undecodable content" }

var errUndecodable = undecodableError{}
