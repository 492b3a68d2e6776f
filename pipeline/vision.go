package pipeline

import (
	"context"
	"strings"

	"github.com/jwalczak/menuscan"
)

// Ensure VisionExtractor implements menuscan.CorpusExtractor at compile time.
var _ menuscan.CorpusExtractor = (*VisionExtractor)(nil)

// VisionExtractor extracts line corpora from opaque resources: raw images
// go straight to the vision capability, scanned PDFs are rasterized page
// by page first. Structured responses yield pre-segmented lines the
// parser passes through unchanged; free-text responses yield plain lines
// the parser treats like extracted PDF text.
type VisionExtractor struct {
	vision     menuscan.Vision
	rasterizer menuscan.Rasterizer
}

// NewVisionExtractor creates a VisionExtractor. The rasterizer is only
// needed when PDF resources are expected and may be nil otherwise.
func NewVisionExtractor(vision menuscan.Vision, rasterizer menuscan.Rasterizer) *VisionExtractor {
	return &VisionExtractor{vision: vision, rasterizer: rasterizer}
}

// Extract sends the resource's images through the vision capability. A
// failed page fails the whole resource; partial transcriptions would
// silently drop menu items.
func (e *VisionExtractor) Extract(ctx context.Context, res *menuscan.Resource) (menuscan.LineCorpus, error) {
	typ := res.SniffedType()
	if typ == "application/pdf" {
		return e.extractPDF(ctx, res)
	}

	mimeType := typ
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/png"
	}
	vr, err := e.vision.ExtractMenu(ctx, res.Body, mimeType)
	if err != nil {
		return nil, err
	}
	return resultLines(vr, 1), nil
}

func (e *VisionExtractor) extractPDF(ctx context.Context, res *menuscan.Resource) (menuscan.LineCorpus, error) {
	if e.rasterizer == nil {
		return nil, menuscan.Errorf(menuscan.EINTERNAL, "no rasterizer configured for %s", res.URL)
	}
	pages, err := e.rasterizer.RasterizePages(res.Body)
	if err != nil {
		return nil, err
	}

	var corpus menuscan.LineCorpus
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vr, err := e.vision.ExtractMenu(ctx, page, "image/png")
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, resultLines(vr, i+1)...)
	}
	return corpus, nil
}

// resultLines converts one vision response into corpus lines. Structured
// items become pre-segmented lines; a free-text transcription becomes
// plain lines for the heuristic parser, the same shape a text PDF yields.
func resultLines(vr *menuscan.VisionResult, page int) menuscan.LineCorpus {
	if len(vr.Items) > 0 {
		return segmentedLines(vr.Items, page)
	}
	return textLines(vr.Text, page)
}

func textLines(text string, page int) menuscan.LineCorpus {
	var lines menuscan.LineCorpus
	for _, raw := range strings.Split(text, "\n") {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		lines = append(lines, menuscan.Line{Text: s, Page: page})
	}
	return lines
}

func segmentedLines(items []menuscan.SegmentedItem, page int) menuscan.LineCorpus {
	lines := make(menuscan.LineCorpus, 0, len(items))
	for i := range items {
		item := items[i]
		lines = append(lines, menuscan.Line{
			Text: item.Name,
			Page: page,
			Item: &item,
		})
	}
	return lines
}
