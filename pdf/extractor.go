package pdf

import (
	"bytes"
	"context"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jwalczak/menuscan"
)

// Extractor builds a line corpus from a PDF's embedded text, preserving
// per-line font size and weight so the parser can tell section headers
// from item rows.
type Extractor struct{}

var _ menuscan.CorpusExtractor = (*Extractor)(nil)

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// yTolerance groups glyphs whose baselines differ by at most this many
// points into the same visual line.
const yTolerance = 2.0

// indentStep is the horizontal offset, in points, treated as one level
// of indentation.
const indentStep = 36.0

// Extract decodes every page's glyph runs into ordered lines.
func (e *Extractor) Extract(ctx context.Context, res *menuscan.Resource) (corpus menuscan.LineCorpus, err error) {
	defer func() {
		if r := recover(); r != nil {
			corpus, err = nil, menuscan.Errorf(menuscan.EEXTRACTION, "pdf: undecodable content in %s", res.URL)
		}
	}()

	reader, rerr := pdf.NewReader(bytes.NewReader(res.Body), int64(len(res.Body)))
	if rerr != nil {
		return nil, menuscan.Errorf(menuscan.EEXTRACTION, "pdf: open %s: %s", res.URL, rerr)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		corpus = append(corpus, pageLines(page.Content().Text, i)...)
	}
	return corpus, nil
}

// pageLines groups a page's glyphs into lines ordered top to bottom.
func pageLines(texts []pdf.Text, page int) menuscan.LineCorpus {
	if len(texts) == 0 {
		return nil
	}

	sort.SliceStable(texts, func(i, j int) bool {
		if math.Abs(texts[i].Y-texts[j].Y) > yTolerance {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	minX := texts[0].X
	for _, t := range texts {
		if t.X < minX {
			minX = t.X
		}
	}

	var lines menuscan.LineCorpus
	var run []pdf.Text
	flush := func() {
		if line, ok := buildLine(run, minX, page); ok {
			lines = append(lines, line)
		}
		run = run[:0]
	}
	for _, t := range texts {
		if len(run) > 0 && math.Abs(t.Y-run[len(run)-1].Y) > yTolerance {
			flush()
		}
		run = append(run, t)
	}
	flush()
	return lines
}

func buildLine(run []pdf.Text, pageMinX float64, page int) (menuscan.Line, bool) {
	if len(run) == 0 {
		return menuscan.Line{}, false
	}

	var b strings.Builder
	sizes := make(map[float64]int)
	bold := false
	prevEnd := run[0].X
	for _, t := range run {
		// A wide horizontal gap between glyph runs is a space the
		// content stream never encoded.
		if t.X-prevEnd > t.FontSize*0.3 && b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
		sizes[t.FontSize] += len(t.S)
		if strings.Contains(t.Font, "Bold") {
			bold = true
		}
	}

	text := strings.Join(strings.Fields(b.String()), " ")
	if text == "" {
		return menuscan.Line{}, false
	}

	var size float64
	var best int
	for s, n := range sizes {
		if n > best || (n == best && s > size) {
			size, best = s, n
		}
	}

	indent := int((run[0].X - pageMinX) / indentStep)
	if indent < 0 {
		indent = 0
	}
	return menuscan.Line{
		Text:     text,
		FontSize: size,
		Bold:     bold,
		Indent:   indent,
		Page:     page,
	}, true
}
