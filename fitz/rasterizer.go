// Package fitz rasterizes PDF pages into PNG images for vision-based
// extraction, using github.com/gen2brain/go-fitz.
package fitz

import (
	"bytes"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/jwalczak/menuscan"
)

// Rasterizer renders each page of a PDF to a PNG image.
type Rasterizer struct{}

var _ menuscan.Rasterizer = (*Rasterizer)(nil)

// NewRasterizer returns a Rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// RasterizePages renders every page in order. Pages are returned as
// PNG-encoded bytes.
func (r *Rasterizer) RasterizePages(pdf []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, menuscan.Errorf(menuscan.EEXTRACTION, "fitz: open document: %s", err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, menuscan.Errorf(menuscan.EEXTRACTION, "fitz: render page %d: %s", i+1, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, menuscan.Errorf(menuscan.EINTERNAL, "fitz: encode page %d: %s", i+1, err)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
