package menuscan

import "context"

// VisionResult is the response of the vision capability for one image:
// pre-segmented items when the capability could structure the menu, or
// free text to be parsed like any other text corpus.
type VisionResult struct {
	// Items holds structured menu fields when available. Noisy and
	// incomplete entries are possible and tolerated downstream.
	Items []SegmentedItem

	// Text holds the raw recognized text when the capability could not
	// structure the menu. Ignored when Items is non-empty.
	Text string
}

// Vision is the external OCR/LLM capability: it converts a menu image
// into rough line items with approximate fields. Rate-limited and
// fallible; throttling surfaces as EUNAVAILABLE. Retry and backoff
// belong to the implementing client, never to the pipeline.
type Vision interface {
	ExtractMenu(ctx context.Context, image []byte, mimeType string) (*VisionResult, error)
}

// Rasterizer renders PDF pages to images for the vision capability.
type Rasterizer interface {
	// RasterizePages renders each page to an encoded PNG image.
	RasterizePages(pdf []byte) ([][]byte, error)
}

// CallLimiter paces calls to a rate-limited external capability.
type CallLimiter interface {
	// Wait blocks until the limiter allows the next call, or returns
	// the context's error if it is canceled first.
	Wait(ctx context.Context) error
}
