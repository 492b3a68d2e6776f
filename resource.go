package menuscan

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Strategy identifies the extraction strategy for a fetched resource.
type Strategy string

// Extraction strategies, one per source format.
const (
	StrategyHTML     Strategy = "html"
	StrategyPDFText  Strategy = "pdf_text"
	StrategyPDFImage Strategy = "pdf_image"
	StrategyImage    Strategy = "image"
)

// Resource is one fetched source document for a restaurant: raw bytes plus
// the declared content type and originating URL. Immutable once fetched;
// it is consumed exactly once by the pipeline and then discarded.
type Resource struct {
	// URL is the originating URL.
	URL string

	// ContentType is the declared MIME type (e.g. "text/html",
	// "application/pdf"). May be empty; SniffedType falls back to
	// content sniffing.
	ContentType string

	// Body holds the raw fetched bytes.
	Body []byte

	// MenuName is an optional hint for the menu this resource represents
	// (e.g. "Dinner Menu", "Wine List").
	MenuName string

	// Location is an optional venue location hint for multi-location
	// restaurants.
	Location string
}

// Validate returns an error if the resource cannot be processed.
func (r *Resource) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "resource URL required")
	}
	if len(r.Body) == 0 {
		return Errorf(EINVALID, "resource body required")
	}
	return nil
}

// Hash returns a stable content hash of the resource body. Resources with
// identical bytes produce identical hashes regardless of URL, which lets
// the pipeline skip documents fetched twice under different URLs.
func (r *Resource) Hash() string {
	return fmt.Sprintf("%016x", xxhash.Sum64(r.Body))
}

// SniffedType returns the effective MIME type of the resource: the declared
// type when present, otherwise a type sniffed from the leading bytes.
// Parameters (charset etc.) are stripped.
func (r *Resource) SniffedType() string {
	ct := strings.TrimSpace(strings.ToLower(r.ContentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if len(r.Body) >= 5 && string(r.Body[:5]) == "%PDF-" {
		return "application/pdf"
	}
	sniffed := http.DetectContentType(r.Body)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	return strings.TrimSpace(sniffed)
}

// SourceClassifier decides which extraction strategy applies to a resource.
// Implementations never fail on unrecognized input; the vision strategy is
// the most tolerant and serves as the fallback.
type SourceClassifier interface {
	Classify(res *Resource) Strategy
}

// ResourceLoader fetches a URL into a Resource. Implementations handle
// transient transport failures internally; an error from Load means the
// resource is unreachable for this run.
type ResourceLoader interface {
	Load(ctx context.Context, url string) (*Resource, error)
}
