// Package pipeline orchestrates menu scraping: it loads each configured
// source, classifies it, extracts a line corpus with the matching
// strategy, and parses and normalizes the result into deduplicated menu
// items. Restaurants are independent; sources within one restaurant are
// processed sequentially so item order stays deterministic.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/jwalczak/menuscan"
)

// HTMLExtractorFactory builds an HTML corpus extractor scoped to a site's
// CSS selector hints.
type HTMLExtractorFactory func(selectors []string) menuscan.CorpusExtractor

// Pipeline wires the extraction stages together. All fields except
// RenderLoader and Logger are required.
type Pipeline struct {
	Loader     menuscan.ResourceLoader
	Classifier menuscan.SourceClassifier
	HTML       HTMLExtractorFactory
	PDFText    menuscan.CorpusExtractor
	Vision     menuscan.CorpusExtractor

	// ClassifierFor, when set, builds a per-site classifier honoring the
	// site's MinCharsPerPage override; Classifier is used otherwise.
	ClassifierFor func(minCharsPerPage int) menuscan.SourceClassifier

	// RenderLoader serves sources marked Render; Loader is used when nil.
	RenderLoader menuscan.ResourceLoader

	Logger *slog.Logger
}

// Failure records one source that could not be processed. Failures never
// abort the rest of a restaurant's sources.
type Failure struct {
	URL string
	Err error
}

// Result holds the outcome of scraping one restaurant.
type Result struct {
	Items    []*menuscan.MenuItem
	Failures []Failure
}

// Run scrapes every source in the site config and returns the merged,
// deduplicated item list. A source that fails to load or extract is
// recorded as a Failure and skipped; Run itself only errors on an invalid
// config or a canceled context.
func (p *Pipeline) Run(ctx context.Context, site *menuscan.SiteConfig) (*Result, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	locale := site.PriceLocaleOrDefault()
	denylist := menuscan.NewDenylist(site.DenyPhrases...)
	logger := p.logger().With(slog.String("restaurant", site.Restaurant.Name))

	classifier := p.Classifier
	if p.ClassifierFor != nil {
		classifier = p.ClassifierFor(site.MinCharsPerPage)
	}

	result := &Result{}
	seen := make(map[string]string)
	var items []*menuscan.MenuItem

	for _, src := range site.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := p.load(ctx, src)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("load failed", slog.String("url", src.URL), slog.Any("err", err))
			result.Failures = append(result.Failures, Failure{URL: src.URL, Err: err})
			continue
		}
		res.MenuName = src.MenuName
		res.Location = src.Location

		// A skipped duplicate keeps the first source's MenuName and
		// Location tags; its own are discarded with it.
		hash := res.Hash()
		if first, ok := seen[hash]; ok {
			logger.Info("skipping duplicate resource",
				slog.String("url", src.URL),
				slog.String("first_url", first))
			continue
		}
		seen[hash] = src.URL

		strategy := classifier.Classify(res)
		corpus, err := p.extract(ctx, strategy, res, site)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("extraction failed",
				slog.String("url", src.URL),
				slog.String("strategy", string(strategy)),
				slog.Any("err", err))
			result.Failures = append(result.Failures, Failure{URL: src.URL, Err: err})
			continue
		}

		raws := menuscan.ParseItems(corpus, menuscan.ParseOptions{
			Denylist:  denylist,
			Locale:    locale,
			SourceURL: src.URL,
		})
		normalized := menuscan.NormalizeItems(raws, site.Restaurant, menuscan.NormalizeOptions{
			Denylist: denylist,
			Locale:   locale,
			MenuName: src.MenuName,
			Location: src.Location,
		})
		items = menuscan.MergeMenuItems(items, normalized...)

		logger.Info("source processed",
			slog.String("url", src.URL),
			slog.String("strategy", string(strategy)),
			slog.Int("lines", len(corpus)),
			slog.Int("items", len(normalized)))
	}

	result.Items = items
	return result, nil
}

func (p *Pipeline) load(ctx context.Context, src menuscan.SourceConfig) (*menuscan.Resource, error) {
	loader := p.Loader
	if src.Render && p.RenderLoader != nil {
		loader = p.RenderLoader
	}
	return loader.Load(ctx, src.URL)
}

func (p *Pipeline) extract(ctx context.Context, strategy menuscan.Strategy, res *menuscan.Resource, site *menuscan.SiteConfig) (menuscan.LineCorpus, error) {
	switch strategy {
	case menuscan.StrategyHTML:
		return p.HTML(site.Selectors).Extract(ctx, res)
	case menuscan.StrategyPDFText:
		return p.PDFText.Extract(ctx, res)
	case menuscan.StrategyPDFImage, menuscan.StrategyImage:
		return p.Vision.Extract(ctx, res)
	default:
		return nil, menuscan.Errorf(menuscan.EINTERNAL, "no extractor for strategy %q", strategy)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
