package menuscan

// PriceLocale configures currency and number conventions for price parsing.
type PriceLocale struct {
	// Symbol is the currency symbol, e.g. "$".
	Symbol string `json:"symbol"`

	// Code is the ISO currency code attached to parsed prices, e.g. "USD".
	Code string `json:"code"`

	// DecimalComma reports whether the locale writes decimals with a
	// comma ("12,50") instead of a point.
	DecimalComma bool `json:"decimalComma,omitempty"`
}

// DefaultPriceLocale returns the US dollar locale.
func DefaultPriceLocale() PriceLocale {
	return PriceLocale{Symbol: "$", Code: "USD"}
}

// SiteConfig is the declarative per-restaurant configuration driving the
// pipeline: one parameterized pipeline replaces per-site code.
type SiteConfig struct {
	Restaurant Restaurant `json:"restaurant"`

	// Sources are the menu documents to process, in order.
	Sources []SourceConfig `json:"sources"`

	// Selectors are CSS selector hints for HTML sources. Empty means the
	// generic main-content fallback.
	Selectors []string `json:"selectors,omitempty"`

	// DenyPhrases extends the default boilerplate denylist.
	DenyPhrases []string `json:"denyPhrases,omitempty"`

	// Locale overrides the default price locale when non-zero.
	Locale *PriceLocale `json:"locale,omitempty"`

	// MinCharsPerPage overrides the classifier's PDF text-density
	// threshold when positive.
	MinCharsPerPage int `json:"minCharsPerPage,omitempty"`
}

// SourceConfig describes one menu document to fetch and process.
type SourceConfig struct {
	URL string `json:"url"`

	// Render forces browser rendering for JS-built pages.
	Render bool `json:"render,omitempty"`

	// MenuName tags items from this source, e.g. "Dinner Menu".
	MenuName string `json:"menuName,omitempty"`

	// Location tags items for multi-location venues.
	Location string `json:"location,omitempty"`
}

// Validate returns an error if the site config is unusable.
func (c *SiteConfig) Validate() error {
	if err := c.Restaurant.Validate(); err != nil {
		return err
	}
	if len(c.Sources) == 0 {
		return Errorf(EINVALID, "site config for %q has no sources", c.Restaurant.Name)
	}
	for _, s := range c.Sources {
		if s.URL == "" {
			return Errorf(EINVALID, "site config for %q has a source without a URL", c.Restaurant.Name)
		}
	}
	return nil
}

// PriceLocaleOrDefault returns the configured locale or the default.
func (c *SiteConfig) PriceLocaleOrDefault() PriceLocale {
	if c.Locale != nil {
		return *c.Locale
	}
	return DefaultPriceLocale()
}
