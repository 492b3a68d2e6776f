// Package rod loads menu pages that only render their content
// client-side, using Chrome browser automation.
package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/jwalczak/menuscan"
)

// Ensure Loader implements menuscan.ResourceLoader at compile time.
var _ menuscan.ResourceLoader = (*Loader)(nil)

// Loader retrieves rendered HTML resources using a headless Chrome
// browser. Loader is safe for concurrent use by multiple goroutines.
type Loader struct {
	browser *rod.Browser
}

// NewLoader launches a headless Chrome browser. Close must be called when
// the Loader is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewLoader() (*Loader, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Loader{browser: browser}, nil
}

// Load navigates to the URL, waits for JavaScript to render, and returns
// the rendered DOM as an HTML resource.
func (l *Loader) Load(ctx context.Context, url string) (*menuscan.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := l.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, menuscan.Errorf(menuscan.EUNAVAILABLE, "rod: open page: %s", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, menuscan.Errorf(menuscan.EUNAVAILABLE, "rod: navigate %s: %s", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, menuscan.Errorf(menuscan.EUNAVAILABLE, "rod: load %s: %s", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, menuscan.Errorf(menuscan.EUNAVAILABLE, "rod: read DOM %s: %s", url, err)
	}

	return &menuscan.Resource{
		URL:         url,
		ContentType: "text/html",
		Body:        []byte(html),
	}, nil
}

// Close releases browser resources.
func (l *Loader) Close() error {
	return l.browser.Close()
}
