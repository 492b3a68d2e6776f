package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/jwalczak/menuscan"
)

// SitemapService discovers candidate menu URLs from a site's sitemap.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverMenuURLs finds menu-shaped URLs from a site's sitemaps. Sitemap
// locations come from robots.txt with a /sitemap.xml fallback; nested
// sitemap indexes are followed. Returns an empty slice when the site has
// no sitemap.
func (s *SitemapService) DiscoverMenuURLs(ctx context.Context, baseURL string, filter menuscan.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, menuscan.Errorf(menuscan.EINVALID, "invalid base URL: %s", err)
	}
	base.Path = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, base)
	if err != nil {
		return nil, err
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	matched := []string{}
	for _, sitemapURL := range sitemapURLs {
		urls, err := s.readSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenURLs[u] || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// findSitemapURLs reads Sitemap directives from robots.txt, falling back
// to the conventional /sitemap.xml location.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robotsURL); err == nil {
		sitemaps := parseRobotsSitemaps(body)
		body.Close()
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	if body, err := s.get(ctx, sitemapURL); err == nil {
		body.Close()
		return []string{sitemapURL}, nil
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, nil
}

func parseRobotsSitemaps(body io.Reader) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// readSitemap parses one sitemap document, recursing into sitemap indexes.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, menuscan.Errorf(menuscan.EEXTRACTION, "parsing sitemap %s: %s", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	var urls []string
	switch root.Tag {
	case "urlset":
		for _, el := range root.FindElements("//url/loc") {
			if u := strings.TrimSpace(el.Text()); u != "" {
				urls = append(urls, u)
			}
		}
	case "sitemapindex":
		for _, el := range root.FindElements("//sitemap/loc") {
			nested := strings.TrimSpace(el.Text())
			if nested == "" {
				continue
			}
			nestedURLs, err := s.readSitemap(ctx, nested, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nestedURLs...)
		}
	}
	return urls, nil
}

func (s *SitemapService) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, menuscan.Errorf(menuscan.EUNAVAILABLE, "http: %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}
