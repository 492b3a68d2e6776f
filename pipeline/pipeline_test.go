package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalczak/menuscan"
	"github.com/jwalczak/menuscan/mock"
	"github.com/jwalczak/menuscan/pipeline"
)

func htmlCorpus() menuscan.LineCorpus {
	return menuscan.LineCorpus{
		{Text: "STARTERS", Bold: true},
		{Text: "Crispy Calamari $14.00"},
		{Text: "Beet Salad $12.00"},
	}
}

// newTestPipeline returns a pipeline whose loader serves the given bodies
// by URL and whose HTML extractor yields a fixed corpus.
func newTestPipeline(bodies map[string][]byte) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Loader: &mock.ResourceLoader{
			LoadFn: func(_ context.Context, url string) (*menuscan.Resource, error) {
				body, ok := bodies[url]
				if !ok {
					return nil, menuscan.Errorf(menuscan.EUNAVAILABLE, "http: 404 for %s", url)
				}
				return &menuscan.Resource{URL: url, ContentType: "text/html", Body: body}, nil
			},
		},
		Classifier: &mock.SourceClassifier{
			ClassifyFn: func(*menuscan.Resource) menuscan.Strategy { return menuscan.StrategyHTML },
		},
		HTML: func([]string) menuscan.CorpusExtractor {
			return &mock.CorpusExtractor{
				ExtractFn: func(_ context.Context, res *menuscan.Resource) (menuscan.LineCorpus, error) {
					return htmlCorpus(), nil
				},
			}
		},
	}
}

func testSite(urls ...string) *menuscan.SiteConfig {
	site := &menuscan.SiteConfig{
		Restaurant: menuscan.Restaurant{Name: "The Wishing Well", URL: "https://example.com"},
	}
	for _, u := range urls {
		site.Sources = append(site.Sources, menuscan.SourceConfig{URL: u})
	}
	return site
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(map[string][]byte{
		"https://example.com/menu": []byte("<html>menu</html>"),
	})

	result, err := p.Run(context.Background(), testSite("https://example.com/menu"))

	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Crispy Calamari", result.Items[0].Name)
	assert.Equal(t, "STARTERS", result.Items[0].Section)
	assert.Equal(t, "The Wishing Well", result.Items[0].RestaurantName)
}

func TestPipeline_FailureIsolation(t *testing.T) {
	t.Parallel()

	// Three sources, the middle one unreachable. The other two must
	// still produce items, and the failure must be recorded.
	bodies := map[string][]byte{
		"https://example.com/a": []byte("<html>a</html>"),
		"https://example.com/c": []byte("<html>c</html>"),
	}
	p := newTestPipeline(bodies)

	result, err := p.Run(context.Background(), testSite(
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	))

	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "https://example.com/b", result.Failures[0].URL)
	assert.Equal(t, menuscan.EUNAVAILABLE, menuscan.ErrorCode(result.Failures[0].Err))
	assert.NotEmpty(t, result.Items)
}

func TestPipeline_SkipsDuplicateResources(t *testing.T) {
	t.Parallel()

	extractions := 0
	p := newTestPipeline(map[string][]byte{
		"https://example.com/menu":     []byte("<html>same</html>"),
		"https://example.com/menu-alt": []byte("<html>same</html>"),
	})
	p.HTML = func([]string) menuscan.CorpusExtractor {
		return &mock.CorpusExtractor{
			ExtractFn: func(context.Context, *menuscan.Resource) (menuscan.LineCorpus, error) {
				extractions++
				return htmlCorpus(), nil
			},
		}
	}

	result, err := p.Run(context.Background(), testSite(
		"https://example.com/menu",
		"https://example.com/menu-alt",
	))

	require.NoError(t, err)
	assert.Equal(t, 1, extractions)
	assert.Len(t, result.Items, 2)
}

func TestPipeline_Deterministic(t *testing.T) {
	t.Parallel()

	run := func() *pipeline.Result {
		p := newTestPipeline(map[string][]byte{
			"https://example.com/menu": []byte("<html>menu</html>"),
		})
		result, err := p.Run(context.Background(), testSite("https://example.com/menu"))
		require.NoError(t, err)
		return result
	}

	first, second := run(), run()
	require.Len(t, second.Items, len(first.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].Name, second.Items[i].Name)
		assert.Equal(t, first.Items[i].Prices, second.Items[i].Prices)
	}
}

func TestPipeline_InvalidSite(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(nil)

	_, err := p.Run(context.Background(), &menuscan.SiteConfig{})

	require.Error(t, err)
	assert.Equal(t, menuscan.EINVALID, menuscan.ErrorCode(err))
}

func TestPipeline_RenderLoaderUsedForRenderSources(t *testing.T) {
	t.Parallel()

	var renderCalls int
	p := newTestPipeline(map[string][]byte{
		"https://example.com/menu": []byte("<html>static</html>"),
	})
	p.RenderLoader = &mock.ResourceLoader{
		LoadFn: func(_ context.Context, url string) (*menuscan.Resource, error) {
			renderCalls++
			return &menuscan.Resource{URL: url, ContentType: "text/html", Body: []byte("<html>rendered</html>")}, nil
		},
	}

	site := testSite()
	site.Sources = []menuscan.SourceConfig{{URL: "https://example.com/app-menu", Render: true}}

	_, err := p.Run(context.Background(), site)

	require.NoError(t, err)
	assert.Equal(t, 1, renderCalls)
}

func TestPipeline_RunAll(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(map[string][]byte{
		"https://a.example.com/menu": []byte("<html>a</html>"),
		"https://b.example.com/menu": []byte("<html>b</html>"),
	})

	sites := []*menuscan.SiteConfig{
		{
			Restaurant: menuscan.Restaurant{Name: "A", URL: "https://a.example.com"},
			Sources:    []menuscan.SourceConfig{{URL: "https://a.example.com/menu"}},
		},
		{
			Restaurant: menuscan.Restaurant{Name: "B", URL: "https://b.example.com"},
			Sources:    []menuscan.SourceConfig{{URL: "https://b.example.com/menu"}},
		},
	}

	results, err := p.RunAll(context.Background(), sites, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Site.Restaurant.Name)
	assert.Equal(t, "B", results[1].Site.Restaurant.Name)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.NotEmpty(t, r.Result.Items)
	}
}
