package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/jwalczak/menuscan"
	"github.com/jwalczak/menuscan/fitz"
	"github.com/jwalczak/menuscan/gemini"
	menugoquery "github.com/jwalczak/menuscan/goquery"
	"github.com/jwalczak/menuscan/htmltomarkdown"
	menuhttp "github.com/jwalczak/menuscan/http"
	"github.com/jwalczak/menuscan/pdf"
	"github.com/jwalczak/menuscan/pipeline"
	"github.com/jwalczak/menuscan/rod"
	menuslog "github.com/jwalczak/menuscan/slog"
	"github.com/jwalczak/menuscan/sqlite"
	"github.com/jwalczak/menuscan/trafilatura"
)

// visionCallsPerSecond paces Gemini API calls.
const visionCallsPerSecond = 0.5

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RestaurantService menuscan.RestaurantService
	MenuItemService   menuscan.MenuItemService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("menuscan"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'menuscan --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MENUSCAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RestaurantService = sqlite.NewRestaurantService(m.DB)
	m.MenuItemService = sqlite.NewMenuItemService(m.DB)
	deps.DB = m.DB
	deps.Restaurants = m.RestaurantService
	deps.MenuItems = m.MenuItemService
	deps.Sitemaps = menuhttp.NewSitemapService(nil)

	if cmd == "scrape" {
		p, cleanup, err := m.buildPipeline(ctx, stderr, cli.Scrape)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Pipeline = p
	}

	return kongCtx.Run(deps)
}

// buildPipeline wires the extraction stack for the scrape command. The
// browser is launched only when a configured source needs rendering, and
// the Gemini client only when an API key is present.
func (m *Main) buildPipeline(ctx context.Context, stderr io.Writer, cmd ScrapeCmd) (*pipeline.Pipeline, func(), error) {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	sites, err := LoadSites(cmd.Sites)
	if err != nil {
		return nil, nil, err
	}
	selected, err := selectSites(sites, cmd.Name, cmd.All)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}

	htmlExtractor := menugoquery.NewExtractor(htmltomarkdown.NewConverter(), trafilatura.NewExtractor())
	p := &pipeline.Pipeline{
		Loader: menuhttp.NewLoader(),
		HTML: func(selectors []string) menuscan.CorpusExtractor {
			return menuslog.NewLoggingCorpusExtractor(htmlExtractor.WithSelectors(selectors), logger)
		},
		PDFText: menuslog.NewLoggingCorpusExtractor(pdf.NewExtractor(), logger),
		ClassifierFor: func(minCharsPerPage int) menuscan.SourceClassifier {
			return &pdf.Classifier{MinCharsPerPage: minCharsPerPage}
		},
		Vision: unavailableVision{},
		Logger: logger,
	}

	if needsRendering(selected) {
		browser, err := rod.NewLoader()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for render sources")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		cleanup = func() { browser.Close() }
		p.RenderLoader = browser
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			cleanup()
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		limiter := pipeline.NewCallLimiter(visionCallsPerSecond)
		vision := menuslog.NewLoggingVision(gemini.NewVision(client, limiter), logger)
		p.Vision = menuslog.NewLoggingCorpusExtractor(
			pipeline.NewVisionExtractor(vision, fitz.NewRasterizer()), logger)
	}

	return p, cleanup, nil
}

func needsRendering(sites []*menuscan.SiteConfig) bool {
	for _, site := range sites {
		for _, src := range site.Sources {
			if src.Render {
				return true
			}
		}
	}
	return false
}

// unavailableVision stands in when no Gemini API key is configured, so
// HTML and text-PDF sources still scrape while image sources fail with a
// clear message.
type unavailableVision struct{}

var _ menuscan.CorpusExtractor = unavailableVision{}

func (unavailableVision) Extract(_ context.Context, res *menuscan.Resource) (menuscan.LineCorpus, error) {
	return nil, menuscan.Errorf(menuscan.EUNAVAILABLE,
		"GEMINI_API_KEY not set, cannot extract image source %s. Get a key at https://aistudio.google.com/apikey", res.URL)
}

func defaultDBPath() string {
	if path := os.Getenv("MENUSCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "menuscan.db"
	}
	dir := filepath.Join(home, ".menuscan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "menuscan.db")
}
