package main

import (
	"context"
	"io"

	"github.com/jwalczak/menuscan"
	menuhttp "github.com/jwalczak/menuscan/http"
	"github.com/jwalczak/menuscan/pipeline"
	"github.com/jwalczak/menuscan/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	DB          *sqlite.DB
	Restaurants menuscan.RestaurantService
	MenuItems   menuscan.MenuItemService
	Sitemaps    *menuhttp.SitemapService
	Pipeline    *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape   ScrapeCmd   `cmd:"" help:"Scrape menus for a restaurant (or all configured restaurants)"`
	List     ListCmd     `cmd:"" help:"List stored restaurants and their item counts"`
	Export   ExportCmd   `cmd:"" help:"Export stored menu items to CSV or JSON"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a restaurant and its menu items"`
	Discover DiscoverCmd `cmd:"" help:"Discover candidate menu URLs from a site's sitemap"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Name        string `arg:"" optional:"" help:"Restaurant name from the sites config"`
	Sites       string `short:"s" default:"sites.json" help:"Path to the sites config JSON"`
	All         bool   `help:"Scrape every restaurant in the config"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent restaurant limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name   string `arg:"" optional:"" help:"Restaurant name (all restaurants when omitted)"`
	Format string `default:"csv" enum:"csv,json" help:"Output format"`
	Out    string `short:"o" help:"Output path (defaults to menu_items.<format>)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Restaurant name"`
	Force bool   `help:"Confirm deletion"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL      string   `arg:"" help:"Site base URL"`
	Patterns []string `short:"p" help:"URL substring patterns (defaults to menu keywords)"`
}
