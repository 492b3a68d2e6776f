package main

import (
	"fmt"

	"github.com/jwalczak/menuscan"
)

// Run executes the scrape command. Each restaurant's stored items are
// replaced only after its whole run completes; a restaurant whose every
// source failed keeps its previously stored menu.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	sites, err := LoadSites(c.Sites)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	selected, err := selectSites(sites, c.Name, c.All)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuscan.ErrorMessage(err))
		return err
	}

	results, err := deps.Pipeline.RunAll(deps.Ctx, selected, c.Concurrency)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		name := r.Site.Restaurant.Name
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: %s\n", name, menuscan.ErrorMessage(r.Err))
			continue
		}

		for _, f := range r.Result.Failures {
			fmt.Fprintf(deps.Stderr, "%s: source %s failed: %s\n", name, f.URL, menuscan.ErrorMessage(f.Err))
		}

		if len(r.Result.Items) == 0 && len(r.Result.Failures) > 0 {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: no sources succeeded, keeping stored menu\n", name)
			continue
		}

		if err := c.commit(deps, r.Site.Restaurant, r.Result.Items); err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: %s\n", name, menuscan.ErrorMessage(err))
			continue
		}

		fmt.Fprintf(deps.Stdout, "%s: %d items (%d sources failed)\n",
			name, len(r.Result.Items), len(r.Result.Failures))
	}

	if failed > 0 {
		return menuscan.Errorf(menuscan.EINTERNAL, "%d of %d restaurants failed", failed, len(results))
	}
	return nil
}

// commit stores the scraped items, creating the restaurant on first run.
func (c *ScrapeCmd) commit(deps *Dependencies, restaurant menuscan.Restaurant, items []*menuscan.MenuItem) error {
	stored, err := deps.Restaurants.FindRestaurantByName(deps.Ctx, restaurant.Name)
	if menuscan.ErrorCode(err) == menuscan.ENOTFOUND {
		stored = &menuscan.Restaurant{Name: restaurant.Name, URL: restaurant.URL}
		if err := deps.Restaurants.CreateRestaurant(deps.Ctx, stored); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return deps.MenuItems.ReplaceMenuItems(deps.Ctx, stored.ID, items)
}
