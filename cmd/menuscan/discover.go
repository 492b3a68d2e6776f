package main

import (
	"fmt"

	"github.com/jwalczak/menuscan"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	urls, err := deps.Sitemaps.DiscoverMenuURLs(deps.Ctx, c.URL, menuscan.URLFilter{Patterns: c.Patterns})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuscan.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No menu-shaped URLs found.")
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
