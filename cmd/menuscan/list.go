package main

import (
	"fmt"

	"github.com/jwalczak/menuscan"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	restaurants, err := deps.Restaurants.FindRestaurants(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuscan.ErrorMessage(err))
		return err
	}

	if len(restaurants) == 0 {
		fmt.Fprintln(deps.Stdout, "No restaurants found. Use 'menuscan scrape' to add one.")
		return nil
	}

	for _, r := range restaurants {
		items, err := deps.MenuItems.FindMenuItems(deps.Ctx, r.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", menuscan.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d items\n", r.Name, r.URL, len(items))
	}

	return nil
}
