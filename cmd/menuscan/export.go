package main

import (
	"fmt"

	"github.com/jwalczak/menuscan"
	"github.com/jwalczak/menuscan/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	items, err := c.collect(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuscan.ErrorMessage(err))
		return err
	}

	out := c.Out
	if out == "" {
		out = "menu_items." + c.Format
	}

	switch c.Format {
	case "json":
		err = fs.WriteJSON(out, items)
	default:
		err = fs.WriteCSV(out, items)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d items to %s\n", len(items), out)
	return nil
}

func (c *ExportCmd) collect(deps *Dependencies) ([]*menuscan.MenuItem, error) {
	if c.Name != "" {
		r, err := deps.Restaurants.FindRestaurantByName(deps.Ctx, c.Name)
		if err != nil {
			return nil, err
		}
		return deps.MenuItems.FindMenuItems(deps.Ctx, r.ID)
	}

	restaurants, err := deps.Restaurants.FindRestaurants(deps.Ctx)
	if err != nil {
		return nil, err
	}

	var all []*menuscan.MenuItem
	for _, r := range restaurants {
		items, err := deps.MenuItems.FindMenuItems(deps.Ctx, r.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}
