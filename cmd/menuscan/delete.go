package main

import (
	"fmt"

	"github.com/jwalczak/menuscan"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return menuscan.Errorf(menuscan.EINVALID, "use --force to confirm deletion")
	}

	r, err := deps.Restaurants.FindRestaurantByName(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuscan.ErrorMessage(err))
		return err
	}

	if err := deps.Restaurants.DeleteRestaurant(deps.Ctx, r.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted restaurant %q\n", r.Name)
	return nil
}
