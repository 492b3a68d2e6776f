package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jwalczak/menuscan"
)

// LoadSites reads a JSON array of site configs and validates each entry.
func LoadSites(path string) ([]*menuscan.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites config: %w", err)
	}

	var sites []*menuscan.SiteConfig
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, fmt.Errorf("failed to parse sites config %q: %w", path, err)
	}

	for _, site := range sites {
		if err := site.Validate(); err != nil {
			return nil, fmt.Errorf("invalid site %q: %w", site.Restaurant.Name, err)
		}
	}
	return sites, nil
}

// selectSites narrows the config to one restaurant by name, or returns
// everything when all is set.
func selectSites(sites []*menuscan.SiteConfig, name string, all bool) ([]*menuscan.SiteConfig, error) {
	if all {
		return sites, nil
	}
	if name == "" {
		return nil, menuscan.Errorf(menuscan.EINVALID, "restaurant name required (or pass --all)")
	}
	for _, site := range sites {
		if site.Restaurant.Name == name {
			return []*menuscan.SiteConfig{site}, nil
		}
	}
	return nil, menuscan.Errorf(menuscan.ENOTFOUND, "restaurant %q not in sites config", name)
}
