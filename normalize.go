package menuscan

import "strings"

// NormalizeOptions configures item normalization for one source document.
type NormalizeOptions struct {
	Denylist Denylist
	Locale   PriceLocale

	// MenuName and Location carry source-document context onto every
	// produced item.
	MenuName string
	Location string
}

// NormalizeItems shapes raw items into final menu items for a restaurant:
// whitespace is canonicalized, boilerplate and empty names are rejected,
// prices are parsed, and restaurant identity plus document context is
// attached. Duplicate (name, section, location) keys are merged with a
// price-list union. Output order is the stable first-seen order of
// distinct keys.
func NormalizeItems(raws []RawItem, restaurant Restaurant, opts NormalizeOptions) []*MenuItem {
	var items []*MenuItem
	for _, raw := range raws {
		item, ok := normalizeItem(raw, restaurant, opts)
		if !ok {
			continue
		}
		items = MergeMenuItems(items, item)
	}
	return items
}

func normalizeItem(raw RawItem, restaurant Restaurant, opts NormalizeOptions) (*MenuItem, bool) {
	name := strings.TrimSpace(collapseWhitespace(raw.Name))
	if name == "" || opts.Denylist.Match(name) {
		return nil, false
	}

	section := strings.TrimSpace(collapseWhitespace(raw.SectionHint))
	addonHint := IsAddonSection(section)
	prices, unresolved := NormalizePrices(raw.PriceFragments, opts.Locale, addonHint)
	if prices == nil {
		prices = []PriceEntry{}
	}

	return &MenuItem{
		RestaurantName:  restaurant.Name,
		RestaurantURL:   restaurant.URL,
		Name:            name,
		Description:     strings.TrimSpace(collapseWhitespace(raw.Description)),
		Prices:          prices,
		Section:         section,
		MenuName:        opts.MenuName,
		Location:        opts.Location,
		PriceUnresolved: unresolved,
	}, true
}

// MergeMenuItems merges additional items into an accumulated list,
// deduplicating by (name, section, location). A duplicate unions its
// prices (exact-duplicate entries dropped, new labels appended in
// encounter order) and contributes its description only when longer than
// the one already held. First-seen order is preserved.
func MergeMenuItems(items []*MenuItem, more ...*MenuItem) []*MenuItem {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.Key()] = i
	}
	for _, item := range more {
		if item == nil {
			continue
		}
		key := item.Key()
		i, seen := index[key]
		if !seen {
			index[key] = len(items)
			items = append(items, item)
			continue
		}
		merged := items[i]
		merged.Prices = unionPrices(merged.Prices, item.Prices)
		if len(merged.Prices) > 0 {
			merged.PriceUnresolved = merged.PriceUnresolved && item.PriceUnresolved
		} else {
			merged.PriceUnresolved = merged.PriceUnresolved || item.PriceUnresolved
		}
		if len(item.Description) > len(merged.Description) {
			merged.Description = item.Description
		}
	}
	return items
}

func unionPrices(base, extra []PriceEntry) []PriceEntry {
	for _, e := range extra {
		if !containsPrice(base, e) {
			base = append(base, e)
		}
	}
	return base
}

func containsPrice(entries []PriceEntry, e PriceEntry) bool {
	for _, have := range entries {
		if strings.EqualFold(have.Label, e.Label) &&
			have.Amount.Equal(e.Amount) &&
			have.Currency == e.Currency &&
			have.IsAddon == e.IsAddon {
			return true
		}
	}
	return false
}
