package menuscan

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Restaurant identifies the venue a menu belongs to. Supplied as pipeline
// configuration, not derived data.
type Restaurant struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Validate returns an error if the restaurant contains invalid fields.
func (r *Restaurant) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "restaurant name required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "restaurant URL required")
	}
	return nil
}

// RawItem is an unvalidated candidate menu entry produced by the item
// parser: adjacent corpus lines grouped by proximity and pattern matching.
// Never mutated after creation; normalization produces new records.
type RawItem struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	PriceFragments []string `json:"priceFragments,omitempty"`
	SectionHint    string   `json:"sectionHint,omitempty"`
	SourceURL      string   `json:"sourceUrl,omitempty"`
}

// PriceEntry is one parsed price for a menu item. An item with size
// variants carries several entries; an add-on entry is never an
// alternative size of the base item.
type PriceEntry struct {
	// Label is the size or variant label, e.g. "Small", "Large",
	// "Cup", "add chicken". Empty for a single unlabeled price.
	Label string `json:"label,omitempty"`

	// Amount is the monetary amount.
	Amount decimal.Decimal `json:"amount"`

	// Currency is the ISO currency code, e.g. "USD".
	Currency string `json:"currency"`

	// IsAddon marks priced modifiers ("add avocado 2") as opposed to
	// base prices or size variants.
	IsAddon bool `json:"isAddon,omitempty"`
}

// MenuItem is the final, schema-conformant, deduplicated menu entry.
type MenuItem struct {
	ID             string       `json:"id,omitempty"`
	RestaurantName string       `json:"restaurantName"`
	RestaurantURL  string       `json:"restaurantUrl"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Prices         []PriceEntry `json:"prices"`
	Section        string       `json:"section,omitempty"`
	MenuName       string       `json:"menuName,omitempty"`
	Location       string       `json:"location,omitempty"`

	// PriceUnresolved marks items whose price text could not be parsed
	// ("Market Price", "MP"). Such items are kept, not dropped.
	PriceUnresolved bool `json:"priceUnresolved,omitempty"`
}

// Validate returns an error if the item violates the output schema.
// Prices may be empty only when PriceUnresolved is set or the source
// genuinely listed no price.
func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return Errorf(EINVALID, "menu item name required")
	}
	if m.RestaurantName == "" {
		return Errorf(EINVALID, "menu item restaurant name required")
	}
	if m.Prices == nil {
		return Errorf(EINVALID, "menu item prices must be non-nil")
	}
	return nil
}

// Key returns the dedup identity of the item within one restaurant's
// output: name (case-folded), section, and location. Items sharing a key
// are merged by unioning their price lists.
func (m *MenuItem) Key() string {
	return strings.ToLower(collapseWhitespace(m.Name)) + "\x00" +
		strings.ToLower(m.Section) + "\x00" +
		strings.ToLower(m.Location)
}

// RestaurantService manages stored restaurants.
type RestaurantService interface {
	// CreateRestaurant creates a restaurant, assigning an ID.
	CreateRestaurant(ctx context.Context, r *Restaurant) error

	// FindRestaurantByName retrieves a restaurant by exact name.
	// Returns ENOTFOUND if it does not exist.
	FindRestaurantByName(ctx context.Context, name string) (*Restaurant, error)

	// FindRestaurants retrieves all restaurants ordered by name.
	FindRestaurants(ctx context.Context) ([]*Restaurant, error)

	// DeleteRestaurant removes a restaurant and its menu items.
	// Returns ENOTFOUND if it does not exist.
	DeleteRestaurant(ctx context.Context, id string) error
}

// MenuItemService manages stored menu items.
type MenuItemService interface {
	// ReplaceMenuItems atomically replaces all items for a restaurant
	// with the given set, preserving slice order.
	ReplaceMenuItems(ctx context.Context, restaurantID string, items []*MenuItem) error

	// FindMenuItems retrieves items for a restaurant in stored order.
	FindMenuItems(ctx context.Context, restaurantID string) ([]*MenuItem, error)
}
