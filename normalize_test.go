package menuscan_test

import (
	"testing"

	"github.com/jwalczak/menuscan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRestaurant = menuscan.Restaurant{
	Name: "Hamlet & Ghost",
	URL:  "http://www.hamletandghost.com/",
}

func normalizeRaw(raws ...menuscan.RawItem) []*menuscan.MenuItem {
	return menuscan.NormalizeItems(raws, testRestaurant, menuscan.NormalizeOptions{
		Denylist: menuscan.NewDenylist(),
		Locale:   menuscan.DefaultPriceLocale(),
		MenuName: "Dinner Menu",
	})
}

func TestNormalizeItems_AttachesRestaurantIdentity(t *testing.T) {
	t.Parallel()

	items := normalizeRaw(menuscan.RawItem{Name: "Oysters", PriceFragments: []string{"$27.00"}})

	require.Len(t, items, 1)
	assert.Equal(t, "Hamlet & Ghost", items[0].RestaurantName)
	assert.Equal(t, "http://www.hamletandghost.com/", items[0].RestaurantURL)
	assert.Equal(t, "Dinner Menu", items[0].MenuName)
	require.NoError(t, items[0].Validate())
}

func TestNormalizeItems_CanonicalizesWhitespace(t *testing.T) {
	t.Parallel()

	items := normalizeRaw(menuscan.RawItem{
		Name:        "  Steak   Frites ",
		Description: "hand  cut\tfries",
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Steak Frites", items[0].Name)
	assert.Equal(t, "hand cut fries", items[0].Description)
}

func TestNormalizeItems_RejectsBoilerplateAndEmptyNames(t *testing.T) {
	t.Parallel()

	items := normalizeRaw(
		menuscan.RawItem{Name: "   "},
		menuscan.RawItem{Name: "Prices subject to change"},
		menuscan.RawItem{Name: "Burger", PriceFragments: []string{"$15.00"}},
	)

	require.Len(t, items, 1)
	assert.Equal(t, "Burger", items[0].Name)
}

func TestNormalizeItems_UnresolvedPriceKeptAndFlagged(t *testing.T) {
	t.Parallel()

	items := normalizeRaw(menuscan.RawItem{Name: "Lobster", PriceFragments: []string{"Market Price"}})

	require.Len(t, items, 1)
	assert.NotNil(t, items[0].Prices)
	assert.Empty(t, items[0].Prices)
	assert.True(t, items[0].PriceUnresolved)
}

func TestNormalizeItems_DedupUnionsPrices(t *testing.T) {
	t.Parallel()

	items := normalizeRaw(
		menuscan.RawItem{Name: "Soup", SectionHint: "Starters", PriceFragments: []string{"Cup 4"}},
		menuscan.RawItem{Name: "soup", SectionHint: "Starters", PriceFragments: []string{"Cup 4", "Bowl 6"}},
	)

	require.Len(t, items, 1)
	require.Len(t, items[0].Prices, 2)
	assert.Equal(t, "Cup", items[0].Prices[0].Label)
	assert.Equal(t, "Bowl", items[0].Prices[1].Label)
}

func TestNormalizeItems_PreferLongerDescription(t *testing.T) {
	t.Parallel()

	items := normalizeRaw(
		menuscan.RawItem{Name: "Wings", Description: "buffalo"},
		menuscan.RawItem{Name: "Wings", Description: "buffalo, bbq, garlic parm"},
		menuscan.RawItem{Name: "Wings", Description: "hot"},
	)

	require.Len(t, items, 1)
	assert.Equal(t, "buffalo, bbq, garlic parm", items[0].Description)
}

func TestNormalizeItems_SectionSeparatesItems(t *testing.T) {
	t.Parallel()

	items := normalizeRaw(
		menuscan.RawItem{Name: "Avocado", SectionHint: "Salads", PriceFragments: []string{"$4.00"}},
		menuscan.RawItem{Name: "Avocado", SectionHint: "Add-Ons", PriceFragments: []string{"$2.00"}},
	)

	// The add-on is never unioned into the base item's price list.
	require.Len(t, items, 2)
	assert.False(t, items[0].Prices[0].IsAddon)
	assert.True(t, items[1].Prices[0].IsAddon)
}

func TestNormalizeItems_Idempotent(t *testing.T) {
	t.Parallel()

	raws := []menuscan.RawItem{
		{Name: "Soup", SectionHint: "Starters", PriceFragments: []string{"Cup 4 / Bowl 6"}},
		{Name: "Burger", PriceFragments: []string{"$15.00"}},
		{Name: "Soup", SectionHint: "Starters", PriceFragments: []string{"Cup 4"}},
	}

	first := normalizeRaw(raws...)
	second := normalizeRaw(raws...)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
}

func TestMergeMenuItems_StableFirstSeenOrder(t *testing.T) {
	t.Parallel()

	a := &menuscan.MenuItem{RestaurantName: "r", Name: "Alpha", Prices: []menuscan.PriceEntry{}}
	b := &menuscan.MenuItem{RestaurantName: "r", Name: "Beta", Prices: []menuscan.PriceEntry{}}
	dup := &menuscan.MenuItem{RestaurantName: "r", Name: "alpha", Prices: []menuscan.PriceEntry{
		{Amount: decimal.NewFromInt(9), Currency: "USD"},
	}}

	merged := menuscan.MergeMenuItems(nil, a, b, dup)

	require.Len(t, merged, 2)
	assert.Equal(t, "Alpha", merged[0].Name)
	assert.Equal(t, "Beta", merged[1].Name)
	require.Len(t, merged[0].Prices, 1)
}

func TestMenuItem_KeyCaseFolded(t *testing.T) {
	t.Parallel()

	a := menuscan.MenuItem{Name: "Pad Thai", Section: "Entrees"}
	b := menuscan.MenuItem{Name: "PAD  THAI", Section: "entrees"}

	assert.Equal(t, a.Key(), b.Key())
}
