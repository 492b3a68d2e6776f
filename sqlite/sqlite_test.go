package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalczak/menuscan"
	"github.com/jwalczak/menuscan/sqlite"
)

// mustOpenDB opens an in-memory database, closed automatically at test end.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		ctx := context.Background()

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count))
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count))
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		require.Error(t, db.Open())
	})
}

func TestRestaurantService_CreateAndFind(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRestaurantService(db)
	ctx := context.Background()

	r := &menuscan.Restaurant{Name: "The Wishing Well", URL: "https://example.com"}
	require.NoError(t, s.CreateRestaurant(ctx, r))
	require.NotEmpty(t, r.ID)

	found, err := s.FindRestaurantByName(ctx, "The Wishing Well")
	require.NoError(t, err)
	assert.Equal(t, r.ID, found.ID)
	assert.Equal(t, "https://example.com", found.URL)
}

func TestRestaurantService_FindByName_NotFound(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRestaurantService(db)

	_, err := s.FindRestaurantByName(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, menuscan.ENOTFOUND, menuscan.ErrorCode(err))
}

func TestRestaurantService_FindRestaurants_OrderedByName(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRestaurantService(db)
	ctx := context.Background()

	for _, name := range []string{"Zest", "Amigos", "Morton's"} {
		require.NoError(t, s.CreateRestaurant(ctx, &menuscan.Restaurant{Name: name, URL: "https://example.com"}))
	}

	all, err := s.FindRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Amigos", all[0].Name)
	assert.Equal(t, "Morton's", all[1].Name)
	assert.Equal(t, "Zest", all[2].Name)
}

func TestRestaurantService_Delete(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRestaurantService(db)
	ctx := context.Background()

	r := &menuscan.Restaurant{Name: "Closing Soon", URL: "https://example.com"}
	require.NoError(t, s.CreateRestaurant(ctx, r))
	require.NoError(t, s.DeleteRestaurant(ctx, r.ID))

	err := s.DeleteRestaurant(ctx, r.ID)
	require.Error(t, err)
	assert.Equal(t, menuscan.ENOTFOUND, menuscan.ErrorCode(err))
}

func TestMenuItemService_ReplaceAndFind(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	restaurants := sqlite.NewRestaurantService(db)
	items := sqlite.NewMenuItemService(db)
	ctx := context.Background()

	r := &menuscan.Restaurant{Name: "The Wishing Well", URL: "https://example.com"}
	require.NoError(t, restaurants.CreateRestaurant(ctx, r))

	set := []*menuscan.MenuItem{
		{
			Name:           "Clam Chowder",
			RestaurantName: "The Wishing Well",
			Description:    "with oyster crackers",
			Section:        "Soups",
			MenuName:       "Dinner",
			Prices: []menuscan.PriceEntry{
				{Label: "Cup", Amount: decimal.RequireFromString("6.99"), Currency: "USD"},
				{Label: "Bowl", Amount: decimal.RequireFromString("9.99"), Currency: "USD"},
			},
		},
		{
			Name:            "Catch of the Day",
			RestaurantName:  "The Wishing Well",
			Section:         "Mains",
			Prices:          []menuscan.PriceEntry{},
			PriceUnresolved: true,
		},
	}
	require.NoError(t, items.ReplaceMenuItems(ctx, r.ID, set))

	found, err := items.FindMenuItems(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "Clam Chowder", found[0].Name)
	assert.Equal(t, "The Wishing Well", found[0].RestaurantName)
	require.Len(t, found[0].Prices, 2)
	assert.Equal(t, "Cup", found[0].Prices[0].Label)
	assert.True(t, found[0].Prices[0].Amount.Equal(decimal.RequireFromString("6.99")))

	assert.Equal(t, "Catch of the Day", found[1].Name)
	assert.NotNil(t, found[1].Prices)
	assert.Empty(t, found[1].Prices)
	assert.True(t, found[1].PriceUnresolved)
}

func TestMenuItemService_ReplaceIsAtomicAndComplete(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	restaurants := sqlite.NewRestaurantService(db)
	items := sqlite.NewMenuItemService(db)
	ctx := context.Background()

	r := &menuscan.Restaurant{Name: "The Wishing Well", URL: "https://example.com"}
	require.NoError(t, restaurants.CreateRestaurant(ctx, r))

	first := []*menuscan.MenuItem{
		{Name: "Old Item", RestaurantName: "The Wishing Well", Prices: []menuscan.PriceEntry{}},
	}
	require.NoError(t, items.ReplaceMenuItems(ctx, r.ID, first))

	second := []*menuscan.MenuItem{
		{Name: "New Item A", RestaurantName: "The Wishing Well", Prices: []menuscan.PriceEntry{}},
		{Name: "New Item B", RestaurantName: "The Wishing Well", Prices: []menuscan.PriceEntry{}},
	}
	require.NoError(t, items.ReplaceMenuItems(ctx, r.ID, second))

	found, err := items.FindMenuItems(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "New Item A", found[0].Name)
	assert.Equal(t, "New Item B", found[1].Name)
}

func TestMenuItemService_DeleteCascades(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	restaurants := sqlite.NewRestaurantService(db)
	items := sqlite.NewMenuItemService(db)
	ctx := context.Background()

	r := &menuscan.Restaurant{Name: "The Wishing Well", URL: "https://example.com"}
	require.NoError(t, restaurants.CreateRestaurant(ctx, r))
	require.NoError(t, items.ReplaceMenuItems(ctx, r.ID, []*menuscan.MenuItem{
		{Name: "Soup", RestaurantName: "The Wishing Well", Prices: []menuscan.PriceEntry{}},
	}))

	require.NoError(t, restaurants.DeleteRestaurant(ctx, r.ID))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count))
	assert.Zero(t, count)
}
