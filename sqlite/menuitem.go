package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalczak/menuscan"
)

// Compile-time interface verification.
var _ menuscan.MenuItemService = (*MenuItemService)(nil)

// MenuItemService implements menuscan.MenuItemService using SQLite.
// Price lists are stored as a JSON column; items are never queried by
// individual price entries.
type MenuItemService struct {
	db *DB
}

// NewMenuItemService creates a new MenuItemService.
func NewMenuItemService(db *DB) *MenuItemService {
	return &MenuItemService{db: db}
}

// ReplaceMenuItems atomically replaces all items for a restaurant with
// the given set, preserving slice order.
func (s *MenuItemService) ReplaceMenuItems(ctx context.Context, restaurantID string, items []*menuscan.MenuItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_items WHERE restaurant_id = ?`, restaurantID); err != nil {
		return err
	}

	for i, item := range items {
		prices, err := json.Marshal(item.Prices)
		if err != nil {
			return fmt.Errorf("failed to encode prices: %w", err)
		}

		item.ID = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO menu_items (id, restaurant_id, name, description, prices, price_unresolved, section, menu_name, location, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, restaurantID, item.Name, item.Description, string(prices),
			boolToInt(item.PriceUnresolved), item.Section, item.MenuName, item.Location, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindMenuItems retrieves a restaurant's items in stored order.
func (s *MenuItemService) FindMenuItems(ctx context.Context, restaurantID string) ([]*menuscan.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.description, m.prices, m.price_unresolved,
		       m.section, m.menu_name, m.location, r.name, r.url
		FROM menu_items m
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE m.restaurant_id = ?
		ORDER BY m.position
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*menuscan.MenuItem
	for rows.Next() {
		var item menuscan.MenuItem
		var prices string
		var unresolved int
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &prices, &unresolved,
			&item.Section, &item.MenuName, &item.Location, &item.RestaurantName, &item.RestaurantURL); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(prices), &item.Prices); err != nil {
			return nil, fmt.Errorf("failed to decode prices: %w", err)
		}
		if item.Prices == nil {
			item.Prices = []menuscan.PriceEntry{}
		}
		item.PriceUnresolved = unresolved != 0
		items = append(items, &item)
	}
	return items, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
