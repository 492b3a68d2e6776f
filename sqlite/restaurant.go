package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jwalczak/menuscan"
)

// Compile-time interface verification.
var _ menuscan.RestaurantService = (*RestaurantService)(nil)

// RestaurantService implements menuscan.RestaurantService using SQLite.
type RestaurantService struct {
	db *DB
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(db *DB) *RestaurantService {
	return &RestaurantService{db: db}
}

// CreateRestaurant creates a new restaurant, assigning an ID.
func (s *RestaurantService) CreateRestaurant(ctx context.Context, r *menuscan.Restaurant) error {
	if err := r.Validate(); err != nil {
		return err
	}

	r.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, url)
		VALUES (?, ?, ?)
	`, r.ID, r.Name, r.URL)

	return err
}

// FindRestaurantByName retrieves a restaurant by exact name.
func (s *RestaurantService) FindRestaurantByName(ctx context.Context, name string) (*menuscan.Restaurant, error) {
	var r menuscan.Restaurant

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, url
		FROM restaurants
		WHERE name = ?
	`, name).Scan(&r.ID, &r.Name, &r.URL)

	if err == sql.ErrNoRows {
		return nil, menuscan.Errorf(menuscan.ENOTFOUND, "restaurant %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// FindRestaurants retrieves all restaurants ordered by name.
func (s *RestaurantService) FindRestaurants(ctx context.Context) ([]*menuscan.Restaurant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, url
		FROM restaurants
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*menuscan.Restaurant
	for rows.Next() {
		var r menuscan.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.URL); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, &r)
	}
	return restaurants, rows.Err()
}

// DeleteRestaurant removes a restaurant and, via cascade, its menu items.
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return menuscan.Errorf(menuscan.ENOTFOUND, "restaurant not found")
	}
	return nil
}
