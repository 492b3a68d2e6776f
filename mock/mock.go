// Package mock provides test doubles for menuscan interfaces.
package mock

import (
	"context"

	"github.com/jwalczak/menuscan"
)

var _ menuscan.SourceClassifier = (*SourceClassifier)(nil)

// SourceClassifier is a mock implementation of menuscan.SourceClassifier.
type SourceClassifier struct {
	ClassifyFn func(res *menuscan.Resource) menuscan.Strategy
}

func (m *SourceClassifier) Classify(res *menuscan.Resource) menuscan.Strategy {
	return m.ClassifyFn(res)
}

var _ menuscan.ResourceLoader = (*ResourceLoader)(nil)

// ResourceLoader is a mock implementation of menuscan.ResourceLoader.
type ResourceLoader struct {
	LoadFn func(ctx context.Context, url string) (*menuscan.Resource, error)
}

func (m *ResourceLoader) Load(ctx context.Context, url string) (*menuscan.Resource, error) {
	return m.LoadFn(ctx, url)
}

var _ menuscan.CorpusExtractor = (*CorpusExtractor)(nil)

// CorpusExtractor is a mock implementation of menuscan.CorpusExtractor.
type CorpusExtractor struct {
	ExtractFn func(ctx context.Context, res *menuscan.Resource) (menuscan.LineCorpus, error)
}

func (m *CorpusExtractor) Extract(ctx context.Context, res *menuscan.Resource) (menuscan.LineCorpus, error) {
	return m.ExtractFn(ctx, res)
}

var _ menuscan.Converter = (*Converter)(nil)

// Converter is a mock implementation of menuscan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (m *Converter) Convert(html string) (string, error) {
	return m.ConvertFn(html)
}

var _ menuscan.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of menuscan.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (string, string, error)
}

func (m *ContentExtractor) ExtractContent(html string) (string, string, error) {
	return m.ExtractContentFn(html)
}

var _ menuscan.Vision = (*Vision)(nil)

// Vision is a mock implementation of menuscan.Vision.
type Vision struct {
	ExtractMenuFn func(ctx context.Context, image []byte, mimeType string) (*menuscan.VisionResult, error)
}

func (m *Vision) ExtractMenu(ctx context.Context, image []byte, mimeType string) (*menuscan.VisionResult, error) {
	return m.ExtractMenuFn(ctx, image, mimeType)
}

var _ menuscan.Rasterizer = (*Rasterizer)(nil)

// Rasterizer is a mock implementation of menuscan.Rasterizer.
type Rasterizer struct {
	RasterizePagesFn func(pdf []byte) ([][]byte, error)
}

func (m *Rasterizer) RasterizePages(pdf []byte) ([][]byte, error) {
	return m.RasterizePagesFn(pdf)
}

var _ menuscan.CallLimiter = (*CallLimiter)(nil)

// CallLimiter is a mock implementation of menuscan.CallLimiter.
type CallLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (m *CallLimiter) Wait(ctx context.Context) error {
	if m.WaitFn == nil {
		return nil
	}
	return m.WaitFn(ctx)
}

var _ menuscan.RestaurantService = (*RestaurantService)(nil)

// RestaurantService is a mock implementation of menuscan.RestaurantService.
type RestaurantService struct {
	CreateRestaurantFn     func(ctx context.Context, restaurant *menuscan.Restaurant) error
	FindRestaurantByNameFn func(ctx context.Context, name string) (*menuscan.Restaurant, error)
	FindRestaurantsFn      func(ctx context.Context) ([]*menuscan.Restaurant, error)
	DeleteRestaurantFn     func(ctx context.Context, id string) error
}

func (m *RestaurantService) CreateRestaurant(ctx context.Context, restaurant *menuscan.Restaurant) error {
	return m.CreateRestaurantFn(ctx, restaurant)
}

func (m *RestaurantService) FindRestaurantByName(ctx context.Context, name string) (*menuscan.Restaurant, error) {
	return m.FindRestaurantByNameFn(ctx, name)
}

func (m *RestaurantService) FindRestaurants(ctx context.Context) ([]*menuscan.Restaurant, error) {
	return m.FindRestaurantsFn(ctx)
}

func (m *RestaurantService) DeleteRestaurant(ctx context.Context, id string) error {
	return m.DeleteRestaurantFn(ctx, id)
}

var _ menuscan.MenuItemService = (*MenuItemService)(nil)

// MenuItemService is a mock implementation of menuscan.MenuItemService.
type MenuItemService struct {
	ReplaceMenuItemsFn func(ctx context.Context, restaurantID string, items []*menuscan.MenuItem) error
	FindMenuItemsFn    func(ctx context.Context, restaurantID string) ([]*menuscan.MenuItem, error)
}

func (m *MenuItemService) ReplaceMenuItems(ctx context.Context, restaurantID string, items []*menuscan.MenuItem) error {
	return m.ReplaceMenuItemsFn(ctx, restaurantID, items)
}

func (m *MenuItemService) FindMenuItems(ctx context.Context, restaurantID string) ([]*menuscan.MenuItem, error) {
	return m.FindMenuItemsFn(ctx, restaurantID)
}
