package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Service wraps the Store with read-side caching for search traffic.
type Service struct {
	store *Store
	cache *Cache
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store *Store
	Cache *Cache
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("catalog: store is required")
	}
	return &Service{store: cfg.Store, cache: cfg.Cache}, nil
}

// Store exposes the underlying product store.
func (s *Service) Store() *Store {
	return s.store
}

// Get returns the product, if present.
func (s *Service) Get(id int64) (Product, bool) {
	return s.store.Get(id)
}

// Search runs a catalog search, consulting the cache first. Cache failures
// fall through to the live store.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	key := searchCacheKey(query)
	if s.cache != nil {
		var cached []Product
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && ok {
			return cached, nil
		}
	}
	results := s.store.Search(query)
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, results)
	}
	return results, nil
}

// LowStock returns active products below the threshold.
func (s *Service) LowStock(threshold int) []Product {
	return s.store.LowStock(threshold)
}

func searchCacheKey(query string) string {
	return "catalog:search:" + strings.ToLower(strings.TrimSpace(query))
}

type seedProduct struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	Active   *bool           `json:"active,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
}

// LoadSeed reads catalog entries from a JSON file produced at deploy time.
func LoadSeed(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	var entries []seedProduct
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	products := make([]Product, 0, len(entries))
	for _, entry := range entries {
		category, err := ParseCategory(entry.Category)
		if err != nil {
			return nil, fmt.Errorf("seed product %d: %w", entry.ID, err)
		}
		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		products = append(products, Product{
			ID:       entry.ID,
			Name:     entry.Name,
			Price:    entry.Price,
			Category: category,
			Stock:    entry.Stock,
			Active:   active,
			Tags:     entry.Tags,
		})
	}
	return products, nil
}
