package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(ServiceConfig{})
	require.Error(t, err)
}

func TestSearchCachesResults(t *testing.T) {
	store := newTestStore(t)
	cache, mr := newTestCache(t)
	svc, err := NewService(ServiceConfig{Store: store, Cache: cache})
	require.NoError(t, err)

	ctx := context.Background()
	results, err := svc.Search(ctx, "Laptop")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, mr.Exists("catalog:search:laptop"))

	// A store change is invisible until the cache entry expires.
	require.True(t, store.Reserve(1, 10))
	cached, err := svc.Search(ctx, "laptop")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, 10, cached[0].Stock)

	mr.FastForward(2 * time.Minute)
	fresh, err := svc.Search(ctx, "laptop")
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.Equal(t, 0, fresh[0].Stock)
}

func TestSearchWithoutCache(t *testing.T) {
	store := newTestStore(t)
	svc, err := NewService(ServiceConfig{Store: store})
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "book")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchSurvivesCacheOutage(t *testing.T) {
	store := newTestStore(t)
	cache, mr := newTestCache(t)
	svc, err := NewService(ServiceConfig{Store: store, Cache: cache})
	require.NoError(t, err)

	mr.Close()
	results, err := svc.Search(context.Background(), "laptop")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	payload := `[
		{"id": 1, "name": "Laptop", "price": "999.99", "category": "electronics", "stock": 10, "tags": ["tech"]},
		{"id": 2, "name": "Old Poster", "price": "4.50", "category": "books", "stock": 3, "active": false}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	products, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.True(t, products[0].Active, "active defaults to true")
	require.False(t, products[1].Active)
	require.Equal(t, "999.99", products[0].Price.StringFixed(2))
}

func TestLoadSeedRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "name": "X", "price": "1", "category": "widgets", "stock": 1}]`), 0o600))

	_, err := LoadSeed(path)
	require.Error(t, err)
}
