package storefront

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = sql.ErrNoRows

// ProductCache is an in-memory cache of published products with TTL.
type ProductCache struct {
	mu       sync.RWMutex
	products []Product
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewProductCache creates a ProductCache backed by the given Store.
func NewProductCache(s *Store, ttl time.Duration) *ProductCache {
	return &ProductCache{store: s, ttl: ttl}
}

func (c *ProductCache) Name() string { return "product-cache" }

// Start warms the cache so the first visitor does not pay for the query.
func (c *ProductCache) Start(context.Context) error {
	_, err := c.ensureLoaded()
	return err
}

func (c *ProductCache) Stop() error {
	c.Invalidate()
	return nil
}

func (c *ProductCache) valid() bool {
	return c.products != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ProductCache) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached products after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ProductCache) ensureLoaded() ([]Product, error) {
	c.mu.RLock()
	if c.valid() {
		products := c.products
		c.mu.RUnlock()
		return products, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.products, nil
	}
	products, err := c.store.ListProducts("")
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	c.products = products
	c.fetched = time.Now()
	return c.products, nil
}

// ListProducts returns published products, optionally filtered by category.
func (c *ProductCache) ListProducts(category string) ([]Product, error) {
	products, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, category), nil
}

// GetProduct returns a single published product by slug from the cache.
func (c *ProductCache) GetProduct(slug string) (Product, error) {
	products, err := c.ensureLoaded()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// FilterProducts keeps products in category; "" and "all" keep everything.
func FilterProducts(products []Product, category string) []Product {
	category = normalizeCategory(category)
	if category == "" {
		return products
	}
	var filtered []Product
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
