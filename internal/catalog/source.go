package catalog

import (
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"
)

// Source provides read-only access to catalog products.
type Source interface {
	Get(id string) (Product, bool)
	List() []Product
}

// StaticSource serves a fixed product set from memory.
type StaticSource struct {
	products map[string]Product
	order    []string
}

// NewStaticSource validates the provided products and builds a source over
// them. Duplicate ids are rejected.
func NewStaticSource(products ...Product) (*StaticSource, error) {
	v := validator.New()
	src := &StaticSource{products: make(map[string]Product, len(products))}
	for _, p := range products {
		if err := v.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid product %q: %w", p.ID, err)
		}
		if _, exists := src.products[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		src.products[p.ID] = p
		src.order = append(src.order, p.ID)
	}
	return src, nil
}

// Get returns the product with the given id.
func (s *StaticSource) Get(id string) (Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// List returns products in seed order.
func (s *StaticSource) List() []Product {
	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}

// CachedSource wraps another source with a TTL lookup cache.
type CachedSource struct {
	src   Source
	cache *gocache.Cache
}

// NewCachedSource builds a read-through cache in front of src.
func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSource{src: src, cache: gocache.New(ttl, 2*ttl)}
}

// Get serves from cache when possible and falls through to the underlying
// source on a miss. Misses are not negatively cached.
func (c *CachedSource) Get(id string) (Product, bool) {
	if hit, ok := c.cache.Get(id); ok {
		return hit.(Product), true
	}
	p, ok := c.src.Get(id)
	if ok {
		c.cache.SetDefault(id, p)
	}
	return p, ok
}

// List always delegates to the underlying source.
func (c *CachedSource) List() []Product {
	return c.src.List()
}
