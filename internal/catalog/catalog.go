// Package catalog holds the read-only store catalog loaded once at startup.
package catalog

import (
	"errors"
	"fmt"

	"github.com/storelocator/backend/internal/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrDuplicateID       = errors.New("duplicate store id")
	ErrStoreNotFound     = errors.New("store not found")
)

// Catalog keeps stores in their source order. It is never mutated after New
// returns, so it can be shared between goroutines.
type Catalog struct {
	stores []models.StoreLocation
	byID   map[models.StoreID]int
}

func New(stores []models.StoreLocation) (*Catalog, error) {
	c := &Catalog{
		stores: make([]models.StoreLocation, 0, len(stores)),
		byID:   make(map[models.StoreID]int, len(stores)),
	}
	for i, s := range stores {
		if s.ID == "" {
			return nil, fmt.Errorf("store %d (%s): id required", i, s.Name)
		}
		if _, ok := c.byID[s.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
			return nil, fmt.Errorf("store %s: coordinates out of range", s.ID)
		}
		c.byID[s.ID] = len(c.stores)
		c.stores = append(c.stores, s)
	}
	return c, nil
}

// Stores returns the catalog in source order. The returned slice is a copy.
func (c *Catalog) Stores() []models.StoreLocation {
	if c == nil {
		return nil
	}
	out := make([]models.StoreLocation, len(c.stores))
	copy(out, c.stores)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.stores)
}

func (c *Catalog) Get(id models.StoreID) (models.StoreLocation, error) {
	if c != nil {
		if i, ok := c.byID[id]; ok {
			return c.stores[i], nil
		}
	}
	return models.StoreLocation{}, fmt.Errorf("%w: %s", ErrStoreNotFound, id)
}
