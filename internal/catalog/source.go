package catalog

import (
	"context"
	"fmt"

	"github.com/storelocator/backend/internal/models"
)

// Source is anything that can list the persisted catalog, such as db.Store.
type Source interface {
	ListStores(ctx context.Context) ([]models.StoreLocation, error)
}

func LoadFrom(ctx context.Context, src Source) (*Catalog, error) {
	stores, err := src.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return New(stores)
}
