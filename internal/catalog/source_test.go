package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/storelocator/backend/internal/models"
)

type fakeSource struct {
	stores []models.StoreLocation
	err    error
}

func (f fakeSource) ListStores(context.Context) ([]models.StoreLocation, error) {
	return f.stores, f.err
}

func TestLoadFrom(t *testing.T) {
	c, err := LoadFrom(context.Background(), fakeSource{stores: []models.StoreLocation{{ID: "1", Name: "A"}}})
	if err != nil || c.Len() != 1 {
		t.Fatalf("unexpected result: %v %v", c, err)
	}
	boom := errors.New("boom")
	if _, err := LoadFrom(context.Background(), fakeSource{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
