package db

import (
	"context"
	"os"
	"testing"

	"github.com/storelocator/backend/internal/models"
)

func TestStoreRowsDefaults(t *testing.T) {
	rows, err := storeRows([]models.StoreLocation{
		{ID: "1", Name: "A", Postcode: "EN5 3AW", OpeningHours: map[string]string{"Monday": "8-8"}, Contact: &models.Contact{Phone: "1"}},
		{ID: "2", Name: "B", Postcode: "AL10 9AB"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || len(rows[0]) != len(storeColumns) {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if rows[1][0] != 1 {
		t.Fatalf("expected position 1, got %v", rows[1][0])
	}
	if string(rows[0][8].([]byte)) != `{"Monday":"8-8"}` {
		t.Fatalf("unexpected hours: %s", rows[0][8])
	}
	if rows[1][8].([]byte) != nil {
		t.Fatalf("expected nil hours for store without opening hours")
	}
	if s, ok := rows[1][11].([]string); !ok || s == nil {
		t.Fatalf("expected empty services slice, got %#v", rows[1][11])
	}
}

func TestStoreRowsRequiresID(t *testing.T) {
	if _, err := storeRows([]models.StoreLocation{{Name: "A"}}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestReplaceAndListStoresIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	in := []models.StoreLocation{
		{ID: "b", Name: "B", Postcode: "AL10 9AB", Latitude: 51.76, Longitude: -0.23},
		{ID: "a", Name: "A", Postcode: "EN5 3AW", Latitude: 51.65, Longitude: -0.2, Services: []string{"Cafe"}},
	}
	n, err := store.ReplaceStores(ctx, in)
	if err != nil || n != 2 {
		t.Fatalf("replace stores: %d %v", n, err)
	}
	out, err := store.ListStores(ctx)
	if err != nil {
		t.Fatalf("list stores: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b" || out[1].Services[0] != "Cafe" {
		t.Fatalf("unexpected stores: %+v", out)
	}

	if err := store.UpsertReferencePostcodes(ctx, []models.ReferencePostcode{{Postcode: "EN53AW", Lat: 51.6558, Lng: -0.1983}}); err != nil {
		t.Fatalf("upsert reference postcodes: %v", err)
	}
	refs, err := store.ListReferencePostcodes(ctx)
	if err != nil || len(refs) == 0 {
		t.Fatalf("list reference postcodes: %v %v", refs, err)
	}
}
