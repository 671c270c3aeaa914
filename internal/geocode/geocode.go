package geocode

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/storelocator/backend/internal/models"
)

// Lookup resolves an already normalized postcode key to coordinates.
type Lookup interface {
	Lookup(key string) (models.Coordinates, bool)
}

// NormalizePostcode strips every whitespace rune and upper-cases the rest.
func NormalizePostcode(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for _, r := range query {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ReferenceTable is the static postcode -> coordinate mapping used for
// exact-match resolution. It is immutable once built.
type ReferenceTable struct {
	entries map[string]models.Coordinates
}

func NewReferenceTable(items []models.ReferencePostcode) (*ReferenceTable, error) {
	entries := make(map[string]models.Coordinates, len(items))
	for _, item := range items {
		key := NormalizePostcode(item.Postcode)
		if key == "" {
			return nil, fmt.Errorf("reference postcode with empty key")
		}
		if err := validateCoordinates(item.Lat, item.Lng); err != nil {
			return nil, fmt.Errorf("reference postcode %s: %w", key, err)
		}
		coords := models.Coordinates{Lat: item.Lat, Lng: item.Lng}
		if prev, ok := entries[key]; ok && prev != coords {
			return nil, fmt.Errorf("reference postcode %s defined twice with different coordinates", key)
		}
		entries[key] = coords
	}
	return &ReferenceTable{entries: entries}, nil
}

// DefaultReferenceTable returns the built-in table used when no file is configured.
func DefaultReferenceTable() *ReferenceTable {
	return &ReferenceTable{entries: map[string]models.Coordinates{
		"EN53AW":  {Lat: 51.6558, Lng: -0.1983},
		"AL109AB": {Lat: 51.765, Lng: -0.237},
	}}
}

func (t *ReferenceTable) Lookup(key string) (models.Coordinates, bool) {
	if t == nil {
		return models.Coordinates{}, false
	}
	c, ok := t.entries[key]
	return c, ok
}

func (t *ReferenceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries lists the table sorted by postcode key.
func (t *ReferenceTable) Entries() []models.ReferencePostcode {
	if t == nil {
		return nil
	}
	out := make([]models.ReferencePostcode, 0, len(t.entries))
	for k, c := range t.entries {
		out = append(out, models.ReferencePostcode{Postcode: k, Lat: c.Lat, Lng: c.Lng})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Postcode < out[j].Postcode })
	return out
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %f out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %f out of range", lng)
	}
	return nil
}
