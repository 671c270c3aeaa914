package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StoreID accepts both numeric and string identifiers in catalog files.
type StoreID string

func (id *StoreID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StoreID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("store id must be a string or number: %w", err)
	}
	*id = StoreID(n.String())
	return nil
}

// MarshalJSON writes ids in canonical integer form as numbers so numeric
// catalogs round-trip. Anything else, such as "007" or "+5", stays a string.
func (id StoreID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

type StoreLocation struct {
	ID            StoreID           `json:"id"`
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	Postcode      string            `json:"postcode"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	OpeningHours  map[string]string `json:"openingHours,omitempty"`
	Contact       *Contact          `json:"contact,omitempty"`
	Services      []string          `json:"services,omitempty"`
	Accessibility []string          `json:"accessibility,omitempty"`
}

func (s StoreLocation) Coordinates() Coordinates {
	return Coordinates{Lat: s.Latitude, Lng: s.Longitude}
}

// RankedResult is a store projected into a result set. DistanceKm is set only
// when the search resolved through the reference table.
type RankedResult struct {
	StoreLocation
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

type ReferencePostcode struct {
	Postcode string  `json:"postcode" yaml:"postcode"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lng      float64 `json:"lng" yaml:"lng"`
}
