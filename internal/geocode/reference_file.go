package geocode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/storelocator/backend/internal/models"
)

type referenceCoords struct {
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Lat       *float64 `yaml:"lat"`
	Lng       *float64 `yaml:"lng"`
}

func (c referenceCoords) resolve() (float64, float64, error) {
	lat, lng := c.Lat, c.Lng
	if c.Latitude != nil {
		lat = c.Latitude
	}
	if c.Longitude != nil {
		lng = c.Longitude
	}
	if lat == nil || lng == nil {
		return 0, 0, fmt.Errorf("latitude and longitude required")
	}
	return *lat, *lng, nil
}

// LoadReferenceTable reads a YAML or JSON file. Two shapes are accepted: a
// mapping of postcode to {latitude, longitude}, or a list of
// {postcode, lat, lng} items.
func LoadReferenceTable(path string) (*ReferenceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference postcodes: %w", err)
	}
	items, err := ParseReferencePostcodes(data)
	if err != nil {
		return nil, fmt.Errorf("parse reference postcodes %s: %w", path, err)
	}
	return NewReferenceTable(items)
}

func ParseReferencePostcodes(data []byte) ([]models.ReferencePostcode, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		var raw map[string]referenceCoords
		if err := doc.Decode(&raw); err != nil {
			return nil, err
		}
		out := make([]models.ReferencePostcode, 0, len(raw))
		for postcode, c := range raw {
			lat, lng, err := c.resolve()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", postcode, err)
			}
			out = append(out, models.ReferencePostcode{Postcode: postcode, Lat: lat, Lng: lng})
		}
		return out, nil
	case yaml.SequenceNode:
		var raw []struct {
			Postcode        string `yaml:"postcode"`
			referenceCoords `yaml:",inline"`
		}
		if err := doc.Decode(&raw); err != nil {
			return nil, err
		}
		out := make([]models.ReferencePostcode, 0, len(raw))
		for i, item := range raw {
			lat, lng, err := item.resolve()
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out = append(out, models.ReferencePostcode{Postcode: item.Postcode, Lat: lat, Lng: lng})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a mapping or a list")
	}
}
