// Package directions builds links to an external mapping service.
package directions

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/storelocator/backend/internal/models"
)

const baseURL = "https://www.google.com/maps/dir/?api=1"

type TravelMode string

const (
	Driving   TravelMode = "driving"
	Transit   TravelMode = "transit"
	Walking   TravelMode = "walking"
	Bicycling TravelMode = "bicycling"
)

// Modes lists travel modes in display order.
var Modes = []TravelMode{Driving, Transit, Walking, Bicycling}

var labels = map[TravelMode]string{
	Driving:   "Driving",
	Transit:   "Public Transport",
	Walking:   "Walking",
	Bicycling: "Cycling",
}

func ParseMode(s string) (TravelMode, error) {
	m := TravelMode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := labels[m]; !ok {
		return "", fmt.Errorf("unknown travel mode %q", s)
	}
	return m, nil
}

type Link struct {
	Mode  TravelMode `json:"mode"`
	Label string     `json:"label"`
	URL   string     `json:"url"`
}

// URL builds a directions link. origin is left out when empty.
func URL(destination, origin string, mode TravelMode) string {
	u := baseURL + "&destination=" + escape(destination)
	if origin != "" {
		u += "&origin=" + escape(origin)
	}
	return u + "&travelmode=" + string(mode)
}

// Links returns one link per travel mode from origin to the store address.
// Without an origin there is nothing to route from and no links are built.
func Links(store models.StoreLocation, origin string) []Link {
	if origin == "" {
		return []Link{}
	}
	out := make([]Link, 0, len(Modes))
	for _, m := range Modes {
		out = append(out, Link{Mode: m, Label: labels[m], URL: URL(store.Address, origin, m)})
	}
	return out
}

// componentUnescaper turns url.QueryEscape output into encodeURIComponent
// output: spaces as %20, and ! ' ( ) * left literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escape(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
