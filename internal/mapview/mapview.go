// Package mapview describes how the map widget is drawn and where it starts.
// The values are handed to the widget and the viewport controller at
// construction time; nothing here is process-global.
package mapview

import (
	"fmt"

	"github.com/storelocator/backend/internal/models"
)

const (
	maxZoom = 22

	LayerOpenStreetMap       = "OpenStreetMap"
	LayerStadiaAlidadeSmooth = "Stadia_AlidadeSmooth"
	LayerStadiaTonerLite     = "Stadia_TonerLite"
)

// Viewport holds the fixed numbers the controller uses to drive the map.
type Viewport struct {
	DefaultCenter models.Coordinates `json:"default_center"`
	DefaultZoom   int                `json:"default_zoom"`
	FitPaddingPx  int                `json:"fit_padding_px"`
	ZoomThreshold int                `json:"zoom_threshold"`
	FocusZoom     int                `json:"focus_zoom"`
}

func DefaultViewport() Viewport {
	return Viewport{
		DefaultCenter: models.Coordinates{Lat: 51.509865, Lng: -0.118092},
		DefaultZoom:   10,
		FitPaddingPx:  50,
		ZoomThreshold: 12,
		FocusZoom:     14,
	}
}

func (v Viewport) Validate() error {
	for name, z := range map[string]int{"default": v.DefaultZoom, "threshold": v.ZoomThreshold, "focus": v.FocusZoom} {
		if z < 0 || z > maxZoom {
			return fmt.Errorf("%s zoom %d outside 0..%d", name, z, maxZoom)
		}
	}
	if v.FitPaddingPx < 0 {
		return fmt.Errorf("fit padding must not be negative")
	}
	return nil
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MarkerIcon is the rendering config for store markers.
type MarkerIcon struct {
	IconURL       string `json:"icon_url"`
	IconRetinaURL string `json:"icon_retina_url"`
	ShadowURL     string `json:"shadow_url"`
	IconSize      Point  `json:"icon_size"`
	IconAnchor    Point  `json:"icon_anchor"`
	PopupAnchor   Point  `json:"popup_anchor"`
	ShadowSize    Point  `json:"shadow_size"`
}

func DefaultMarkerIcon() MarkerIcon {
	return MarkerIcon{
		IconURL:       "https://unpkg.com/leaflet@1.7.1/dist/images/marker-icon.png",
		IconRetinaURL: "https://unpkg.com/leaflet@1.7.1/dist/images/marker-icon-2x.png",
		ShadowURL:     "https://unpkg.com/leaflet@1.7.1/dist/images/marker-shadow.png",
		IconSize:      Point{X: 25, Y: 41},
		IconAnchor:    Point{X: 12, Y: 41},
		PopupAnchor:   Point{X: 1, Y: -34},
		ShadowSize:    Point{X: 41, Y: 41},
	}
}

type TileLayer struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Config struct {
	Viewport    Viewport    `json:"viewport"`
	Icon        MarkerIcon  `json:"icon"`
	TileLayers  []TileLayer `json:"tile_layers"`
	TileLayer   string      `json:"tile_layer"`
	Attribution string      `json:"attribution"`
}

func DefaultConfig() Config {
	return Config{
		Viewport: DefaultViewport(),
		Icon:     DefaultMarkerIcon(),
		TileLayers: []TileLayer{
			{Name: LayerOpenStreetMap, URL: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"},
			{Name: LayerStadiaAlidadeSmooth, URL: "https://tiles.stadiamaps.com/tiles/alidade_smooth/{z}/{x}/{y}{r}.png"},
			{Name: LayerStadiaTonerLite, URL: "https://tiles.stadiamaps.com/tiles/toner_lite/{z}/{x}/{y}{r}.png"},
		},
		TileLayer:   LayerOpenStreetMap,
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors | &copy; <a href="https://www.stadiamaps.com/">Stadia Maps</a> contributors`,
	}
}

func (c Config) Layer(name string) (TileLayer, bool) {
	for _, l := range c.TileLayers {
		if l.Name == name {
			return l, true
		}
	}
	return TileLayer{}, false
}

func (c Config) Validate() error {
	if err := c.Viewport.Validate(); err != nil {
		return err
	}
	if _, ok := c.Layer(c.TileLayer); !ok {
		return fmt.Errorf("unknown tile layer %q", c.TileLayer)
	}
	return nil
}
