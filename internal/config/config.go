package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/storelocator/backend/internal/mapview"
	"github.com/storelocator/backend/internal/models"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Env                    string        `mapstructure:"ENV"`
	Port                   string        `mapstructure:"PORT"`
	DatabaseURL            string        `mapstructure:"DATABASE_URL"`
	AdminKey               string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed            string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout         time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB        int64         `mapstructure:"MAX_UPLOAD_MB"`
	CatalogSource          string        `mapstructure:"CATALOG_SOURCE"`
	CatalogPath            string        `mapstructure:"CATALOG_PATH"`
	ReferencePostcodesPath string        `mapstructure:"REFERENCE_POSTCODES_PATH"`
	SearchLimit            int           `mapstructure:"SEARCH_LIMIT"`
	MapDefaultLat          float64       `mapstructure:"MAP_DEFAULT_LAT"`
	MapDefaultLng          float64       `mapstructure:"MAP_DEFAULT_LNG"`
	MapDefaultZoom         int           `mapstructure:"MAP_DEFAULT_ZOOM"`
	MapFitPaddingPx        int           `mapstructure:"MAP_FIT_PADDING_PX"`
	MapZoomThreshold       int           `mapstructure:"MAP_ZOOM_THRESHOLD"`
	MapFocusZoom           int           `mapstructure:"MAP_FOCUS_ZOOM"`
	MapTileLayer           string        `mapstructure:"MAP_TILE_LAYER"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	defaults := mapview.DefaultViewport()
	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ADMIN_KEY", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("CATALOG_SOURCE", CatalogSourceFile)
	v.SetDefault("CATALOG_PATH", "data/stores.json")
	v.SetDefault("REFERENCE_POSTCODES_PATH", "")
	v.SetDefault("SEARCH_LIMIT", 5)
	v.SetDefault("MAP_DEFAULT_LAT", defaults.DefaultCenter.Lat)
	v.SetDefault("MAP_DEFAULT_LNG", defaults.DefaultCenter.Lng)
	v.SetDefault("MAP_DEFAULT_ZOOM", defaults.DefaultZoom)
	v.SetDefault("MAP_FIT_PADDING_PX", defaults.FitPaddingPx)
	v.SetDefault("MAP_ZOOM_THRESHOLD", defaults.ZoomThreshold)
	v.SetDefault("MAP_FOCUS_ZOOM", defaults.FocusZoom)
	v.SetDefault("MAP_TILE_LAYER", mapview.LayerOpenStreetMap)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceFile:
		if strings.TrimSpace(c.CatalogPath) == "" {
			return fmt.Errorf("CATALOG_PATH is required for the file catalog source")
		}
	case CatalogSourcePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres catalog source")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}
	return c.MapConfig().Validate()
}

// MapConfig builds the map rendering config handed to the widget and the
// viewport controller.
func (c Config) MapConfig() mapview.Config {
	m := mapview.DefaultConfig()
	m.Viewport = mapview.Viewport{
		DefaultCenter: models.Coordinates{Lat: c.MapDefaultLat, Lng: c.MapDefaultLng},
		DefaultZoom:   c.MapDefaultZoom,
		FitPaddingPx:  c.MapFitPaddingPx,
		ZoomThreshold: c.MapZoomThreshold,
		FocusZoom:     c.MapFocusZoom,
	}
	m.TileLayer = c.MapTileLayer
	return m
}
