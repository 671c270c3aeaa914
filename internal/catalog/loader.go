package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/storelocator/backend/internal/models"
)

// Load reads a catalog file, picking the parser from the file extension.
func Load(path string) (*Catalog, error) {
	var (
		stores []models.StoreLocation
		errs   []string
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		stores, err = loadJSONFile(path)
	case ".csv":
		stores, errs, err = loadCSVFile(path)
	case ".xlsx":
		stores, errs, err = LoadXLSX(path, "")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog %s: %d invalid rows: %s", path, len(errs), strings.Join(errs, "; "))
	}
	return New(stores)
}

func loadJSONFile(path string) ([]models.StoreLocation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ParseJSON(f)
}

func loadCSVFile(path string) ([]models.StoreLocation, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	stores, errs := ParseCSV(f)
	return stores, errs, nil
}

// ParseJSON decodes a JSON array of stores. Stores without an id get one
// derived from name and postcode.
func ParseJSON(r io.Reader) ([]models.StoreLocation, error) {
	var stores []models.StoreLocation
	if err := json.NewDecoder(r).Decode(&stores); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}
	for i := range stores {
		fillDerivedID(&stores[i])
	}
	return stores, nil
}
