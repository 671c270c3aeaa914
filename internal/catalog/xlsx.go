package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/storelocator/backend/internal/models"
)

// XLSXColumns is the header row WriteXLSX emits. parseRows reads every one.
var XLSXColumns = []string{
	"id", "name", "address", "postcode", "latitude", "longitude", "image_url",
	"opening_hours", "phone", "website", "services", "accessibility",
}

// LoadXLSX reads stores from a workbook sheet. An empty sheet name selects
// the first sheet. The first row is the header.
func LoadXLSX(path string, sheet string) ([]models.StoreLocation, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet)
}

// ParseXLSX is LoadXLSX for a workbook already in memory.
func ParseXLSX(r io.Reader, sheet string) ([]models.StoreLocation, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet)
}

func readSheet(f *excelize.File, sheet string) ([]models.StoreLocation, []string, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	stores, errs := parseRows(rows[0], rows[1:])
	return stores, errs, nil
}

// WriteXLSX exports stores in the column layout LoadXLSX accepts.
func WriteXLSX(w io.Writer, sheet string, stores []models.StoreLocation) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := make([]interface{}, len(XLSXColumns))
	for i, col := range XLSXColumns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, s := range stores {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		var phone, website string
		if s.Contact != nil {
			phone, website = s.Contact.Phone, s.Contact.Website
		}
		row := []interface{}{
			string(s.ID), s.Name, s.Address, s.Postcode, s.Latitude, s.Longitude, s.ImageURL,
			joinHours(s.OpeningHours), phone, website,
			strings.Join(s.Services, ";"), strings.Join(s.Accessibility, ";"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	_, err = f.WriteTo(w)
	return err
}
