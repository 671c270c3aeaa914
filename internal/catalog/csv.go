package catalog

import (
	"encoding/csv"
	"io"

	"github.com/storelocator/backend/internal/models"
)

// ParseCSV reads a header row followed by one store per row.
func ParseCSV(r io.Reader) ([]models.StoreLocation, []string) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, []string{"failed to read header"}
	}

	var rows [][]string
	var errors []string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errors = append(errors, err.Error())
			continue
		}
		rows = append(rows, rec)
	}
	stores, rowErrs := parseRows(headers, rows)
	return stores, append(errors, rowErrs...)
}
