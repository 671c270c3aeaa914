package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/storelocator/backend/internal/models"
	"github.com/storelocator/backend/internal/utils"
)

// parseRows maps tabular rows (CSV or a spreadsheet sheet) onto stores.
// Row problems are collected rather than aborting the whole table.
func parseRows(headers []string, rows [][]string) ([]models.StoreLocation, []string) {
	index := headerIndex(headers)
	var errors []string
	var out []models.StoreLocation

	for i, rec := range rows {
		line := i + 2
		if isBlank(rec) {
			continue
		}
		latStr := getFieldAny(rec, index, "latitude", "lat")
		lonStr := getFieldAny(rec, index, "longitude", "lon", "lng")
		lat, err := parseCoord(latStr)
		if err != nil {
			errors = append(errors, fmt.Sprintf("row %d: invalid latitude %q", line, latStr))
			continue
		}
		lon, err := parseCoord(lonStr)
		if err != nil {
			errors = append(errors, fmt.Sprintf("row %d: invalid longitude %q", line, lonStr))
			continue
		}

		s := models.StoreLocation{
			ID:            models.StoreID(getFieldAny(rec, index, "id", "store_id")),
			Name:          getFieldAny(rec, index, "name", "store_name"),
			Address:       getFieldAny(rec, index, "address"),
			Postcode:      getFieldAny(rec, index, "postcode", "post_code", "zip"),
			Latitude:      lat,
			Longitude:     lon,
			ImageURL:      getFieldAny(rec, index, "image_url", "imageurl"),
			OpeningHours:  splitHours(getFieldAny(rec, index, "opening_hours", "openinghours")),
			Services:      splitList(getFieldAny(rec, index, "services")),
			Accessibility: splitList(getFieldAny(rec, index, "accessibility")),
		}
		phone := getFieldAny(rec, index, "phone")
		website := getFieldAny(rec, index, "website")
		if phone != "" || website != "" {
			s.Contact = &models.Contact{Phone: phone, Website: website}
		}
		if s.Name == "" || s.Postcode == "" {
			errors = append(errors, fmt.Sprintf("row %d: name and postcode required", line))
			continue
		}
		fillDerivedID(&s)
		out = append(out, s)
	}
	return out, errors
}

func fillDerivedID(s *models.StoreLocation) {
	if strings.TrimSpace(string(s.ID)) == "" {
		s.ID = models.StoreID(utils.DerivedStoreID(s.Name, s.Postcode))
	}
}

func parseCoord(val string) (float64, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(val, 64)
}

func headerIndex(headers []string) map[string]int {
	idx := map[string]int{}
	for i, h := range headers {
		idx[normalizeHeader(h)] = i
	}
	return idx
}

func getField(rec []string, idx map[string]int, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[pos])
}

func getFieldAny(rec []string, idx map[string]int, names ...string) string {
	for _, name := range names {
		if v := getField(rec, idx, normalizeHeader(name)); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\ufeff", "")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func splitList(raw string) []string {
	raw = strings.ReplaceAll(raw, "|", ";")
	parts := strings.Split(raw, ";")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitHours parses "Monday=8am-10pm;Tuesday=8am-10pm".
func splitHours(raw string) map[string]string {
	var out map[string]string
	for _, part := range splitList(raw) {
		day, hours, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		day = strings.TrimSpace(day)
		if day == "" {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[day] = strings.TrimSpace(hours)
	}
	return out
}

// joinHours is the inverse of splitHours, days in lexical order.
func joinHours(hours map[string]string) string {
	days := make([]string, 0, len(hours))
	for day := range hours {
		days = append(days, day)
	}
	sort.Strings(days)
	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = day + "=" + hours[day]
	}
	return strings.Join(parts, ";")
}
