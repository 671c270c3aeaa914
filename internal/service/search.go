package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/storelocator/backend/internal/catalog"
	"github.com/storelocator/backend/internal/geocode"
	"github.com/storelocator/backend/internal/models"
	"github.com/storelocator/backend/internal/utils"
)

// DefaultSearchLimit is how many nearest stores an exact postcode match returns.
const DefaultSearchLimit = 5

type OutcomeKind string

const (
	OutcomeSuccess          OutcomeKind = "SUCCESS"
	OutcomeNotFoundNoNearby OutcomeKind = "NOT_FOUND_NO_NEARBY"
	OutcomeNotFoundNoMatch  OutcomeKind = "NOT_FOUND_NO_MATCH"
)

type SearchMode string

const (
	ModeReference SearchMode = "reference"
	ModeSubstring SearchMode = "substring"
)

// SearchOutcome is the result of one Resolve call. Results is non-empty
// exactly when Kind is OutcomeSuccess.
type SearchOutcome struct {
	Kind    OutcomeKind
	Mode    SearchMode
	Query   string
	Key     string
	Origin  *models.Coordinates
	Results []models.RankedResult
	Message string
}

func (o SearchOutcome) Found() bool {
	return o.Kind == OutcomeSuccess
}

// Stores strips the distance annotation, in result order.
func (o SearchOutcome) Stores() []models.StoreLocation {
	out := make([]models.StoreLocation, len(o.Results))
	for i, r := range o.Results {
		out[i] = r.StoreLocation
	}
	return out
}

// Resolver turns postcode text into a ranked result set. It holds only
// immutable inputs and is safe for concurrent use.
type Resolver struct {
	Catalog   *catalog.Catalog
	Reference geocode.Lookup
	Limit     int
}

func NewResolver(c *catalog.Catalog, ref geocode.Lookup, limit int) *Resolver {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &Resolver{Catalog: c, Reference: ref, Limit: limit}
}

// Resolve normalizes query and picks the search mode purely from reference
// table membership of the normalized key.
func (r *Resolver) Resolve(query string) SearchOutcome {
	key := geocode.NormalizePostcode(query)
	if r.Reference != nil {
		if origin, ok := r.Reference.Lookup(key); ok {
			return r.rankNearest(query, key, origin)
		}
	}
	return r.matchSubstring(query, key)
}

func (r *Resolver) rankNearest(query, key string, origin models.Coordinates) SearchOutcome {
	stores := r.Catalog.Stores()
	ranked := make([]models.RankedResult, len(stores))
	for i, s := range stores {
		d := utils.DistanceKm(origin, s.Coordinates())
		ranked[i] = models.RankedResult{StoreLocation: s, DistanceKm: &d}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].DistanceKm < *ranked[j].DistanceKm
	})
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := SearchOutcome{Mode: ModeReference, Query: query, Key: key, Origin: &origin}
	if len(ranked) == 0 {
		out.Kind = OutcomeNotFoundNoNearby
		out.Message = fmt.Sprintf("No nearby stores found for %s. Please try another postcode.", query)
		return out
	}
	out.Kind = OutcomeSuccess
	out.Results = ranked
	return out
}

// matchSubstring compares against the upper-cased raw query, spaces kept.
// The exact-match key strips spaces while this path does not; callers rely
// on that difference.
func (r *Resolver) matchSubstring(query, key string) SearchOutcome {
	out := SearchOutcome{Mode: ModeSubstring, Query: query, Key: key}
	notFound := func() SearchOutcome {
		out.Kind = OutcomeNotFoundNoMatch
		out.Message = fmt.Sprintf("No stores found with the postcode: %s.", query)
		return out
	}
	// Empty input would match every postcode.
	if key == "" {
		return notFound()
	}

	needle := strings.ToUpper(query)
	var matched []models.RankedResult
	for _, s := range r.Catalog.Stores() {
		if strings.Contains(strings.ToUpper(s.Postcode), needle) {
			matched = append(matched, models.RankedResult{StoreLocation: s})
		}
	}
	if len(matched) == 0 {
		return notFound()
	}
	out.Kind = OutcomeSuccess
	out.Results = matched
	return out
}
