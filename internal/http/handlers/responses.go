package handlers

import (
	"github.com/storelocator/backend/internal/directions"
	"github.com/storelocator/backend/internal/mapview"
	"github.com/storelocator/backend/internal/models"
	"github.com/storelocator/backend/internal/service"
)

type OutcomeResponse struct {
	Status             string                `json:"status"`
	Code               string                `json:"code,omitempty"`
	Message            string                `json:"message,omitempty"`
	Mode               string                `json:"mode"`
	Postcode           string                `json:"postcode"`
	NormalizedPostcode string                `json:"normalized_postcode"`
	Origin             *models.Coordinates   `json:"origin,omitempty"`
	Results            []models.RankedResult `json:"results"`
}

type MapSearchResponse struct {
	OutcomeResponse
	Command    service.ViewportCommand `json:"command"`
	SelectedID *models.StoreID         `json:"selected_id"`
	Selected   *models.StoreLocation   `json:"selected"`
	Directions []directions.Link       `json:"directions"`
}

type SelectResponse struct {
	Applied    bool                     `json:"applied"`
	Command    *service.ViewportCommand `json:"command"`
	SelectedID *models.StoreID          `json:"selected_id"`
	Selected   *models.StoreLocation    `json:"selected"`
	Directions []directions.Link        `json:"directions"`
}

type MapStateResponse struct {
	Markers        []models.RankedResult `json:"markers"`
	SelectedID     *models.StoreID       `json:"selected_id"`
	Selected       *models.StoreLocation `json:"selected"`
	Directions     []directions.Link     `json:"directions"`
	LastPostcode   string                `json:"last_postcode,omitempty"`
	BannerPostcode string                `json:"banner_postcode,omitempty"`
	ErrorCode      string                `json:"error_code,omitempty"`
	ErrorMessage   string                `json:"error_message,omitempty"`
	Center         *models.Coordinates   `json:"center,omitempty"`
	Zoom           *int                  `json:"zoom,omitempty"`
	TileLayer      mapview.TileLayer     `json:"tile_layer"`
	Map            mapview.Config        `json:"map"`
}

func newOutcomeResponse(o service.SearchOutcome) OutcomeResponse {
	resp := OutcomeResponse{
		Status:             "success",
		Mode:               string(o.Mode),
		Postcode:           o.Query,
		NormalizedPostcode: o.Key,
		Origin:             o.Origin,
		Results:            o.Results,
	}
	if !o.Found() {
		resp.Status = "not_found"
		resp.Code = string(o.Kind)
		resp.Message = o.Message
		resp.Results = []models.RankedResult{}
	}
	return resp
}

func selectedID(s *models.StoreLocation) *models.StoreID {
	if s == nil {
		return nil
	}
	id := s.ID
	return &id
}

func linksFor(s *models.StoreLocation, origin string) []directions.Link {
	if s == nil {
		return []directions.Link{}
	}
	return directions.Links(*s, origin)
}
