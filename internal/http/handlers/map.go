package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelocator/backend/internal/models"
)

type SelectRequest struct {
	StoreID models.StoreID `json:"store_id" validate:"required"`
	Zoom    *int           `json:"zoom" validate:"omitempty,min=0,max=22"`
}

type ViewportRequest struct {
	Lat  *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng  *float64 `json:"lng" validate:"required,min=-180,max=180"`
	Zoom *int     `json:"zoom" validate:"required,min=0,max=22"`
}

type TileLayerRequest struct {
	Name string `json:"name" validate:"required"`
}

// @Summary Search and update the map
// @Tags map
// @Accept json
// @Produce json
// @Param body body SearchRequest true "Postcode"
// @Success 200 {object} MapSearchResponse
// @Router /api/map/search [post]
func (h *Handler) MapSearch(c *gin.Context) {
	var req SearchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	postcode := searchInput(req.Postcode)
	res := h.Session.Search(postcode)
	c.JSON(http.StatusOK, MapSearchResponse{
		OutcomeResponse: newOutcomeResponse(res.Outcome),
		Command:         res.Command,
		SelectedID:      selectedID(res.Selected),
		Selected:        res.Selected,
		Directions:      linksFor(res.Selected, postcode),
	})
}

// @Summary Select a store marker
// @Description Ids that are not part of the current results are ignored and reported with applied=false.
// @Tags map
// @Accept json
// @Produce json
// @Param body body SelectRequest true "Marker selection"
// @Success 200 {object} SelectResponse
// @Router /api/map/select [post]
func (h *Handler) MapSelect(c *gin.Context) {
	var req SelectRequest
	if !h.bindJSON(c, &req) {
		return
	}
	res := h.Session.Select(req.StoreID, req.Zoom)
	c.JSON(http.StatusOK, SelectResponse{
		Applied:    res.Applied,
		Command:    res.Command,
		SelectedID: selectedID(res.Selected),
		Selected:   res.Selected,
		Directions: linksFor(res.Selected, res.LastPostcode),
	})
}

// @Summary Current map state
// @Tags map
// @Produce json
// @Success 200 {object} MapStateResponse
// @Router /api/map [get]
func (h *Handler) MapState(c *gin.Context) {
	snap := h.Session.Snapshot()
	c.JSON(http.StatusOK, MapStateResponse{
		Markers:        snap.Markers,
		SelectedID:     snap.SelectedID,
		Selected:       snap.Selected,
		Directions:     linksFor(snap.Selected, snap.LastPostcode),
		LastPostcode:   snap.LastPostcode,
		BannerPostcode: snap.BannerPostcode,
		ErrorCode:      string(snap.ErrorCode),
		ErrorMessage:   snap.ErrorMessage,
		Center:         snap.Center,
		Zoom:           snap.Zoom,
		TileLayer:      snap.TileLayer,
		Map:            snap.Map,
	})
}

// @Summary Report the widget viewport
// @Tags map
// @Accept json
// @Produce json
// @Param body body ViewportRequest true "Viewport"
// @Success 200 {object} map[string]any
// @Router /api/map/viewport [put]
func (h *Handler) MapViewport(c *gin.Context) {
	var req ViewportRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.Session.ReportViewport(models.Coordinates{Lat: *req.Lat, Lng: *req.Lng}, *req.Zoom)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Switch tile layer
// @Tags map
// @Accept json
// @Produce json
// @Param body body TileLayerRequest true "Layer name"
// @Success 200 {object} mapview.TileLayer
// @Router /api/map/tile-layer [put]
func (h *Handler) MapTileLayer(c *gin.Context) {
	var req TileLayerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	layer, err := h.Session.SetTileLayer(req.Name)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown tile layer", err.Error())
		return
	}
	c.JSON(http.StatusOK, layer)
}
