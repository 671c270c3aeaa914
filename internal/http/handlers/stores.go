package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelocator/backend/internal/catalog"
	"github.com/storelocator/backend/internal/directions"
	"github.com/storelocator/backend/internal/models"
)

// @Summary List stores
// @Tags stores
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/stores [get]
func (h *Handler) StoresList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Catalog.Stores(), "total": h.Catalog.Len()})
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// @Summary Export stores as a workbook
// @Description Same column layout the XLSX catalog loader reads.
// @Tags stores
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /api/stores/export [get]
func (h *Handler) StoresExport(c *gin.Context) {
	var buf bytes.Buffer
	if err := catalog.WriteXLSX(&buf, "Stores", h.Catalog.Stores()); err != nil {
		h.Logger.Error().Err(err).Msg("failed to build catalog workbook")
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Failed to export stores", err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="stores.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// @Summary Store details
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} models.StoreLocation
// @Failure 404 {object} map[string]any
// @Router /api/stores/{id} [get]
func (h *Handler) StoreDetails(c *gin.Context) {
	store, ok := h.lookupStore(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store)
}

// @Summary Directions links to a store
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Param origin query string false "Origin postcode, defaults to the last searched postcode"
// @Param mode query string false "driving, transit, walking or bicycling"
// @Success 200 {object} map[string]any
// @Router /api/stores/{id}/directions [get]
func (h *Handler) StoreDirections(c *gin.Context) {
	store, ok := h.lookupStore(c)
	if !ok {
		return
	}
	origin := c.Query("origin")
	if origin == "" && h.Session != nil {
		origin = h.Session.Snapshot().LastPostcode
	}

	links := directions.Links(store, origin)
	if raw := c.Query("mode"); raw != "" {
		mode, err := directions.ParseMode(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown travel mode", err.Error())
			return
		}
		filtered := links[:0]
		for _, l := range links {
			if l.Mode == mode {
				filtered = append(filtered, l)
			}
		}
		links = filtered
	}
	c.JSON(http.StatusOK, gin.H{"store_id": store.ID, "origin": origin, "items": links})
}

// @Summary Reference postcodes
// @Tags stores
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/reference-postcodes [get]
func (h *Handler) ReferencePostcodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Reference.Entries()})
}

func (h *Handler) lookupStore(c *gin.Context) (models.StoreLocation, bool) {
	store, err := h.Catalog.Get(models.StoreID(c.Param("id")))
	if err != nil {
		if errors.Is(err, catalog.ErrStoreNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Store not found", nil)
			return models.StoreLocation{}, false
		}
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Failed to load store", err.Error())
		return models.StoreLocation{}, false
	}
	return store, true
}
