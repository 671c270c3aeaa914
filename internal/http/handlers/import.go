package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelocator/backend/internal/catalog"
)

type ImportSummary struct {
	Parsed   int      `json:"parsed"`
	Inserted int      `json:"inserted"`
	Errors   []string `json:"errors"`
	Note     string   `json:"note"`
}

// @Summary Import store catalog
// @Description Replaces the persisted catalog. The running catalog is unchanged until restart.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param stores formData file true "stores.csv"
// @Success 200 {object} ImportSummary
// @Failure 400 {object} map[string]any
// @Router /api/import [post]
func (h *Handler) Import(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database not configured", nil)
		return
	}
	fh, err := c.FormFile("stores")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "stores file required", nil)
		return
	}
	if !validateExt(fh.Filename) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "stores file must be .csv", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot read stores file", err.Error())
		return
	}
	defer f.Close()

	stores, errs := catalog.ParseCSV(f)
	summary := ImportSummary{Parsed: len(stores), Errors: errs}
	if summary.Errors == nil {
		summary.Errors = []string{}
	}
	if len(errs) > 0 {
		writeError(c, http.StatusBadRequest, "CSV_PARSE_ERROR", "CSV validation errors", errs)
		return
	}
	// Same checks the catalog applies at startup.
	if _, err := catalog.New(stores); err != nil {
		writeError(c, http.StatusBadRequest, "CSV_PARSE_ERROR", "Invalid catalog", err.Error())
		return
	}

	inserted, err := h.Store.ReplaceStores(c.Request.Context(), stores)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to replace stores")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to insert stores", err.Error())
		return
	}
	summary.Inserted = int(inserted)
	summary.Note = "catalog is reloaded on restart"
	h.Logger.Info().Int("stores", summary.Inserted).Msg("catalog imported")
	c.JSON(http.StatusOK, summary)
}
