package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/storelocator/backend/internal/catalog"
	"github.com/storelocator/backend/internal/geocode"
	"github.com/storelocator/backend/internal/models"
	"github.com/storelocator/backend/internal/service"
)

// CatalogStore is the persistence the handlers need. It is nil when no
// database is configured.
type CatalogStore interface {
	Ping(ctx context.Context) error
	ReplaceStores(ctx context.Context, stores []models.StoreLocation) (int64, error)
}

type Handler struct {
	Catalog   *catalog.Catalog
	Reference *geocode.ReferenceTable
	Resolver  *service.Resolver
	Session   *service.Session
	Store     CatalogStore
	Validator *validator.Validate
	Logger    zerolog.Logger
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "stores": h.Catalog.Len(), "reference_postcodes": h.Reference.Len()})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// bindJSON decodes and validates a request body, writing the error response
// itself. It reports whether the handler should continue.
func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return false
	}
	return true
}

// searchInput mirrors the search box: surrounding spaces trimmed, upper-cased.
func searchInput(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func validateExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".csv"
}
