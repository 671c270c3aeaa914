package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SearchRequest struct {
	Postcode string `json:"postcode" form:"postcode" validate:"max=32"`
}

// @Summary Resolve a postcode
// @Description Ranks the nearest stores for a known postcode or falls back to postcode text matching. Does not touch the map session.
// @Tags search
// @Produce json
// @Param postcode query string true "Postcode"
// @Success 200 {object} OutcomeResponse
// @Router /api/search [get]
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	outcome := h.Resolver.Resolve(searchInput(req.Postcode))
	c.JSON(http.StatusOK, newOutcomeResponse(outcome))
}
