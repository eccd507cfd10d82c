package venue

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /venues
// @Summary List bookable venues with their confirmed slots
// @Tags Venue
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/venues [get]
func (h *Handler) List(c *gin.Context) {
	venues, err := h.svc.ListVenues(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve venues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "venues": venues})
}
