package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Month handles GET /calendar/:month
// @Summary List published calendar events for a month
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param month path string true "YYYY-MM"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/calendar/{month} [get]
func (h *Handler) Month(c *gin.Context) {
	month := c.Param("month")

	events, err := h.svc.EventsForMonth(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "month": month, "events": events})
}

// Day handles GET /calendar/:month/:date
// @Summary List published calendar events on a day
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param month path string true "YYYY-MM"
// @Param date path string true "Day of month (1-31)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/calendar/{month}/{date} [get]
func (h *Handler) Day(c *gin.Context) {
	month := c.Param("month")
	day := c.Param("date")

	dayNum, err := strconv.Atoi(day)
	if err != nil || dayNum < 1 || dayNum > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}
	fullDate := fmt.Sprintf("%s-%02d", month, dayNum)

	events, err := h.svc.EventsForDate(c.Request.Context(), fullDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "date": fullDate, "events": events})
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidPeriod) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve calendar events"})
}
