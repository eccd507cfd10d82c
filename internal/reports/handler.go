package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo     Repository
	exporter Exporter
}

func NewHandler(repo Repository, exporter Exporter) *Handler {
	return &Handler{repo: repo, exporter: exporter}
}

// ExportRequests handles GET /reports/requests
// @Summary Export the event request register
// @Tags Reports
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv (default), excel or pdf"
// @Param status query string false "Filter by status"
// @Param committee query string false "Filter by committee"
// @Param month query string false "YYYY-MM"
// @Success 200 {file} file
// @Router /api/v1/reports/requests [get]
func (h *Handler) ExportRequests(c *gin.Context) {
	format := c.DefaultQuery("format", FormatCSV)

	filter := ReportFilter{
		Status:    c.Query("status"),
		Committee: c.Query("committee"),
	}
	if month := c.Query("month"); month != "" {
		from, err := time.Parse("2006-01", month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format. Use YYYY-MM"})
			return
		}
		to := from.AddDate(0, 1, 0)
		filter.From = &from
		filter.To = &to
	}

	rows, err := h.repo.RequestRegister(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	content, filename, mimeType, err := h.exporter.Export(format, rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, mimeType, content)
}
