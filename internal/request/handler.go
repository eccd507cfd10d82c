package request

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sreeram023/event-approval-backend/config"
	"github.com/sreeram023/event-approval-backend/internal/auth"
	"github.com/sreeram023/event-approval-backend/middleware"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func currentUser(c *gin.Context) (auth.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return auth.User{}, false
	}
	user, ok := userVal.(auth.User)
	return user, ok
}

// respondError maps workflow errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var incomplete *IncompleteChainError
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, ErrNotCurrentApprover):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, ErrMissingReason),
		errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTimeWindow):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error(), "missing": incomplete.Missing})
	case errors.Is(err, ErrStaleRequest):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}

// Create handles POST /requests
// @Summary Submit an event-permission request
// @Tags Request
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInput true "Event fields"
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/requests [post]
func (h *Handler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthenticated"})
		return
	}

	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	req, next, err := h.svc.Create(c.Request.Context(), user, in, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Request submitted successfully",
		"data":    gin.H{"request": req, "nextApprover": next},
	})
}

type actionRequest struct {
	Comment string `json:"comment"`
	Reason  string `json:"reason"`
}

// Approve handles PUT /requests/:requestId/approve
// @Summary Approve the current step of a request
// @Tags Request
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param body body actionRequest false "Optional comment"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests/{requestId}/approve [put]
func (h *Handler) Approve(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthenticated"})
		return
	}

	var body actionRequest
	_ = c.ShouldBindJSON(&body)

	req, next, certPath, err := h.svc.Approve(c.Request.Context(), user, c.Param("requestId"), body.Comment, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Status == StatusApproved {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Request fully approved",
			"data":    gin.H{"request": req, "pdfPath": certPath},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Step approved and forwarded",
		"data":    gin.H{"request": req, "nextApprover": next},
	})
}

// Reject handles PUT /requests/:requestId/reject
// @Summary Reject a request at its current step
// @Tags Request
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param body body actionRequest true "Reason (required) and optional comment"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests/{requestId}/reject [put]
func (h *Handler) Reject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthenticated"})
		return
	}

	var body actionRequest
	_ = c.ShouldBindJSON(&body)

	req, err := h.svc.Reject(c.Request.Context(), user, c.Param("requestId"), body.Reason, body.Comment, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Request rejected", "data": req})
}

// List handles GET /requests and GET /requests/me
// @Summary List requests visible to the caller
// @Tags Request
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status or grouping (pending/complete)"
// @Param month query string false "YYYY-MM"
// @Param userId query int false "Requester scope"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests [get]
func (h *Handler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthenticated"})
		return
	}

	filter := ListFilter{
		Status: c.Query("status"),
		Month:  c.Query("month"),
	}

	if c.FullPath() != "" && filepath.Base(c.FullPath()) == "me" {
		uid := user.ID
		filter.UserID = &uid
	} else if userIDStr := c.Query("userId"); userIDStr != "" {
		if userID, err := strconv.ParseUint(userIDStr, 10, 32); err == nil {
			uid := uint(userID)
			filter.UserID = &uid
		}
	}

	enriched, err := h.svc.List(c.Request.Context(), user, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": enriched})
}

// Download handles GET /requests/:requestId/download
// @Summary Download the approval certificate
// @Tags Request
// @Produce application/pdf
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {file} file
// @Router /api/v1/requests/{requestId}/download [get]
func (h *Handler) Download(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthenticated"})
		return
	}

	req, err := h.svc.Get(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Status != StatusApproved {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Certificate available only after approval"})
		return
	}

	isInstitutionApprover := auth.IsInstitutionRole(user.Role)
	isRequester := req.UserID == user.ID
	isSameCommittee := user.Committee != "" && user.Committee == req.Committee

	if !(isInstitutionApprover || isRequester || isSameCommittee) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You are not authorized to download this certificate"})
		return
	}

	path := filepath.Join(config.CertificateDir, req.RequestID+".pdf")
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Certificate not found"})
		return
	}

	c.FileAttachment(path, req.RequestID+".pdf")
}

// CalendarOverview handles GET /requests/calendar/:month
// @Summary Distinct approved-event dates for a month
// @Tags Request
// @Produce json
// @Security BearerAuth
// @Param month path string true "YYYY-MM"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests/calendar/{month} [get]
func (h *Handler) CalendarOverview(c *gin.Context) {
	month := c.Param("month")

	dates, err := h.svc.CalendarOverview(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "month": month, "event_on": dates})
}

// EventsByDay handles GET /requests/calendar/:month/:date
// @Summary Requests scheduled on a specific day
// @Tags Request
// @Produce json
// @Security BearerAuth
// @Param month path string true "YYYY-MM"
// @Param date path string true "Day of month"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests/calendar/{month}/{date} [get]
func (h *Handler) EventsByDay(c *gin.Context) {
	month := c.Param("month")
	day := c.Param("date")
	if month == "" || day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Month or date missing"})
		return
	}

	dayNum, err := strconv.Atoi(day)
	if err != nil || dayNum < 1 || dayNum > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}
	fullDate := fmt.Sprintf("%s-%02d", month, dayNum)

	events, err := h.svc.EventsOnDay(c.Request.Context(), fullDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"date":    fullDate,
		"count":   len(events),
		"events":  events,
	})
}

// ResolveConflicts handles POST /requests/:requestId/resolve-conflicts
// @Summary Re-run the venue conflict sweep for an approved request
// @Tags Request
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests/{requestId}/resolve-conflicts [post]
func (h *Handler) ResolveConflicts(c *gin.Context) {
	if err := h.svc.RerunConflictCascade(c.Request.Context(), c.Param("requestId"), middleware.GetIPFromContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Conflict sweep completed"})
}
