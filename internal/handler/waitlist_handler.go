package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xeur-ai/landing-api/internal/handler/dto"
	"github.com/xeur-ai/landing-api/internal/service"
)

// WaitlistHandler serves the waitlist signup, status and admin endpoints.
type WaitlistHandler struct {
	waitlistService *service.WaitlistService
}

// NewWaitlistHandler creates the waitlist handler.
func NewWaitlistHandler(waitlistService *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlistService: waitlistService}
}

// Join handles POST /api/waitlist.
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req dto.WaitlistSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	result, err := h.waitlistService.CreateEntry(c.Request.Context(), service.WaitlistSignupInput{
		Email:      req.Email,
		Name:       req.Name,
		GameTypes:  req.GameTypes,
		Experience: req.Experience,
		Source:     req.Source,
	}, requestMeta(c))
	if err != nil {
		RespondServiceError(c, err,
			"Invalid waitlist data",
			"Waitlist entry not found",
			"Email already registered for waitlist",
			"Failed to join waitlist")
		return
	}

	Success(c, result, "Welcome to XEUR.AI! Check your email for confirmation details.")
}

// Status handles GET /api/waitlist?email=...
func (h *WaitlistHandler) Status(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		Error(c, http.StatusBadRequest, "Email parameter is required")
		return
	}
	if !isValidEmail(email) {
		Error(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	status, err := h.waitlistService.GetStatus(email)
	if err != nil {
		RespondServiceError(c, err,
			"Invalid email address",
			"Email not found in waitlist",
			"Email already registered for waitlist",
			"Failed to fetch waitlist status")
		return
	}

	Success(c, status, "")
}

// Update handles PATCH /api/waitlist.
func (h *WaitlistHandler) Update(c *gin.Context) {
	var req dto.WaitlistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	entry, err := h.waitlistService.UpdateEntry(req.Email, service.WaitlistUpdateInput{
		Name:       req.Name,
		Status:     req.Status,
		Experience: req.Experience,
		GameTypes:  req.GameTypes,
		Priority:   req.Priority,
		Source:     req.Source,
	})
	if err != nil {
		RespondServiceError(c, err,
			"Invalid waitlist data",
			"Email not found in waitlist",
			"Email already registered for waitlist",
			"Failed to update waitlist entry")
		return
	}

	Success(c, entry, "Waitlist entry updated")
}

// Export handles GET /api/admin/waitlist/export, streaming the full queue
// as a workbook in queue order.
func (h *WaitlistHandler) Export(c *gin.Context) {
	entries, err := h.waitlistService.ListAll()
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to export waitlist")
		return
	}

	headers := []interface{}{"Position", "Email", "Name", "Game Types", "Experience", "Status", "Source", "Priority", "Created At"}
	rows := make([][]interface{}, 0, len(entries))
	for i, e := range entries {
		name := ""
		if e.Name != nil {
			name = *e.Name
		}
		source := ""
		if e.Source != nil {
			source = *e.Source
		}
		rows = append(rows, []interface{}{
			i + 1,
			sanitizeForExcel(e.Email),
			sanitizeForExcel(name),
			sanitizeForExcel(strings.Join(e.GameTypes, ", ")),
			e.Experience,
			e.Status,
			sanitizeForExcel(source),
			e.Priority,
			e.CreatedAt.Format(time.RFC3339),
		})
	}

	writeXLSX(c, "waitlist", "Waitlist", headers, rows)
}
