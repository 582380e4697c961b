package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xeur-ai/landing-api/internal/domain/repository"
	"github.com/xeur-ai/landing-api/internal/handler/dto"
	"github.com/xeur-ai/landing-api/internal/service"
)

// ContactHandler serves the contact-form endpoints.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates the contact handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	result, err := h.contactService.Submit(c.Request.Context(), service.ContactSubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Type:    req.Type,
	}, requestMeta(c))
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to submit contact form")
		return
	}

	Success(c, result, "Thank you for contacting us! We'll get back to you within 24 hours.")
}

// List handles GET /api/contact with optional status/type filters.
func (h *ContactHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	filter := repository.ContactFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}

	forms, total, err := h.contactService.List(filter, page, limit)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to fetch contact forms")
		return
	}

	Success(c, gin.H{
		"contacts":   forms,
		"pagination": NewPagination(page, limit, total),
	}, "")
}

// UpdateStatus handles PATCH /api/contact.
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	form, err := h.contactService.UpdateStatus(c.Request.Context(), req.ID, req.Status, req.Response)
	if err != nil {
		RespondServiceError(c, err,
			"Invalid status",
			"Contact form not found",
			"Contact form already updated",
			"Failed to update contact form")
		return
	}

	Success(c, form, "Contact form updated")
}

// Export handles GET /api/admin/contacts/export.
func (h *ContactHandler) Export(c *gin.Context) {
	forms, err := h.contactService.ListAll()
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to export contact forms")
		return
	}

	headers := []interface{}{"Name", "Email", "Type", "Subject", "Message", "Status", "Responded At", "Created At"}
	rows := make([][]interface{}, 0, len(forms))
	for _, f := range forms {
		respondedAt := ""
		if f.RespondedAt != nil {
			respondedAt = f.RespondedAt.Format(time.RFC3339)
		}
		rows = append(rows, []interface{}{
			sanitizeForExcel(f.Name),
			sanitizeForExcel(f.Email),
			f.Type,
			sanitizeForExcel(f.Subject),
			sanitizeForExcel(f.Message),
			f.Status,
			respondedAt,
			f.CreatedAt.Format(time.RFC3339),
		})
	}

	writeXLSX(c, "contact-forms", "Contact Forms", headers, rows)
}
