package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xeur-ai/landing-api/internal/domain/repository"
	"github.com/xeur-ai/landing-api/internal/handler/dto"
	"github.com/xeur-ai/landing-api/internal/service"
)

// InvestmentHandler serves the investment-inquiry endpoints.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates the investment handler.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// Submit handles POST /api/investment.
func (h *InvestmentHandler) Submit(c *gin.Context) {
	var req dto.InvestmentSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	result, err := h.investmentService.Submit(c.Request.Context(), service.InvestmentSubmitInput{
		Name:           req.Name,
		Email:          req.Email,
		Company:        req.Company,
		Position:       req.Position,
		InvestmentSize: req.InvestmentSize,
		Message:        req.Message,
		FundType:       req.FundType,
		Timeline:       req.Timeline,
	}, requestMeta(c))
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to submit investment inquiry")
		return
	}

	Success(c, result, "Thank you for your interest! Our investor relations team will reach out shortly.")
}

// List handles GET /api/investment with optional status/fundType filters.
func (h *InvestmentHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	filter := repository.InvestmentFilter{
		Status:   c.Query("status"),
		FundType: c.Query("fundType"),
	}

	inquiries, total, stats, err := h.investmentService.List(filter, page, limit)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to fetch investment inquiries")
		return
	}

	Success(c, gin.H{
		"inquiries":  inquiries,
		"stats":      stats,
		"pagination": NewPagination(page, limit, total),
	}, "")
}

// UpdateStatus handles PATCH /api/investment.
func (h *InvestmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	inquiry, err := h.investmentService.UpdateStatus(c.Request.Context(), req.ID, req.Status, req.Response)
	if err != nil {
		RespondServiceError(c, err,
			"Invalid status",
			"Investment inquiry not found",
			"Investment inquiry already updated",
			"Failed to update investment inquiry")
		return
	}

	Success(c, inquiry, "Investment inquiry updated")
}
