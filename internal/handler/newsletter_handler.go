package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xeur-ai/landing-api/internal/handler/dto"
	"github.com/xeur-ai/landing-api/internal/service"
)

// NewsletterHandler serves the newsletter subscription endpoints.
type NewsletterHandler struct {
	newsletterService *service.NewsletterService
}

// NewNewsletterHandler creates the newsletter handler.
func NewNewsletterHandler(newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req dto.NewsletterSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	input := service.NewsletterSubscribeInput{
		Email:  req.Email,
		Name:   req.Name,
		Source: req.Source,
	}
	if req.Preferences != nil {
		prefs := req.Preferences.ToPreferences()
		input.Preferences = &prefs
	}

	result, err := h.newsletterService.Subscribe(c.Request.Context(), input, requestMeta(c))
	if err != nil {
		RespondServiceError(c, err,
			"Invalid subscription data",
			"Subscription not found",
			"Email already subscribed to newsletter",
			"Failed to subscribe to newsletter")
		return
	}

	message := "Successfully subscribed! Check your email for a welcome message."
	if result.Reactivated {
		message = "Welcome back! Your subscription has been reactivated."
	}
	Success(c, result, message)
}

// Unsubscribe handles DELETE /api/newsletter?email=...&token=...
// The token is optional; when present it must verify against the email.
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		Error(c, http.StatusBadRequest, "Email parameter is required")
		return
	}
	if !isValidEmail(email) {
		Error(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	err := h.newsletterService.Unsubscribe(c.Request.Context(), email, c.Query("token"), requestMeta(c))
	if err != nil {
		RespondServiceError(c, err,
			"Invalid unsubscribe token",
			"Subscription not found",
			"Email already unsubscribed",
			"Failed to unsubscribe")
		return
	}

	Success(c, gin.H{"email": email, "unsubscribed": true}, "You have been unsubscribed. Sorry to see you go!")
}

// Update handles PATCH /api/newsletter, the partial preferences update.
func (h *NewsletterHandler) Update(c *gin.Context) {
	var req dto.NewsletterUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	input := service.NewsletterUpdateInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.Preferences != nil {
		prefs := req.Preferences.ToPreferences()
		input.Preferences = &prefs
	}

	sub, err := h.newsletterService.UpdatePreferences(req.Email, input)
	if err != nil {
		RespondServiceError(c, err,
			"Invalid subscription data",
			"Subscription not found",
			"Email already subscribed to newsletter",
			"Failed to update subscription")
		return
	}

	Success(c, sub, "Subscription updated")
}

// List handles GET /api/newsletter with an optional active filter.
func (h *NewsletterHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	var active *bool
	if raw := c.Query("active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			active = &v
		}
	}

	subs, total, stats, err := h.newsletterService.List(active, page, limit)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to fetch subscriptions")
		return
	}

	Success(c, gin.H{
		"subscriptions": subs,
		"stats":         stats,
		"pagination":    NewPagination(page, limit, total),
	}, "")
}
