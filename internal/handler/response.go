package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
	"github.com/xeur-ai/landing-api/internal/service"
)

// Envelope is the uniform response shape of every endpoint.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Pagination is the page descriptor attached to list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes pages = ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error writes an error envelope with the given status. Internal detail
// never reaches the caller; only the stable message does.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// BindingError formats a gin binding failure, enumerating every violated
// field rather than only the first.
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, fieldMessage(fe))
		}
		Error(c, http.StatusBadRequest, "Validation error: "+strings.Join(messages, ", "))
		return
	}
	Error(c, http.StatusBadRequest, "Invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s too long", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy becomes a 500 with the generic message.
func RespondServiceError(c *gin.Context, err error, badRequestMsg, notFoundMsg, conflictMsg, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		Error(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, apperrors.ErrConflict):
		Error(c, http.StatusConflict, conflictMsg)
	case errors.Is(err, apperrors.ErrValidation):
		Error(c, http.StatusBadRequest, badRequestMsg)
	default:
		Error(c, http.StatusInternalServerError, fallbackMsg)
	}
}

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isValidEmail mirrors the syntax check used on query-parameter emails.
func isValidEmail(email string) bool {
	return emailRx.MatchString(email)
}

// requestMeta extracts the client details recorded with analytics events:
// X-Forwarded-For, then X-Real-IP, then the literal "unknown".
func requestMeta(c *gin.Context) service.RequestMeta {
	ip := c.GetHeader("X-Forwarded-For")
	if ip == "" {
		ip = c.GetHeader("X-Real-IP")
	}
	if ip == "" {
		ip = "unknown"
	}
	return service.RequestMeta{
		UserAgent: c.GetHeader("User-Agent"),
		IPAddress: ip,
	}
}

// pageParams reads page/limit query parameters with the shared defaults
// and cap.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}

	return page, limit
}
