package dto

import (
	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

// WaitlistSignupRequest is the POST /api/waitlist body. GameTypes is a
// comma-separated tag string, matching the landing-page form.
type WaitlistSignupRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Name       *string `json:"name" binding:"omitempty,max=100"`
	GameTypes  string  `json:"gameTypes" binding:"required,min=1"`
	Experience string  `json:"experience" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED PROFESSIONAL"`
	Source     *string `json:"source" binding:"omitempty,max=100"`
}

// WaitlistUpdateRequest is the PATCH /api/waitlist body. Only the fields
// present are applied.
type WaitlistUpdateRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Status     *string `json:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED RESPONDED ARCHIVED"`
	Experience *string `json:"experience" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED PROFESSIONAL"`
	GameTypes  *string `json:"gameTypes" binding:"omitempty,min=1"`
	Priority   *int    `json:"priority"`
	Source     *string `json:"source" binding:"omitempty,max=100"`
}

// ContactSubmitRequest is the POST /api/contact body.
type ContactSubmitRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,min=1,max=200"`
	Message string `json:"message" binding:"required,min=10,max=2000"`
	Type    string `json:"type" binding:"omitempty,oneof=GENERAL TECHNICAL PARTNERSHIP INVESTMENT PRESS SUPPORT"`
}

// StatusUpdateRequest is the PATCH body shared by contact forms and
// investment inquiries.
type StatusUpdateRequest struct {
	ID       string  `json:"id" binding:"required"`
	Status   string  `json:"status" binding:"required,oneof=PENDING RESPONDED ARCHIVED"`
	Response *string `json:"response" binding:"omitempty,max=5000"`
}

// NewsletterPreferencesRequest is the optional preferences object on
// subscribe and update calls.
type NewsletterPreferencesRequest struct {
	Frequency string   `json:"frequency" binding:"omitempty,oneof=weekly monthly quarterly"`
	Topics    []string `json:"topics" binding:"omitempty,max=20,dive,min=1,max=100"`
}

// ToPreferences fills unset fields from the subscription defaults.
func (p *NewsletterPreferencesRequest) ToPreferences() entity.NewsletterPreferences {
	prefs := entity.DefaultNewsletterPreferences()
	if p == nil {
		return prefs
	}
	if p.Frequency != "" {
		prefs.Frequency = p.Frequency
	}
	if p.Topics != nil {
		prefs.Topics = p.Topics
	}
	return prefs
}

// NewsletterSubscribeRequest is the POST /api/newsletter body.
type NewsletterSubscribeRequest struct {
	Email       string                        `json:"email" binding:"required,email"`
	Name        *string                       `json:"name" binding:"omitempty,max=100"`
	Source      *string                       `json:"source" binding:"omitempty,max=100"`
	Preferences *NewsletterPreferencesRequest `json:"preferences"`
}

// NewsletterUpdateRequest is the PATCH /api/newsletter body.
type NewsletterUpdateRequest struct {
	Email       string                        `json:"email" binding:"required,email"`
	Name        *string                       `json:"name" binding:"omitempty,max=100"`
	Preferences *NewsletterPreferencesRequest `json:"preferences"`
	IsActive    *bool                         `json:"isActive"`
}

// InvestmentSubmitRequest is the POST /api/investment body.
type InvestmentSubmitRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Email          string  `json:"email" binding:"required,email"`
	Company        *string `json:"company" binding:"omitempty,max=200"`
	Position       *string `json:"position" binding:"omitempty,max=100"`
	InvestmentSize *string `json:"investmentSize" binding:"omitempty,max=50"`
	Message        string  `json:"message" binding:"required,min=10,max=2000"`
	FundType       *string `json:"fundType" binding:"omitempty,oneof=VC Angel Strategic 'Family Office' Other"`
	Timeline       *string `json:"timeline" binding:"omitempty,oneof=Immediate '3-6 months' '6-12 months' '12+ months'"`
}

// AnalyticsEventRequest is one tracked event, standalone or inside a
// batch. SessionID and UserID are folded into the data payload.
type AnalyticsEventRequest struct {
	Event     string                 `json:"event" binding:"required,min=1,max=100"`
	Page      *string                `json:"page" binding:"omitempty,max=500"`
	Data      map[string]interface{} `json:"data"`
	SessionID *string                `json:"sessionId" binding:"omitempty,max=100"`
	UserID    *string                `json:"userId" binding:"omitempty,max=100"`
}

// Payload merges sessionId/userId into the free-form data map.
func (r *AnalyticsEventRequest) Payload() map[string]interface{} {
	data := r.Data
	if r.SessionID == nil && r.UserID == nil {
		return data
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	if r.SessionID != nil {
		data["sessionId"] = *r.SessionID
	}
	if r.UserID != nil {
		data["userId"] = *r.UserID
	}
	return data
}

// AnalyticsBatchRequest is the PATCH /api/analytics body. The batch size
// is also enforced in the service layer.
type AnalyticsBatchRequest struct {
	Events []AnalyticsEventRequest `json:"events" binding:"required,min=1,max=100,dive"`
}
