package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

func TestContactResponseMail_EscapesUserInput(t *testing.T) {
	form := &entity.ContactForm{
		Name:    "<b>Sam</b>",
		Subject: "Hello & welcome",
		Type:    entity.ContactTypeGeneral,
	}

	_, body := ContactResponseMail(form, `<script>alert("x")</script>`)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&lt;b&gt;Sam&lt;/b&gt;")
	assert.Contains(t, body, "Hello &amp; welcome")
}

func TestInvestmentResponseMail_EscapesResponse(t *testing.T) {
	inquiry := &entity.InvestmentInquiry{Name: "Lee", Email: "lee@fund.com"}

	_, body := InvestmentResponseMail(inquiry, "<img src=x onerror=alert(1)>")

	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "&lt;img")
	// No company supplied: the salutation falls back.
	assert.Contains(t, body, "your organization")
}

func TestWaitlistConfirmationMail_UsesName(t *testing.T) {
	subject, body := WaitlistConfirmationMail("Dana")
	assert.Contains(t, subject, "Waitlist")
	assert.Contains(t, body, "Dana")
}

func TestNewsletterWelcomeMail_EmbedsUnsubscribeLink(t *testing.T) {
	_, body := NewsletterWelcomeMail("Rae", "https://xeur.ai/unsubscribe?email=a%40b.co&token=tok")
	assert.Contains(t, body, "https://xeur.ai/unsubscribe?email=a%40b.co&token=tok")
}

func TestContactTeamMail_Subject(t *testing.T) {
	form := &entity.ContactForm{
		Name:    "Sam",
		Email:   "sam@example.com",
		Subject: "Press kit",
		Type:    entity.ContactTypePress,
		Message: "Looking for assets.",
	}
	subject, body := ContactTeamMail(form, "https://xeur.ai/admin")
	assert.Equal(t, "New PRESS Inquiry: Press kit", subject)
	assert.Contains(t, body, "https://xeur.ai/admin/contacts")
}
