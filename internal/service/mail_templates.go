package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

// Mail templates for every transactional email the intake services send.
// Bodies are fixed HTML with escaped user-supplied substitutions; the
// renderer is a plain function per mail kind returning subject + body.

const mailStyleOuter = `font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #1a0b2e; color: white; padding: 40px 20px;`
const mailStyleCard = `background: rgba(255, 255, 255, 0.1); border-radius: 15px; padding: 30px;`
const mailStyleQuote = `background: rgba(0, 0, 0, 0.3); padding: 15px; border-radius: 8px; border-left: 4px solid #39ff14; white-space: pre-wrap;`

func mailHeader() string {
	return `<div style="text-align: center; margin-bottom: 30px;"><h1 style="color: #39ff14; font-size: 28px; margin: 0;">XEUR.AI</h1></div>`
}

func mailFooter() string {
	return `<div style="text-align: center; margin-top: 30px;"><p style="color: #9d4edd; font-style: italic;">Made in India for the World</p></div>`
}

func wrapMail(inner string) string {
	return fmt.Sprintf(`<div style="%s">%s<div style="%s">%s</div>%s</div>`,
		mailStyleOuter, mailHeader(), mailStyleCard, inner, mailFooter())
}

// WaitlistConfirmationMail is sent to the submitter after joining the
// waitlist.
func WaitlistConfirmationMail(name string) (string, string) {
	subject := "Welcome to the XEUR.AI Alpha Waitlist!"
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #39ff14; margin-top: 0;">Welcome to the Revolution, %s!</h2>
		<p>You're now part of an exclusive group preparing to transform game creation forever. Thank you for joining the XEUR.AI alpha waitlist!</p>
		<h3 style="color: #9d4edd;">What's Next?</h3>
		<ul style="padding-left: 20px;">
			<li><strong>Alpha Access:</strong> Limited spots opening soon</li>
			<li><strong>Early Updates:</strong> Be first to know about platform developments</li>
			<li><strong>Creator Benefits:</strong> Lifetime Pro account and founding creator badge</li>
			<li><strong>Exclusive Access:</strong> Direct feedback channel with founders</li>
		</ul>`,
		html.EscapeString(name)))
	return subject, body
}

// WaitlistAdminMail notifies the admin mailbox about a new signup.
func WaitlistAdminMail(name, email string, gameTypes []string, experience, source string) (string, string) {
	subject := fmt.Sprintf("New Waitlist Signup: %s", orEmail(name, email))
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #9d4edd; margin-top: 0;">New Waitlist Signup</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Game Types:</strong> %s</p>
		<p><strong>Experience:</strong> %s</p>
		<p><strong>Source:</strong> %s</p>
		<p><strong>Timestamp:</strong> %s</p>`,
		html.EscapeString(orDefault(name, "Not provided")),
		html.EscapeString(email),
		html.EscapeString(strings.Join(gameTypes, ", ")),
		html.EscapeString(experience),
		html.EscapeString(orDefault(source, "website")),
		time.Now().UTC().Format(time.RFC3339)))
	return subject, body
}

// ContactConfirmationMail is sent to the submitter of a contact form.
func ContactConfirmationMail(name, contactType string) (string, string) {
	subject := "We received your message - XEUR.AI Team"
	lowered := strings.ToLower(contactType)
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #9d4edd; margin-top: 0;">Thank you for reaching out, %s!</h2>
		<p>We've received your <strong>%s</strong> inquiry and will respond within 24-48 hours.</p>
		<p>Our team is excited to connect with innovators, partners, and creators who share our vision of revolutionizing game creation.</p>
		<p style="margin-top: 30px;">Best regards,<br/>The XEUR.AI Team</p>`,
		html.EscapeString(name), html.EscapeString(lowered)))
	return subject, body
}

// ContactTeamMail routes the submission to the responsible team mailbox.
func ContactTeamMail(form *entity.ContactForm, dashboardURL string) (string, string) {
	subject := fmt.Sprintf("New %s Inquiry: %s", form.Type, form.Subject)
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #9d4edd; margin-top: 0;">Contact Details</h2>
		<p><strong>Type:</strong> %s</p>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Subject:</strong> %s</p>
		<h3 style="color: #9d4edd;">Message:</h3>
		<div style="%s">%s</div>
		<p style="margin-top: 20px;"><strong>Contact ID:</strong> %s<br/>
		<strong>Response Required:</strong> Within 24-48 hours</p>
		<p><a href="%s/contacts" style="color: #39ff14;">View in Admin Dashboard</a></p>`,
		html.EscapeString(form.Type),
		html.EscapeString(form.Name),
		html.EscapeString(form.Email),
		html.EscapeString(form.Subject),
		mailStyleQuote,
		html.EscapeString(form.Message),
		form.ID,
		dashboardURL))
	return subject, body
}

// ContactResponseMail carries the team's reply back to the submitter. The
// response text is escaped before interpolation.
func ContactResponseMail(form *entity.ContactForm, response string) (string, string) {
	subject := fmt.Sprintf("Re: %s - XEUR.AI Team Response", form.Subject)
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #9d4edd; margin-top: 0;">Response to your inquiry</h2>
		<p>Dear %s,</p>
		<p>Thank you for your %s inquiry regarding: <strong>"%s"</strong></p>
		<div style="%s">%s</div>
		<p>If you have any follow-up questions, please don't hesitate to reach out.</p>
		<p style="margin-top: 30px;">Best regards,<br/>The XEUR.AI Team</p>`,
		html.EscapeString(form.Name),
		html.EscapeString(strings.ToLower(form.Type)),
		html.EscapeString(form.Subject),
		mailStyleQuote,
		html.EscapeString(response)))
	return subject, body
}

// NewsletterWelcomeMail greets a new subscriber. unsubscribeURL carries the
// signed unsubscribe token.
func NewsletterWelcomeMail(name, unsubscribeURL string) (string, string) {
	subject := "Welcome to XEUR.AI Updates!"
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #9d4edd; margin-top: 0;">Welcome to our journey, %s!</h2>
		<p>You'll now receive monthly updates on our platform development, AI model progress, and strategic milestones as we revolutionize game creation.</p>
		<p>Stay tuned for exclusive insights into the future of gaming!</p>
		<p style="font-size: 12px; color: rgba(255, 255, 255, 0.7);"><a href="%s" style="color: #39ff14;">Unsubscribe</a></p>`,
		html.EscapeString(name), unsubscribeURL))
	return subject, body
}

// NewsletterAdminMail notifies the admin mailbox about a new subscription.
func NewsletterAdminMail(name, email, source string) (string, string) {
	subject := fmt.Sprintf("New Newsletter Subscription: %s", orEmail(name, email))
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #9d4edd; margin-top: 0;">New Newsletter Subscription</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Source:</strong> %s</p>
		<p><strong>Timestamp:</strong> %s</p>`,
		html.EscapeString(orDefault(name, "Not provided")),
		html.EscapeString(email),
		html.EscapeString(orDefault(source, "website")),
		time.Now().UTC().Format(time.RFC3339)))
	return subject, body
}

// UnsubscribeConfirmationMail confirms a newsletter unsubscribe.
func UnsubscribeConfirmationMail() (string, string) {
	subject := "Unsubscribed from XEUR.AI Newsletter"
	body := wrapMail(`
		<h2 style="color: #9d4edd; margin-top: 0;">You've been unsubscribed</h2>
		<p>We're sorry to see you go! You have been successfully unsubscribed from the XEUR.AI newsletter.</p>
		<p>If you change your mind, you can always subscribe again at <a href="https://xeur.ai" style="color: #39ff14;">xeur.ai</a></p>
		<p>Thank you for being part of our journey to revolutionize game creation.</p>`)
	return subject, body
}

// InvestmentConfirmationMail is sent to the inquiring investor.
func InvestmentConfirmationMail(name, company string) (string, string) {
	subject := "Investment Inquiry Received - XEUR.AI"
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #39ff14; margin-top: 0;">Thank you for your investment interest, %s!</h2>
		<p>We're excited about the potential partnership with <strong>%s</strong> and our shared vision of transforming the game creation market.</p>
		<p>Our investor relations team will contact you within 24 hours with our complete investment deck and partnership details.</p>`,
		html.EscapeString(name), html.EscapeString(company)))
	return subject, body
}

// InvestmentTeamMail is fanned out to the investor relations list.
func InvestmentTeamMail(inquiry *entity.InvestmentInquiry, dashboardURL string) (string, string) {
	subject := fmt.Sprintf("HIGH PRIORITY: New Investment Inquiry from %s", inquiry.CompanyName())
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #39ff14; margin-top: 0;">Investment Inquiry Details</h2>
		<h3 style="color: #39ff14;">Contact Information</h3>
		<p><strong>Name:</strong> %s<br/>
		<strong>Email:</strong> %s<br/>
		<strong>Company:</strong> %s<br/>
		<strong>Position:</strong> %s</p>
		<h3 style="color: #9d4edd;">Investment Details</h3>
		<p><strong>Fund Type:</strong> %s<br/>
		<strong>Investment Size:</strong> %s<br/>
		<strong>Timeline:</strong> %s</p>
		<h3 style="color: #9d4edd;">Message:</h3>
		<div style="%s">%s</div>
		<p style="margin-top: 20px;"><strong>Inquiry ID:</strong> %s<br/>
		<strong>RESPONSE REQUIRED:</strong> Within 24 hours (HIGH PRIORITY)</p>
		<p><a href="%s/investments/%s" style="color: #39ff14;">View in Admin Dashboard</a></p>`,
		html.EscapeString(inquiry.Name),
		html.EscapeString(inquiry.Email),
		html.EscapeString(orPtr(inquiry.Company, "Not provided")),
		html.EscapeString(orPtr(inquiry.Position, "Not provided")),
		html.EscapeString(orPtr(inquiry.FundType, "Not specified")),
		html.EscapeString(orPtr(inquiry.InvestmentSize, "Not specified")),
		html.EscapeString(orPtr(inquiry.Timeline, "Not specified")),
		mailStyleQuote,
		html.EscapeString(inquiry.Message),
		inquiry.ID,
		dashboardURL, inquiry.ID))
	return subject, body
}

// InvestmentResponseMail carries the investor relations reply. The
// response text is escaped before interpolation.
func InvestmentResponseMail(inquiry *entity.InvestmentInquiry, response string) (string, string) {
	subject := "Investment Opportunity Response - XEUR.AI Pre-SEED Round"
	body := wrapMail(fmt.Sprintf(`
		<h2 style="color: #39ff14; margin-top: 0;">Thank you for your investment interest!</h2>
		<p>Dear %s,</p>
		<p>Thank you for your interest in XEUR.AI's Pre-SEED funding round. We're excited about the potential partnership with %s.</p>
		<div style="%s">%s</div>
		<p>We look forward to discussing this opportunity further and sharing our complete investment materials.</p>
		<p style="margin-top: 30px;">Best regards,<br/>The XEUR.AI Investment Team</p>`,
		html.EscapeString(inquiry.Name),
		html.EscapeString(inquiry.CompanyName()),
		mailStyleQuote,
		html.EscapeString(response)))
	return subject, body
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orPtr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func orEmail(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
