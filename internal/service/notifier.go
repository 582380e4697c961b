package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
)

// RequestMeta carries the per-request client details recorded alongside
// analytics events.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

// NotificationDispatcher fans out best-effort side effects. Every method
// catches and logs its own failure: a failed email, webhook or analytics
// row must never block the primary response or suppress the other
// channels.
type NotificationDispatcher interface {
	SendEmail(ctx context.Context, to, subject, html string)
	PostSlack(ctx context.Context, msg *SlackMessage)
	TrackEvent(ctx context.Context, event, page string, data map[string]interface{}, meta RequestMeta)
}

// SlackMessage is the incoming-webhook payload.
type SlackMessage struct {
	Text   string       `json:"text"`
	Blocks []SlackBlock `json:"blocks,omitempty"`
}

// SlackBlock is one Block Kit block.
type SlackBlock struct {
	Type     string         `json:"type"`
	Text     *SlackText     `json:"text,omitempty"`
	Fields   []SlackText    `json:"fields,omitempty"`
	Elements []SlackElement `json:"elements,omitempty"`
}

// SlackText is a plain_text or mrkdwn fragment.
type SlackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SlackElement is an interactive element (only buttons are used here).
type SlackElement struct {
	Type  string     `json:"type"`
	Text  *SlackText `json:"text,omitempty"`
	URL   string     `json:"url,omitempty"`
	Style string     `json:"style,omitempty"`
}

// Notifier is the production dispatcher: Resend for email, a Slack
// incoming webhook for chat, and the analytics table for event rows.
type Notifier struct {
	email      EmailService
	webhookURL string
	httpClient *http.Client
	analytics  repository.AnalyticsRepository
	log        *logrus.Logger
}

// NewNotifier creates the dispatcher. webhookURL may be empty, in which
// case PostSlack is a silent no-op.
func NewNotifier(email EmailService, webhookURL string, analytics repository.AnalyticsRepository, log *logrus.Logger) *Notifier {
	return &Notifier{
		email:      email,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		analytics:  analytics,
		log:        log,
	}
}

// SendEmail delivers one email, swallowing failures.
func (n *Notifier) SendEmail(ctx context.Context, to, subject, html string) {
	if err := n.email.Send(ctx, to, subject, html); err != nil {
		n.log.WithFields(logrus.Fields{
			"channel": "email",
			"to":      to,
			"subject": subject,
		}).WithError(err).Error("failed to send email")
	}
}

// PostSlack posts one webhook message, swallowing failures. Skipped
// silently when no webhook URL is configured.
func (n *Notifier) PostSlack(ctx context.Context, msg *SlackMessage) {
	if n.webhookURL == "" {
		return
	}

	body, err := json.Marshal(msg)
	if err != nil {
		n.log.WithField("channel", "slack").WithError(err).Error("failed to marshal slack message")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		n.log.WithField("channel", "slack").WithError(err).Error("failed to build slack request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.WithField("channel", "slack").WithError(err).Error("failed to post slack message")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.log.WithFields(logrus.Fields{
			"channel": "slack",
			"status":  resp.StatusCode,
		}).Error("slack webhook returned non-success status")
	}
}

// TrackEvent appends one analytics row, swallowing failures.
func (n *Notifier) TrackEvent(ctx context.Context, event, page string, data map[string]interface{}, meta RequestMeta) {
	row := &entity.AnalyticsEvent{
		Event:     event,
		Data:      data,
		Timestamp: time.Now(),
	}
	if page != "" {
		row.Page = &page
	}
	if meta.UserAgent != "" {
		ua := meta.UserAgent
		row.UserAgent = &ua
	}
	if meta.IPAddress != "" {
		ip := meta.IPAddress
		row.IPAddress = &ip
	}

	if err := n.analytics.Create(row); err != nil {
		n.log.WithFields(logrus.Fields{
			"channel": "analytics",
			"event":   event,
		}).WithError(err).Error("failed to track analytics event")
	}
}

// BuildInvestmentSlackMessage formats the investment-inquiry notification
// with a deep link into the admin dashboard.
func BuildInvestmentSlackMessage(inquiry *entity.InvestmentInquiry, dashboardURL string) *SlackMessage {
	message := inquiry.Message
	if runes := []rune(message); len(runes) > 200 {
		message = string(runes[:200]) + "..."
	}

	return &SlackMessage{
		Text: "NEW INVESTMENT INQUIRY",
		Blocks: []SlackBlock{
			{
				Type: "header",
				Text: &SlackText{Type: "plain_text", Text: "New Investment Inquiry - XEUR.AI"},
			},
			{
				Type: "section",
				Fields: []SlackText{
					{Type: "mrkdwn", Text: fmt.Sprintf("*Name:* %s", inquiry.Name)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Company:* %s", orPtr(inquiry.Company, "Not provided"))},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Email:* %s", inquiry.Email)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Investment Size:* %s", orPtr(inquiry.InvestmentSize, "Not specified"))},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Fund Type:* %s", orPtr(inquiry.FundType, "Not specified"))},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Timeline:* %s", orPtr(inquiry.Timeline, "Not specified"))},
				},
			},
			{
				Type: "section",
				Text: &SlackText{Type: "mrkdwn", Text: fmt.Sprintf("*Message:*\n%s", message)},
			},
			{
				Type: "actions",
				Elements: []SlackElement{
					{
						Type:  "button",
						Text:  &SlackText{Type: "plain_text", Text: "View Details"},
						URL:   fmt.Sprintf("%s/investments/%s", dashboardURL, inquiry.ID),
						Style: "primary",
					},
				},
			},
		},
	}
}
