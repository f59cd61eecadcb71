package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// NotifierConfig holds the Resend settings (RESEND_API_KEY, RESEND_FROM_EMAIL,
// NOTIFY_RECIPIENTS, DASHBOARD_URL).
type NotifierConfig struct {
	APIKey       string
	From         string
	Recipients   []string
	DashboardURL string
	Endpoint     string
	HTTPClient   *http.Client
}

// Notifier emails operations staff about new service orders.
type Notifier struct {
	cfg NotifierConfig
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = resendEndpoint
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Notifier{cfg: cfg}
}

// Enabled reports whether an API key, sender and at least one recipient are set.
func (n *Notifier) Enabled() bool {
	return n != nil && n.cfg.APIKey != "" && n.cfg.From != "" && len(n.cfg.Recipients) > 0
}

// SendEmail sends an HTML email through the Resend API
func (n *Notifier) SendEmail(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if n.cfg.APIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not configured")
	}
	if n.cfg.From == "" {
		return fmt.Errorf("RESEND_FROM_EMAIL is not configured")
	}

	payload := ResendEmailRequest{
		From:    n.cfg.From,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}

// NotifyServiceOrder mails the configured recipients a cost summary of order.
// It does nothing when the notifier is disabled.
func (n *Notifier) NotifyServiceOrder(ctx context.Context, order *models.ServiceOrder) error {
	if !n.Enabled() {
		return nil
	}
	subject := fmt.Sprintf("New service order: %s", order.Title)
	return n.SendEmail(ctx, subject, n.serviceOrderBody(order), n.cfg.Recipients)
}

func (n *Notifier) serviceOrderBody(order *models.ServiceOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(order.Title))
	fmt.Fprintf(&b, "<p>Site <b>%s</b>, %s, priority %s, scheduled %s.</p>",
		html.EscapeString(order.SiteID), html.EscapeString(order.Type),
		html.EscapeString(order.Priority), html.EscapeString(string(order.ScheduledDate)))
	b.WriteString("<table>")
	rows := []struct {
		label string
		value float64
	}{
		{"Parts revenue", order.Costs.PartsRevenue},
		{"Parts cost", order.Costs.PartsCost},
		{"Labor", order.Costs.LaborCost},
		{"Total cost", order.Costs.TotalCost},
		{"Estimated invoice", order.Costs.EstimatedInvoice},
		{"Estimated profit", order.Costs.EstimatedProfit},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>KES %.2f</td></tr>", r.label, r.value)
	}
	fmt.Fprintf(&b, "<tr><td>Margin</td><td>%.1f%%</td></tr></table>", order.Costs.EstimatedMargin*100)
	if n.cfg.DashboardURL != "" {
		link := strings.TrimRight(n.cfg.DashboardURL, "/") + "/service-orders/" + order.ID
		fmt.Fprintf(&b, `<p><a href="%s">Open in dashboard</a></p>`, html.EscapeString(link))
	}
	return b.String()
}
