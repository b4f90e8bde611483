package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"feedbackpro/internal/model"
)

// EmailSender delivers one email through whatever provider is configured.
// Constructor-injected so tests can substitute a double; there is no
// package-level singleton.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers one SMS message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// HTTPEmailSender posts messages to a third-party email HTTP API.
type HTTPEmailSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPEmailSender creates an email sender backed by an HTTP API
func NewHTTPEmailSender(endpoint, apiKey string) *HTTPEmailSender {
	return &HTTPEmailSender{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	return postJSON(ctx, s.client, s.endpoint, s.apiKey, map[string]string{
		"to":      to,
		"subject": subject,
		"body":    body,
	})
}

// HTTPSMSSender posts messages to a third-party SMS HTTP API.
type HTTPSMSSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPSMSSender creates an SMS sender backed by an HTTP API
func NewHTTPSMSSender(endpoint, apiKey string) *HTTPSMSSender {
	return &HTTPSMSSender{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSMSSender) SendSMS(ctx context.Context, to, body string) error {
	return postJSON(ctx, s.client, s.endpoint, s.apiKey, map[string]string{
		"to":   to,
		"body": body,
	})
}

func postJSON(ctx context.Context, client *http.Client, endpoint, apiKey string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delivery API returned %d", resp.StatusCode)
	}
	return nil
}

// NotificationService fans survey invitations out to recipients. Delivery
// is fire-and-forget: each recipient gets one attempt and a boolean
// outcome, with no retry and no delivery guarantee.
type NotificationService struct {
	email EmailSender
	sms   SMSSender
}

// NewNotificationService creates a new notification service
func NewNotificationService(email EmailSender, sms SMSSender) *NotificationService {
	return &NotificationService{
		email: email,
		sms:   sms,
	}
}

// SendEmailInvites sends one email per invite and reports per-recipient outcomes.
func (s *NotificationService) SendEmailInvites(ctx context.Context, subject string, invites []model.Invite) []model.InviteResult {
	results := make([]model.InviteResult, len(invites))
	for i, inv := range invites {
		results[i] = model.InviteResult{Recipient: inv.Recipient, Sent: true}
		if err := s.email.SendEmail(ctx, inv.Recipient, subject, inv.Message); err != nil {
			results[i].Sent = false
			results[i].Error = err.Error()
		}
	}
	return results
}

// SendSMSInvites sends one SMS per invite and reports per-recipient outcomes.
func (s *NotificationService) SendSMSInvites(ctx context.Context, invites []model.Invite) []model.InviteResult {
	results := make([]model.InviteResult, len(invites))
	for i, inv := range invites {
		results[i] = model.InviteResult{Recipient: inv.Recipient, Sent: true}
		if err := s.sms.SendSMS(ctx, inv.Recipient, inv.Message); err != nil {
			results[i].Sent = false
			results[i].Error = err.Error()
		}
	}
	return results
}
