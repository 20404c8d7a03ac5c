// Package mailer sends transactional email through the Resend HTTP API.
// Sends are best-effort: callers log failures and continue.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	infraconfig "github.com/travvip/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// ResendMailer implements Mailer against the Resend REST API
type ResendMailer struct {
	apiKey      string
	fromAddress string
	fromName    string
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewResendMailer creates a ResendMailer from configuration
func NewResendMailer(cfg infraconfig.MailConfig, logger *zap.Logger) *ResendMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &ResendMailer{
		apiKey:      cfg.APIKey,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers a single HTML email
func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) error {
	if m.apiKey == "" {
		m.logger.Debug("Mail delivery skipped, no API key configured",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	from := m.fromAddress
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	}

	body, err := json.Marshal(sendRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	m.logger.Info("Mail sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// NopMailer discards all mail. Used in tests and local development.
type NopMailer struct{}

// Send implements Mailer
func (NopMailer) Send(ctx context.Context, to, subject, html string) error {
	return nil
}

var (
	_ Mailer = (*ResendMailer)(nil)
	_ Mailer = NopMailer{}
)
