package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dailybrief/internal/logger"
)

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// Sender delivers rendered digests via the SendGrid v3 REST API.
type Sender struct {
	apiKey     string
	from       string
	to         string
	endpoint   string
	httpClient *http.Client
}

func NewSender(apiKey, from, to string) *Sender {
	return &Sender{
		apiKey:     apiKey,
		from:       from,
		to:         to,
		endpoint:   sendGridEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts the email with retry logic.
func (s *Sender) Send(subject, html string) error {
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.sendOnce(subject, html)
		if err == nil {
			logger.Info("digest email sent", "to", s.to, "try", attempt)
			return nil
		}

		logger.Warn("email send failed", "try", attempt, "max", maxRetries, "error", err)

		if attempt < maxRetries {
			// Exponential backoff: 2^attempt seconds
			waitTime := time.Duration(1<<attempt) * time.Second
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("can't send email after %d tries", maxRetries)
}

// sendOnce does one delivery attempt.
func (s *Sender) sendOnce(subject, html string) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": s.to}}},
		},
		"from":    map[string]string{"email": s.from},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/html", "value": html},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer resp.Body.Close()

	// SendGrid answers 202 on acceptance
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sendgrid API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}
