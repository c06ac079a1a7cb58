package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridSender delivers mail through the SendGrid REST API. The From
// address is always the verified sender so an unverified from never causes a
// provider rejection.
type SendGridSender struct {
	apiKey   string
	from     string
	endpoint string
	hc       *http.Client
}

func NewSendGridSender(apiKey, from string, timeout time.Duration) *SendGridSender {
	return &SendGridSender{
		apiKey:   apiKey,
		from:     from,
		endpoint: sendEndpoint,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

type sgAddress struct {
	Email string `json:"email"`
}

type sgPayload struct {
	Personalizations []struct {
		To []sgAddress `json:"to"`
	} `json:"personalizations"`
	From    sgAddress `json:"from"`
	Subject string    `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (s *SendGridSender) send(ctx context.Context, to, subject, body string) error {
	var p sgPayload
	p.Personalizations = append(p.Personalizations, struct {
		To []sgAddress `json:"to"`
	}{To: []sgAddress{{Email: to}}})
	p.From = sgAddress{Email: s.from}
	p.Subject = subject
	p.Content = append(p.Content, struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text/plain", Value: body})

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

func (s *SendGridSender) SendVerification(ctx context.Context, to, code string) error {
	body := fmt.Sprintf("Hello,\n\nYour verification code is: %s\nThis code will expire in 10 minutes.\n\nBest,\nCampusEvents Team", code)
	return s.send(ctx, to, "Verify your CampusEvents account", body)
}

func (s *SendGridSender) SendResetCode(ctx context.Context, to, code string) error {
	body := fmt.Sprintf("Your password reset code is: %s\nThis code will expire in 15 minutes.", code)
	return s.send(ctx, to, "CampusEvents Password Reset", body)
}
