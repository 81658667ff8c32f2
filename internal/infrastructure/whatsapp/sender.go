package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/onboarding-api/internal/config"
)

// Sender delivers OTP codes as WhatsApp template messages through the
// Interakt message API.
type Sender interface {
	SendOTP(ctx context.Context, toPhoneNumber, code string, ttlMinutes int) error
}

type sender struct {
	apiURL       string
	apiKey       string
	templateName string
	phonePrefix  string
	httpClient   *http.Client
}

func NewSender(cfg *config.Config) Sender {
	return &sender{
		apiURL:       cfg.WhatsAppAPIURL,
		apiKey:       cfg.WhatsAppAPIKey,
		templateName: cfg.WhatsAppTemplateName,
		phonePrefix:  cfg.WhatsAppPhonePrefix,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type templateMessage struct {
	APIKey   string   `json:"apiKey"`
	To       string   `json:"to"`
	Type     string   `json:"type"`
	Template template `json:"template"`
}

type template struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *sender) SendOTP(ctx context.Context, toPhoneNumber, code string, ttlMinutes int) error {
	to := toPhoneNumber
	if !strings.HasPrefix(to, "+") {
		to = s.phonePrefix + to
	}
	payload := templateMessage{
		APIKey: s.apiKey,
		To:     to,
		Type:   "template",
		Template: template{
			Name:     s.templateName,
			Language: language{Code: "en"},
			Components: []component{{
				Type: "body",
				Parameters: []parameter{
					{Type: "text", Text: code},
					{Type: "text", Text: fmt.Sprintf("%d", ttlMinutes)},
				},
			}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp API responded %d", resp.StatusCode)
	}
	return nil
}
