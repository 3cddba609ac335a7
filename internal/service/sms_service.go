package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cargomart/internal/config"
	"github.com/cargomart/internal/logger"
)

// SMSService best-effort outbound SMS client. Failures are logged and never
// propagate into the flows that trigger them.
type SMSService struct {
	cfg    *config.SMSConfig
	client *http.Client
}

// NewSMSService creates the SMS service.
func NewSMSService(cfg *config.SMSConfig) *SMSService {
	timeout := 3 * time.Second
	if cfg != nil && cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &SMSService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether messages are actually sent.
func (s *SMSService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && strings.TrimSpace(s.cfg.BaseURL) != ""
}

// Send posts one message to the provider. A disabled service drops the
// message silently.
func (s *SMSService) Send(ctx context.Context, phone, message string) error {
	if !s.Enabled() {
		logger.Debugw("sms_skipped", "phone", phone)
		return nil
	}
	body, err := json.Marshal(map[string]string{
		"to":      phone,
		"from":    s.cfg.Sender,
		"message": message,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.cfg.BaseURL, "/")+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sms provider returned %d", resp.StatusCode)
	}
	return nil
}
