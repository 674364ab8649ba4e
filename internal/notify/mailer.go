package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"school-import-service/internal/config"
	"school-import-service/internal/logger"
	"school-import-service/internal/model"

	"github.com/rs/zerolog"
)

// Mailer delivers one email message. Failures are logged by callers and
// never propagated into a run result.
type Mailer interface {
	Send(ctx context.Context, msg model.EmailMessage) error
}

type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Mail.Timeout,
		},
		log: logger.Get(),
	}
}

func (c *Client) Send(ctx context.Context, msg model.EmailMessage) error {
	jsonData, err := json.Marshal(mailRequest{
		From:    c.cfg.Mail.FromAddress,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	url := c.cfg.Mail.BaseURL + c.cfg.Mail.SendEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Mail.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	c.log.Debug().Str("to", msg.To).Msg("Email sent")
	return nil
}
