package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"school-import-service/internal/config"
	"school-import-service/internal/logger"
	apperrors "school-import-service/pkg/errors"

	"github.com/rs/zerolog"
)

// Provisioner creates an account in the external identity service and
// returns the externally assigned account id. It is always invoked after the
// row's domain-data transaction has committed, never inside it.
type Provisioner interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
}

type createAccountRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

type createAccountResponse struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Client struct {
	cfg         *config.Config
	httpClient  *http.Client
	authManager *AuthManager
	log         zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Identity.Timeout,
		},
		authManager: NewAuthManager(cfg),
		log:         logger.Get(),
	}
}

func (c *Client) CreateAccount(ctx context.Context, email, password string) (string, error) {
	token, err := c.authManager.GetToken(ctx)
	if err != nil {
		return "", apperrors.NewRetryableError(err, "failed to get auth token")
	}

	jsonData, err := json.Marshal(createAccountRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal account request: %w", err)
	}

	url := c.cfg.Identity.BaseURL + c.cfg.Identity.AccountsEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	c.log.Debug().Str("email", email).Msg("Creating identity account")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewRetryableError(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	var accountResp createAccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&accountResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		if accountResp.ID == "" {
			return "", apperrors.ProvisioningError{Email: email, Message: "identity service returned no account id"}
		}
		return accountResp.ID, nil
	case http.StatusUnauthorized:
		// Token might be expired, retry will refresh it
		return "", apperrors.NewRetryableError(fmt.Errorf("unauthorized"), "authentication failed")
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return "", apperrors.NewRetryableError(fmt.Errorf("HTTP %d", resp.StatusCode), "identity service unavailable")
	default:
		// Business rejection (duplicate email, weak password) - don't retry
		msg := accountResp.Error
		if msg == "" {
			msg = accountResp.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return "", apperrors.ProvisioningError{Email: email, Message: msg}
	}
}
