package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"school-import-service/internal/config"
	apperrors "school-import-service/pkg/errors"

	"github.com/stretchr/testify/require"
)

type identityServer struct {
	*httptest.Server

	authCalls    int32
	accountCalls int32
	accountCode  int
	accountBody  map[string]string
}

func newIdentityServer(t *testing.T) *identityServer {
	t.Helper()

	s := &identityServer{
		accountCode: http.StatusCreated,
		accountBody: map[string]string{"id": "ext-123"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.authCalls, 1)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["username"] != "svc" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token":      "test-token",
			"expires_in": 3600,
		})
	})
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.accountCalls, 1)

		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(s.accountCode)
		json.NewEncoder(w).Encode(s.accountBody)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func testClient(server *identityServer) *Client {
	cfg := &config.Config{}
	cfg.Identity.BaseURL = server.URL
	cfg.Identity.AuthEndpoint = "/auth/token"
	cfg.Identity.AccountsEndpoint = "/admin/users"
	cfg.Identity.Username = "svc"
	cfg.Identity.Password = "secret"
	cfg.Identity.Timeout = 5 * time.Second
	return NewClient(cfg)
}

func TestCreateAccount(t *testing.T) {
	server := newIdentityServer(t)
	client := testClient(server)

	id, err := client.CreateAccount(context.Background(), "john@example.com", "Student@ADM001")
	require.NoError(t, err)
	require.Equal(t, "ext-123", id)
}

func TestCreateAccountReusesCachedToken(t *testing.T) {
	server := newIdentityServer(t)
	client := testClient(server)

	for i := 0; i < 3; i++ {
		_, err := client.CreateAccount(context.Background(), "john@example.com", "pw")
		require.NoError(t, err)
	}

	require.Equal(t, int32(1), atomic.LoadInt32(&server.authCalls))
	require.Equal(t, int32(3), atomic.LoadInt32(&server.accountCalls))
}

func TestCreateAccountMissingIDIsProvisioningError(t *testing.T) {
	server := newIdentityServer(t)
	server.accountBody = map[string]string{}
	client := testClient(server)

	_, err := client.CreateAccount(context.Background(), "john@example.com", "pw")

	var pe apperrors.ProvisioningError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "john@example.com", pe.Email)
	require.False(t, apperrors.IsRetryable(err))
}

func TestCreateAccountBusinessRejectionIsNotRetryable(t *testing.T) {
	server := newIdentityServer(t)
	server.accountCode = http.StatusUnprocessableEntity
	server.accountBody = map[string]string{"error": "email already registered"}
	client := testClient(server)

	_, err := client.CreateAccount(context.Background(), "john@example.com", "pw")

	var pe apperrors.ProvisioningError
	require.ErrorAs(t, err, &pe)
	require.Contains(t, pe.Message, "email already registered")
	require.False(t, apperrors.IsRetryable(err))
}

func TestCreateAccountServerOverloadIsRetryable(t *testing.T) {
	server := newIdentityServer(t)
	server.accountCode = http.StatusServiceUnavailable
	server.accountBody = map[string]string{}
	client := testClient(server)

	_, err := client.CreateAccount(context.Background(), "john@example.com", "pw")
	require.True(t, apperrors.IsRetryable(err))
}

func TestCreateAccountUnreachableServiceIsRetryable(t *testing.T) {
	server := newIdentityServer(t)
	client := testClient(server)
	server.Close()

	_, err := client.CreateAccount(context.Background(), "john@example.com", "pw")
	require.True(t, apperrors.IsRetryable(err))
}

func TestAuthFailurePropagatesAsRetryable(t *testing.T) {
	server := newIdentityServer(t)
	client := testClient(server)
	client.cfg.Identity.Password = "wrong"

	_, err := client.CreateAccount(context.Background(), "john@example.com", "pw")
	require.True(t, apperrors.IsRetryable(err))
	require.Equal(t, int32(0), atomic.LoadInt32(&server.accountCalls))
}
