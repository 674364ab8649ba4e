package notify

import (
	"testing"

	"school-import-service/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCredentialsEmail(t *testing.T) {
	msg := CredentialsEmail(model.CredentialJob{
		Email:      "john@example.com",
		Name:       "John Doe",
		Password:   "Student@ADM001",
		UserType:   "student",
		SchoolName: "Springfield High",
		LoginURL:   "https://erp.example/login",
	})

	require.Equal(t, "john@example.com", msg.To)
	require.Equal(t, "Your student account for Springfield High", msg.Subject)

	for _, body := range []string{msg.Text, msg.HTML} {
		require.Contains(t, body, "John Doe")
		require.Contains(t, body, "john@example.com")
		require.Contains(t, body, "Student@ADM001")
		require.Contains(t, body, "https://erp.example/login")
		require.Contains(t, body, "change your password")
	}
}
