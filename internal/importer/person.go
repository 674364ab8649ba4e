package importer

import (
	"school-import-service/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// newPersonUser builds the user row shared by all person categories. The
// identity reference starts as the locally generated id (a placeholder until
// the external identity service assigns the real one) with status PENDING.
func newPersonUser(schoolID, name, email, gender string, roleID int64, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID := uuid.NewString()
	return &model.User{
		ID:             userID,
		Name:           name,
		Email:          email,
		PasswordHash:   string(hash),
		RoleID:         roleID,
		Gender:         gender,
		SchoolID:       schoolID,
		Status:         "ACTIVE",
		IdentityID:     userID,
		IdentityStatus: model.IdentityStatusPending,
	}, nil
}
