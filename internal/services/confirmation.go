package services

import (
	"fmt"

	"reviewhub/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ConfirmationCodes issues and verifies single-purpose signup confirmation
// codes. A code is random, stored only as a bcrypt hash on the account it was
// issued for, and checked against that stored hash; a bare string can never
// verify against another account, and the comparison is not plain equality.
type ConfirmationCodes struct{}

// Issue generates a fresh code for the user and replaces the stored hash,
// which invalidates any previously issued code. The plaintext code is
// returned once, for delivery; it is never persisted.
func (ConfirmationCodes) Issue(user *models.User) (string, error) {
	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash confirmation code: %w", err)
	}
	user.ConfirmationCode = string(hash)
	return code, nil
}

// Verify reports whether code is the one most recently issued for the user.
func (ConfirmationCodes) Verify(user *models.User, code string) bool {
	if user.ConfirmationCode == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCode), []byte(code)) == nil
}
