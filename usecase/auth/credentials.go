package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/repository"
)

// PasswordVerifier is a pure comparison strategy: submitted password against
// stored hash, no side effects.
type PasswordVerifier func(submitted, storedHash string) bool

// BcryptVerifier compares a submitted password against a bcrypt hash.
func BcryptVerifier(submitted, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(submitted)) == nil
}

// CredentialValidator checks an email/password pair against the user
// directory. Expected failures come back as ok=false with a nil error; the
// error return carries infrastructure failures only. The ok=false signal is
// uniform across "unknown email", "inactive user" and "wrong password" so
// callers cannot enumerate accounts.
type CredentialValidator struct {
	users  repository.UserDirectory
	verify PasswordVerifier
}

func NewCredentialValidator(users repository.UserDirectory, verify PasswordVerifier) *CredentialValidator {
	if verify == nil {
		verify = BcryptVerifier
	}
	return &CredentialValidator{
		users:  users,
		verify: verify,
	}
}

// Validate returns the user's id when the pair checks out.
func (v *CredentialValidator) Validate(ctx context.Context, email, password string) (string, bool, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if !user.IsActive() {
		return "", false, nil
	}

	hash, err := v.users.GetPasswordHash(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	if !v.verify(password, hash) {
		return "", false, nil
	}
	return user.ID, true, nil
}
