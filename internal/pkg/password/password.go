package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrComparisonFailed = errors.New("password comparison failed")
	ErrInvalidPassword  = errors.New("invalid password")
)

// Verify checks a plaintext password against its bcrypt hash. User
// records arrive pre-hashed, so only the verification side lives here.
func Verify(hashedPassword, plaintext string) error {
	if hashedPassword == "" || plaintext == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrComparisonFailed
		}
		return err
	}

	return nil
}
