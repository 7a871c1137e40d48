package shell

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrAuthFailed is returned by Dispatch for a wrong password.
var ErrAuthFailed = errors.New("shell: authentication failed")

type verifier interface {
	verify(password []byte) bool
}

type plainVerifier []byte

func (v plainVerifier) verify(password []byte) bool {
	return subtle.ConstantTimeCompare(v, password) == 1
}

type bcryptVerifier []byte

func (v bcryptVerifier) verify(password []byte) bool {
	return bcrypt.CompareHashAndPassword(v, password) == nil
}

func newVerifier(cfg Config) (verifier, error) {
	switch {
	case cfg.PasswordHash != "":
		hash := []byte(cfg.PasswordHash)
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("shell config: password hash: %w", err)
		}
		return bcryptVerifier(hash), nil
	case cfg.Password != "":
		return plainVerifier(cfg.Password), nil
	default:
		return nil, nil
	}
}

// HashPassword returns a bcrypt hash suitable for Config.PasswordHash.
func HashPassword(password string) (string, error) {
	if password == "" || len(password) > MaxPasswordLen {
		return "", fmt.Errorf("shell: password must be 1..%d bytes", MaxPasswordLen)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("shell: hash password: %w", err)
	}
	return string(h), nil
}

func (s *Session) login(attempt string) error {
	if len(attempt) <= MaxPasswordLen && s.auth.verify([]byte(attempt)) {
		s.authed = true
		s.authFails = 0
		s.logf("login ok")
		return nil
	}
	s.authFails++
	s.logf("login failed (%d)", s.authFails)
	s.Printf("Login failed.\n")
	return ErrAuthFailed
}
