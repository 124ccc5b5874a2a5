package user

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Authenticate(ctx context.Context, login, password string) error
}

// Service authenticates the single configured operator. The password is
// held only as a bcrypt hash (see vaultctl hash-password); a failed
// check reports ErrInvalidAuth with no further detail.
type Service struct {
	operatorLogin string
	passwordHash  []byte
	log           *slog.Logger
}

func NewService(operatorLogin, passwordHash string, log *slog.Logger) *Service {
	return &Service{
		operatorLogin: operatorLogin,
		passwordHash:  []byte(passwordHash),
		log:           log.With("component", "user_service"),
	}
}

func (s *Service) Authenticate(_ context.Context, login, password string) error {
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(s.operatorLogin)) == 1

	// bcrypt comparison runs regardless of the login check so both
	// branches cost the same.
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))

	if !loginOK || err != nil {
		s.log.Debug("authentication failed", "login", login)
		return ErrInvalidAuth
	}
	return nil
}
