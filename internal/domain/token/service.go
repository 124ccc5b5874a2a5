package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
)

// TTL is how long an issued bearer token stays valid.
const TTL = 24 * time.Hour

// Claims are the verified contents of a bearer token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Servicer interface {
	Issue(subject string) (string, error)
	Verify(raw string) (Claims, error)
}

// Service issues and verifies self-contained bearer tokens. The token is a
// standard three-segment JWT: the signature is an HMAC-SHA256 over the
// exact header.payload bytes, keyed by the server secret, compared in
// constant time by the jwt library. No server-side session state exists.
type Service struct {
	secret []byte
	log    *slog.Logger
	now    func() time.Time
}

func NewService(secret []byte, log *slog.Logger) *Service {
	return &Service{
		secret: secret,
		log:    log.With("component", "token_service"),
		now:    time.Now,
	}
}

// Issue creates a signed token for subject, valid for TTL.
func (s *Service) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.log.Debug("token issued", "subject", subject)
	return raw, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
func (s *Service) Verify(raw string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrMalformed
	}

	out := Claims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
