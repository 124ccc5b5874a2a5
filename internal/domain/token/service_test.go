package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestService() *Service {
	return NewService([]byte("test-signing-secret"), slog.Default())
}

func TestService_IssueVerify(t *testing.T) {
	service := newTestService()

	raw, err := service.Issue("admin")
	require.NoError(t, err)
	assert.Len(t, strings.Split(raw, "."), 3)

	claims, err := service.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(TTL), claims.ExpiresAt, 5*time.Second)
}

func TestService_Expired(t *testing.T) {
	service := newTestService()

	raw, err := service.Issue("admin")
	require.NoError(t, err)

	// Move the verifier's clock past the 24h TTL.
	service.now = func() time.Time { return time.Now().Add(TTL + time.Minute) }

	_, err = service.Verify(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestService_WrongSecret(t *testing.T) {
	raw, err := newTestService().Issue("admin")
	require.NoError(t, err)

	other := NewService([]byte("a-different-secret"), slog.Default())
	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestService_TamperedSegments(t *testing.T) {
	service := newTestService()

	raw, err := service.Issue("admin")
	require.NoError(t, err)

	segments := strings.Split(raw, ".")
	require.Len(t, segments, 3)

	mutate := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	for i := range segments {
		tampered := make([]string, 3)
		copy(tampered, segments)
		tampered[i] = mutate(tampered[i])

		_, err := service.Verify(strings.Join(tampered, "."))
		assert.Error(t, err, "altered segment %d accepted", i)
	}
}

func TestService_Malformed(t *testing.T) {
	service := newTestService()

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d", "a.b.c"} {
		_, err := service.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}
