package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestHandler_HealthCheck(t *testing.T) {
	handler := NewHandler(slog.Default(), nil)

	out, err := handler.healthCheck(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, "OK", out.Body.Status)
}
