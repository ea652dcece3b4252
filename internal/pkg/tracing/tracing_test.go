package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "", "test")

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
