package resolution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubHandlerPollReturnsNoEvents(t *testing.T) {
	h := NewStubHandler()
	events, err := h.Poll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}
