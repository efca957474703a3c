package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

func TestWithDelay(t *testing.T) {
	t.Parallel()

	inner := NewScripted([]string{"pass"}, nil)
	assert.Same(t, inner, WithDelay(inner, 0))

	delayed := WithDelay(NewScripted([]string{"pass"}, nil), 20*time.Millisecond)
	start := time.Now()
	token, err := delayed.Decide(context.Background(), game.Prompt{})
	require.NoError(t, err)
	assert.Equal(t, "pass", token)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWithDelay_Cancelled(t *testing.T) {
	t.Parallel()

	delayed := WithDelay(NewScripted([]string{"pass"}, nil), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := delayed.Decide(ctx, game.Prompt{})
	assert.ErrorIs(t, err, context.Canceled)
}
