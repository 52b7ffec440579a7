package scan_test

import (
	"context"
	"testing"
	"time"

	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements vast.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ vast.DomainLimiter = scan.NewDomainLimiter(1)
	})

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "youtube.googleapis.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewDomainLimiter(10) // 10 req/sec = 100ms between requests

		err := limiter.Wait(context.Background(), "youtube.googleapis.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "youtube.googleapis.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewDomainLimiter(10)

		err := limiter.Wait(context.Background(), "youtube.googleapis.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "lms.test")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "other host should not wait")
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewDomainLimiter(1)

		err := limiter.Wait(context.Background(), "youtube.googleapis.com")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = limiter.Wait(ctx, "youtube.googleapis.com")
		assert.Error(t, err)
	})
}
