package middleware

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/handlers"
	"github.com/sofiko-bakery/consultant-bot/internal/errors"
	"github.com/sofiko-bakery/consultant-bot/internal/ratelimit"
)

// RateLimitMiddleware enforces per-user rate limits for incoming Telegram updates.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	limit   int
	window  time.Duration
	log     *slog.Logger
}

// NewRateLimitMiddleware constructs a rate-limit middleware component.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, limit int, window time.Duration, log *slog.Logger) *RateLimitMiddleware {
	if log == nil {
		log = slog.Default()
	}

	return &RateLimitMiddleware{
		limiter: limiter,
		limit:   limit,
		window:  window,
		log:     log,
	}
}

// Handle rejects updates that exceed the per-user limit.
func (m *RateLimitMiddleware) Handle(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		if m.limiter == nil || m.limit <= 0 {
			return next(c)
		}

		sender := c.Sender()
		if sender == nil {
			return next(c)
		}

		userID := sender.ID
		key := fmt.Sprintf("user:%d", userID)

		result, err := m.limiter.Check(context.Background(), key, m.limit, m.window)
		if err != nil && !stderrors.Is(err, ratelimit.ErrLimitExceeded) {
			// Fail open on limiter backend errors.
			m.log.Warn("rate limiter error", slog.Int64("user_id", userID), slog.Any("error", err))
			return next(c)
		}

		if result != nil && !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds()) + 1
			appErr := errors.NewRateLimitError(retryAfter)
			m.log.Warn("rate limit exceeded", slog.Int64("user_id", userID), slog.Int("retry_after", retryAfter))
			return c.Send(appErr.UserMessage)
		}

		return next(c)
	}
}
