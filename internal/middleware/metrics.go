package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/handlers"
	"github.com/sofiko-bakery/consultant-bot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		action := extractAction(c)
		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordUpdate(action, status, time.Since(start))

		return err
	}
}

// extractAction keeps label cardinality low: callback payloads are cut to
// their verb, free text collapses to a single bucket.
func extractAction(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil && cb.Data != "" {
		data := strings.TrimPrefix(cb.Data, "\f")
		if idx := strings.Index(data, ":"); idx > 0 {
			return data[:idx]
		}
		return data
	}

	if text := c.Text(); strings.HasPrefix(text, "/") {
		if idx := strings.IndexAny(text, " @"); idx != -1 {
			return text[:idx]
		}
		return text
	}

	return "message"
}
