package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandle_AppErrorTaxonomy(t *testing.T) {
	h := NewHandler(testLogger(), false)
	ctx := context.Background()

	testCases := []struct {
		name          string
		err           *AppError
		expectedCode  string
		wantRetryable bool
		wantUserMsg   string
	}{
		{
			name:          "database failure",
			err:           NewDatabaseError(fmt.Errorf("connection refused")),
			expectedCode:  "E200",
			wantRetryable: true,
			wantUserMsg:   "Временная проблема, попробуйте позже",
		},
		{
			name:          "delivery failure falls back to generic message",
			err:           NewDeliveryError(fmt.Errorf("chat unreachable")),
			expectedCode:  "E300",
			wantRetryable: false,
			wantUserMsg:   "Произошла ошибка. Попробуйте позже",
		},
		{
			name:          "invalid state",
			err:           NewStateError("unexpected transition"),
			expectedCode:  "E400",
			wantRetryable: false,
			wantUserMsg:   "Операция невозможна в текущем состоянии",
		},
		{
			name:          "rate limited",
			err:           NewRateLimitError(30),
			expectedCode:  "E500",
			wantRetryable: false,
			wantUserMsg:   "Слишком много запросов. Попробуйте через 30 секунд",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expectedCode, tc.err.Code)

			userMsg, retryable := h.Handle(ctx, tc.err)
			require.Equal(t, tc.wantUserMsg, userMsg)
			require.Equal(t, tc.wantRetryable, retryable)
		})
	}
}

func TestHandle_WrappedAppError(t *testing.T) {
	h := NewHandler(testLogger(), false)

	wrapped := fmt.Errorf("handler failed: %w", NewDatabaseError(fmt.Errorf("timeout")))

	userMsg, retryable := h.Handle(context.Background(), wrapped)
	require.Equal(t, "Временная проблема, попробуйте позже", userMsg)
	require.True(t, retryable)
}

func TestHandle_UnknownError(t *testing.T) {
	h := NewHandler(testLogger(), false)

	userMsg, retryable := h.Handle(context.Background(), fmt.Errorf("something odd"))
	require.Equal(t, "Произошла ошибка. Попробуйте позже", userMsg)
	require.False(t, retryable)
}

func TestHandle_NilError(t *testing.T) {
	h := NewHandler(testLogger(), false)

	userMsg, retryable := h.Handle(context.Background(), nil)
	require.Empty(t, userMsg)
	require.False(t, retryable)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NewDatabaseError(cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, cause, err.Cause())
}
