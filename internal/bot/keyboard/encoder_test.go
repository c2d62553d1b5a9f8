package keyboard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/keyboard"
)

func TestEncodeCallback(t *testing.T) {
	tests := []struct {
		name      string
		unique    string
		data      string
		want      string
		wantError bool
	}{
		{
			name:   "with data",
			unique: "course",
			data:   "2",
			want:   "course:2",
		},
		{
			name:   "without data",
			unique: "checkout",
			data:   "",
			want:   "checkout",
		},
		{
			name:      "payload too long",
			unique:    "bakery_item",
			data:      strings.Repeat("x", 80),
			wantError: true,
		},
		{
			name:      "unique too long",
			unique:    strings.Repeat("y", 80),
			data:      "",
			wantError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := keyboard.EncodeCallback(tc.unique, tc.data)
			if tc.wantError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeCallback(t *testing.T) {
	unique, data, err := keyboard.DecodeCallback("pay_course:3")
	require.NoError(t, err)
	require.Equal(t, "pay_course", unique)
	require.Equal(t, "3", data)

	unique, data, err = keyboard.DecodeCallback("back_to_main")
	require.NoError(t, err)
	require.Equal(t, "back_to_main", unique)
	require.Empty(t, data)

	_, _, err = keyboard.DecodeCallback("")
	require.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encoded, err := keyboard.EncodeCallback("bakery_item", "4")
	require.NoError(t, err)

	unique, data, err := keyboard.DecodeCallback(encoded)
	require.NoError(t, err)
	require.Equal(t, "bakery_item", unique)
	require.Equal(t, "4", data)
}
