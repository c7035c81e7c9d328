package presence

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presencesync/internal/constants"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxBytes int
		want     string
	}{
		{"empty", "", 128, ""},
		{"fits", "Playing Super Mario Odyssey", 128, "Playing Super Mario Odyssey"},
		{"exact fit", strings.Repeat("a", 128), 128, strings.Repeat("a", 128)},
		{"ascii cut", strings.Repeat("a", 129), 128, strings.Repeat("a", 125) + "…"},
		{"trailing space trimmed", "hello world", 9, "hello…"},
		{"two byte characters", strings.Repeat("é", 100), 128, strings.Repeat("é", 62) + "…"},
		{"budget below ellipsis", "hello", 2, "…"},
		{"budget equal to ellipsis", "hello", 3, "…"},
		{"negative budget", "hello", -5, "…"},
		{"one character room", "héllo", 4, "h…"},
		{"multibyte dropped at boundary", "éabc", 4, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxBytes))
		})
	}
}

func TestTruncateLongAccentedTitle(t *testing.T) {
	input := strings.Repeat("Super Long Game Title That Exceeds The Limit... Édition Spéciale ", 4)
	require.Greater(t, len(input), 128)

	got := TruncateField(input)

	assert.LessOrEqual(t, len(got), 128)
	assert.True(t, strings.HasSuffix(got, constants.Ellipsis))
	assert.True(t, utf8.ValidString(got), "result contains a partial character")
	assert.True(t, strings.HasPrefix(input, strings.TrimSuffix(got, constants.Ellipsis)))
}

func TestTruncateCJK(t *testing.T) {
	input := strings.Repeat("ゼルダの伝説 ", 20)

	got := TruncateField(input)

	assert.LessOrEqual(t, len(got), 128)
	assert.True(t, utf8.ValidString(got))
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, constants.Ellipsis), " "))
}

func TestTruncateProperties(t *testing.T) {
	corpus := []string{
		"",
		"short",
		strings.Repeat("x", 300),
		strings.Repeat("é", 90),
		strings.Repeat("ab ", 60),
		strings.Repeat("😀", 50),
		"Pokémon™ Scarlet — The Hidden Treasure of Area Zero: The Indigo Disk (v3.0.1)",
		strings.Repeat("Ω mixed text with spaces ", 10),
	}

	for _, s := range corpus {
		for n := 3; n <= 140; n++ {
			got := Truncate(s, n)

			if len(s) <= n {
				require.Equal(t, s, got, "fitting input changed: %q, %d", s, n)
				continue
			}
			require.LessOrEqual(t, len(got), n, "result too long: %q, %d", s, n)
			require.True(t, utf8.ValidString(got), "invalid UTF-8: %q, %d", s, n)
			require.True(t, strings.HasSuffix(got, constants.Ellipsis))
			require.Equal(t, got, Truncate(got, n), "not idempotent: %q, %d", s, n)
		}
	}
}
