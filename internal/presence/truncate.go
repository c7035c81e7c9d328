package presence

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"presencesync/internal/constants"
)

// Truncate shortens input so its UTF-8 encoding fits in maxBytes, cutting on
// character boundaries and appending constants.Ellipsis. Input that already
// fits is returned unchanged.
//
// The cut first keeps at most maxBytes-len(Ellipsis) characters, then drops
// trailing characters until that many bytes remain, then trims trailing
// whitespace. When maxBytes cannot even hold the ellipsis the result is the
// ellipsis alone.
func Truncate(input string, maxBytes int) string {
	if len(input) <= maxBytes {
		return input
	}

	trimLimit := maxBytes - len(constants.Ellipsis)
	if trimLimit <= 0 {
		return constants.Ellipsis
	}

	runes := []rune(input)
	if len(runes) > trimLimit {
		runes = runes[:trimLimit]
	}

	size := 0
	for _, r := range runes {
		size += utf8.RuneLen(r)
	}
	for size > trimLimit {
		size -= utf8.RuneLen(runes[len(runes)-1])
		runes = runes[:len(runes)-1]
	}

	return strings.TrimRightFunc(string(runes), unicode.IsSpace) + constants.Ellipsis
}

// TruncateField fits input into the presence service's per-field limit.
func TruncateField(input string) string {
	return Truncate(input, constants.PresenceByteLimit)
}
