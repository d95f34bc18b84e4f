package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DefaultGuestName replaces a guest name that sanitizes to nothing.
const DefaultGuestName = "Guest"

const guestNameMaxRunes = 60

// SanitizeGuestName keeps letters, digits, spaces, hyphens and underscores,
// trims surrounding spaces and caps the result at 60 runes. An empty result
// falls back to DefaultGuestName.
func SanitizeGuestName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}

	safe := strings.TrimSpace(b.String())
	if runes := []rune(safe); len(runes) > guestNameMaxRunes {
		safe = string(runes[:guestNameMaxRunes])
	}
	if safe == "" {
		return DefaultGuestName
	}
	return safe
}

// BuildRemoteName derives the destination object name:
// {UTC timestamp}__{sanitized guest}__{two-digit 1-based index}__{original name}.
// Deterministic given its inputs so a batch sorts together in the folder.
func BuildRemoteName(ts time.Time, guestName string, index int, originalName string) string {
	return fmt.Sprintf("%s__%s__%02d__%s",
		ts.UTC().Format("20060102-150405"),
		SanitizeGuestName(guestName),
		index,
		originalName,
	)
}
