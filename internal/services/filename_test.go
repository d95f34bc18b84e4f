package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeGuestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Ana Maria", "Ana Maria"},
		{"strips punctuation", "John@Doe!!", "JohnDoe"},
		{"keeps hyphen and underscore", "ana-maria_2", "ana-maria_2"},
		{"trims surrounding spaces", "  Ana  ", "Ana"},
		{"empty falls back", "", DefaultGuestName},
		{"only punctuation falls back", "@!#$%", DefaultGuestName},
		{"unicode letters survive", "José Añço", "José Añço"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeGuestName(tt.in))
		})
	}
}

func TestSanitizeGuestNameTruncatesToSixtyRunes(t *testing.T) {
	long := strings.Repeat("a", 100)
	assert.Len(t, []rune(SanitizeGuestName(long)), 60)

	// Truncation counts runes, not bytes.
	longUnicode := strings.Repeat("é", 100)
	assert.Len(t, []rune(SanitizeGuestName(longUnicode)), 60)
}

func TestBuildRemoteNameIsDeterministic(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	got := BuildRemoteName(ts, "John@Doe!!", 1, "pic.png")

	assert.Equal(t, "20250102-030405__JohnDoe__01__pic.png", got)
}

func TestBuildRemoteNameConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2025, 1, 2, 6, 4, 5, 0, loc)

	got := BuildRemoteName(ts, "Ana", 12, "v.mp4")

	assert.Equal(t, "20250102-030405__Ana__12__v.mp4", got)
}
