package interview_test

import (
	"strings"
	"testing"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/storee/storee/interview"
)

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Wedding Day", "Wedding Day"},
		{"double quotes stripped", `"Wedding Day"`, "Wedding Day"},
		{"single quotes stripped", "'Wedding Day'", "Wedding Day"},
		{"backticks stripped", "`Wedding Day`", "Wedding Day"},
		{"surrounding whitespace", "  Wedding Day \n", "Wedding Day"},
		{"empty falls back", "", "New Memory"},
		{"quotes only falls back", `""`, "New Memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, interview.CleanTitle(tt.raw))
		})
	}
}

func TestCleanTitle_TruncatesAtSixtyGraphemes(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("ab ", 40) // 120 chars
	got := interview.CleanTitle(long)
	assert.LessOrEqual(t, uniseg.GraphemeClusterCount(got), 60)
	assert.True(t, strings.HasPrefix(long, got))
}

func TestCleanTitle_DoesNotSplitGraphemes(t *testing.T) {
	t.Parallel()

	// Family emoji is a single grapheme of multiple runes; a byte- or
	// rune-based cut would split it.
	long := strings.Repeat("\U0001F468‍\U0001F469‍\U0001F467", 70)
	got := interview.CleanTitle(long)
	assert.Equal(t, 60, uniseg.GraphemeClusterCount(got))
	assert.Equal(t, 0, strings.Count(got, "�"))
}
