package markdown_test

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storee/storee"
	"github.com/storee/storee/markdown"
)

func TestMain(m *testing.M) {
	// Tests run without a TTY, where lipgloss would auto-detect an Ascii
	// profile and strip all ANSI styling; pin the profile so styled output
	// is deterministic.
	lipgloss.SetColorProfile(termenv.ANSI256)
	os.Exit(m.Run())
}

func render(source string, width int) string {
	return markdown.Render(source, width, storee.DefaultTheme())
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", render("", 80))
}

func TestRender_Paragraph(t *testing.T) {
	t.Parallel()

	got := render("I got married in June 2010.", 80)
	assert.Contains(t, got, "I got married in June 2010.")
}

func TestRender_WrapsToWidth(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 30)
	got := render(long, 20)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestRender_ParagraphSeparation(t *testing.T) {
	t.Parallel()

	got := render("First paragraph.\n\nSecond paragraph.", 80)
	assert.Contains(t, got, "First paragraph.\n\nSecond paragraph.")
}

func TestRender_Heading(t *testing.T) {
	t.Parallel()

	got := render("# The Wedding", 80)
	assert.Contains(t, got, "The Wedding")
	assert.Contains(t, got, "\x1b[", "headings carry ANSI styling")
}

func TestRender_UnorderedList(t *testing.T) {
	t.Parallel()

	got := render("- first\n- second", 80)
	assert.Contains(t, got, "- first")
	assert.Contains(t, got, "- second")
}

func TestRender_OrderedList(t *testing.T) {
	t.Parallel()

	got := render("1. first\n2. second", 80)
	assert.Contains(t, got, "1. first")
	assert.Contains(t, got, "2. second")
}

func TestRender_NestedList(t *testing.T) {
	t.Parallel()

	got := render("- outer\n  - inner", 80)
	assert.Contains(t, got, "- outer")
	assert.Contains(t, got, "  - inner")
}

func TestRender_SoftLineBreakBecomesSpace(t *testing.T) {
	t.Parallel()

	got := render("line one\nline two", 80)
	assert.Contains(t, got, "line one line two")
}

func TestRender_NoTrailingNewline(t *testing.T) {
	t.Parallel()
	assert.False(t, strings.HasSuffix(render("hello", 80), "\n"))
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	got, err := markdown.RenderHTML("# The Wedding\n\nWe got **married**.")
	require.NoError(t, err)
	assert.Contains(t, got, "<h1>The Wedding</h1>")
	assert.Contains(t, got, "<strong>married</strong>")
}
