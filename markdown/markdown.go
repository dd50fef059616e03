// Package markdown renders memory and summary text for the two surfaces that
// display it: ANSI-styled terminal output for the interview TUI, and HTML for
// memory export. Parsing is goldmark in both cases.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/storee/storee"
	"github.com/yuin/goldmark"
)

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width.
func Render(source string, width int, theme storee.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}

// RenderHTML converts markdown source to an HTML fragment.
func RenderHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return buf.String(), nil
}
