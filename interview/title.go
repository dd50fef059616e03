package interview

import (
	"strings"

	"github.com/rivo/uniseg"
)

// fallbackTitle is returned whenever no usable title can be produced.
const fallbackTitle = "New Memory"

// maxTitleGraphemes bounds suggested titles to what fits a list row.
const maxTitleGraphemes = 60

// CleanTitle normalizes a gateway-suggested title: quotes are stripped,
// whitespace is trimmed, and the result is cut to 60 characters on grapheme
// cluster boundaries so combined emoji and accented characters are never
// split. An empty result yields the fixed fallback.
func CleanTitle(raw string) string {
	title := strings.NewReplacer(`"`, "", "'", "", "`", "").Replace(raw)
	title = strings.TrimSpace(title)
	if title == "" {
		return fallbackTitle
	}
	return truncateGraphemes(title, maxTitleGraphemes)
}

func truncateGraphemes(s string, max int) string {
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	g := uniseg.NewGraphemes(s)
	var sb strings.Builder
	for i := 0; i < max && g.Next(); i++ {
		sb.WriteString(g.Str())
	}
	return strings.TrimSpace(sb.String())
}
