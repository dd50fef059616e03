package storee

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Question int // interviewer question accent
	Answer   int // subject answer accent
	Summary  int // summary heading
	Error    int // error messages
	Success  int // success indicators
	Muted    int // status bar, placeholders
	CodeBg   int // code block background
	Accent   int // headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Question: 5,
		Answer:   4,
		Summary:  2,
		Error:    1,
		Success:  2,
		Muted:    8,
		CodeBg:   0,
		Accent:   6,
	}
}
