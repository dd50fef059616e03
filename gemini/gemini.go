// Package gemini implements [storee.Gateway] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between storee's
// domain types and the Gemini API types. Completions are unary: the
// interview engine needs whole questions and summaries, not deltas.
package gemini

const (
	defaultModel     = "gemini-3.1-pro-preview"
	defaultMaxTokens = 1024
)
