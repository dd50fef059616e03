package storee

import "time"

// Speaker identifies who authored a turn.
type Speaker string

const (
	SpeakerSubject   Speaker = "subject"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is a single speaker-tagged utterance within an interview session.
// Turns are immutable once appended; their order is the sole source of
// truth for what was said.
type Turn struct {
	Speaker Speaker
	Text    string
	At      time.Time
}
