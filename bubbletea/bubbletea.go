// Package bubbletea provides the interactive interview TUI. The model wraps
// an interview Engine: the viewport shows the transcript, the input line
// collects the subject's answers, and gateway calls run as Bubble Tea
// commands so the UI stays responsive while the next question is generated.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/storee/storee"
	"github.com/storee/storee/interview"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits and returns the final model so callers can persist the
// session. The context is used for graceful shutdown — when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	out, ok := final.(Model)
	if !ok {
		return m, nil
	}
	return out, nil
}

// QuestionMsg delivers the result of a Continue call.
type QuestionMsg struct {
	Session storee.Session
	Err     error
}

// SummaryMsg delivers the result of an End call.
type SummaryMsg struct {
	Session storee.Session
	Err     error
}

func continueCmd(engine *interview.Engine, session storee.Session, reply string) tea.Cmd {
	return func() tea.Msg {
		next, err := engine.Continue(context.Background(), session, reply)
		return QuestionMsg{Session: next, Err: err}
	}
}

func endCmd(engine *interview.Engine, session storee.Session) tea.Cmd {
	return func() tea.Msg {
		ended, err := engine.End(context.Background(), session)
		return SummaryMsg{Session: ended, Err: err}
	}
}
