package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/storee/storee"
	"github.com/storee/storee/interview"
	"github.com/storee/storee/markdown"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the interview TUI.
type Model struct {
	// Input is the answer input line. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript area. Exported for test access.
	Viewport viewport.Model

	engine  *interview.Engine
	session storee.Session
	theme   storee.Theme
	styles  Styles

	// pending is a submitted answer the engine has not confirmed yet. It is
	// shown in the transcript while the next question is generated and moves
	// into the session on QuestionMsg.
	pending string

	busy  bool
	ended bool
	err   error
	ready bool
}

// New creates a TUI Model over the given engine and session.
func New(engine *interview.Engine, session storee.Session, theme storee.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:   ti,
		engine:  engine,
		session: session,
		theme:   theme,
		styles:  NewStyles(theme),
	}
}

// Session returns the current session state, for persisting on exit.
func (m Model) Session() storee.Session { return m.session }

// Busy returns whether a gateway call is in flight.
func (m Model) Busy() bool { return m.busy }

// Ended returns whether the interview has been ended and summarized.
func (m Model) Ended() bool { return m.ended }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case QuestionMsg:
		m.busy = false
		if msg.Err != nil {
			// The session is unchanged on failure; hand the answer back for
			// a retry.
			m.err = msg.Err
			m.Input.SetValue(m.pending)
		} else {
			m.err = nil
			m.session = msg.Session
		}
		m.pending = ""
		m.refreshViewport()
		return m, m.Input.Focus()

	case SummaryMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			m.refreshViewport()
			return m, m.Input.Focus()
		}
		m.err = nil
		m.session = msg.Session
		m.ended = true
		m.Input.Blur()
		m.refreshViewport()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.busy && !m.ended {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputHeight := 1
	statusHeight := 1
	gaps := 2
	vpHeight := msg.Height - inputHeight - statusHeight - gaps
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width

	m.refreshViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		if m.busy || m.ended {
			return m, nil
		}
		reply := strings.TrimSpace(m.Input.Value())
		if reply == "" {
			return m, nil
		}
		return m.submitReply(reply)

	case tea.KeyCtrlD:
		if m.busy || m.ended {
			return m, nil
		}
		m.busy = true
		m.err = nil
		m.Input.Blur()
		return m, endCmd(m.engine, m.session)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	// Only non-character keys reach the viewport: 'j'/'k' are text, not
	// scrolling, while an answer is being typed.
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !m.busy && !m.ended {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submitReply(reply string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m.pending = reply
	m.busy = true
	m.refreshViewport()
	return m, continueCmd(m.engine, m.session, reply)
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.Viewport.SetContent(m.renderTranscript())
	m.Viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	width := m.Viewport.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, turn := range m.session.Turns {
		m.writeTurn(&b, turn, width)
	}
	if m.pending != "" {
		m.writeTurn(&b, storee.Turn{Speaker: storee.SpeakerSubject, Text: m.pending}, width)
	}
	if m.ended {
		b.WriteString(m.styles.Summary.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(markdown.Render(m.session.Summary, width, m.theme))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) writeTurn(b *strings.Builder, turn storee.Turn, width int) {
	if turn.Speaker == storee.SpeakerSubject {
		b.WriteString(m.styles.Answer.Render("You"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(turn.Text))
	} else {
		b.WriteString(m.styles.Question.Render("Interviewer"))
		b.WriteString("\n")
		b.WriteString(markdown.Render(turn.Text, width, m.theme))
	}
	b.WriteString("\n\n")
}

// statusLine renders the hint text with the turn count right-aligned.
func (m Model) statusLine() string {
	var left string
	switch {
	case m.err != nil:
		left = m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.busy:
		left = m.styles.Muted.Render("Thinking...")
	case m.ended:
		left = m.styles.Muted.Render("Interview ended. Ctrl+C to exit")
	default:
		left = m.styles.Muted.Render("Enter to answer, Ctrl+D to finish, Ctrl+C to quit")
	}

	right := m.styles.Muted.Render(fmt.Sprintf("%d turns", len(m.session.Turns)))
	pad := m.Viewport.Width - lipgloss.Width(left) - runewidth.StringWidth(fmt.Sprintf("%d turns", len(m.session.Turns)))
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}
