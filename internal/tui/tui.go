// Package tui provides a full-screen terminal chat client for ElyuBot.
package tui

import (
	"context"
	"strings"
	"time"

	"elyubot/internal/chat"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1).
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// --- Types ---

const turnTimeout = 30 * time.Second

type replyMsg string

// Model is the bubbletea model for the chat client.
type Model struct {
	svc            *chat.Service
	conversationID string

	viewport viewport.Model
	input    textinput.Model
	lines    []string
	waiting  bool
	ready    bool
	quitting bool
	width    int
	height   int
}

// New builds a chat client over the given service. Each client session is
// one conversation.
func New(svc *chat.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about La Union products, stores, and towns"
	ti.Focus()

	return Model{
		svc:            svc,
		conversationID: uuid.NewString(),
		input:          ti,
		lines:          []string{botStyle.Render("ElyuBot:") + " Hi, I'm ElyuBot! Ask me about local products and where to find them."},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "/clear" {
				m.svc.Reset(context.Background(), m.conversationID)
				m.lines = append(m.lines, helpStyle.Render("(memory cleared)"))
				m.input.SetValue("")
				m.syncViewport()
				return m, nil
			}
			m.lines = append(m.lines, userStyle.Render("You:")+" "+text)
			m.input.SetValue("")
			m.waiting = true
			m.syncViewport()
			return m, m.send(text)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := msg.Height - 7
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 8
		m.syncViewport()

	case replyMsg:
		m.waiting = false
		m.lines = append(m.lines, botStyle.Render("ElyuBot:")+" "+string(msg))
		m.syncViewport()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(" ElyuBot "))
	s.WriteString("\n")
	s.WriteString(windowStyle.Render(m.viewport.View()))
	s.WriteString("\n")
	if m.waiting {
		s.WriteString(helpStyle.Render("thinking..."))
	} else {
		s.WriteString(m.input.View())
	}
	s.WriteString("\n" + helpStyle.Render("enter: send • /clear: forget context • esc: quit"))
	return s.String()
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()
		return replyMsg(m.svc.Send(ctx, m.conversationID, text))
	}
}

// --- Runner ---

// Run starts the chat client and blocks until it exits.
func Run(svc *chat.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
