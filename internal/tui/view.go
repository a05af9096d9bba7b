package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nanitex-official/chatbot/internal/bridge"
	"github.com/nanitex-official/chatbot/internal/types"
)

const placeholderText = "Send a message to start chatting."

type styles struct {
	title       lipgloss.Style
	user        lipgloss.Style
	bot         lipgloss.Style
	timestamp   lipgloss.Style
	errText     lipgloss.Style
	placeholder lipgloss.Style
	status      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		user:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		bot:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		timestamp:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		errText:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		placeholder: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
		status:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("chatbot"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) statusLine() string {
	st := m.session.State()
	switch st.Phase {
	case bridge.Sending:
		return m.spinner.View() + " " + m.styles.status.Render("Sending...")
	case bridge.Failed:
		return m.styles.errText.Render("Error: " + st.Err)
	default:
		return m.styles.status.Render("Enter to send, Esc to quit")
	}
}

// renderTranscript lays out every entry, or the placeholder when there are none.
func (m Model) renderTranscript() string {
	entries := m.session.Transcript()
	if len(entries) == 0 {
		return m.styles.placeholder.Render(placeholderText)
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderEntry(e))
	}
	return b.String()
}

func (m Model) renderEntry(e types.Entry) string {
	stamp := m.styles.timestamp.Render(e.CreatedAt.Format("15:04"))
	if e.Author == types.AuthorUser {
		return m.styles.user.Render("You") + " " + stamp + "\n" + e.Text + "\n"
	}
	return m.styles.bot.Render("Bot") + " " + stamp + "\n" + m.renderMarkdown(e.Text)
}

func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text + "\n"
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
