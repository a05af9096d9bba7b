package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/nanitex-official/chatbot/internal/bridge"
	"github.com/nanitex-official/chatbot/internal/transcript"
)

type stubSender struct {
	reply string
	err   error
	sent  []string
}

func (s *stubSender) Send(_ context.Context, text string) (string, error) {
	s.sent = append(s.sent, text)
	return s.reply, s.err
}

func newModel(t *testing.T, sender bridge.Sender) (Model, *bridge.Session) {
	t.Helper()
	store, err := transcript.NewMemoryStore(20)
	require.NoError(t, err)
	session := bridge.NewSession(store)
	return New(context.Background(), session, sender, Options{Style: "notty"}), session
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// findReply runs cmd (and any batched commands) until a replyMsg appears.
func findReply(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case replyMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if r, ok := c().(replyMsg); ok {
				return r
			}
		}
	}
	t.Fatal("no replyMsg produced")
	return replyMsg{}
}

func TestView_PlaceholderWhenEmpty(t *testing.T) {
	m, _ := newModel(t, &stubSender{})
	require.Contains(t, m.View(), placeholderText)
}

func TestSubmit_SuccessRendersBotEntry(t *testing.T) {
	sender := &stubSender{reply: "Hi there"}
	m, session := newModel(t, sender)

	m = typeText(m, "Hello")
	m, cmd := pressEnter(m)

	require.Equal(t, bridge.Sending, session.State().Phase)
	require.Empty(t, m.input.Value(), "input is cleared on submit")
	require.False(t, m.input.Focused())
	require.Contains(t, m.View(), "Sending...")

	next, _ := m.Update(findReply(t, cmd))
	m = next.(Model)

	require.Equal(t, []string{"Hello"}, sender.sent)
	require.Equal(t, bridge.Succeeded, session.State().Phase)
	require.True(t, m.input.Focused(), "focus returns to the input")

	view := m.View()
	require.Contains(t, view, "Hello")
	require.Contains(t, view, "Hi there")
	require.NotContains(t, view, placeholderText)
}

func TestSubmit_BlankInputIgnored(t *testing.T) {
	sender := &stubSender{reply: "unused"}
	m, session := newModel(t, sender)

	m = typeText(m, "   ")
	m, cmd := pressEnter(m)

	require.Nil(t, cmd)
	require.Equal(t, bridge.Idle, session.State().Phase)
	require.Empty(t, session.Transcript())
	require.Empty(t, sender.sent)
}

func TestSubmit_IgnoredWhileSending(t *testing.T) {
	m, session := newModel(t, &stubSender{reply: "ok"})

	m = typeText(m, "first")
	m, _ = pressEnter(m)
	require.Equal(t, bridge.Sending, session.State().Phase)

	m.input.SetValue("second")
	_, cmd := pressEnter(m)
	require.Nil(t, cmd)
	require.Len(t, session.Transcript(), 1)
}

func TestSubmit_FailureShowsError(t *testing.T) {
	m, session := newModel(t, &stubSender{err: errors.New("Unable to reach the chat service. Please try again later.")})

	m = typeText(m, "Hello")
	m, cmd := pressEnter(m)
	next, _ := m.Update(findReply(t, cmd))
	m = next.(Model)

	st := session.State()
	require.Equal(t, bridge.Failed, st.Phase)
	require.Len(t, session.Transcript(), 1, "no bot entry on failure")
	require.Contains(t, m.View(), "Unable to reach the chat service")
	require.True(t, m.input.Focused())
}

func TestEscQuits(t *testing.T) {
	m, _ := newModel(t, &stubSender{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestWindowResize(t *testing.T) {
	m, _ := newModel(t, &stubSender{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	require.Equal(t, 100, m.viewport.Width)
	require.Equal(t, 40-chromeHeight, m.viewport.Height)
}
