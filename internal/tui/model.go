// Package tui is the interactive terminal front end for the chat client.
// Rendering lives in view.go; this file holds the model and update loop.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/nanitex-official/chatbot/internal/bridge"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, status line and input
	chromeHeight = 5
)

// Options tunes the terminal UI.
type Options struct {
	// Style is a glamour style name; "auto" picks one from the terminal.
	Style string
	Width int
}

// replyMsg carries the outcome of one send back into the update loop.
type replyMsg struct {
	reply string
	err   error
}

// Model is the bubbletea model for the chat screen.
type Model struct {
	ctx     context.Context
	session *bridge.Session
	sender  bridge.Sender

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	styles   styles

	width  int
	height int
}

// New creates a Model driving session through sender.
func New(ctx context.Context, session *bridge.Session, sender bridge.Sender, opts Options) Model {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	ti := textinput.New()
	ti.Placeholder = "Type a message and press Enter"
	ti.CharLimit = 4000
	ti.Width = width - 4
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		session:  session,
		sender:   sender,
		input:    ti,
		viewport: viewport.New(width, defaultHeight-chromeHeight),
		spinner:  sp,
		renderer: newRenderer(opts.Style, width),
		styles:   defaultStyles(),
		width:    width,
		height:   defaultHeight,
	}
	m.refresh()
	return m
}

func newRenderer(style string, width int) *glamour.TermRenderer {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width-4))
	if err != nil {
		return nil
	}
	return r
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case replyMsg:
		_ = m.session.Finish(msg.reply, msg.err)
		m.input.Focus()
		m.refresh()
		return m, textinput.Blink

	case spinner.TickMsg:
		if m.session.State().Phase != bridge.Sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.session.SetInput(m.input.Value())
	return m, tea.Batch(cmds...)
}

// submit starts sending the current input. Blank input and submissions
// while a reply is pending are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.session.SetInput(text)
	if _, err := m.session.Begin(text); err != nil {
		return m, nil
	}

	m.input.SetValue("")
	m.input.Blur()
	m.refresh()
	return m, tea.Batch(m.send(text), m.spinner.Tick)
}

func (m Model) send(text string) tea.Cmd {
	ctx, sender := m.ctx, m.sender
	return func() tea.Msg {
		reply, err := sender.Send(ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, session *bridge.Session, sender bridge.Sender, opts Options) error {
	p := tea.NewProgram(New(ctx, session, sender, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
