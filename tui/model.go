package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/amartinez/docchat"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	rw "github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the docchat TUI. It renders the
// transcript from store snapshots; all conversation state lives in the
// session and store, never here.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	submit SubmitFunc
	store  *docchat.TranscriptStore
	theme  docchat.Theme
	styles Styles

	messages []docchat.Message
	// assistantBlocks caches streaming markdown blocks by message ID so
	// finalized paragraphs are not re-rendered on every fragment.
	assistantBlocks map[string]*AssistantMessageBlock

	running  bool
	cancel   context.CancelFunc
	updateCh chan []docchat.Message
	doneCh   chan error
	err      error
	ready    bool
}

// New creates a TUI Model over the given submit function and store.
func New(submit SubmitFunc, store *docchat.TranscriptStore, theme docchat.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your documents..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:           ti,
		submit:          submit,
		store:           store,
		theme:           theme,
		styles:          NewStyles(theme),
		messages:        store.All(),
		assistantBlocks: make(map[string]*AssistantMessageBlock),
	}
}

// Running returns whether an exchange is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the last exchange error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TranscriptMsg:
		m = m.applySnapshot(msg.Messages)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.updateCh != nil {
			return m, listenForUpdate(m.updateCh, m.doneCh)
		}
		return m, nil

	case SubmitDoneMsg:
		m.running = false
		m.cancel = nil
		m.updateCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		// Final snapshot, in case the last update raced channel teardown.
		m = m.applySnapshot(m.store.All())
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components. Viewport always receives
	// messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
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
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.applySnapshot(m.store.All())
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	// When idle, pass keys to both the input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to
	// avoid conflicts (e.g. 'j'/'k' are viewport scroll AND text
	// characters).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.updateCh = make(chan []docchat.Message, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startSubmit(ctx, m.submit, m.store, text, m.updateCh, m.doneCh),
		listenForUpdate(m.updateCh, m.doneCh),
	)
}

// applySnapshot replaces the rendered messages and feeds assistant blocks
// their latest cumulative content.
func (m Model) applySnapshot(msgs []docchat.Message) Model {
	m.messages = msgs
	for _, msg := range msgs {
		if msg.Role != docchat.RoleAssistant {
			continue
		}
		block, ok := m.assistantBlocks[msg.ID]
		if !ok {
			block = NewAssistantMessageBlock(m.theme, m.styles)
			m.assistantBlocks[msg.ID] = block
		}
		block.SetContent(msg.Content)
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.messages) == 0 && m.err == nil {
		return ""
	}
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case docchat.RoleUser:
			b.WriteString(NewUserMessageBlock(msg.Content, m.styles).View(m.Viewport.Width))
		case docchat.RoleAssistant:
			if block, ok := m.assistantBlocks[msg.ID]; ok {
				b.WriteString(block.View(m.Viewport.Width))
			}
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(NewErrorBlock(m.err, m.styles).View(m.Viewport.Width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) statusLine() string {
	var text string
	var style = m.styles.Muted
	switch {
	case m.err != nil:
		text = "Error: " + m.err.Error()
		style = m.styles.Error
	case m.running:
		text = "Thinking..."
	default:
		text = "Enter to send, Ctrl+C to quit"
	}
	// Truncate before styling so the width math never sees escape codes.
	if m.Viewport.Width > 0 {
		text = rw.Truncate(text, m.Viewport.Width, "…")
	}
	return style.Render(text)
}

// startSubmit runs the exchange in a goroutine, forwarding transcript
// snapshots until it completes, then signals completion.
func startSubmit(ctx context.Context, submit SubmitFunc, store *docchat.TranscriptStore, text string, updateCh chan []docchat.Message, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		unsubscribe := store.Subscribe(func(snapshot []docchat.Message) {
			sendSnapshot(updateCh, snapshot)
		})
		err := submit(ctx, text)
		unsubscribe()
		close(updateCh)
		doneCh <- err
		return nil
	}
}

// sendSnapshot delivers a snapshot without ever blocking the stream. Each
// snapshot supersedes the ones before it, so when the UI falls behind and
// the buffer fills, the oldest pending snapshot is dropped to make room.
// The newest snapshot is always enqueued.
func sendSnapshot(ch chan []docchat.Message, snapshot []docchat.Message) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// listenForUpdate waits for the next transcript snapshot. When the channel
// closes, it reads the exchange error from doneCh and returns SubmitDoneMsg.
func listenForUpdate(ch <-chan []docchat.Message, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-ch
		if !ok {
			err := <-doneCh
			return SubmitDoneMsg{Err: err}
		}
		return TranscriptMsg{Messages: snapshot}
	}
}
