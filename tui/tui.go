// Package tui provides a Bubble Tea terminal UI for a docchat conversation.
package tui

import (
	"context"

	"github.com/amartinez/docchat"
	tea "github.com/charmbracelet/bubbletea"
)

// SubmitFunc sends one user turn and blocks until the exchange finishes
// or the context is cancelled. Transcript updates arrive through the
// store's subscription, not through the return value.
type SubmitFunc func(ctx context.Context, text string) error

// Run creates and runs the Bubble Tea program. It blocks until the
// program exits. When the context is cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TranscriptMsg carries a transcript snapshot for delivery to the model.
type TranscriptMsg struct {
	Messages []docchat.Message
}

// SubmitDoneMsg signals that an exchange has completed.
type SubmitDoneMsg struct {
	Err error
}
