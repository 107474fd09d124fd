package tui

import (
	"context"

	"github.com/amartinez/docchat"
)

// SetRunning marks the model as mid-exchange for testing.
func SetRunning(m Model) Model {
	m.running = true
	m.Input.Blur()
	return m
}

// SetRunningWithCancel marks the model as mid-exchange with a cancel hook.
func SetRunningWithCancel(m Model, cancel context.CancelFunc) Model {
	m = SetRunning(m)
	m.cancel = cancel
	return m
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// SendSnapshot exports sendSnapshot for testing.
func SendSnapshot(ch chan []docchat.Message, snapshot []docchat.Message) {
	sendSnapshot(ch, snapshot)
}
