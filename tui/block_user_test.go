package tui_test

import (
	"strings"
	"testing"

	"github.com/amartinez/docchat"
	"github.com/amartinez/docchat/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("renders prompt prefix and text", func(t *testing.T) {
		t.Parallel()
		styles := tui.NewStyles(docchat.DefaultTheme())
		block := tui.NewUserMessageBlock("hello world", styles)
		view := block.View(80)
		assert.Contains(t, view, "> ")
		assert.Contains(t, view, "hello world")
	})

	t.Run("pads each line to full width", func(t *testing.T) {
		t.Parallel()
		styles := tui.NewStyles(docchat.DefaultTheme())
		block := tui.NewUserMessageBlock("test", styles)
		view := block.View(40)
		for _, line := range strings.Split(view, "\n") {
			if line == "" {
				continue
			}
			assert.Equal(t, 40, lipgloss.Width(line))
		}
	})

	t.Run("wraps long text to width", func(t *testing.T) {
		t.Parallel()
		styles := tui.NewStyles(docchat.DefaultTheme())
		longText := "short words that keep going and going beyond the viewport width easily"
		block := tui.NewUserMessageBlock(longText, styles)
		view := block.View(30)
		assert.Contains(t, view, "easily")
		assert.Greater(t, len(strings.Split(view, "\n")), 1)
	})
}
