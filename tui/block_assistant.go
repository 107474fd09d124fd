package tui

import (
	"strings"

	"github.com/amartinez/docchat"
	"github.com/amartinez/docchat/markdown"
)

var _ MessageBlock = (*AssistantMessageBlock)(nil)

// AssistantMessageBlock renders a streamed assistant reply with markdown
// formatting. Finalized paragraphs (separated by double newline) are
// rendered once and cached; only the trailing unfinalized text is
// re-rendered as new fragments arrive.
type AssistantMessageBlock struct {
	content string
	theme   docchat.Theme
	styles  Styles

	// finalizedRaw is the stable prefix ending at the last double newline.
	// It's rendered once per width and cached in finalizedByWidth.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewAssistantMessageBlock creates a block for a streaming assistant reply.
func NewAssistantMessageBlock(theme docchat.Theme, styles Styles) *AssistantMessageBlock {
	return &AssistantMessageBlock{
		theme:            theme,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// SetContent replaces the block's text with the latest cumulative content
// from the transcript. Content only ever grows during a stream.
func (b *AssistantMessageBlock) SetContent(content string) {
	if content == b.content {
		return
	}
	b.content = content
	b.promoteFinalized()
}

func (b *AssistantMessageBlock) View(width int) string {
	// An appended-but-empty reply is the in-progress affordance.
	if b.content == "" {
		return b.styles.Muted.Render("...")
	}
	finalizedRendered := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if hasUnclosedFence(trailing) {
		// Close fence only for rendering so partial streams display safely.
		trailing += "\n```"
	}
	if trailing == "" {
		return finalizedRendered
	}
	trailingRendered := markdown.Render(trailing, width, b.theme)
	// Whitespace-only trailing input (e.g. " ") may render to whitespace;
	// treat it the same as empty to avoid spurious blank lines.
	if strings.TrimSpace(trailingRendered) == "" {
		return finalizedRendered
	}
	switch finalizedRendered {
	case "":
		return trailingRendered
	default:
		// Trim whitespace from independently-rendered fragments to avoid
		// a visible seam at the finalization boundary. The paragraph break
		// is reconstructed with a single "\n\n" to match full-document
		// render output.
		return strings.TrimRight(finalizedRendered, "\n") + "\n\n" + strings.TrimLeft(trailingRendered, "\n")
	}
}

// promoteFinalized scans for the last "\n\n" boundary that doesn't fall
// inside an unclosed fenced code block. Splitting inside a fence would
// produce a finalized fragment with an unclosed opening fence and a
// trailing fragment starting mid-code-block, causing transient rendering
// glitches.
func (b *AssistantMessageBlock) promoteFinalized() {
	raw := b.content
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !hasUnclosedFence(candidate) {
			if candidate != b.finalizedRaw {
				b.finalizedRaw = candidate
				// Width-sensitive cache must be invalidated when finalized text grows.
				clear(b.finalizedByWidth)
			}
			return
		}
		end = idx
	}
}

func (b *AssistantMessageBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := markdown.Render(b.finalizedRaw, width, b.theme)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *AssistantMessageBlock) trailingRaw() string {
	if b.finalizedRaw == "" {
		return b.content
	}
	return strings.TrimPrefix(b.content, b.finalizedRaw+"\n\n")
}

// hasUnclosedFence detects whether s contains an unclosed fenced code
// block by counting "```" occurrences. Triple backticks inside inline
// code spans are not distinguished; streamed answers rarely contain them.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
