package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// RenderMarkdown renders markdown content for terminal display. Used by the
// docs command for the embedded guides.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-MarkdownRenderMargin),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}
