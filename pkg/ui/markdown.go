package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for a terminal, falling back to the source
// when rendering fails. Width 0 keeps glamour's default wrapping.
func RenderMarkdown(content string, width int) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
