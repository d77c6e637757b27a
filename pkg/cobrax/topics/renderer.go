package topics

import "github.com/arthur-debert/omniharness/pkg/ui"

// Renderer formats topic content for display
type Renderer interface {
	// Render takes raw content and the topic file extension
	Render(content string, format string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// MarkdownRenderer renders .md topics with glamour and leaves the rest alone
type MarkdownRenderer struct {
	Width int // 0 keeps the default wrapping
}

func (r *MarkdownRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}
	return ui.RenderMarkdown(content, r.Width)
}
