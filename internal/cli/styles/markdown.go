package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// DescriptionWidth is the wrap width for rendered task descriptions
const DescriptionWidth = 80

// renderers caches one glamour renderer per wrap width
var renderers sync.Map

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if r, ok := renderers.Load(width); ok {
		return r.(*glamour.TermRenderer), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	actual, _ := renderers.LoadOrStore(width, r)
	return actual.(*glamour.TermRenderer), nil
}

// RenderMarkdown renders text as terminal markdown wrapped at width.
// The raw text is returned if rendering fails.
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	r, err := markdownRenderer(width)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
