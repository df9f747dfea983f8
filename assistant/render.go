package assistant

import (
	"github.com/muesli/reflow/wordwrap"

	"github.com/lintelhq/lintel/internal/markdown"
)

// RenderAnswer formats an assistant reply for terminal output at the
// given width. Markdown rendering failures fall back to word wrapping
// so the reply is never lost.
func RenderAnswer(text string, width int) string {
	if width < 1 {
		width = 80
	}
	if rendered := markdown.SafeRender(width, 0, []byte(text)); len(rendered) > 0 {
		return string(rendered)
	}
	return wordwrap.String(text, width)
}
