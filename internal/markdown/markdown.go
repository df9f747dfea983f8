package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	internalstrings "github.com/lintelhq/lintel/internal/strings"
)

// renderer is the subset of glamour.TermRenderer used here. Tests swap
// in fakes to exercise failure paths.
type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output.
func Render(width, indent int, input []byte) []byte {
	return render(width, indent, input, false)
}

// SafeRender formats markdown like Render but never panics: if the
// underlying renderer panics, the original text is returned instead.
func SafeRender(width, indent int, input []byte) []byte {
	return render(width, indent, input, true)
}

func render(width, indent int, input []byte, recoverPanics bool) []byte {
	if len(input) == 0 {
		return nil
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	rendered := value
	if r := markdownRenderer(renderWidth); r != nil {
		formatted, err := renderValue(r, value, recoverPanics)
		if err == nil {
			rendered = formatted
		}
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	if indent <= 0 {
		return []byte(rendered)
	}
	return []byte(internalstrings.IndentBlock(rendered, indent))
}

func renderValue(r renderer, value string, recoverPanics bool) (out string, err error) {
	if recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("markdown renderer panicked: %v", p)
			}
		}()
	}
	return r.Render(value)
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	style.ImageText.Format = "Image: {{.text}} ->"
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
