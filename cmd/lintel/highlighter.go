package main

import (
	"strings"

	"github.com/lintelhq/lintel/internal/ui"
)

func logHighlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	if prefixLengths == nil {
		prefixLengths = map[string]int{}
	}
	return func(id string) string {
		if id == "" {
			return id
		}
		prefixLen, ok := prefixLengths[strings.ToLower(id)]
		if !ok {
			return highlight(id, 0)
		}
		return highlight(id, prefixLen)
	}
}

// highlighterFor builds an ID highlighter over a collection's IDs.
func highlighterFor(ids []string) func(string) string {
	return logHighlighter(ui.UniqueIDPrefixLengths(ids), ui.HighlightID)
}
