package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	internalstrings "github.com/lintelhq/lintel/internal/strings"
	"github.com/lintelhq/lintel/playbook"
	"github.com/lintelhq/lintel/project"
)

const promptIndent = 2

const systemPreamble = `You are a project assistant for a construction project management dashboard.
Answer questions about the projects, tasks, risks, expenses, milestones, and
site log summarized below. Be concise and concrete. When a question asks about
schedule or budget, cite the numbers from the summary. If the summary does not
contain the answer, say so instead of guessing.`

// buildPrompt assembles the single-turn prompt: preamble, JSON snapshot,
// optional playbook instructions, then the question.
func buildPrompt(question string, snapshot project.Snapshot, playbooks []playbook.Playbook) (string, error) {
	encoded, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	sections := []string{
		systemPreamble,
		formatPromptBlock("Dashboard summary", string(encoded)),
	}
	for _, pb := range playbooks {
		sections = append(sections, formatPromptBlock("Playbook: "+pb.Name, pb.Instructions))
	}
	sections = append(sections, formatPromptBlock("Question", question))

	return strings.Join(sections, "\n\n"), nil
}

func formatPromptBlock(label, body string) string {
	body = internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(body))
	if internalstrings.IsBlank(body) {
		body = "-"
	}
	return fmt.Sprintf("%s\n\n%s", label, internalstrings.IndentBlock(body, promptIndent))
}
