// Package playbook implements loading and managing playbook instruction
// documents.
//
// Playbooks are markdown documents that extend the chat assistant's
// context with site-specific guidance: safety SOPs, QA checklists,
// client reporting conventions. They live in .lintel/playbooks/<name>.md
// files next to the plan.
package playbook

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	internalstrings "github.com/lintelhq/lintel/internal/strings"
)

// Dir is the directory containing playbook documents.
const Dir = ".lintel/playbooks"

// Playbook represents a loaded playbook document.
type Playbook struct {
	// Name is the playbook name (filename without extension).
	Name string

	// Instructions is the full text of the document body (after frontmatter).
	Instructions string

	// Model overrides the assistant model for questions asked with this
	// playbook, if specified in frontmatter.
	Model string
}

// Load loads a playbook by name from the given base directory.
func Load(baseDir, name string) (*Playbook, error) {
	name = internalstrings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("playbook name is required")
	}

	path := filepath.Join(baseDir, Dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("playbook not found: %s", name)
		}
		return nil, fmt.Errorf("read playbook %s: %w", name, err)
	}

	return parsePlaybook(name, data)
}

// List returns the names of all playbooks under baseDir, sorted
// alphabetically. A missing playbooks directory yields an empty list,
// not an error.
func List(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(baseDir, Dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read playbooks directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".md"))
	}

	sort.Strings(names)
	return names, nil
}

// LoadAll loads every playbook under baseDir.
func LoadAll(baseDir string) ([]Playbook, error) {
	names, err := List(baseDir)
	if err != nil {
		return nil, err
	}
	playbooks := make([]Playbook, 0, len(names))
	for _, name := range names {
		loaded, err := Load(baseDir, name)
		if err != nil {
			return nil, err
		}
		playbooks = append(playbooks, *loaded)
	}
	return playbooks, nil
}

// Path returns the file path for a playbook by name.
// It does not check whether the file exists.
func Path(baseDir, name string) (string, error) {
	name = internalstrings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("playbook name is required")
	}
	return filepath.Join(baseDir, Dir, name+".md"), nil
}

// Exists returns true if a playbook with the given name exists.
func Exists(baseDir, name string) (bool, error) {
	path, err := Path(baseDir, name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// DefaultTemplate is the template content for a new playbook file.
const DefaultTemplate = `# %s

Describe the guidance for the assistant here.

## Guidelines

- Guideline 1
- Guideline 2
`

// Create creates a new playbook file with a template. Returns the file
// path, or an error if the playbook already exists.
func Create(baseDir, name string) (string, error) {
	name = internalstrings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("playbook name is required")
	}

	path, err := Path(baseDir, name)
	if err != nil {
		return "", err
	}

	exists, err := Exists(baseDir, name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("playbook already exists: %s", name)
	}

	if err := os.MkdirAll(filepath.Join(baseDir, Dir), 0o755); err != nil {
		return "", fmt.Errorf("create playbooks directory: %w", err)
	}

	title := strings.ReplaceAll(name, "-", " ")
	title = strings.ReplaceAll(title, "_", " ")
	content := fmt.Sprintf(DefaultTemplate, title)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write playbook file: %w", err)
	}

	return path, nil
}

// parsePlaybook parses a playbook document, extracting frontmatter and body.
func parsePlaybook(name string, data []byte) (*Playbook, error) {
	content := string(data)

	loaded := &Playbook{Name: name}

	if !strings.HasPrefix(content, "---") {
		loaded.Instructions = internalstrings.TrimSpace(content)
		return loaded, nil
	}

	rest := content[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		// No closing ---, treat entire content as instructions
		loaded.Instructions = internalstrings.TrimSpace(content)
		return loaded, nil
	}

	loaded.Model = parseFrontmatter(rest[:endIdx])

	bodyStart := endIdx + 4 // Skip "\n---"
	if bodyStart < len(rest) {
		body := rest[bodyStart:]
		if strings.HasPrefix(body, "\n") {
			body = body[1:]
		}
		loaded.Instructions = internalstrings.TrimSpace(body)
	}

	return loaded, nil
}

// parseFrontmatter extracts the model override from simple key-value
// frontmatter. Expected format:
//
//	model: <model>
func parseFrontmatter(data string) (model string) {
	for _, line := range strings.Split(data, "\n") {
		trimmed := internalstrings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "model:") {
			model = internalstrings.TrimSpace(strings.TrimPrefix(trimmed, "model:"))
		}
	}
	return model
}
