// Package registry provides the tool index and pipeline runner that wrap the
// analysis engine. A tool index names the operations a pipeline may invoke;
// a pipeline is a sequence of steps threading one JSON-style payload through
// registered tool functions. Index and pipeline files may carry comments and
// trailing commas (JSONC).
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Tool describes one registered operation.
type Tool struct {
	Name       string   `json:"name"`
	Summary    string   `json:"summary"`
	Entrypoint string   `json:"entrypoint"`
	Tags       []string `json:"tags,omitempty"`
}

// Index is a loaded tool registry.
type Index struct {
	Version string `json:"version"`
	Tools   []Tool `json:"tools"`
}

// LoadIndex reads a tool index from a JSON or JSONC file.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tool index: %w", err)
	}
	var idx Index
	if err := json.Unmarshal(jsonc.ToJSON(data), &idx); err != nil {
		return nil, fmt.Errorf("parsing tool index %s: %w", path, err)
	}
	seen := make(map[string]bool, len(idx.Tools))
	for _, tool := range idx.Tools {
		if tool.Name == "" {
			return nil, fmt.Errorf("tool index %s: tool with empty name", path)
		}
		if seen[tool.Name] {
			return nil, fmt.Errorf("tool index %s: duplicate tool %q", path, tool.Name)
		}
		seen[tool.Name] = true
	}
	return &idx, nil
}

// Lookup finds a tool by name.
func (ix *Index) Lookup(name string) (Tool, bool) {
	for _, tool := range ix.Tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}
