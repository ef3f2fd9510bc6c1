// Package rules loads the rules knowledge-base dataset. The dataset is a
// read-only input loaded once per run; this package only gives the rest of
// the tool an in-memory view of it.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Evidence holds the citation section of a rule. SourceURLs is loosely typed
// so malformed entries (numbers, nulls, nested objects) survive parsing and
// can be reported individually instead of failing the whole load.
type Evidence struct {
	SourceURLs []any `json:"source_urls" yaml:"source_urls"`
}

// Rule is a single rule record. Only the fields the link checker needs are
// mapped; the dataset carries much more.
type Rule struct {
	ID       string    `json:"id" yaml:"id"`
	Evidence *Evidence `json:"evidence" yaml:"evidence"`
}

// Ruleset is the top-level dataset document.
type Ruleset struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Load reads and parses the dataset at path. Files with a .yaml/.yml
// extension are parsed as YAML, everything else as JSON. A missing or
// unparsable dataset is an unrecoverable configuration error.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules dataset: %w", err)
	}

	var rs Ruleset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rs); err != nil {
			return nil, fmt.Errorf("failed to parse rules dataset %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &rs); err != nil {
			return nil, fmt.Errorf("failed to parse rules dataset %s: %w", path, err)
		}
	}

	return &rs, nil
}
