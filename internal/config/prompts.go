package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// toolsPlaceholder mirrors the token dialect templates substitute. Validated
// here so a broken override is rejected at load time, not mid-conversation.
const toolsPlaceholder = "{tools}"

// PromptPack maps dialect names to system-template overrides
// (~/.parlance/prompts.yaml). Dialects absent from the pack keep their
// built-in templates.
type PromptPack map[string]string

// PromptsPath returns the default prompt-pack path.
func PromptsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".parlance/prompts.yaml"
	}
	return filepath.Join(home, ".parlance", "prompts.yaml")
}

// LoadPrompts reads the prompt pack at path (PromptsPath() when empty).
// A missing file yields an empty pack. Every override must contain the
// {tools} placeholder; a template without it is a configuration defect.
func LoadPrompts(path string) (PromptPack, error) {
	if path == "" {
		path = PromptsPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return PromptPack{}, nil
		}
		return nil, fmt.Errorf("read prompts %s: %w", path, err)
	}

	var pack PromptPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse prompts %s: %w", path, err)
	}
	for dialect, tpl := range pack {
		if !strings.Contains(tpl, toolsPlaceholder) {
			return nil, fmt.Errorf("prompt override for %q is missing the %s placeholder", dialect, toolsPlaceholder)
		}
	}
	return pack, nil
}
