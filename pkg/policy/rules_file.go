package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk YAML shape for policy rules.
//
//	allow:
//	  - "*.jpg"
//	  - "*.pdf"
//	deny:
//	  - "*.exe"
type RulesFile struct {
	Allow []string `yaml:"allow"`
	Deny  []string `yaml:"deny"`
}

// LoadRules reads and compiles a YAML rules file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return New(file.Allow, file.Deny)
}
