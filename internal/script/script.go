// Package script drives the bridge from YAML call scripts. A script plays
// the part of the foreign caller: it creates handles, names them, hands them
// across and raises whatever events come back.
//
// Each step is a single-key map, the key naming the call:
//
//	steps:
//	  - node-new: { as: ok, role: button, actions: [click], label: OK }
//	  - update-new: { as: first, focus: 1 }
//	  - update-add: { update: first, id: 1, node: ok }
//	  - update-set-tree: { update: first, root: 1 }
//	  - adapter-new: { as: win, platform: macos, native: 4096, initial: first }
//	  - adapter-activate: { adapter: win }
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one call: the action name mapped to its parameters.
type Step map[string]map[string]interface{}

// Script is a parsed call script.
type Script struct {
	// Platform is the default for adapter-new steps that do not name one.
	Platform    string `yaml:"platform,omitempty"`
	StopOnError *bool  `yaml:"stop-on-error,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// stopOnError defaults to true.
func (s *Script) stopOnError() bool {
	return s.StopOnError == nil || *s.StopOnError
}

// Parse reads a script. A bare list of steps is accepted as well as the
// full mapping form.
func Parse(data []byte) (*Script, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML script: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("no steps provided — expected a YAML list of calls")
	}

	var s Script
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&s.Steps); err != nil {
			return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML script: %w", err)
		}
	default:
		return nil, fmt.Errorf("script must be a list of steps or a mapping with steps")
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("no steps provided — expected a YAML list of calls")
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}
