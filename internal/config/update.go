package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal encodes cfg as YAML. Durations are written in their string form
// ("250ms") so the file stays hand-editable.
func Marshal(cfg *Config) ([]byte, error) {
	doc := map[string]interface{}{
		"version":       cfg.Version,
		"tick_interval": cfg.TickInterval.String(),
		"page_size":     cfg.PageSize,
		"log_file":      cfg.LogFile,
		"no_color":      cfg.NoColor,
		"feed": map[string]interface{}{
			"mode":         cfg.Feed.Mode,
			"scenario":     cfg.Feed.Scenario,
			"loop":         cfg.Feed.Loop,
			"seed":         cfg.Feed.Seed,
			"interval":     cfg.Feed.Interval.String(),
			"participants": cfg.Feed.Participants,
		},
		"retention": map[string]interface{}{
			"max_age":   cfg.Retention.MaxAge.String(),
			"max_count": cfg.Retention.MaxCount,
			"interval":  cfg.Retention.Interval.String(),
		},
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()
	return []byte(buf.String()), nil
}

// Save writes cfg to path as a fresh YAML document.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetValues updates dotted keys (like "feed.seed") in an existing config
// file. It preserves the existing YAML structure and comments, creating
// missing mappings along the way. Values are written as plain scalars.
func SetValues(configPath string, values map[string]string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(root.Content) == 0 {
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	if root.Kind != yaml.DocumentNode {
		return fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	for key, value := range values {
		if err := setValue(docNode, strings.Split(key, "."), value); err != nil {
			return fmt.Errorf("key '%s': %w", key, err)
		}
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func setValue(node *yaml.Node, path []string, value string) error {
	key := path[0]
	existing := findMapValue(node, key)

	if len(path) == 1 {
		if existing == nil {
			node.Content = append(node.Content, scalar(key), scalar(value))
			return nil
		}
		if existing.Kind != yaml.ScalarNode {
			return fmt.Errorf("'%s' is a section, not a value", key)
		}
		existing.Value = value
		existing.Tag = ""
		existing.Style = 0
		return nil
	}

	if existing == nil {
		existing = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		node.Content = append(node.Content, scalar(key), existing)
	}
	if existing.Kind != yaml.MappingNode {
		return fmt.Errorf("'%s' is a value, not a section", key)
	}
	return setValue(existing, path[1:], value)
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}
