package ast

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON AST document.
func ParseJSON(data []byte) (Node, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	return Decode(doc)
}

// ParseYAML decodes a YAML AST document.
func ParseYAML(data []byte) (Node, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}
	return Decode(doc)
}

// Parse decodes data using the format implied by name's extension.
// .yaml and .yml are read as YAML; everything else as JSON.
func Parse(name string, data []byte) (Node, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}
