// Package docmodel defines the documentation types and typed path patterns
// shared by discovery, path mapping and the sync engine.
package docmodel

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocumentationType classifies a source document and decides where its
// generated counterpart is placed.
type DocumentationType string

const (
	TypeCommand      DocumentationType = "command"
	TypeService      DocumentationType = "service"
	TypeAssistant    DocumentationType = "assistant"
	TypeGuide        DocumentationType = "guide"
	TypeAbout        DocumentationType = "about"
	TypeContributing DocumentationType = "contributing"
	TypeArchitecture DocumentationType = "architecture"
)

var knownTypes = map[string]DocumentationType{
	"command":      TypeCommand,
	"service":      TypeService,
	"assistant":    TypeAssistant,
	"guide":        TypeGuide,
	"about":        TypeAbout,
	"contributing": TypeContributing,
	"architecture": TypeArchitecture,
}

// IsContainer reports whether documents of this type live as
// `<item>/docs.<ext>` inside a per-item directory.
func (t DocumentationType) IsContainer() bool {
	switch t {
	case TypeCommand, TypeService, TypeAssistant:
		return true
	default:
		return false
	}
}

// ParseType normalizes raw (case and surrounding whitespace insensitive) into
// a known DocumentationType.
func ParseType(raw string) (DocumentationType, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := knownTypes[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown documentation type %q (valid: %s)", raw, strings.Join(ValidTypeNames(), ", "))
}

// ValidTypeNames returns the sorted list of accepted type names.
func ValidTypeNames() []string {
	names := make([]string, 0, len(knownTypes))
	for k := range knownTypes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// UnmarshalYAML normalizes the type while decoding configuration files.
func (t *DocumentationType) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseType(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = parsed
	return nil
}

// PathPattern binds a glob (relative to the project root) to a documentation
// type and the output subdirectory managed for that type.
type PathPattern struct {
	Pattern      string            `yaml:"pattern"`
	Type         DocumentationType `yaml:"type"`
	OutputSubdir string            `yaml:"output_subdir"`
}

// DefaultPatterns returns the pattern table used when a configuration file
// does not declare source_patterns.
func DefaultPatterns() []PathPattern {
	return []PathPattern{
		{Pattern: "src/commands/*/docs.{md,mdx}", Type: TypeCommand, OutputSubdir: "reference/cli"},
		{Pattern: "src/services/*/docs.{md,mdx}", Type: TypeService, OutputSubdir: "reference/services"},
		{Pattern: "src/assistants/*/docs.{md,mdx}", Type: TypeAssistant, OutputSubdir: "reference/assistants"},
		{Pattern: "docs/guides/*.{md,mdx}", Type: TypeGuide, OutputSubdir: "guides"},
		{Pattern: "docs/about/*.{md,mdx}", Type: TypeAbout, OutputSubdir: "about"},
		{Pattern: "CONTRIBUTING.md", Type: TypeContributing, OutputSubdir: "contributing"},
		{Pattern: "docs/architecture/*.{md,mdx}", Type: TypeArchitecture, OutputSubdir: "architecture"},
	}
}

// ManagedSubdirs returns the distinct output subdirectories of patterns in
// first-seen order. These are the only directories cleanup may touch.
func ManagedSubdirs(patterns []PathPattern) []string {
	seen := make(map[string]struct{}, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if _, ok := seen[p.OutputSubdir]; ok {
			continue
		}
		seen[p.OutputSubdir] = struct{}{}
		out = append(out, p.OutputSubdir)
	}
	return out
}
