package utils

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExportMetadata is the frontmatter header written on every exported document
type ExportMetadata struct {
	Title  string `yaml:"title"`
	Slug   string `yaml:"slug"`
	Status string `yaml:"status"`
}

// RenderFrontmatter prepends a YAML frontmatter header to markdown content.
// Output format:
//
//	---
//	title: Getting Started
//	slug: getting-started
//	status: published
//	---
//	# Markdown content here
func RenderFrontmatter(meta ExportMetadata, content string) ([]byte, error) {
	header, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(content)
	return buf.Bytes(), nil
}
