package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// Template is a parsed email template: YAML frontmatter plus a markdown body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits content into frontmatter metadata and body.
// Content without a leading "---" is all body.
func ParseTemplate(content []byte) (*Template, error) {
	if !bytes.HasPrefix(content, delimiter) {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	meta := map[string]any{}
	if front := bytes.TrimSpace(rest[:end]); len(front) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFrontmatter, err)
		}
	}

	body := rest[end+len(delimiter):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	return &Template{Metadata: meta, Body: string(body)}, nil
}
