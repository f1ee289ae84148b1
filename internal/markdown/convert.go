package markdown

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"gopkg.in/yaml.v3"
)

// Convert renders a storage-format HTML body to Markdown and prepends
// the metadata as a YAML frontmatter block:
//
//	---
//	<yaml, no trailing blank line>
//	---
//
//	<body>
//
// YAML serialization quotes values as needed, so no title or date can
// break the frontmatter delimiters.
func Convert(html string, meta Metadata) (string, error) {
	body := ""
	if strings.TrimSpace(html) != "" {
		converted, err := htmltomarkdown.ConvertString(html)
		if err != nil {
			return "", fmt.Errorf("converting body: %w", err)
		}
		body = converted
	}

	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	front := strings.TrimRight(string(raw), "\n")

	return "---\n" + front + "\n---\n\n" + body, nil
}
