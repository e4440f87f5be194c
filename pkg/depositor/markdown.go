package depositor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/psdi-data/depositor/pkg/metadata"
)

// renderDescription converts metadata.description from Markdown to HTML in
// place. Invenio stores descriptions as HTML, so Markdown-authored documents
// go through this before upload. Documents without a description pass
// through untouched.
func renderDescription(doc metadata.Document) error {
	md, ok := doc["metadata"].(map[string]any)
	if !ok {
		return nil
	}
	description, ok := md["description"].(string)
	if !ok || strings.TrimSpace(description) == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(description), &buf); err != nil {
		return fmt.Errorf("rendering description: %w", err)
	}
	md["description"] = strings.TrimRight(buf.String(), "\n")
	return nil
}
