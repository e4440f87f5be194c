package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/psdi-data/depositor/pkg/invenio"
)

// hitEntries extracts the row objects from a listing response. Modern
// repositories answer {"hits": {"hits": [...]}}; the legacy deposition API
// answers a bare array.
func hitEntries(listing any) []invenio.Document {
	var raw []any
	switch v := listing.(type) {
	case map[string]any:
		hits, _ := v["hits"].(map[string]any)
		raw, _ = hits["hits"].([]any)
	case []any:
		raw = v
	}

	entries := make([]invenio.Document, 0, len(raw))
	for _, item := range raw {
		if doc, ok := item.(map[string]any); ok {
			entries = append(entries, doc)
		}
	}
	return entries
}

// displayString renders a response field that is either a plain string or an
// i18n mapping like {"en": "..."}.
func displayString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case map[string]any:
		if en, ok := s["en"].(string); ok {
			return en
		}
		for _, value := range s {
			if text, ok := value.(string); ok {
				return text
			}
		}
	}
	return ""
}

func entryField(doc invenio.Document, keys ...string) string {
	for _, key := range keys {
		if text := displayString(doc[key]); text != "" {
			return text
		}
	}
	return ""
}

func entryTitle(doc invenio.Document) string {
	if md, ok := doc["metadata"].(map[string]any); ok {
		if title := displayString(md["title"]); title != "" {
			return title
		}
	}
	return entryField(doc, "title")
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t
}

func renderRecordsTable(w io.Writer, listing any) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Title", "Updated"})
	for _, doc := range hitEntries(listing) {
		t.AppendRow(table.Row{
			entryField(doc, "id"),
			entryTitle(doc),
			entryField(doc, "updated", "modified"),
		})
	}
	t.Render()
}

func renderLicensesTable(w io.Writer, listing any) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Title"})
	for _, doc := range hitEntries(listing) {
		t.AppendRow(table.Row{
			entryField(doc, "id"),
			entryTitle(doc),
		})
	}
	t.Render()
}
