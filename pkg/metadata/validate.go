package metadata

import (
	"fmt"

	"github.com/psdi-data/depositor/pkg/formats"
)

type sourceKind int

const (
	sourceInline sourceKind = iota
	sourceRawText
	sourceFilePath
)

// Source is the tagged union of places a metadata document can come from:
// an already decoded mapping, raw serialized text, or a file path. Every
// variant resolves through the same load-then-validate pipeline.
type Source struct {
	kind   sourceKind
	doc    Document
	raw    string
	path   string
	format formats.Format
}

// Inline wraps an already decoded document.
func Inline(doc Document) Source {
	return Source{kind: sourceInline, doc: doc}
}

// RawText wraps serialized document text in the given format.
func RawText(data string, format formats.Format) Source {
	return Source{kind: sourceRawText, raw: data, format: format}
}

// FilePath points at a document on disk. An empty format is inferred from
// the file extension at load time.
func FilePath(path string, format formats.Format) Source {
	return Source{kind: sourceFilePath, path: path, format: format}
}

// Load resolves the source to a decoded document without validating it.
func (s Source) Load() (Document, error) {
	switch s.kind {
	case sourceInline:
		return s.doc, nil
	case sourceRawText:
		return formats.LoadString(s.format, s.raw)
	case sourceFilePath:
		format := s.format
		if format == "" {
			inferred, err := formats.Infer(s.path)
			if err != nil {
				return nil, err
			}
			format = inferred
		}
		return formats.Load(format, s.path)
	default:
		return nil, fmt.Errorf("metadata: unhandled source kind %d", s.kind)
	}
}

// Validate resolves the source and checks it against schema (the base
// schema when nil), returning the augmented document.
func (s Source) Validate(schema *Schema) (Document, error) {
	if schema == nil {
		schema = Base
	}
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return schema.Validate(doc)
}
