// Package formats maps format tags to document load/dump functions and
// infers tags from file extensions.
package formats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format tags a supported serialization format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnknownFormat indicates a format tag or file extension this registry
// does not handle.
var ErrUnknownFormat = errors.New("formats: unrecognized format")

type entry struct {
	dump func(doc any, w io.Writer) error
	load func(r io.Reader) (map[string]any, error)
}

var registry = map[Format]entry{
	JSON: {dump: dumpJSON, load: loadJSON},
	YAML: {dump: dumpYAML, load: loadYAML},
}

// Known reports whether f is a registered format tag.
func Known(f Format) bool {
	_, ok := registry[f]
	return ok
}

// Infer maps a file path to a format by extension: .json, .yaml, .yml.
// Anything else is an ErrUnknownFormat failure.
func Infer(path string) (Format, error) {
	if f, ok := TryInfer(path); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format from %q", ErrUnknownFormat, path)
}

// TryInfer is Infer in return-false mode for callers that have a fallback.
func TryInfer(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	default:
		return "", false
	}
}

// Dump writes doc to w in format f.
func Dump(f Format, doc any, w io.Writer) error {
	e, ok := registry[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return e.dump(doc, w)
}

// Load reads and parses the document at path in format f.
func Load(f Format, path string) (map[string]any, error) {
	e, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	doc, err := e.load(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// LoadString parses a document held in a string in format f.
func LoadString(f Format, data string) (map[string]any, error) {
	e, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return e.load(strings.NewReader(data))
}

func dumpJSON(doc any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func loadJSON(r io.Reader) (map[string]any, error) {
	var doc map[string]any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func dumpYAML(doc any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func loadYAML(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
