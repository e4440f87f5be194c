package metadata

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is a JSON-like metadata document.
type Document = map[string]any

// Validator checks the value at path and returns the possibly augmented
// value (defaults applied to nested objects). Validation never mutates its
// input; augmented structures are fresh copies.
type Validator interface {
	Validate(path string, value any) (any, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(path string, value any) (any, error)

func (f ValidatorFunc) Validate(path string, value any) (any, error) {
	return f(path, value)
}

// Schema is a named root validator over whole documents.
type Schema struct {
	name string
	root Validator
}

// NewSchema builds a named schema from a root validator.
func NewSchema(name string, root Validator) *Schema {
	return &Schema{name: name, root: root}
}

// Name returns the schema's registry name.
func (s *Schema) Name() string { return s.name }

// Validate checks doc and returns an augmented copy with declared defaults
// filled in. The augmented document is what callers should upload, not the
// raw input. Validating an already augmented document changes nothing
// further.
func (s *Schema) Validate(doc Document) (Document, error) {
	out, err := s.root.Validate("", doc)
	if err != nil {
		return nil, err
	}
	augmented, ok := out.(Document)
	if !ok {
		return nil, fail("", "expected a mapping document")
	}
	return augmented, nil
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// Field declares one object member. Keys usually holds a single name;
// multiple names mean at least one of them must be present (each validated
// by the same value validator).
type Field struct {
	Keys       []string
	Required   bool
	Value      Validator
	Default    any
	HasDefault bool
}

// Required declares a mandatory field.
func Required(key string, value Validator) Field {
	return Field{Keys: []string{key}, Required: true, Value: value}
}

// RequiredOneOf declares a set of keys of which at least one must be
// present.
func RequiredOneOf(keys []string, value Validator) Field {
	return Field{Keys: keys, Required: true, Value: value}
}

// Optional declares a field that may be absent, with no default.
func Optional(key string, value Validator) Field {
	return Field{Keys: []string{key}, Value: value}
}

// OptionalDefault declares a field that takes def when absent.
func OptionalDefault(key string, def any, value Validator) Field {
	return Field{Keys: []string{key}, Value: value, Default: def, HasDefault: true}
}

type objectValidator struct {
	fields     []Field
	allowExtra bool
}

// Object builds a mapping validator that rejects undeclared keys.
func Object(fields ...Field) Validator {
	return &objectValidator{fields: fields}
}

// OpenObject builds a mapping validator that copies undeclared keys through
// untouched.
func OpenObject(fields ...Field) Validator {
	return &objectValidator{fields: fields, allowExtra: true}
}

func (o *objectValidator) Validate(path string, value any) (any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fail(path, "expected a mapping, got %s", typeName(value))
	}

	out := make(Document, len(m))
	declared := make(map[string]bool)

	for _, field := range o.fields {
		var present []string
		for _, key := range field.Keys {
			declared[key] = true
			if _, ok := m[key]; ok {
				present = append(present, key)
			}
		}

		if len(present) == 0 {
			switch {
			case field.Required:
				return nil, fail(joinPath(path, field.Keys[0]),
					"missing required field%s", alternatesSuffix(field.Keys))
			case field.HasDefault:
				out[field.Keys[0]] = deepCopy(field.Default)
			}
			continue
		}

		for _, key := range present {
			validated, err := field.Value.Validate(joinPath(path, key), m[key])
			if err != nil {
				return nil, err
			}
			out[key] = validated
		}
	}

	var extra []string
	for key := range m {
		if !declared[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		if !o.allowExtra {
			return nil, fail(joinPath(path, key), "unexpected field")
		}
		out[key] = deepCopy(m[key])
	}

	return out, nil
}

func alternatesSuffix(keys []string) string {
	if len(keys) < 2 {
		return ""
	}
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return " (one of " + strings.Join(quoted, " or ") + ")"
}

type listValidator struct {
	elem     Validator
	nonEmpty bool
}

// List builds a sequence validator.
func List(elem Validator) Validator {
	return &listValidator{elem: elem}
}

// NonEmptyList builds a sequence validator that rejects empty sequences.
func NonEmptyList(elem Validator) Validator {
	return &listValidator{elem: elem, nonEmpty: true}
}

func (l *listValidator) Validate(path string, value any) (any, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, fail(path, "expected a sequence, got %s", typeName(value))
	}
	if l.nonEmpty && len(seq) == 0 {
		return nil, fail(path, "sequence must not be empty")
	}
	out := make([]any, len(seq))
	for i, item := range seq {
		validated, err := l.elem.Validate(fmt.Sprintf("%s[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		out[i] = validated
	}
	return out, nil
}

// AnyOf builds a union validator: the first matching alternative wins. The
// describe string names the expected shape in failure messages.
func AnyOf(describe string, alts ...Validator) Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		for _, alt := range alts {
			if validated, err := alt.Validate(path, value); err == nil {
				return validated, nil
			}
		}
		return nil, fail(path, "expected %s", describe)
	})
}

// String accepts any string.
func String() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		if _, ok := value.(string); !ok {
			return nil, fail(path, "expected a string, got %s", typeName(value))
		}
		return value, nil
	})
}

// NonEmptyString accepts a string with at least one character.
func NonEmptyString() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(path, "expected a string, got %s", typeName(value))
		}
		if len(s) == 0 {
			return nil, fail(path, "string must not be empty")
		}
		return s, nil
	})
}

// NullableString accepts a string or an explicit null.
func NullableString() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		if value == nil {
			return nil, nil
		}
		if _, ok := value.(string); !ok {
			return nil, fail(path, "expected a string or null, got %s", typeName(value))
		}
		return value, nil
	})
}

// Bool accepts a boolean.
func Bool() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		if _, ok := value.(bool); !ok {
			return nil, fail(path, "expected a boolean, got %s", typeName(value))
		}
		return value, nil
	})
}

// Regex accepts a string containing a match for re. The describe string
// names the expected shape in failure messages.
func Regex(re *regexp.Regexp, describe string) Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(path, "expected a string, got %s", typeName(value))
		}
		if !re.MatchString(s) {
			return nil, fail(path, "%q is not %s", s, describe)
		}
		return s, nil
	})
}

// OneOf accepts exactly one of the given string values.
func OneOf(options ...string) Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		s, ok := value.(string)
		if ok {
			for _, opt := range options {
				if s == opt {
					return s, nil
				}
			}
		}
		quoted := make([]string, len(options))
		for i, opt := range options {
			quoted[i] = fmt.Sprintf("%q", opt)
		}
		return nil, fail(path, "expected one of %s", strings.Join(quoted, ", "))
	})
}

// FreeFormMap accepts any mapping without inspecting its members (the dsmd
// extension block).
func FreeFormMap() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, fail(path, "expected a mapping, got %s", typeName(value))
		}
		return deepCopy(m), nil
	})
}

// AbsoluteURL accepts a string parsing as an absolute URL (non-empty scheme
// and host).
func AbsoluteURL() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(path, "expected a string, got %s", typeName(value))
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fail(path, "%q is not an absolute URL", s)
		}
		return s, nil
	})
}

// UUIDString accepts a UUID-shaped string.
func UUIDString() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(path, "expected a string, got %s", typeName(value))
		}
		if _, err := uuid.Parse(s); err != nil {
			return nil, fail(path, "%q is not a UUID", s)
		}
		return s, nil
	})
}

// DateOrTimestamp accepts an ISO calendar date string, a numeric seconds
// timestamp, or a timestamp value a YAML decoder already resolved. The
// value is kept as given.
func DateOrTimestamp() Validator {
	return ValidatorFunc(func(path string, value any) (any, error) {
		switch v := value.(type) {
		case string:
			if _, err := time.Parse("2006-01-02", v); err != nil {
				return nil, fail(path, "%q is not an ISO calendar date", v)
			}
			return v, nil
		case int, int64, uint64, float64:
			return v, nil
		case time.Time:
			return v, nil
		default:
			return nil, fail(path, "expected a date or timestamp, got %s", typeName(value))
		}
	})
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, uint64, float64:
		return "a number"
	case map[string]any:
		return "a mapping"
	case []any:
		return "a sequence"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
