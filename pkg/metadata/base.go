package metadata

import (
	"fmt"
	"regexp"
)

// orcidPattern matches the four-groups-of-four-digits ORCID form.
var orcidPattern = regexp.MustCompile(`(\d{4}-){3}\d{4}`)

// versionPattern matches version strings like "v2" or "v1.0.3".
var versionPattern = regexp.MustCompile(`^v\d+(\.\d+)*`)

// Identifier is the tagged union of accepted identifier shapes: an ORCID
// (explicit scheme) or a DOI given as an absolute URL, with the scheme
// defaulting to "doi" when absent.
func Identifier() Validator {
	return AnyOf("an ORCID or DOI identifier",
		Object(
			Required("scheme", OneOf("orcid")),
			Required("identifier", Regex(orcidPattern, "an ORCID identifier")),
		),
		Object(
			OptionalDefault("scheme", "doi", OneOf("doi")),
			Required("identifier", AbsoluteURL()),
		),
	)
}

// Creator validates one creator record. Unknown extra keys are tolerated at
// this level only.
func Creator() Validator {
	return OpenObject(
		Optional("affiliations", List(Object(
			Required("name", String()),
		))),
		Required("person_or_org", Object(
			RequiredOneOf([]string{"name", "family_name"}, NonEmptyString()),
			Optional("given_name", NonEmptyString()),
			Optional("identifiers", List(Identifier())),
			Required("type", OneOf("personal")),
		)),
	)
}

func metadataBlock() Validator {
	return Object(
		Required("title", NonEmptyString()),
		Required("description", NonEmptyString()),
		Required("creators", NonEmptyList(Creator())),
		Required("rights", List(Object(
			Required("id", OneOf("cc-by-4.0")),
		))),
		Required("resource_type", Object(
			Required("id", OneOf("model")),
		)),
		OptionalDefault("subjects", []any{}, List(Object(
			Required("subject", String()),
		))),
		Required("version", Regex(versionPattern, `a version string like "v1.0"`)),
		Optional("publisher", String()),
		Optional("publication_date", DateOrTimestamp()),
		Optional("identifiers", List(Identifier())),
	)
}

func accessBlock() Validator {
	return Object(
		Optional("embargo", Object(
			Required("active", Bool()),
			Required("reason", NullableString()),
		)),
		OptionalDefault("files", "public", OneOf("public", "private")),
		OptionalDefault("record", "public", OneOf("public", "private")),
		Optional("status", OneOf("open", "closed")),
	)
}

// Base is the schema every metadata document is validated against before
// upload: a required dsmd extension block and resource metadata, plus
// optional access, files, and community settings with documented defaults.
var Base = NewSchema("base", Object(
	OptionalDefault("access",
		Document{"files": "public", "record": "public"},
		accessBlock()),
	Optional("files", Object(
		Required("enabled", Bool()),
	)),
	Required("custom_fields", Object(
		Required("dsmd", List(FreeFormMap())),
	)),
	Required("metadata", metadataBlock()),
	Optional("community", UUIDString()),
))

var schemas = map[string]*Schema{
	"base":    Base,
	"default": Base,
}

// Get looks up a registered schema by name.
func Get(name string) (*Schema, error) {
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("metadata: unknown schema %q", name)
	}
	return s, nil
}

// Validate checks doc against the base schema. See Schema.Validate.
func Validate(doc Document) (Document, error) {
	return Base.Validate(doc)
}
