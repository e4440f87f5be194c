package metadata_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psdi-data/depositor/pkg/formats"
	"github.com/psdi-data/depositor/pkg/metadata"
)

func validDoc() metadata.Document {
	return metadata.Document{
		"custom_fields": map[string]any{
			"dsmd": []any{
				map[string]any{"technique": "dft", "code": "castep"},
			},
		},
		"metadata": map[string]any{
			"title":       "Bulk silicon model",
			"description": "A converged bulk silicon reference model.",
			"creators": []any{
				map[string]any{
					"person_or_org": map[string]any{
						"family_name": "Doe",
						"given_name":  "Jane",
						"type":        "personal",
					},
				},
			},
			"rights":        []any{map[string]any{"id": "cc-by-4.0"}},
			"resource_type": map[string]any{"id": "model"},
			"version":       "v1.0",
		},
	}
}

func TestValidate_AppliesDefaultsAndKeepsRequiredFields(t *testing.T) {
	t.Parallel()

	out, err := metadata.Validate(validDoc())
	require.NoError(t, err)

	require.Equal(t,
		map[string]any{"files": "public", "record": "public"},
		out["access"])

	md, ok := out["metadata"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, []any{}, md["subjects"])
	require.Equal(t, "Bulk silicon model", md["title"])
	require.Equal(t, "v1.0", md["version"])
}

func TestValidate_PartialAccessGetsFieldDefaults(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc["access"] = map[string]any{"record": "private"}

	out, err := metadata.Validate(doc)
	require.NoError(t, err)
	access, ok := out["access"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "public", access["files"])
	require.Equal(t, "private", access["record"])
}

func TestValidate_IsIdempotent(t *testing.T) {
	t.Parallel()

	once, err := metadata.Validate(validDoc())
	require.NoError(t, err)
	twice, err := metadata.Validate(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	_, err := metadata.Validate(doc)
	require.NoError(t, err)
	_, hasAccess := doc["access"]
	require.False(t, hasAccess, "defaults must land in the returned copy, not the input")
}

func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(doc metadata.Document)
		path   string
	}{
		{
			name: "missing_title",
			mutate: func(doc metadata.Document) {
				delete(doc["metadata"].(map[string]any), "title")
			},
			path: "metadata.title",
		},
		{
			name: "empty_description",
			mutate: func(doc metadata.Document) {
				doc["metadata"].(map[string]any)["description"] = ""
			},
			path: "metadata.description",
		},
		{
			name: "no_creators",
			mutate: func(doc metadata.Document) {
				doc["metadata"].(map[string]any)["creators"] = []any{}
			},
			path: "metadata.creators",
		},
		{
			name: "unknown_license",
			mutate: func(doc metadata.Document) {
				doc["metadata"].(map[string]any)["rights"] = []any{
					map[string]any{"id": "mit"},
				}
			},
			path: "metadata.rights[0].id",
		},
		{
			name: "bad_version",
			mutate: func(doc metadata.Document) {
				doc["metadata"].(map[string]any)["version"] = "1.0"
			},
			path: "metadata.version",
		},
		{
			name: "creator_type_not_personal",
			mutate: func(doc metadata.Document) {
				creator := doc["metadata"].(map[string]any)["creators"].([]any)[0].(map[string]any)
				creator["person_or_org"].(map[string]any)["type"] = "organisation"
			},
			path: "metadata.creators[0].person_or_org.type",
		},
		{
			name: "creator_without_any_name",
			mutate: func(doc metadata.Document) {
				creator := doc["metadata"].(map[string]any)["creators"].([]any)[0].(map[string]any)
				delete(creator["person_or_org"].(map[string]any), "family_name")
			},
			path: "metadata.creators[0].person_or_org.name",
		},
		{
			name: "missing_dsmd",
			mutate: func(doc metadata.Document) {
				doc["custom_fields"] = map[string]any{}
			},
			path: "custom_fields.dsmd",
		},
		{
			name: "embargo_without_reason",
			mutate: func(doc metadata.Document) {
				doc["access"] = map[string]any{
					"embargo": map[string]any{"active": true},
				}
			},
			path: "access.embargo.reason",
		},
		{
			name: "community_not_uuid",
			mutate: func(doc metadata.Document) {
				doc["community"] = "not-a-uuid"
			},
			path: "community",
		},
		{
			name: "unexpected_top_level_key",
			mutate: func(doc metadata.Document) {
				doc["extra"] = "value"
			},
			path: "extra",
		},
		{
			name: "bad_publication_date",
			mutate: func(doc metadata.Document) {
				doc["metadata"].(map[string]any)["publication_date"] = "yesterday"
			},
			path: "metadata.publication_date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(innerT *testing.T) {
			innerT.Parallel()

			doc := validDoc()
			tc.mutate(doc)
			_, err := metadata.Validate(doc)
			require.Error(innerT, err)
			require.True(innerT, metadata.IsValidationError(err))

			var verr *metadata.ValidationError
			require.ErrorAs(innerT, err, &verr)
			require.Equal(innerT, tc.path, verr.Path)
			require.Contains(innerT, err.Error(), tc.path)
		})
	}
}

func TestValidate_CreatorExtraKeysTolerated(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	creator := doc["metadata"].(map[string]any)["creators"].([]any)[0].(map[string]any)
	creator["department"] = "Chemistry"

	out, err := metadata.Validate(doc)
	require.NoError(t, err)
	augmented := out["metadata"].(map[string]any)["creators"].([]any)[0].(map[string]any)
	require.Equal(t, "Chemistry", augmented["department"])
}

func TestIdentifier_Union(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         map[string]any
		wantErr    bool
		wantScheme string
	}{
		{
			name:       "orcid_with_scheme",
			in:         map[string]any{"scheme": "orcid", "identifier": "0000-0002-1825-0097"},
			wantScheme: "orcid",
		},
		{
			name:    "orcid_digits_without_scheme",
			in:      map[string]any{"identifier": "0000-0002-1825-009"},
			wantErr: true,
		},
		{
			name:       "doi_url_scheme_defaulted",
			in:         map[string]any{"identifier": "https://doi.org/10.1000/182"},
			wantScheme: "doi",
		},
		{
			name:    "relative_url_rejected",
			in:      map[string]any{"identifier": "doi.org/10.1000/182"},
			wantErr: true,
		},
		{
			name:    "orcid_scheme_with_bad_digits",
			in:      map[string]any{"scheme": "orcid", "identifier": "0000-0002"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(innerT *testing.T) {
			innerT.Parallel()

			out, err := metadata.Identifier().Validate("identifiers[0]", tc.in)
			if tc.wantErr {
				require.Error(innerT, err)
				require.True(innerT, metadata.IsValidationError(err))
				return
			}
			require.NoError(innerT, err)
			augmented, ok := out.(map[string]any)
			require.True(innerT, ok)
			require.Equal(innerT, tc.wantScheme, augmented["scheme"])
			require.Equal(innerT, tc.in["identifier"], augmented["identifier"])
		})
	}
}

func TestValidate_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	validated, err := metadata.Validate(validDoc())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formats.Dump(formats.JSON, validated, &buf))

	reloaded, err := formats.LoadString(formats.JSON, buf.String())
	require.NoError(t, err)
	require.Equal(t, validated, reloaded)

	revalidated, err := metadata.Validate(reloaded)
	require.NoError(t, err)
	require.Equal(t, reloaded, revalidated)
}

func TestSource_Variants(t *testing.T) {
	t.Parallel()

	raw := `
custom_fields:
  dsmd:
    - technique: md
metadata:
  title: Water box
  description: Equilibrated water box.
  creators:
    - person_or_org:
        name: Jane Doe
        type: personal
  rights:
    - id: cc-by-4.0
  resource_type:
    id: model
  version: v2
`

	out, err := metadata.RawText(raw, formats.YAML).Validate(nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"files": "public", "record": "public"}, out["access"])

	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	fromFile, err := metadata.FilePath(path, "").Validate(nil)
	require.NoError(t, err)
	require.Equal(t, out, fromFile)

	inline, err := metadata.Inline(validDoc()).Validate(nil)
	require.NoError(t, err)
	require.Equal(t, []any{}, inline["metadata"].(map[string]any)["subjects"])
}

func TestSource_UnrecognizedExtension(t *testing.T) {
	t.Parallel()

	_, err := metadata.FilePath("record.toml", "").Validate(nil)
	require.ErrorIs(t, err, formats.ErrUnknownFormat)
}

func TestGet_SchemaRegistry(t *testing.T) {
	t.Parallel()

	base, err := metadata.Get("base")
	require.NoError(t, err)
	require.Equal(t, "base", base.Name())

	def, err := metadata.Get("default")
	require.NoError(t, err)
	require.Same(t, base, def)

	_, err = metadata.Get("nope")
	require.Error(t, err)
}
