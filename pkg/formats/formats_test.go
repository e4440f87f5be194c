package formats_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psdi-data/depositor/pkg/formats"
)

func TestInfer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want formats.Format
	}{
		{"record.json", formats.JSON},
		{"record.JSON", formats.JSON},
		{"record.yaml", formats.YAML},
		{"record.yml", formats.YAML},
		{"nested/dir/record.Yml", formats.YAML},
	}
	for _, tc := range cases {
		got, err := formats.Infer(tc.path)
		require.NoError(t, err, tc.path)
		require.Equal(t, tc.want, got, tc.path)
	}

	_, err := formats.Infer("record.toml")
	require.ErrorIs(t, err, formats.ErrUnknownFormat)

	_, err = formats.Infer("record")
	require.ErrorIs(t, err, formats.ErrUnknownFormat)

	_, ok := formats.TryInfer("record.xml")
	require.False(t, ok)
}

func TestKnown(t *testing.T) {
	t.Parallel()

	require.True(t, formats.Known(formats.JSON))
	require.True(t, formats.Known(formats.YAML))
	require.False(t, formats.Known(formats.Format("toml")))
}

func TestDumpLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"metadata": map[string]any{
			"title":    "Bulk silicon model",
			"subjects": []any{},
			"creators": []any{
				map[string]any{"person_or_org": map[string]any{"name": "Jane Doe"}},
			},
		},
		"access": map[string]any{"files": "public", "record": "public"},
	}

	for _, format := range []formats.Format{formats.JSON, formats.YAML} {
		var buf bytes.Buffer
		require.NoError(t, formats.Dump(format, doc, &buf))

		reloaded, err := formats.LoadString(format, buf.String())
		require.NoError(t, err)
		require.Equal(t, doc, reloaded, format)
	}
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metadata:\n  title: Water box\n"), 0o644))

	doc, err := formats.Load(formats.YAML, path)
	require.NoError(t, err)
	require.Equal(t,
		map[string]any{"metadata": map[string]any{"title": "Water box"}},
		doc)

	_, err = formats.Load(formats.YAML, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_ParseFailureNamesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := formats.Load(formats.JSON, path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
}

func TestDump_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := formats.Dump(formats.Format("toml"), map[string]any{}, &buf)
	require.ErrorIs(t, err, formats.ErrUnknownFormat)

	_, err = formats.LoadString(formats.Format("toml"), "{}")
	require.ErrorIs(t, err, formats.ErrUnknownFormat)
}
