package depositor

import (
	"context"
	"fmt"

	"github.com/jlrickert/go-std/mylog"

	"github.com/psdi-data/depositor/pkg/formats"
	"github.com/psdi-data/depositor/pkg/metadata"
)

// ValidateOptions selects the document and schema for Validate.
type ValidateOptions struct {
	// Path is the metadata document to check.
	Path string

	// Format forces the document format; empty infers from the extension.
	Format formats.Format

	// Schema is the registered schema name; empty means the base schema.
	Schema string
}

// Validate loads the document at opts.Path and checks it, returning the
// augmented copy with schema defaults filled in.
func (d *Depositor) Validate(ctx context.Context, opts ValidateOptions) (metadata.Document, error) {
	lg := mylog.LoggerFromContext(ctx)
	if opts.Path == "" {
		return nil, fmt.Errorf("metadata path is required")
	}

	schema, err := d.resolveSchema(opts.Schema)
	if err != nil {
		return nil, err
	}

	doc, err := metadata.FilePath(opts.Path, opts.Format).Validate(schema)
	if err != nil {
		lg.Debug("metadata validation failed", "path", opts.Path, "err", err)
		return nil, err
	}
	lg.Info("metadata validated", "path", opts.Path, "schema", schema.Name())
	return doc, nil
}

func (d *Depositor) resolveSchema(name string) (*metadata.Schema, error) {
	if name == "" {
		name = "base"
	}
	schema, err := metadata.Get(name)
	if err != nil {
		return nil, err
	}
	return schema, nil
}
