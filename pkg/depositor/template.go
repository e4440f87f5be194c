package depositor

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/jlrickert/go-std/mylog"

	"github.com/psdi-data/depositor/pkg/formats"
	"github.com/psdi-data/depositor/pkg/metadata"
)

//go:embed example.yaml
var exampleDocument string

// TemplateOptions selects where and how Template writes the example document.
type TemplateOptions struct {
	// Path is the destination file.
	Path string

	// Format forces the output format; empty infers from the extension.
	Format formats.Format
}

// Template writes a complete example metadata document to opts.Path so users
// have a valid starting point to edit. The example is validated before
// writing, so the output always carries the schema defaults.
func (d *Depositor) Template(ctx context.Context, opts TemplateOptions) error {
	lg := mylog.LoggerFromContext(ctx)
	if opts.Path == "" {
		return fmt.Errorf("destination path is required")
	}

	format := opts.Format
	if format == "" {
		inferred, err := formats.Infer(opts.Path)
		if err != nil {
			return err
		}
		format = inferred
	}

	doc, err := metadata.RawText(exampleDocument, formats.YAML).Validate(nil)
	if err != nil {
		return fmt.Errorf("example document is invalid: %w", err)
	}

	out, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", opts.Path, err)
	}
	if err := formats.Dump(format, doc, out); err != nil {
		_ = out.Close()
		return fmt.Errorf("unable to write example document: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	lg.Info("example document written", "path", opts.Path, "format", string(format))
	return nil
}
