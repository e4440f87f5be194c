package depositor

import (
	"context"
	"fmt"
	"sort"

	"github.com/jlrickert/go-std/mylog"

	"github.com/psdi-data/depositor/pkg/formats"
)

// UploadOptions describes one full deposit: the metadata document, the files
// to attach, and the destination repository.
type UploadOptions struct {
	RepositoryOptions

	// MetadataPath is the metadata document to deposit.
	MetadataPath string

	// Format forces the document format; empty infers from the extension.
	Format formats.Format

	// Schema is the registered schema name; empty means the base schema.
	Schema string

	// Files are glob patterns naming the data files to attach.
	Files []string

	// Community is an optional community slug the new record is submitted to
	// for review.
	Community string

	// RenderDescription converts a Markdown metadata.description to HTML
	// before upload.
	RenderDescription bool
}

// UploadResult reports what a completed deposit produced.
type UploadResult struct {
	// RecordID is the server-assigned id of the new draft.
	RecordID string

	// Uploaded lists the attached file names in upload order.
	Uploaded []string

	// Community is the slug the draft was bound to, when one was requested.
	Community string

	// Submitted reports whether the draft was submitted for community review.
	Submitted bool
}

// Upload runs the full deposit pipeline: validate the metadata document,
// create a draft, fill in its metadata, attach the data files, and, when a
// community is named, bind the draft and submit it for review. The draft is
// left unpublished; moderation or an explicit publish happens elsewhere.
//
// A failure partway through leaves the draft on the server in whatever state
// it reached. There is no rollback.
func (d *Depositor) Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error) {
	lg := mylog.LoggerFromContext(ctx)

	repo, err := d.repository(opts.RepositoryOptions)
	if err != nil {
		return nil, err
	}
	if opts.MetadataPath == "" {
		return nil, fmt.Errorf("metadata path is required")
	}

	doc, err := d.Validate(ctx, ValidateOptions{
		Path:   opts.MetadataPath,
		Format: opts.Format,
		Schema: opts.Schema,
	})
	if err != nil {
		return nil, err
	}
	if opts.RenderDescription {
		if err := renderDescription(doc); err != nil {
			return nil, err
		}
	}

	files, err := CollectFiles(opts.Files)
	if err != nil {
		return nil, err
	}

	draft, err := repo.Records().Create(ctx)
	if err != nil {
		return nil, err
	}
	lg.Info("draft created", "record", draft.ID(), "dialect", repo.Dialect().String())

	result := &UploadResult{RecordID: draft.ID()}

	if _, err := draft.Update(ctx, doc); err != nil {
		return result, err
	}

	if len(files) > 0 {
		if _, err := draft.Files().Upload(ctx, files); err != nil {
			return result, err
		}
		for name := range files {
			result.Uploaded = append(result.Uploaded, name)
		}
		sort.Strings(result.Uploaded)
		lg.Info("files uploaded", "record", draft.ID(), "count", len(files))
	}

	if opts.Community != "" {
		if _, err := draft.Bind(ctx, opts.Community); err != nil {
			return result, err
		}
		result.Community = opts.Community
		if _, err := draft.SubmitReview(ctx); err != nil {
			return result, err
		}
		result.Submitted = true
		lg.Info("draft submitted for review", "record", draft.ID(), "community", opts.Community)
	}

	return result, nil
}
