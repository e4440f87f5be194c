package invenio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// File is the handle for one named file within a record or draft's file
// set.
type File struct {
	parent *Files
	name   string
}

func (f *File) BaseURL() string    { return f.parent.BaseURL() }
func (f *File) Credential() string { return f.parent.Credential() }
func (f *File) root() *Repository  { return f.parent.root() }

// Name returns the server-side file name.
func (f *File) Name() string { return f.name }

// APIURL returns the file resource URL.
func (f *File) APIURL() string {
	return fmt.Sprintf("%s/%s", f.parent.APIURL(), f.name)
}

func (f *File) recID() string { return f.parent.recID() }

// Info returns the file's metadata (size, checksum, links).
func (f *File) Info(ctx context.Context) (Document, error) {
	return doObject(ctx, f, request{
		method: http.MethodGet,
		url:    f.APIURL(),
		op:     fmt.Sprintf("getting %s file info from record %s", f.name, f.recID()),
	})
}

// Replace swaps the file's registered name for that of src.
func (f *File) Replace(ctx context.Context, src string) (Document, error) {
	body := Document{"name": filepath.Base(src)}
	return doJSON(ctx, f, http.MethodPut, f.APIURL(), body,
		fmt.Sprintf("updating %s in record %s", f.name, f.recID()))
}

// Delete removes the file from the record.
func (f *File) Delete(ctx context.Context) (Document, error) {
	return doObject(ctx, f, request{
		method:      http.MethodDelete,
		url:         f.APIURL(),
		contentType: "application/json",
		op:          fmt.Sprintf("deleting file %s from record %s", f.name, f.recID()),
	})
}

// Upload uploads src directly to the record's bucket (single-step dialect).
func (f *File) Upload(ctx context.Context, src string) (any, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("reading source file for %s: %w", f.name, err)
	}
	defer in.Close()
	return f.upload(ctx, in)
}

func (f *File) upload(ctx context.Context, src io.Reader) (any, error) {
	bucket, err := f.parent.parent.BucketURL(ctx)
	if err != nil {
		return nil, err
	}
	return do(ctx, f, request{
		method:      http.MethodPut,
		url:         fmt.Sprintf("%s/%s", bucket, f.name),
		body:        src,
		contentType: "application/octet-stream",
		op:          fmt.Sprintf("uploading file %s to record %s", f.name, f.recID()),
	})
}

// Download fetches the file's content into the dest directory, named by the
// server-side key. Dest must be (or be creatable as) a directory; an
// existing regular file at dest fails before any byte is written.
func (f *File) Download(ctx context.Context, dest string) error {
	if err := ensureDir(dest); err != nil {
		return err
	}

	info, err := f.Info(ctx)
	if err != nil {
		return err
	}

	filename := stringField(info, "key")
	if filename == "" {
		filename = f.name
	}
	target := linkField(info, "self") + "/content"
	if f.root().dialect == DialectZenodoDeposition {
		target = linkField(info, "download")
	}

	op := fmt.Sprintf("downloading file %s from record %s", f.name, f.recID())
	resp, err := send(ctx, f, request{
		method: http.MethodGet,
		url:    target,
		op:     op,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &HTTPError{
			Op:            op,
			StatusCode:    resp.StatusCode,
			ServerMessage: serverMessage(body),
		}
	}

	out, err := os.Create(filepath.Join(dest, filename))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return out.Close()
}
