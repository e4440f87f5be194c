package invenio

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
)

// fileParent is the capability Files needs from its owning Draft or Record.
type fileParent interface {
	URLScoped
	APIURL() string
	ID() string
	BucketURL(ctx context.Context) (string, error)
}

// Files is the file-set handle for a draft or record. It is not a
// materialized collection; List queries the server for current membership.
type Files struct {
	parent fileParent
}

func (fs *Files) BaseURL() string    { return fs.parent.BaseURL() }
func (fs *Files) Credential() string { return fs.parent.Credential() }
func (fs *Files) root() *Repository  { return fs.parent.root() }

// APIURL returns the file-set resource URL.
func (fs *Files) APIURL() string {
	return fs.parent.APIURL() + "/files"
}

func (fs *Files) recID() string { return fs.parent.ID() }

// File returns the handle for one named file in this set. No I/O is
// performed.
func (fs *Files) File(name string) *File {
	return &File{parent: fs, name: name}
}

// List returns information about all files in the record.
func (fs *Files) List(ctx context.Context) (any, error) {
	return do(ctx, fs, request{
		method: http.MethodGet,
		url:    fs.APIURL(),
		op:     fmt.Sprintf("listing record %s files", fs.recID()),
	})
}

// Sort re-orders the files in the record.
func (fs *Files) Sort(ctx context.Context, sortedIDs any) (Document, error) {
	return doJSON(ctx, fs, http.MethodPut, fs.APIURL(), sortedIDs,
		fmt.Sprintf("sorting files for record %s", fs.recID()))
}

// Upload uploads a set of files, keyed by desired server-side name, mapped
// to local source paths. Entries are processed in name order; each entry
// runs the full per-dialect step sequence. Every intermediate response is
// collected into the returned list so callers can inspect partial progress;
// iteration stops at the first failure, which is propagated. A failure
// partway through an entry leaves an uncommitted file on the server; there
// is no automatic rollback.
func (fs *Files) Upload(ctx context.Context, files map[string]string) ([]any, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var responses []any
	for _, name := range names {
		steps, err := fs.uploadOne(ctx, name, files[name])
		responses = append(responses, steps...)
		if err != nil {
			return responses, err
		}
	}
	return responses, nil
}

func (fs *Files) uploadOne(ctx context.Context, name, path string) ([]any, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file for %s: %w", name, err)
	}
	defer src.Close()

	if fs.root().dialect == DialectZenodoDeposition {
		resp, err := fs.File(name).upload(ctx, src)
		if err != nil {
			return nil, err
		}
		return []any{resp}, nil
	}

	var steps []any

	started, err := doJSON(ctx, fs, http.MethodPost, fs.APIURL(),
		[]Document{{"key": name}},
		fmt.Sprintf("starting draft file upload for record %s", fs.recID()))
	if err != nil {
		return steps, err
	}
	steps = append(steps, started)

	written, err := do(ctx, fs, request{
		method:      http.MethodPut,
		url:         fmt.Sprintf("%s/%s/content", fs.APIURL(), name),
		body:        src,
		contentType: "application/octet-stream",
		op:          fmt.Sprintf("uploading file %s content to record %s", name, fs.recID()),
	})
	if err != nil {
		return steps, err
	}
	steps = append(steps, written)

	committed, err := do(ctx, fs, request{
		method:      http.MethodPost,
		url:         fmt.Sprintf("%s/%s/commit", fs.APIURL(), name),
		contentType: "application/json",
		op:          fmt.Sprintf("committing file %s to record %s", name, fs.recID()),
	})
	if err != nil {
		return steps, err
	}
	steps = append(steps, committed)

	return steps, nil
}

// Download lists the remote files and downloads each into dest. The
// destination must be a directory (created if absent); an existing regular
// file at dest is an explicit precondition failure, distinct from any HTTP
// error.
func (fs *Files) Download(ctx context.Context, dest string) error {
	if err := ensureDir(dest); err != nil {
		return err
	}

	listing, err := fs.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range fileNames(listing) {
		if err := fs.File(name).Download(ctx, dest); err != nil {
			return err
		}
	}
	return nil
}

// fileNames extracts file names from a listing response. The modern dialect
// answers {"entries": [{"key": ...}]}; the legacy dialect a bare array of
// {"filename": ...} objects.
func fileNames(listing any) []string {
	var names []string

	appendEntry := func(entry any) {
		doc, ok := entry.(Document)
		if !ok {
			return
		}
		if key := stringField(doc, "key"); key != "" {
			names = append(names, key)
			return
		}
		if filename := stringField(doc, "filename"); filename != "" {
			names = append(names, filename)
		}
	}

	switch v := listing.(type) {
	case Document:
		entries, _ := v["entries"].([]any)
		for _, entry := range entries {
			appendEntry(entry)
		}
	case []any:
		for _, entry := range v {
			appendEntry(entry)
		}
	}
	return names
}

func ensureDir(dest string) error {
	info, err := os.Stat(dest)
	switch {
	case err == nil && !info.IsDir():
		return &DestinationError{Path: dest}
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return os.MkdirAll(dest, 0o755)
	default:
		return err
	}
}
