package invenio

import (
	"context"
	"fmt"
	"net/http"
)

// Record is a handle for a published record. Published records are largely
// immutable; Edit derives a new draft from one.
type Record struct {
	parent *Records
	recID  string

	bucketURL string
}

func (r *Record) BaseURL() string    { return r.parent.BaseURL() }
func (r *Record) Credential() string { return r.parent.Credential() }
func (r *Record) root() *Repository  { return r.parent.root() }

// ID returns the record id.
func (r *Record) ID() string { return r.recID }

// APIURL returns the record resource URL.
func (r *Record) APIURL() string {
	return fmt.Sprintf("%s/%s", r.parent.APIURL(), r.recID)
}

// Files returns the file-set handle for this record.
func (r *Record) Files() *Files {
	return &Files{parent: r}
}

// BucketURL returns the direct-upload bucket endpoint, fetched lazily via
// Get and cached for the handle's lifetime.
func (r *Record) BucketURL(ctx context.Context) (string, error) {
	if r.bucketURL != "" {
		return r.bucketURL, nil
	}
	if _, err := r.Get(ctx); err != nil {
		return "", err
	}
	if r.bucketURL == "" {
		return "", fmt.Errorf("record %s carries no bucket link", r.recID)
	}
	return r.bucketURL, nil
}

// Get fetches the record's current state.
func (r *Record) Get(ctx context.Context) (Document, error) {
	doc, err := doObject(ctx, r, request{
		method: http.MethodGet,
		url:    r.APIURL(),
		op:     fmt.Sprintf("getting record %s", r.recID),
	})
	if err != nil {
		return nil, err
	}
	if bucket := linkField(doc, "bucket"); bucket != "" {
		r.bucketURL = bucket
	}
	return doc, nil
}

// Update replaces the record's metadata document.
func (r *Record) Update(ctx context.Context, data any) (Document, error) {
	return doJSON(ctx, r, http.MethodPut, r.APIURL(), data,
		fmt.Sprintf("updating record %s", r.recID))
}

// Delete removes the record.
func (r *Record) Delete(ctx context.Context) (Document, error) {
	return doObject(ctx, r, request{
		method: http.MethodDelete,
		url:    r.APIURL(),
		op:     fmt.Sprintf("deleting record %s", r.recID),
	})
}

// Publish publishes the record.
func (r *Record) Publish(ctx context.Context) (Document, error) {
	return doObject(ctx, r, request{
		method: http.MethodPost,
		url:    r.APIURL() + "/actions/publish",
		op:     fmt.Sprintf("publishing record %s", r.recID),
	})
}

// Edit creates a draft from this published record and returns its handle.
func (r *Record) Edit(ctx context.Context) (*Draft, error) {
	target := fmt.Sprintf("%s/records/%s/draft", r.BaseURL(), r.recID)
	if r.root().dialect == DialectZenodoDeposition {
		target = r.APIURL() + "/actions/edit"
	}
	doc, err := doObject(ctx, r, request{
		method: http.MethodPost,
		url:    target,
		op:     fmt.Sprintf("editing record %s", r.recID),
	})
	if err != nil {
		return nil, err
	}
	id := stringField(doc, "id")
	if id == "" {
		id = r.recID
	}
	return &Draft{parent: r.parent, recID: id}, nil
}

// Discard discards pending changes on the record.
func (r *Record) Discard(ctx context.Context) (Document, error) {
	return doObject(ctx, r, request{
		method: http.MethodPost,
		url:    r.APIURL() + "/actions/discard",
		op:     fmt.Sprintf("discarding record %s", r.recID),
	})
}

// NewVersion starts a new version of the record.
func (r *Record) NewVersion(ctx context.Context) (Document, error) {
	return doObject(ctx, r, request{
		method: http.MethodPost,
		url:    r.APIURL() + "/actions/newversion",
		op:     fmt.Sprintf("setting new version for record %s", r.recID),
	})
}
