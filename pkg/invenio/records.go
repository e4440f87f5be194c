package invenio

import (
	"context"
	"fmt"
	"net/http"
)

// Records is the handle over all records in a repository: the entry point
// for creating drafts and addressing existing records.
type Records struct {
	parent *Repository
}

func (rs *Records) BaseURL() string    { return rs.parent.BaseURL() }
func (rs *Records) Credential() string { return rs.parent.Credential() }
func (rs *Records) root() *Repository  { return rs.parent }

// APIURL returns the collection URL for this dialect.
func (rs *Records) APIURL() string {
	if rs.root().dialect == DialectZenodoDeposition {
		return rs.BaseURL() + "/deposit/depositions"
	}
	return rs.BaseURL() + "/records"
}

// Record returns a handle for a published record. No I/O is performed.
func (rs *Records) Record(recID string) *Record {
	return &Record{parent: rs, recID: recID}
}

// Create creates a new empty draft and returns its handle, wrapping the
// server-assigned id.
func (rs *Records) Create(ctx context.Context) (*Draft, error) {
	doc, err := doJSON(ctx, rs, http.MethodPost, rs.APIURL(), Document{}, "creating record")
	if err != nil {
		return nil, err
	}
	id := stringField(doc, "id")
	if id == "" {
		return nil, fmt.Errorf("creating record: response carries no id")
	}
	return &Draft{parent: rs, recID: id}, nil
}

// Draft fetches an existing draft and returns its handle.
func (rs *Records) Draft(ctx context.Context, recID string) (*Draft, error) {
	draft := &Draft{parent: rs, recID: recID}
	doc, err := draft.Get(ctx)
	if err != nil {
		return nil, err
	}
	if id := stringField(doc, "id"); id != "" {
		draft.recID = id
	}
	return draft, nil
}

// Get fetches a record by id without constructing a handle.
func (rs *Records) Get(ctx context.Context, recID string) (Document, error) {
	return doObject(ctx, rs, request{
		method: http.MethodGet,
		url:    fmt.Sprintf("%s/%s", rs.APIURL(), recID),
		op:     fmt.Sprintf("getting record %s", recID),
	})
}

// List returns information about all records in the repository. The modern
// dialect answers with a hits object; the legacy dialect with a bare array.
func (rs *Records) List(ctx context.Context) (any, error) {
	return do(ctx, rs, request{
		method: http.MethodGet,
		url:    rs.APIURL(),
		op:     "listing records",
	})
}
