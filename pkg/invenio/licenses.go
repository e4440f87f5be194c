package invenio

import (
	"context"
	"fmt"
	"net/http"
)

// Licenses is the read-only handle over the repository-wide license
// catalog.
type Licenses struct {
	parent *Repository
}

func (ls *Licenses) BaseURL() string    { return ls.parent.BaseURL() }
func (ls *Licenses) Credential() string { return ls.parent.Credential() }
func (ls *Licenses) root() *Repository  { return ls.parent }

// APIURL returns the license catalog URL.
func (ls *Licenses) APIURL() string {
	return ls.BaseURL() + "/licenses"
}

// Get returns information about one license.
func (ls *Licenses) Get(ctx context.Context, licID string) (Document, error) {
	return doObject(ctx, ls, request{
		method: http.MethodGet,
		url:    fmt.Sprintf("%s/%s", ls.APIURL(), licID),
		op:     fmt.Sprintf("getting license %s", licID),
	})
}

// List returns information about all licenses in the repository.
func (ls *Licenses) List(ctx context.Context) (any, error) {
	return do(ctx, ls, request{
		method: http.MethodGet,
		url:    ls.APIURL(),
		op:     "listing licenses",
	})
}
