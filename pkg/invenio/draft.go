package invenio

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Draft is a handle for an unpublished, mutable record. State lives in the
// remote repository; the handle holds only the record id and its parent.
type Draft struct {
	parent *Records
	recID  string

	// bucketURL memoizes the lazily fetched bucket endpoint for the handle's
	// lifetime (single-step dialect uploads).
	bucketURL string
}

func (d *Draft) BaseURL() string    { return d.parent.BaseURL() }
func (d *Draft) Credential() string { return d.parent.Credential() }
func (d *Draft) root() *Repository  { return d.parent.root() }

// ID returns the server-assigned record id.
func (d *Draft) ID() string { return d.recID }

// APIURL returns the draft resource URL for this dialect.
func (d *Draft) APIURL() string {
	if d.root().dialect == DialectZenodoDeposition {
		return fmt.Sprintf("%s/%s", d.parent.APIURL(), d.recID)
	}
	return fmt.Sprintf("%s/records/%s/draft", d.BaseURL(), d.recID)
}

// Files returns the file-set handle for this draft.
func (d *Draft) Files() *Files {
	return &Files{parent: d}
}

// BucketURL returns the direct-upload bucket endpoint, fetching it on first
// access via Get and caching it for the handle's lifetime.
func (d *Draft) BucketURL(ctx context.Context) (string, error) {
	if d.bucketURL != "" {
		return d.bucketURL, nil
	}
	if _, err := d.Get(ctx); err != nil {
		return "", err
	}
	if d.bucketURL == "" {
		return "", fmt.Errorf("record %s carries no bucket link", d.recID)
	}
	return d.bucketURL, nil
}

// Get fetches the draft's current state.
func (d *Draft) Get(ctx context.Context) (Document, error) {
	doc, err := doObject(ctx, d, request{
		method: http.MethodGet,
		url:    d.APIURL(),
		op:     fmt.Sprintf("getting record %s", d.recID),
	})
	if err != nil {
		return nil, err
	}
	if bucket := linkField(doc, "bucket"); bucket != "" {
		d.bucketURL = bucket
	}
	return doc, nil
}

// Update replaces the draft's metadata document.
func (d *Draft) Update(ctx context.Context, data any) (Document, error) {
	return doJSON(ctx, d, http.MethodPut, d.APIURL(), data,
		fmt.Sprintf("updating record %s", d.recID))
}

// Delete removes the draft.
func (d *Draft) Delete(ctx context.Context) (Document, error) {
	return doObject(ctx, d, request{
		method: http.MethodDelete,
		url:    d.APIURL(),
		op:     fmt.Sprintf("deleting record %s", d.recID),
	})
}

// Publish publishes the draft.
func (d *Draft) Publish(ctx context.Context) (Document, error) {
	return doObject(ctx, d, request{
		method: http.MethodPost,
		url:    d.APIURL() + "/actions/publish",
		op:     fmt.Sprintf("publishing record %s", d.recID),
	})
}

// SubmitReview submits the draft for community moderation. Whether the
// submission is accepted is out of this client's control; it only issues the
// request.
func (d *Draft) SubmitReview(ctx context.Context) (Document, error) {
	return doObject(ctx, d, request{
		method: http.MethodPost,
		url:    d.APIURL() + "/actions/submit-review",
		op:     fmt.Sprintf("submitting for review record %s", d.recID),
	})
}

// Bind associates the draft with a community for review. The slug is first
// resolved to the community UUID; a failed resolution short-circuits before
// the review request is attempted.
func (d *Draft) Bind(ctx context.Context, communitySlug string) (Document, error) {
	resolved, err := d.ResolveCommunity(ctx, communitySlug)
	if err != nil {
		return nil, err
	}

	body := Document{
		"receiver": Document{"community": resolved},
		"type":     "community-submission",
	}
	return doJSON(ctx, d, http.MethodPut, d.APIURL()+"/review", body,
		fmt.Sprintf("binding draft record %s to community %s with ID %s",
			d.recID, communitySlug, resolved))
}

// ResolveCommunity looks up a community slug and returns its UUID.
func (d *Draft) ResolveCommunity(ctx context.Context, slug string) (string, error) {
	doc, err := doObject(ctx, d, request{
		method:    http.MethodGet,
		url:       fmt.Sprintf("%s/communities/%s", d.BaseURL(), slug),
		op:        fmt.Sprintf("getting the ID for %s community", slug),
		anonymous: d.root().anonymousCommunityLookup,
	})
	if err != nil {
		return "", err
	}
	id := stringField(doc, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("community %s resolved to %q, which is not a UUID: %w", slug, id, err)
	}
	return id, nil
}
