package invenio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// URLScoped is the capability every handle derives from its parent: the
// repository base URL and the credential, resolved by walking the parent
// chain up to the Repository root. Deriving these is pure; only leaf
// operations perform I/O.
type URLScoped interface {
	// BaseURL returns the normalized repository API base URL.
	BaseURL() string

	// Credential returns the access token owned by the Repository root. All
	// descendants borrow it read-only.
	Credential() string

	root() *Repository
}

// request describes one HTTP call issued on behalf of a handle. The op
// string is the call-site description embedded in checked errors.
type request struct {
	method      string
	url         string
	body        io.Reader
	contentType string
	query       url.Values
	op          string
	anonymous   bool // skip the access_token parameter
}

// do issues a single blocking request for h and passes the response through
// Check. Transport failures are wrapped so callers can tell them apart from
// server refusals.
func do(ctx context.Context, h URLScoped, req request) (any, error) {
	resp, err := send(ctx, h, req)
	if err != nil {
		return nil, err
	}
	return Check(resp, req.op)
}

// doObject is do for calls whose contract is a JSON object body.
func doObject(ctx context.Context, h URLScoped, req request) (Document, error) {
	resp, err := send(ctx, h, req)
	if err != nil {
		return nil, err
	}
	return checkObject(resp, req.op)
}

// doJSON marshals body as the JSON payload of a do call.
func doJSON(ctx context.Context, h URLScoped, method, target string, body any, op string) (Document, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return doObject(ctx, h, request{
		method:      method,
		url:         target,
		body:        bytes.NewReader(payload),
		contentType: "application/json",
		op:          op,
	})
}

func send(ctx context.Context, h URLScoped, req request) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, req.body)
	if err != nil {
		return nil, err
	}

	query := httpReq.URL.Query()
	for key, vals := range req.query {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	if !req.anonymous {
		query.Set("access_token", h.Credential())
	}
	httpReq.URL.RawQuery = query.Encode()

	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	resp, err := h.root().client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: req.op, Err: err}
	}
	return resp, nil
}

// stringField extracts a string field from a decoded response object.
func stringField(doc Document, key string) string {
	if doc == nil {
		return ""
	}
	s, _ := doc[key].(string)
	return s
}

// linkField extracts a named entry from a response's "links" object.
func linkField(doc Document, name string) string {
	links, _ := doc["links"].(map[string]any)
	if links == nil {
		return ""
	}
	s, _ := links[name].(string)
	return s
}
