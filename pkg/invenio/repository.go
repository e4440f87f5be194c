package invenio

import (
	"net/http"
	"strings"
	"time"
)

// Dialect selects between the two structurally similar but
// endpoint-incompatible API conventions this client supports.
type Dialect int

const (
	// DialectInvenioDraft is the modern Invenio records/draft API with
	// three-step file uploads.
	DialectInvenioDraft Dialect = iota

	// DialectZenodoDeposition is the legacy Zenodo deposition API with
	// single-step bucket uploads.
	DialectZenodoDeposition
)

func (d Dialect) String() string {
	if d == DialectZenodoDeposition {
		return "zenodo-deposition"
	}
	return "invenio-record"
}

// DefaultTimeout bounds every request issued by a Repository unless
// overridden with WithTimeout. The source protocol has no timeout handling;
// this is a hardening extension.
const DefaultTimeout = 60 * time.Second

// Repository is the entry point for an Invenio-compatible repository. It is
// the sole owner of the base URL and credential; every handle below it
// borrows both read-only by walking its parent chain. Construct once per
// session; a Repository is immutable and safe for concurrent use.
type Repository struct {
	baseURL string
	token   string
	dialect Dialect
	client  *http.Client

	anonymousCommunityLookup bool
}

// Option configures a Repository at construction time.
type Option func(*Repository)

// WithDialect selects the API dialect. The default is DialectInvenioDraft.
func WithDialect(d Dialect) Option {
	return func(r *Repository) { r.dialect = d }
}

// WithTimeout bounds every request issued by the repository.
func WithTimeout(d time.Duration) Option {
	return func(r *Repository) { r.client.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Repository) { r.client = c }
}

// WithAnonymousCommunityLookup resolves community slugs without the access
// token, matching repositories whose /communities endpoint is public.
func WithAnonymousCommunityLookup() Option {
	return func(r *Repository) { r.anonymousCommunityLookup = true }
}

// New builds a Repository root for the given API URL and access token. The
// URL is normalized to end in the /api path segment exactly once.
func New(rawURL, token string, opts ...Option) *Repository {
	r := &Repository{
		baseURL: normalizeBaseURL(rawURL),
		token:   token,
		dialect: DialectInvenioDraft,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func normalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	trimmed = strings.TrimSuffix(trimmed, "/api")
	return trimmed + "/api"
}

// BaseURL returns the normalized API base URL.
func (r *Repository) BaseURL() string { return r.baseURL }

// Credential returns the access token.
func (r *Repository) Credential() string { return r.token }

// Dialect returns the API dialect selected at construction.
func (r *Repository) Dialect() Dialect { return r.dialect }

func (r *Repository) root() *Repository { return r }

// Records returns the all-records handle. Under the Zenodo dialect it
// addresses the legacy depositions collection instead.
func (r *Repository) Records() *Records {
	return &Records{parent: r}
}

// Licenses returns the read-only license catalog handle.
func (r *Repository) Licenses() *Licenses {
	return &Licenses{parent: r}
}
