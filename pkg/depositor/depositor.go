// Package depositor orchestrates metadata validation and repository
// deposits: the service layer the CLI commands call into.
package depositor

import (
	"fmt"
	"time"

	"github.com/jlrickert/cli-toolkit/toolkit"

	"github.com/psdi-data/depositor/pkg/invenio"
)

// Depositor bundles the process-level dependencies every operation needs.
type Depositor struct {
	// Runtime carries process-level dependencies.
	Runtime *toolkit.Runtime
}

type Options struct {
	Runtime *toolkit.Runtime
}

func New(opts Options) (*Depositor, error) {
	rt := opts.Runtime
	if rt == nil {
		var err error
		rt, err = toolkit.NewRuntime()
		if err != nil {
			return nil, fmt.Errorf("unable to create runtime: %w", err)
		}
	}
	if err := rt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime: %w", err)
	}
	return &Depositor{Runtime: rt}, nil
}

// RepositoryOptions describes how a command should reach a repository.
type RepositoryOptions struct {
	// APIURL is the repository base URL (normalized to end in /api).
	APIURL string

	// APIKey is the personal access token.
	APIKey string

	// Zenodo selects the legacy deposition API instead of the modern
	// records/draft API.
	Zenodo bool

	// Timeout bounds every request; zero keeps the client default.
	Timeout time.Duration

	// AnonymousCommunityLookup resolves community slugs without credentials,
	// for repositories whose /communities endpoint is public.
	AnonymousCommunityLookup bool
}

func (o RepositoryOptions) validate() error {
	if o.APIURL == "" {
		return fmt.Errorf("repository URL is required")
	}
	if o.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	return nil
}

func (d *Depositor) repository(opts RepositoryOptions) (*invenio.Repository, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	var clientOpts []invenio.Option
	if opts.Zenodo {
		clientOpts = append(clientOpts, invenio.WithDialect(invenio.DialectZenodoDeposition))
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, invenio.WithTimeout(opts.Timeout))
	}
	if opts.AnonymousCommunityLookup {
		clientOpts = append(clientOpts, invenio.WithAnonymousCommunityLookup())
	}
	return invenio.New(opts.APIURL, opts.APIKey, clientOpts...), nil
}
