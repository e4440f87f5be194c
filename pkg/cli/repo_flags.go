package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psdi-data/depositor/pkg/depositor"
)

// apiKeyEnv is consulted when --api-key is not given.
const apiKeyEnv = "INVENIO_API_KEY"

// addRepositoryFlags wires the shared repository connection flags onto a
// command that talks to a remote repository.
func addRepositoryFlags(cmd *cobra.Command, opts *depositor.RepositoryOptions) {
	cmd.Flags().StringVar(&opts.APIURL, "api-url", "", "repository API URL (e.g. https://sandbox.zenodo.org)")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "personal access token (default $"+apiKeyEnv+")")
	cmd.Flags().BoolVar(&opts.Zenodo, "zenodo", false, "use the legacy Zenodo deposition API")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout (default 60s)")
	cmd.Flags().BoolVar(&opts.AnonymousCommunityLookup, "anonymous-community-lookup", false,
		"resolve community slugs without credentials")
}

// resolveRepositoryOptions applies the environment fallback for the API key
// and checks the connection settings are complete.
func resolveRepositoryOptions(opts *depositor.RepositoryOptions) error {
	if opts.APIKey == "" {
		opts.APIKey = os.Getenv(apiKeyEnv)
	}
	if opts.APIURL == "" {
		return fmt.Errorf("--api-url is required")
	}
	if opts.APIKey == "" {
		return fmt.Errorf("--api-key or $%s is required", apiKeyEnv)
	}
	return nil
}
