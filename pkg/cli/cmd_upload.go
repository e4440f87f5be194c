package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psdi-data/depositor/pkg/depositor"
	"github.com/psdi-data/depositor/pkg/formats"
)

func NewUploadCmd(deps *Deps) *cobra.Command {
	opts := depositor.UploadOptions{}
	var format string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "deposit a metadata document and its data files as a new draft",
		Long: `upload validates the metadata document, creates a new draft record,
fills in its metadata, attaches the data files, and optionally submits the
draft to a community for review. The draft is left unpublished.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveRepositoryOptions(&opts.RepositoryOptions); err != nil {
				return err
			}
			if opts.MetadataPath == "" {
				return fmt.Errorf("--metadata-path is required")
			}
			opts.Format = formats.Format(format)

			result, err := deps.Depositor.Upload(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created draft %s\n", result.RecordID)
			if len(result.Uploaded) > 0 {
				fmt.Fprintf(out, "uploaded: %s\n", strings.Join(result.Uploaded, ", "))
			}
			if result.Submitted {
				fmt.Fprintf(out, "submitted to community %s for review\n", result.Community)
			}
			return nil
		},
	}

	addRepositoryFlags(cmd, &opts.RepositoryOptions)
	cmd.Flags().StringVar(&opts.MetadataPath, "metadata-path", "", "metadata document to deposit")
	cmd.Flags().StringVarP(&format, "format", "f", "", "metadata format: json or yaml (default: infer from extension)")
	cmd.Flags().StringArrayVar(&opts.Files, "files", nil, "data files to attach (glob patterns, repeatable)")
	cmd.Flags().StringVar(&opts.Community, "community", "", "community slug to submit the draft to for review")
	cmd.Flags().BoolVar(&opts.RenderDescription, "render-description", false,
		"convert a Markdown description to HTML before upload")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "schema name (default: base)")

	return cmd
}
