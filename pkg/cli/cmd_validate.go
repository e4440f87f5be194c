package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psdi-data/depositor/pkg/depositor"
	"github.com/psdi-data/depositor/pkg/formats"
	"github.com/psdi-data/depositor/pkg/metadata"
)

func NewValidateCmd(deps *Deps) *cobra.Command {
	var (
		format string
		schema string
		watch  bool
		show   bool
	)

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "check a metadata document against the deposit schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := depositor.ValidateOptions{
				Path:   args[0],
				Format: formats.Format(format),
				Schema: schema,
			}
			out := cmd.OutOrStdout()

			report := func(doc metadata.Document, err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "invalid: %v\n", err)
					return
				}
				fmt.Fprintf(out, "%s is valid\n", opts.Path)
				if show {
					_ = formats.Dump(formats.YAML, doc, out)
				}
			}

			if watch {
				fmt.Fprintf(out, "watching %s (interrupt to stop)\n", opts.Path)
				return deps.Depositor.WatchValidate(cmd.Context(), opts, report)
			}

			doc, err := deps.Depositor.Validate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			report(doc, nil)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: json or yaml (default: infer from extension)")
	cmd.Flags().StringVar(&schema, "schema", "", "schema name (default: base)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-validate whenever the file is saved")
	cmd.Flags().BoolVar(&show, "show", false, "print the augmented document on success")

	return cmd
}
