package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psdi-data/depositor/pkg/depositor"
	"github.com/psdi-data/depositor/pkg/formats"
)

func NewTemplateCmd(deps *Deps) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "template FILE",
		Short: "write an example metadata document to start from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := deps.Depositor.Template(cmd.Context(), depositor.TemplateOptions{
				Path:   args[0],
				Format: formats.Format(format),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or yaml (default: infer from extension)")

	return cmd
}
