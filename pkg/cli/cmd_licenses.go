package cli

import (
	"github.com/spf13/cobra"

	"github.com/psdi-data/depositor/pkg/depositor"
	"github.com/psdi-data/depositor/pkg/formats"
)

func NewLicensesCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licenses",
		Short: "inspect the repository license catalog",
	}
	cmd.AddCommand(
		newLicensesListCmd(deps),
		newLicensesGetCmd(deps),
	)
	return cmd
}

func newLicensesListCmd(deps *Deps) *cobra.Command {
	opts := depositor.RepositoryOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list all licenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveRepositoryOptions(&opts); err != nil {
				return err
			}
			listing, err := deps.Depositor.ListLicenses(cmd.Context(), opts)
			if err != nil {
				return err
			}
			renderLicensesTable(cmd.OutOrStdout(), listing)
			return nil
		},
	}
	addRepositoryFlags(cmd, &opts)
	return cmd
}

func newLicensesGetCmd(deps *Deps) *cobra.Command {
	opts := depositor.RepositoryOptions{}

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "show one license",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveRepositoryOptions(&opts); err != nil {
				return err
			}
			doc, err := deps.Depositor.GetLicense(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			return formats.Dump(formats.YAML, doc, cmd.OutOrStdout())
		},
	}
	addRepositoryFlags(cmd, &opts)
	return cmd
}
