package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psdi-data/depositor/pkg/depositor"
	"github.com/psdi-data/depositor/pkg/formats"
)

func NewRecordsCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "inspect records in a repository",
	}
	cmd.AddCommand(
		newRecordsListCmd(deps),
		newRecordsGetCmd(deps),
		newRecordsDownloadCmd(deps),
	)
	return cmd
}

func newRecordsListCmd(deps *Deps) *cobra.Command {
	opts := depositor.RepositoryOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list all records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveRepositoryOptions(&opts); err != nil {
				return err
			}
			listing, err := deps.Depositor.ListRecords(cmd.Context(), opts)
			if err != nil {
				return err
			}
			renderRecordsTable(cmd.OutOrStdout(), listing)
			return nil
		},
	}
	addRepositoryFlags(cmd, &opts)
	return cmd
}

func newRecordsGetCmd(deps *Deps) *cobra.Command {
	opts := depositor.RepositoryOptions{}

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveRepositoryOptions(&opts); err != nil {
				return err
			}
			doc, err := deps.Depositor.GetRecord(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			return formats.Dump(formats.YAML, doc, cmd.OutOrStdout())
		},
	}
	addRepositoryFlags(cmd, &opts)
	return cmd
}

func newRecordsDownloadCmd(deps *Deps) *cobra.Command {
	opts := depositor.RepositoryOptions{}
	var dest string

	cmd := &cobra.Command{
		Use:   "download ID",
		Short: "download all files of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveRepositoryOptions(&opts); err != nil {
				return err
			}
			if dest == "" {
				return fmt.Errorf("--dest is required")
			}
			if err := deps.Depositor.DownloadRecord(cmd.Context(), opts, args[0], dest); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "downloaded record %s into %s\n", args[0], dest)
			return err
		},
	}
	addRepositoryFlags(cmd, &opts)
	cmd.Flags().StringVar(&dest, "dest", "", "destination directory")
	return cmd
}
