package cli

import (
	"fmt"
	"os"

	"github.com/jlrickert/go-std/mylog"
	"github.com/jlrickert/cli-toolkit/toolkit"
	"github.com/spf13/cobra"

	"github.com/psdi-data/depositor/pkg/depositor"
)

// Deps carries the shared dependencies every subcommand reaches through.
// PersistentPreRunE fills in the service once flags are parsed.
type Deps struct {
	Runtime *toolkit.Runtime

	LogFile  string
	LogLevel string
	LogJSON  bool

	Depositor *depositor.Depositor
}

// NewRootCmd builds the root cobra command, wires the persistent logging
// flags, and installs the subcommands. The command's PersistentPreRunE
// respects an existing context so tests can inject one via cmd.SetContext
// before Execute.
func NewRootCmd(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = &Deps{}
	}

	cmd := &cobra.Command{
		Use:           "depositor",
		Short:         "validate and deposit research-data records into Invenio repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt := deps.Runtime
			if rt == nil {
				var err error
				rt, err = toolkit.NewRuntime()
				if err != nil {
					return fmt.Errorf("unable to create runtime: %w", err)
				}
				deps.Runtime = rt
			}

			svc, err := depositor.New(depositor.Options{Runtime: rt})
			if err != nil {
				return err
			}
			deps.Depositor = svc

			if deps.LogFile != "" || deps.LogJSON || deps.LogLevel != "" {
				var out = os.Stderr
				if deps.LogFile != "" {
					f, err := os.OpenFile(deps.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
					if err != nil {
						return err
					}
					out = f
				}
				lg := mylog.NewLogger(mylog.LoggerConfig{
					Out:     out,
					Level:   mylog.ParseLevel(deps.LogLevel),
					JSON:    deps.LogJSON,
					Version: Version,
				})
				if err := deps.Runtime.SetLogger(lg); err != nil {
					return err
				}
			}

			ctx = mylog.WithLogger(ctx, deps.Runtime.Logger())
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&deps.LogFile, "log-file", "", "write logs to file (default stderr)")
	cmd.PersistentFlags().StringVar(&deps.LogLevel, "log-level", "info", "minimum log level")
	cmd.PersistentFlags().BoolVar(&deps.LogJSON, "log-json", false, "output logs as JSON")

	cmd.AddCommand(
		NewValidateCmd(deps),
		NewTemplateCmd(deps),
		NewUploadCmd(deps),
		NewRecordsCmd(deps),
		NewLicensesCmd(deps),
		NewVersionCmd(deps),
	)

	return cmd
}
