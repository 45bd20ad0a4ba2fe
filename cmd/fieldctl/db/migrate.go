package dbcmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/customfields/pkg/migrator"
	"github.com/faciam-dev/customfields/sdk"
)

// NewMigrateCmd creates the db migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var flags DBFlags
	var to string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run DB migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.Resolve(); err != nil {
				return err
			}
			target := 0
			if to != "" && to != "latest" {
				v, err := strconv.Atoi(to)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
				target = v
			}
			svc, err := sdk.New(sdk.ServiceConfig{})
			if err != nil {
				return err
			}
			cfg := sdk.DBConfig{Driver: flags.Driver, DSN: flags.DSN, TablePrefix: flags.TablePrefix}
			if err := svc.MigrateRegistry(cmd.Context(), cfg, target); err != nil {
				return err
			}
			v, err := svc.RegistryVersion(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			m := migrator.NewWithDriverAndPrefix(flags.Driver, flags.TablePrefix)
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (%s)\n", v, m.SemVer(v))
			return nil
		},
	}
	flags.AddFlags(cmd)
	cmd.Flags().StringVar(&to, "to", "latest", "target version (number or latest)")
	return cmd
}

// NewVersionCmd creates the db version subcommand.
func NewVersionCmd() *cobra.Command {
	var flags DBFlags
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.Resolve(); err != nil {
				return err
			}
			svc, err := sdk.New(sdk.ServiceConfig{})
			if err != nil {
				return err
			}
			v, err := svc.RegistryVersion(cmd.Context(), sdk.DBConfig{Driver: flags.Driver, DSN: flags.DSN, TablePrefix: flags.TablePrefix})
			if err != nil {
				return err
			}
			m := migrator.NewWithDriverAndPrefix(flags.Driver, flags.TablePrefix)
			fmt.Fprintf(cmd.OutOrStdout(), "%d (%s), latest %d\n", v, m.SemVer(v), m.Latest())
			return nil
		},
	}
	flags.AddFlags(cmd)
	return cmd
}
