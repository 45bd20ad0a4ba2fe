package main

import (
	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/customfields/cmd/fieldctl/db"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "db", Short: "Database schema commands"}
	cmd.AddCommand(dbcmd.NewMigrateCmd())
	cmd.AddCommand(dbcmd.NewVersionCmd())
	return cmd
}
