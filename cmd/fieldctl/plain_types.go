package main

import (
	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/customfields/cmd/fieldctl/db"
)

func newPlainTypesCmd() *cobra.Command {
	var f dbcmd.DBFlags
	cmd := &cobra.Command{
		Use:   "plain-types",
		Short: "List the plain type catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := newClient(cmd, &f)
			if err != nil {
				return err
			}
			defer done()
			pts, err := c.PlainTypes(cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(cmd, pts)
		},
	}
	f.AddFlags(cmd)
	return cmd
}
