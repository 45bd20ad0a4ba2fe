package main

import (
	"log"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "fieldctl", SilenceUsage: true}
	root.PersistentFlags().String("api-url", "", "API base URL; the database is used when empty")
	root.PersistentFlags().String("token", "", "Bearer token for the API")
	root.PersistentFlags().String("profile", "", "Profile name in ~/.fieldctl (overrides active)")
	root.PersistentFlags().String("output", "table", "Output format (table|json)")

	root.AddCommand(newDBCmd())
	root.AddCommand(newPlainTypesCmd())
	root.AddCommand(newSelectionCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newAuditCmd())
	root.AddCommand(newProfileCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
