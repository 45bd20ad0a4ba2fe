package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/customfields/cmd/fieldctl/db"
	"github.com/faciam-dev/customfields/internal/auditlog"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "audit", Short: "Inspect the audit trail (database only)"}
	cmd.AddCommand(newAuditListCmd())
	cmd.AddCommand(newAuditDiffCmd())
	return cmd
}

func openAuditRepo(f *dbcmd.DBFlags) (*auditlog.Repo, func(), error) {
	db, err := f.Open()
	if err != nil {
		return nil, nil, err
	}
	return &auditlog.Repo{DB: db, Driver: f.Driver, TablePrefix: f.TablePrefix}, func() { _ = db.Close() }, nil
}

func newAuditListCmd() *cobra.Command {
	var f dbcmd.DBFlags
	var filter auditlog.Filter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit log entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := openAuditRepo(&f)
			if err != nil {
				return err
			}
			defer done()
			recs, err := repo.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printOutput(cmd, recs)
		},
	}
	f.AddFlags(cmd)
	cmd.Flags().Int64Var(&filter.CustomFieldID, "field-id", 0, "custom field id")
	cmd.Flags().StringVar(&filter.Action, "action", "", "add, update or delete")
	cmd.Flags().StringVar(&filter.Actor, "actor", "", "actor name")
	cmd.Flags().IntVar(&filter.Limit, "limit", auditlog.DefaultLimit, "maximum entries")
	return cmd
}

func newAuditDiffCmd() *cobra.Command {
	var f dbcmd.DBFlags
	var id int64
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the before/after diff of one entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := openAuditRepo(&f)
			if err != nil {
				return err
			}
			defer done()
			rec, err := repo.FindByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("audit log %d: %w", id, err)
			}
			d := rec.Diff()
			if format, _ := cmd.Flags().GetString("output"); format == "json" {
				return printOutput(cmd, d)
			}
			fmt.Fprint(cmd.OutOrStdout(), d.Unified)
			fmt.Fprintf(cmd.OutOrStdout(), "%d added, %d removed\n", d.Added, d.Removed)
			return nil
		},
	}
	f.AddFlags(cmd)
	cmd.Flags().Int64Var(&id, "id", 0, "audit log id")
	cmd.MarkFlagRequired("id")
	return cmd
}
