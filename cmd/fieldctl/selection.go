package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/customfields/cmd/fieldctl/db"
	"github.com/faciam-dev/customfields/sdk"
)

func newSelectionCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "selection", Short: "Manage selection custom fields"}
	cmd.AddCommand(newSelectionListCmd())
	cmd.AddCommand(newSelectionCreateCmd())
	return cmd
}

func newSelectionListCmd() *cobra.Command {
	var f dbcmd.DBFlags
	var typeName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List selection fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := newClient(cmd, &f)
			if err != nil {
				return err
			}
			defer done()
			fields, err := c.ListSelection(cmd.Context(), typeName)
			if err != nil {
				return err
			}
			return printOutput(cmd, fields)
		},
	}
	f.AddFlags(cmd)
	cmd.Flags().StringVar(&typeName, "type", "", "plain type name filter")
	return cmd
}

func newSelectionCreateCmd() *cobra.Command {
	var f dbcmd.DBFlags
	var typeName, file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a selection field from a JSON body",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBody(cmd, file)
			if err != nil {
				return err
			}
			var in sdk.SelectionFieldInput
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			c, done, err := newClient(cmd, &f)
			if err != nil {
				return err
			}
			defer done()
			cf, err := c.CreateSelection(cmd.Context(), typeName, in)
			if err != nil {
				return err
			}
			return printOutput(cmd, cf)
		},
	}
	f.AddFlags(cmd)
	cmd.Flags().StringVar(&typeName, "type", "", "plain type name")
	cmd.Flags().StringVar(&file, "file", "", "JSON body file (- for stdin)")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("file")
	return cmd
}

func readBody(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		var raw json.RawMessage
		if err := json.NewDecoder(cmd.InOrStdin()).Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	return os.ReadFile(file)
}
