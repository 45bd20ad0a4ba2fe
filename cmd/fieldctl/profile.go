package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cliconfig "github.com/faciam-dev/customfields/pkg/config"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Manage API connection profiles"}
	cmd.AddCommand(newProfileSetCmd())
	cmd.AddCommand(newProfileUseCmd())
	cmd.AddCommand(newProfileListCmd())
	return cmd
}

func newProfileSetCmd() *cobra.Command {
	var name string
	var p cliconfig.Profile
	var use bool
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cliconfig.Load()
			if err != nil {
				return err
			}
			f.Profiles[name] = p
			if use {
				f.Active = name
			}
			if err := cliconfig.Save(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved profile %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", cliconfig.DefaultProfile, "profile name")
	cmd.Flags().StringVar(&p.APIURL, "url", "", "API base URL")
	cmd.Flags().StringVar(&p.Token, "bearer", "", "API bearer token")
	cmd.Flags().BoolVar(&use, "use", false, "make the profile active")
	cmd.MarkFlagRequired("url")
	return cmd
}

func newProfileUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Activate a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cliconfig.Load()
			if err != nil {
				return err
			}
			if err := f.Use(args[0]); err != nil {
				return err
			}
			return cliconfig.Save(f)
		},
	}
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cliconfig.Load()
			if err != nil {
				return err
			}
			return printOutput(cmd, f)
		},
	}
}
