package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/faciam-dev/customfields/internal/auditlog"
	cliconfig "github.com/faciam-dev/customfields/pkg/config"
	"github.com/faciam-dev/customfields/sdk"
	"github.com/faciam-dev/customfields/sdk/client"
)

func printOutput(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()
	if format == "json" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}
	switch x := v.(type) {
	case []client.PlainType:
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"ID", "Name", "Value Column"})
		for _, p := range x {
			tw.Append([]string{fmt.Sprint(p.ID), p.Name, p.ValueColumn})
		}
		tw.Render()
	case []sdk.CustomField:
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"ID", "Model", "Name", "Label", "Required", "Plain Type", "Multiselect", "Values"})
		for _, cf := range x {
			tw.Append(fieldRow(cf))
		}
		tw.Render()
	case sdk.CustomField:
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"ID", "Model", "Name", "Label", "Required", "Plain Type", "Multiselect", "Values"})
		tw.Append(fieldRow(x))
		tw.Render()
	case []auditlog.Record:
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"ID", "Actor", "Action", "Field", "Applied At"})
		for _, r := range x {
			field := ""
			if r.CustomFieldID.Valid {
				field = fmt.Sprint(r.CustomFieldID.Int64)
			}
			tw.Append([]string{fmt.Sprint(r.ID), r.Actor, r.Action, field, r.AppliedAt})
		}
		tw.Render()
	case *cliconfig.File:
		names := make([]string, 0, len(x.Profiles))
		for n := range x.Profiles {
			names = append(names, n)
		}
		sort.Strings(names)
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"Profile", "Active", "API URL", "Token"})
		for _, n := range names {
			p := x.Profiles[n]
			tok := ""
			if p.Token != "" {
				tok = "set"
			}
			tw.Append([]string{n, fmt.Sprint(n == x.Active), p.APIURL, tok})
		}
		tw.Render()
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	}
	return nil
}

func fieldRow(cf sdk.CustomField) []string {
	var plainType, multi string
	var labels []string
	if sel, ok := cf.Selectable.(*sdk.SelectionTarget); ok {
		plainType = fmt.Sprint(sel.PlainTypeID)
		if sel.PlainType != nil {
			plainType = string(sel.PlainType.Name)
		}
		multi = fmt.Sprint(sel.Multiselect)
		for _, v := range sel.Values {
			labels = append(labels, v.Label)
		}
	}
	return []string{fmt.Sprint(cf.ID), cf.Model, cf.Name, cf.Label, fmt.Sprint(cf.Required), plainType, multi, strings.Join(labels, ",")}
}
