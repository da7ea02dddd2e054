package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/pvframework/pkg/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules available to rule sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RULE\tPARAMETERS\tDESCRIPTION")
			for _, d := range rules.Default().Definitions() {
				v, err := d.Validator("", nil)
				if err != nil {
					return err
				}
				params := make([]string, 0, len(v.Params()))
				for _, p := range v.Params() {
					params = append(params, p.String())
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, strings.Join(params, ", "), d.Description)
			}
			return tw.Flush()
		},
	}
}
