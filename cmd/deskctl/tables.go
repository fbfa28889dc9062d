package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTablesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print both tables in the order lookups scan them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, depts := opts.loadCatalog(cmd.Context())
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)

			bold.Fprintf(out, "FAQ (%d)\n", kb.Len())
			for i, e := range kb.Entries() {
				fmt.Fprintf(out, "%3d  %-30s %s\n", i+1, e.Phrase, e.Answer)
			}

			bold.Fprintf(out, "\nDepartments (%d)\n", depts.Len())
			for i, d := range depts.List() {
				fmt.Fprintf(out, "%3d  %-20s [%s] %s\n", i+1, d.Name, strings.Join(d.Keywords, ", "), d.Response)
			}
			return nil
		},
	}
}
