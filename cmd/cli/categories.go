package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"site-classifier/internal/taxonomy"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories and their trigger phrases",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := taxonomy.Default()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Group", "Category", "Trigger phrases"})
			for _, g := range []taxonomy.Group{taxonomy.GroupRole, taxonomy.GroupTopic} {
				for _, c := range reg.CategoriesInGroup(g) {
					phrases, err := reg.Lookup(c)
					if err != nil {
						return err
					}
					t.AppendRow(table.Row{g.String(), string(c), strings.Join(phrases, ", ")})
				}
			}
			t.AppendRow(table.Row{"sector", "F&B", strings.Join(reg.SectorTriggers(), ", ")})
			t.Render()
			return nil
		},
	}
}
