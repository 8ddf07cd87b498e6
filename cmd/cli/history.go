package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"site-classifier/internal/ioformats"
	"site-classifier/internal/storage"
	"site-classifier/internal/taxonomy"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "List stored runs, or print the results of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if db == "" {
				db = cfg.Output.SQLite
			}
			if db == "" {
				return errors.New("no history database: set --db or output.sqlite")
			}

			reg := taxonomy.Default()
			store, err := storage.Open(db, reg)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				batch, err := store.LoadBatch(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(batch) == 0 {
					return fmt.Errorf("run %s not found", args[0])
				}
				ioformats.RenderTable(cmd.OutOrStdout(), reg, batch)
				return nil
			}

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Run", "Started", "Elapsed", "Sites", "Errored", "Relevant"})
			for _, r := range runs {
				t.AppendRow(table.Row{
					r.ID,
					r.StartedAt.Local().Format(time.DateTime),
					r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
					r.Total, r.Errored, r.Relevant,
				})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite run history path (overrides output.sqlite)")
	return cmd
}
