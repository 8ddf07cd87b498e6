
package ioformats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"site-classifier/internal/models"
	"site-classifier/internal/taxonomy"
)

// Header returns the tabular column names: Website, Sector, one column per
// category in registry order, then Relevant.
func Header(reg *taxonomy.Registry) []string {
	cats := reg.Categories()
	out := make([]string, 0, len(cats)+3)
	out = append(out, "Website", "Sector")
	for _, c := range cats {
		out = append(out, string(c))
	}
	return append(out, "Relevant")
}

// Row flattens a record in Header order.
func Row(reg *taxonomy.Registry, r models.SiteResult) []string {
	cats := reg.Categories()
	out := make([]string, 0, len(cats)+3)
	out = append(out, r.Website, string(r.Sector))
	for _, c := range cats {
		out = append(out, string(r.Label(c)))
	}
	return append(out, string(r.Relevant))
}

// WriteCSV writes a header row followed by one row per site.
func WriteCSV(w io.Writer, reg *taxonomy.Registry, batch models.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(reg)); err != nil {
		return err
	}
	for _, r := range batch {
		if err := cw.Write(Row(reg, r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates path and writes batch to it.
func WriteCSVFile(path string, reg *taxonomy.Registry, batch models.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, reg, batch); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// RenderTable prints batch as a console table.
func RenderTable(w io.Writer, reg *taxonomy.Registry, batch models.BatchResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	for _, h := range Header(reg) {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, r := range batch {
		row := table.Row{}
		for _, v := range Row(reg, r) {
			row = append(row, v)
		}
		t.AppendRow(row)
	}

	s := batch.Summary()
	t.AppendFooter(table.Row{fmt.Sprintf("%d sites", s.Total), fmt.Sprintf("%d errored", s.Errored)})
	t.Render()
}
