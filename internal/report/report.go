// Package report renders build summaries as terminal tables.
package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/starford/deckbuild/internal/apkg"
	"github.com/starford/deckbuild/internal/models"
)

// FileStat is the per-file outcome of extraction.
type FileStat struct {
	File  models.ExportFile
	Cards int
}

// Files renders one row per export file.
func Files(w io.Writer, files []FileStat) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Flavor", "Cards", "Checksum"})
	total := 0
	for _, f := range files {
		t.AppendRow(table.Row{f.File.Path, f.File.Flavor, f.Cards, shortSum(f.File.Checksum)})
		total += f.Cards
	}
	t.AppendFooter(table.Row{"Total", "", total, ""})
	t.Render()
}

// Decks renders one row per deck with its note count.
func Decks(w io.Writer, decks []*apkg.Deck) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Deck", "ID", "Notes"})
	for _, d := range decks {
		t.AppendRow(table.Row{d.Name, d.ID, len(d.Notes)})
	}
	t.Render()
}

// Models renders one row per note type.
func Models(w io.Writer, ms []*apkg.Model) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Model", "ID", "Fields"})
	for _, m := range ms {
		t.AppendRow(table.Row{m.Name, m.ID, len(m.Fields)})
	}
	t.Render()
}

func shortSum(s string) string {
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
