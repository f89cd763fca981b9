// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plumber

import (
	"strings"

	pdfplumber "github.com/pyhub-apps/pdfplumber-golang"

	"github.com/pdiddy/pdfmark/internal/engine"
)

// table adapts a pdfplumber table to the engine contract.
type table struct {
	t pdfplumber.Table
}

func (t *table) BBox() engine.Rect {
	b := t.t.BBox
	return engine.Rect{X0: b.X0, Y0: b.Y0, X1: b.X1, Y1: b.Y1}
}

func (t *table) RowCount() int {
	return len(t.t.Rows)
}

// ColCount returns the widest row; extraction can emit ragged rows.
func (t *table) ColCount() int {
	cols := 0
	for _, row := range t.t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

func (t *table) Markdown(opts engine.TableOptions) (string, error) {
	return renderMarkdown(t.t.Rows, opts), nil
}

// renderMarkdown turns extracted rows into a Markdown table block. Every
// row is padded to the full column count, so blank cells are written
// rather than omitted and the grid shape survives.
func renderMarkdown(rows [][]string, opts engine.TableOptions) string {
	if len(rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	var b strings.Builder
	for i, row := range rows {
		b.WriteString("|")
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(row) {
				cell = sanitizeCell(row[c], opts)
			}
			if cell == "" && opts.FillEmpty {
				cell = " "
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")

		// Header separator after the first row.
		if i == 0 {
			b.WriteString("|")
			for c := 0; c < cols; c++ {
				b.WriteString("---|")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// sanitizeCell makes a cell safe inside a Markdown row: pipes escaped,
// newlines flattened, and whitespace collapsed when cleaning is on.
func sanitizeCell(cell string, opts engine.TableOptions) string {
	cell = strings.ReplaceAll(cell, "\n", " ")
	cell = strings.ReplaceAll(cell, "|", `\|`)
	if opts.Clean {
		cell = strings.Join(strings.Fields(cell), " ")
	}
	return strings.TrimSpace(cell)
}
