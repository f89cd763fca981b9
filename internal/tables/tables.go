// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tables extracts tables from document pages by running several
// detection strategies in a fixed priority order, filtering degenerate
// hits, deduplicating by bounding box, and rendering survivors to
// Markdown grouped by page.
// See docs/ARCHITECTURE § Table Extraction.
package tables

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pdfmark/internal/engine"
)

// strategies is the fixed priority order. Detection quality varies with
// PDF structure: ruled grids respond to the lines strategies, OCRed or
// unruled pages only to text. The text strategy is biased toward
// precision (3 vertical word alignments) because it is noisy on prose.
var strategies = []engine.Strategy{
	{Name: "lines_strict"},
	{Name: "lines"},
	{Name: "text", MinWordsVertical: 3, MinWordsHorizontal: 1},
}

// minRows and minCols filter degenerate detections, common with the text
// strategy on plain prose.
const (
	minRows = 2
	minCols = 2
)

// Attempt records one strategy run against one page, so callers can see
// which strategies were tried and which were skipped instead of having
// failures silently swallowed.
type Attempt struct {
	// Page is the 0-based page index.
	Page int
	// Strategy is the strategy name.
	Strategy string
	// Accepted is the number of tables from this strategy that survived
	// filtering and deduplication.
	Accepted int
	// Err is non-nil when the detector failed and the strategy was
	// skipped for this page. Skips never abort the page.
	Err error
}

// accepted is one table retained for a page, tagged with the strategy
// that found it.
type accepted struct {
	strategy string
	table    engine.Table
}

// Extract runs table detection over the given 0-based pages (nil means
// every page of doc) and returns the Markdown for all accepted tables,
// plus the per-strategy attempt log. The result is empty when no page
// yields a table. Output is deterministic: pages ascend, and within a
// page tables appear in acceptance order (strategy priority, then
// detector emission order).
func Extract(det engine.Detector, doc engine.Document, pages []int) (string, []Attempt) {
	if pages == nil {
		pages = make([]int, doc.PageCount())
		for i := range pages {
			pages[i] = i
		}
	}

	var out []string
	var attempts []Attempt

	for _, pno := range pages {
		var seen []engine.Rect
		var kept []accepted

		for _, strat := range strategies {
			found, err := det.FindTables(doc, pno, strat)
			if err != nil {
				attempts = append(attempts, Attempt{Page: pno, Strategy: strat.Name, Err: err})
				continue
			}

			n := 0
			for _, t := range found {
				if t.RowCount() < minRows || t.ColCount() < minCols {
					continue
				}
				bbox := t.BBox()
				if isDuplicate(seen, bbox) {
					continue
				}
				seen = append(seen, bbox)
				kept = append(kept, accepted{strategy: strat.Name, table: t})
				n++
			}
			attempts = append(attempts, Attempt{Page: pno, Strategy: strat.Name, Accepted: n})
		}

		if len(kept) == 0 {
			continue
		}

		out = append(out, fmt.Sprintf("## Page %d", pno+1))
		for i, a := range kept {
			out = append(out, fmt.Sprintf("### Table %d (strategy=%s, rows=%d, cols=%d)",
				i+1, a.strategy, a.table.RowCount(), a.table.ColCount()))

			md, err := a.table.Markdown(engine.TableOptions{Clean: false, FillEmpty: true})
			if err != nil {
				// One bad table must not abort the run.
				out = append(out, fmt.Sprintf("_failed to render table: %v_", err))
			} else {
				out = append(out, strings.TrimSpace(md))
			}
			out = append(out, "")
		}
	}

	if len(out) == 0 {
		return "", attempts
	}

	lines := append([]string{"# Extracted tables", ""}, out...)
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n", attempts
}

// CountAccepted sums the accepted tables across an attempt log.
func CountAccepted(attempts []Attempt) int {
	total := 0
	for _, a := range attempts {
		total += a.Accepted
	}
	return total
}
