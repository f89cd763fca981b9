// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/pdfmark/internal/engine"
)

// fakeTable implements engine.Table with canned values.
type fakeTable struct {
	bbox  engine.Rect
	rows  int
	cols  int
	md    string
	mdErr error
}

func (f *fakeTable) BBox() engine.Rect { return f.bbox }
func (f *fakeTable) RowCount() int     { return f.rows }
func (f *fakeTable) ColCount() int     { return f.cols }

func (f *fakeTable) Markdown(opts engine.TableOptions) (string, error) {
	if f.mdErr != nil {
		return "", f.mdErr
	}
	return f.md, nil
}

// fakeDoc implements engine.Document with a fixed page count.
type fakeDoc struct {
	pages int
}

func (f *fakeDoc) PageCount() int { return f.pages }
func (f *fakeDoc) Close() error   { return nil }

// fakeDetector returns canned tables or errors keyed by page and strategy.
type fakeDetector struct {
	tables map[string][]engine.Table // "page/strategy" -> tables
	errs   map[string]error
}

func key(page int, strat string) string {
	return fmt.Sprintf("%d/%s", page, strat)
}

func (f *fakeDetector) FindTables(doc engine.Document, pageIndex int, strat engine.Strategy) ([]engine.Table, error) {
	k := key(pageIndex, strat.Name)
	if err, ok := f.errs[k]; ok {
		return nil, err
	}
	return f.tables[k], nil
}

func goodTable(x0 float64, md string) *fakeTable {
	return &fakeTable{
		bbox: engine.Rect{X0: x0, Y0: 100, X1: x0 + 200, Y1: 300},
		rows: 3,
		cols: 2,
		md:   md,
	}
}

func TestExtract_NoTables(t *testing.T) {
	det := &fakeDetector{}
	md, attempts := Extract(det, &fakeDoc{pages: 2}, nil)

	if md != "" {
		t.Errorf("expected empty output, got %q", md)
	}
	// 2 pages x 3 strategies, all attempted.
	if len(attempts) != 6 {
		t.Errorf("attempts = %d, want 6", len(attempts))
	}
}

func TestExtract_CrossStrategyDeduplication(t *testing.T) {
	// lines_strict and lines both find the same grid at fractionally
	// different coordinates; only the higher-priority hit survives.
	det := &fakeDetector{
		tables: map[string][]engine.Table{
			key(0, "lines_strict"): {goodTable(100, "| strict |")},
			key(0, "lines"): {&fakeTable{
				bbox: engine.Rect{X0: 101, Y0: 101, X1: 301, Y1: 299},
				rows: 3, cols: 2, md: "| loose |",
			}},
		},
	}

	md, attempts := Extract(det, &fakeDoc{pages: 1}, nil)

	if !strings.Contains(md, "| strict |") {
		t.Error("output should contain the lines_strict table")
	}
	if strings.Contains(md, "| loose |") {
		t.Error("near-duplicate from lower-priority strategy should be dropped")
	}
	if !strings.Contains(md, "strategy=lines_strict") {
		t.Error("table label should name the source strategy")
	}
	if got := CountAccepted(attempts); got != 1 {
		t.Errorf("accepted = %d, want 1", got)
	}
}

func TestExtract_DegenerateTablesDiscarded(t *testing.T) {
	det := &fakeDetector{
		tables: map[string][]engine.Table{
			key(0, "text"): {
				&fakeTable{bbox: engine.Rect{X0: 10, X1: 100, Y1: 50}, rows: 1, cols: 5, md: "| single row |"},
				&fakeTable{bbox: engine.Rect{X0: 200, X1: 300, Y1: 50}, rows: 5, cols: 1, md: "| single col |"},
			},
		},
	}

	md, attempts := Extract(det, &fakeDoc{pages: 1}, nil)

	if md != "" {
		t.Errorf("degenerate tables should be discarded, got %q", md)
	}
	if got := CountAccepted(attempts); got != 0 {
		t.Errorf("accepted = %d, want 0", got)
	}
}

func TestExtract_StrategyFailureSkipsNotAborts(t *testing.T) {
	det := &fakeDetector{
		errs: map[string]error{
			key(0, "lines_strict"): errors.New("detector choked"),
		},
		tables: map[string][]engine.Table{
			key(0, "lines"): {goodTable(100, "| a | b |")},
		},
	}

	md, attempts := Extract(det, &fakeDoc{pages: 1}, nil)

	if !strings.Contains(md, "| a | b |") {
		t.Error("later strategy should still run after a failure")
	}

	var skipped []Attempt
	for _, a := range attempts {
		if a.Err != nil {
			skipped = append(skipped, a)
		}
	}
	if len(skipped) != 1 {
		t.Fatalf("skipped attempts = %d, want 1", len(skipped))
	}
	if skipped[0].Strategy != "lines_strict" || skipped[0].Page != 0 {
		t.Errorf("unexpected skip record: %+v", skipped[0])
	}
}

func TestExtract_RenderFailureInlined(t *testing.T) {
	det := &fakeDetector{
		tables: map[string][]engine.Table{
			key(0, "lines"): {
				&fakeTable{bbox: engine.Rect{X0: 10, X1: 200, Y1: 100}, rows: 2, cols: 2, mdErr: errors.New("bad cells")},
				goodTable(400, "| ok |"),
			},
		},
	}

	md, _ := Extract(det, &fakeDoc{pages: 1}, nil)

	if !strings.Contains(md, "_failed to render table: bad cells_") {
		t.Error("render failure should appear as an inline note")
	}
	if !strings.Contains(md, "| ok |") {
		t.Error("remaining tables should still render")
	}
}

func TestExtract_PageOrderingAndHeadings(t *testing.T) {
	det := &fakeDetector{
		tables: map[string][]engine.Table{
			key(2, "lines"): {goodTable(100, "| third page |")},
			key(0, "lines"): {goodTable(100, "| first page |")},
		},
	}

	md, _ := Extract(det, &fakeDoc{pages: 3}, nil)

	if !strings.HasPrefix(md, "# Extracted tables") {
		t.Error("output should start with the document heading")
	}
	p1 := strings.Index(md, "## Page 1")
	p3 := strings.Index(md, "## Page 3")
	if p1 < 0 || p3 < 0 || p1 > p3 {
		t.Errorf("pages out of order: Page 1 at %d, Page 3 at %d", p1, p3)
	}
	if strings.Contains(md, "## Page 2") {
		t.Error("pages without tables should be omitted")
	}
}

func TestExtract_ExplicitPageRange(t *testing.T) {
	det := &fakeDetector{
		tables: map[string][]engine.Table{
			key(0, "lines"): {goodTable(100, "| page one |")},
			key(1, "lines"): {goodTable(100, "| page two |")},
		},
	}

	md, _ := Extract(det, &fakeDoc{pages: 2}, []int{1})

	if strings.Contains(md, "| page one |") {
		t.Error("pages outside the range should not be extracted")
	}
	if !strings.Contains(md, "| page two |") {
		t.Error("requested page should be extracted")
	}
	if !strings.Contains(md, "## Page 2") {
		t.Error("page heading should use the 1-based page number")
	}
}

func TestExtract_Deterministic(t *testing.T) {
	det := &fakeDetector{
		tables: map[string][]engine.Table{
			key(0, "lines_strict"): {goodTable(100, "| a |"), goodTable(400, "| b |")},
			key(0, "text"):         {goodTable(700, "| c |")},
		},
	}

	first, _ := Extract(det, &fakeDoc{pages: 1}, nil)
	second, _ := Extract(det, &fakeDoc{pages: 1}, nil)

	if first != second {
		t.Error("repeated extraction should be byte-identical")
	}

	// Emission order within a page: strategy priority, then detector order.
	a, b, c := strings.Index(first, "| a |"), strings.Index(first, "| b |"), strings.Index(first, "| c |")
	if !(a < b && b < c) {
		t.Errorf("tables out of order: a=%d b=%d c=%d", a, b, c)
	}
	if !strings.Contains(first, "### Table 3 (strategy=text, rows=3, cols=2)") {
		t.Error("third table should be labeled with its 1-based index and strategy")
	}
}
