// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plumber implements the document engine on top of
// pdfplumber-golang: in-process text extraction and strategy-driven
// table detection. This is the production backend.
// See docs/ARCHITECTURE § Engines.
package plumber

import (
	"fmt"
	"strings"

	pdfplumber "github.com/pyhub-apps/pdfplumber-golang"

	"github.com/pdiddy/pdfmark/internal/engine"
)

// bandFraction is the slice of page height treated as the running
// header or footer band when suppression is requested.
const bandFraction = 0.06

// strictTextTolerance tightens character grouping for the lines_strict
// strategy, so only cleanly ruled grids are detected.
const strictTextTolerance = 1.0

// pageSeparator joins pages in whole-document output.
const pageSeparator = "\n\n-----\n\n"

// Engine is the pdfplumber-backed document engine.
type Engine struct{}

// New returns the pdfplumber engine.
func New() *Engine {
	return &Engine{}
}

// Capabilities reports layout-aware extraction. pdfplumber has no OCR;
// the CLI tells the user when OCR was requested but unavailable.
func (e *Engine) Capabilities() engine.Capabilities {
	return engine.Capabilities{Layout: true, OCR: false}
}

// Open opens the PDF at path.
func (e *Engine) Open(path string) (engine.Document, error) {
	doc, err := pdfplumber.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &document{doc: doc}, nil
}

// document wraps the pdfplumber handle.
type document struct {
	doc pdfplumber.Document
}

func (d *document) PageCount() int { return d.doc.PageCount() }
func (d *document) Close() error   { return d.doc.Close() }

// page resolves the 0-based page from a document opened by this engine.
func (e *Engine) page(doc engine.Document, index int) (pdfplumber.Page, error) {
	d, ok := doc.(*document)
	if !ok {
		return nil, fmt.Errorf("document was not opened by the plumber engine")
	}
	p, err := d.doc.GetPage(index)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: %w", index+1, err)
	}
	return p, nil
}

// RenderDocument renders every page and joins them with a separator
// line, keeping page context in long documents.
func (e *Engine) RenderDocument(doc engine.Document, opts engine.RenderOptions) (string, error) {
	chunks, err := e.RenderPages(doc, opts)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = strings.TrimRight(c.Text, "\n")
	}
	return strings.Join(parts, pageSeparator) + "\n", nil
}

// RenderPages extracts layout-aware text per page. Header and footer
// suppression crops a fixed band off the top or bottom of each page
// before extraction.
func (e *Engine) RenderPages(doc engine.Document, opts engine.RenderOptions) ([]engine.PageChunk, error) {
	d, ok := doc.(*document)
	if !ok {
		return nil, fmt.Errorf("document was not opened by the plumber engine")
	}

	count := d.doc.PageCount()
	chunks := make([]engine.PageChunk, 0, count)

	for i := 0; i < count; i++ {
		p, err := e.page(doc, i)
		if err != nil {
			return nil, err
		}
		p = cropBands(p, opts.Header, opts.Footer)
		text := p.ExtractText(pdfplumber.WithLayout(true))
		chunks = append(chunks, engine.PageChunk{Number: i + 1, Text: text})
	}
	return chunks, nil
}

// cropBands trims the header and footer bands when suppression is on.
func cropBands(p pdfplumber.Page, header, footer bool) pdfplumber.Page {
	if header && footer {
		return p
	}
	bbox := p.GetBBox()
	band := (bbox.Y1 - bbox.Y0) * bandFraction
	if !header {
		bbox.Y0 += band
	}
	if !footer {
		bbox.Y1 -= band
	}
	return p.Crop(bbox)
}

// FindTables runs one detection strategy against a page. Strategy names
// match the orchestrator's fixed priority list; the text strategy maps
// its vertical word-alignment minimum onto the extractor's minimum
// table size.
func (e *Engine) FindTables(doc engine.Document, pageIndex int, strat engine.Strategy) ([]engine.Table, error) {
	var opts []pdfplumber.TableExtractionOption
	switch strat.Name {
	case "lines_strict":
		opts = append(opts,
			pdfplumber.WithTableStrategy("lines", "lines"),
			pdfplumber.WithTextTolerance(strictTextTolerance))
	case "lines":
		opts = append(opts, pdfplumber.WithTableStrategy("lines", "lines"))
	case "text":
		opts = append(opts, pdfplumber.WithTableStrategy("text", "text"))
		if strat.MinWordsVertical > 0 {
			opts = append(opts, pdfplumber.WithMinTableSize(strat.MinWordsVertical))
		}
	default:
		return nil, fmt.Errorf("unknown table strategy %q", strat.Name)
	}

	p, err := e.page(doc, pageIndex)
	if err != nil {
		return nil, err
	}

	found := p.ExtractTables(opts...)
	out := make([]engine.Table, len(found))
	for i := range found {
		out[i] = &table{t: found[i]}
	}
	return out, nil
}
