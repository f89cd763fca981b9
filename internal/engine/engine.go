// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine defines the document-engine contracts that conversion and
// table extraction are written against. All PDF parsing, text rendering,
// and table detection happen behind these interfaces; the orchestration
// packages never touch a PDF library directly, so they test against fakes.
// See docs/ARCHITECTURE § Engine Contracts.
package engine

import "errors"

// ErrUnsupported is returned by an engine for an operation it cannot
// serve (for example per-page rendering on the markitdown backend).
var ErrUnsupported = errors.New("operation not supported by this engine")

// OCRDPI is the raster resolution requested when OCR assist is enabled.
const OCRDPI = 400

// Document is an open document handle. It is opened once per run and
// shared read-only between text rendering and table detection.
type Document interface {
	// PageCount returns the number of pages, or 0 when the engine cannot
	// know it without rendering.
	PageCount() int

	// Close releases the handle.
	Close() error
}

// RenderOptions is the configuration bundle passed to a Renderer.
// Raster images are never embedded in the output.
type RenderOptions struct {
	// Header keeps running page headers; false asks the engine to
	// suppress them.
	Header bool
	// Footer keeps running page footers.
	Footer bool
	// OCR enables OCR assist at OCRDPI where the engine supports it.
	OCR bool
}

// PageChunk is one page of rendered Markdown.
type PageChunk struct {
	// Number is the 1-based page number.
	Number int
	// Text is the page's Markdown text.
	Text string
}

// Renderer turns an open document into Markdown.
type Renderer interface {
	// RenderDocument renders the whole document as one Markdown string.
	RenderDocument(doc Document, opts RenderOptions) (string, error)

	// RenderPages renders the document as an ordered per-page sequence.
	RenderPages(doc Document, opts RenderOptions) ([]PageChunk, error)
}

// Rect is a rectangle in page space: left, top, right, bottom.
// Coordinate sanity (X0 <= X1, Y0 <= Y1) is inherited from the detector,
// not enforced here.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Strategy names a table-detection heuristic with its tuning parameters.
type Strategy struct {
	// Name is the detector strategy: lines_strict, lines, or text.
	Name string
	// MinWordsVertical is the minimum vertical word alignment for the
	// text strategy (0 means detector default).
	MinWordsVertical int
	// MinWordsHorizontal is the horizontal counterpart.
	MinWordsHorizontal int
}

// TableOptions controls Markdown rendering of a detected table.
type TableOptions struct {
	// Clean preserves raw cell whitespace when false.
	Clean bool
	// FillEmpty writes blank cells instead of omitting them, keeping the
	// grid shape at the cost of raw-text fidelity.
	FillEmpty bool
}

// Table is one detected table on a page.
type Table interface {
	// BBox returns the table's bounding rectangle in page space.
	BBox() Rect

	// RowCount returns the number of detected rows.
	RowCount() int

	// ColCount returns the number of detected columns.
	ColCount() int

	// Markdown renders the table as a Markdown block.
	Markdown(opts TableOptions) (string, error)
}

// Detector finds tables on one page of an open document.
type Detector interface {
	// FindTables runs one strategy against the 0-based page and returns
	// the tables it detected, in emission order.
	FindTables(doc Document, pageIndex int, strat Strategy) ([]Table, error)
}

// Capabilities reports what an engine can do. It is resolved once at
// startup and passed around explicitly rather than probed mid-run.
type Capabilities struct {
	// Layout reports layout-aware text extraction.
	Layout bool
	// OCR reports OCR assist for scanned pages.
	OCR bool
}

// Engine bundles the full document capability: opening a file, rendering
// it to Markdown, and detecting tables on its pages.
type Engine interface {
	// Open opens the document at path.
	Open(path string) (Document, error)

	// Capabilities reports what this engine supports.
	Capabilities() Capabilities

	Renderer
	Detector
}
