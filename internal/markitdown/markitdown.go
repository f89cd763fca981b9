// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markitdown implements a document engine that pipes PDFs
// through the markitdown container image (docker or podman). It only
// renders whole documents: the container pipe exposes no page structure
// and no table geometry, so per-page rendering and table detection
// report ErrUnsupported.
// See docs/ARCHITECTURE § Engines.
package markitdown

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/pdfmark/internal/engine"
)

const image = "markitdown:latest"

// Engine converts PDFs via a containerized markitdown.
type Engine struct {
	run *runner
}

// New detects a container runtime and verifies the markitdown image
// exists locally before returning the engine.
func New() (*Engine, error) {
	return newEngine(defaultExec)
}

func newEngine(exec executor) (*Engine, error) {
	run, err := detectRunner(exec)
	if err != nil {
		return nil, err
	}
	if err := run.imageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", run.bin, err)
	}
	return &Engine{run: run}, nil
}

// Capabilities: markitdown applies its own fixed pipeline; no layout
// tuning, no OCR control.
func (e *Engine) Capabilities() engine.Capabilities {
	return engine.Capabilities{}
}

// document holds only the path; the container reads the file per render.
type document struct {
	path string
}

// PageCount is unknown without rendering; 0 means "cannot know".
func (d *document) PageCount() int { return 0 }
func (d *document) Close() error   { return nil }

// Open checks the file is readable. The actual read happens at render
// time, when the bytes are piped into the container.
func (e *Engine) Open(path string) (engine.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	f.Close()
	return &document{path: path}, nil
}

// RenderDocument pipes the PDF through the markitdown container and
// returns the resulting Markdown.
func (e *Engine) RenderDocument(doc engine.Document, opts engine.RenderOptions) (string, error) {
	d, ok := doc.(*document)
	if !ok {
		return "", fmt.Errorf("document was not opened by the markitdown engine")
	}

	f, err := os.Open(d.path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", d.path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := e.run.run(image, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", d.path, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", d.path)
	}
	return out.String(), nil
}

// RenderPages is not available through the container pipe.
func (e *Engine) RenderPages(doc engine.Document, opts engine.RenderOptions) ([]engine.PageChunk, error) {
	return nil, fmt.Errorf("per-page rendering: %w", engine.ErrUnsupported)
}

// FindTables is not available through the container pipe.
func (e *Engine) FindTables(doc engine.Document, pageIndex int, strat engine.Strategy) ([]engine.Table, error) {
	return nil, fmt.Errorf("table detection: %w", engine.ErrUnsupported)
}
