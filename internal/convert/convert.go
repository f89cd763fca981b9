// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the PDF-to-Markdown conversion run: input
// validation, whole-document and per-page output assembly, and table
// section stitching. The document engine is injected, so the package is
// tested against fakes without a real PDF.
// See docs/ARCHITECTURE § Conversion.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfmark/internal/engine"
	"github.com/pdiddy/pdfmark/internal/tables"
	"github.com/pdiddy/pdfmark/pkg/types"
)

// pagesDirSuffix is appended to the input stem to name the chunked
// output directory.
const pagesDirSuffix = "_pages"

var (
	// ErrNotFound reports a missing input file.
	ErrNotFound = errors.New("input file not found")

	// ErrNotPDF reports an input without a .pdf extension. The check is
	// case-insensitive and happens before the file is opened.
	ErrNotPDF = errors.New("input is not a PDF")
)

// Result summarizes one conversion run.
type Result struct {
	// OutputPath is the written file (whole mode) or directory (chunked).
	OutputPath string
	// Pages is the number of source pages.
	Pages int
	// Tables is the number of tables accepted across all pages.
	Tables int
}

// validateInput checks that path exists and carries a .pdf extension.
func validateInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%w: %s", ErrNotPDF, path)
	}
	return nil
}

// renderOptions maps the run options onto the engine's render bundle.
func renderOptions(opts types.Options) engine.RenderOptions {
	return engine.RenderOptions{
		Header: opts.Header,
		Footer: opts.Footer,
		OCR:    opts.OCR,
	}
}

// ConvertWhole converts the PDF at path into a single Markdown file and
// returns the run summary. The output path is opts.OutPath, or the input
// path with its extension replaced by .md. Status lines go to w.
func ConvertWhole(eng engine.Engine, path string, opts types.Options, w io.Writer) (Result, error) {
	if err := validateInput(path); err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "Processing: %s\n", filepath.Base(path))

	// Open once; the handle is shared by rendering and table detection.
	doc, err := eng.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	md, err := eng.RenderDocument(doc, renderOptions(opts))
	if err != nil {
		return Result{}, fmt.Errorf("rendering %s: %w", path, err)
	}

	res := Result{Pages: doc.PageCount()}

	if opts.Tables {
		tablesMD, attempts := tables.Extract(eng, doc, nil)
		res.Tables = tables.CountAccepted(attempts)
		if tablesMD != "" {
			md = strings.TrimRight(md, "\n") + "\n\n" + tablesMD
		}
	}

	outPath := opts.OutPath
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".md"
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", outPath, err)
	}

	res.OutputPath = outPath
	fmt.Fprintf(w, "Saved: %s\n", outPath)
	return res, nil
}

// ConvertChunked converts the PDF at path into one Markdown file per
// page inside a <stem>_pages directory next to the input. Files are
// named page_NNN.md, 1-based and zero-padded to 3 digits. A failure
// partway leaves a directory with fewer files than pages; no cleanup is
// attempted.
func ConvertChunked(eng engine.Engine, path string, opts types.Options, w io.Writer) (Result, error) {
	if err := validateInput(path); err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "Processing (per page): %s\n", filepath.Base(path))

	doc, err := eng.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	chunks, err := eng.RenderPages(doc, renderOptions(opts))
	if err != nil {
		return Result{}, fmt.Errorf("rendering %s: %w", path, err)
	}

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	outDir := stem + pagesDirSuffix
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", outDir, err)
	}

	res := Result{OutputPath: outDir, Pages: len(chunks)}

	for i, chunk := range chunks {
		text := chunk.Text

		if opts.Tables {
			// Only this page's tables; detection reuses the open handle.
			tablesMD, attempts := tables.Extract(eng, doc, []int{i})
			res.Tables += tables.CountAccepted(attempts)
			if tablesMD != "" {
				text = strings.TrimRight(text, "\n") + "\n\n" + tablesMD
			}
		}

		if opts.Frontmatter {
			fm, err := pageFrontmatter(path, i+1, len(chunks))
			if err != nil {
				return Result{}, err
			}
			text = fm + text
		}

		pagePath := filepath.Join(outDir, fmt.Sprintf("page_%03d.md", i+1))
		if err := os.WriteFile(pagePath, []byte(text), 0o644); err != nil {
			return Result{}, fmt.Errorf("writing %s: %w", pagePath, err)
		}
	}

	fmt.Fprintf(w, "Saved %d pages to: %s%c\n", len(chunks), outDir, os.PathSeparator)
	return res, nil
}
