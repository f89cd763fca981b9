// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfmark/internal/convert"
	"github.com/pdiddy/pdfmark/internal/engine"
	"github.com/pdiddy/pdfmark/internal/manifest"
	"github.com/pdiddy/pdfmark/internal/markitdown"
	"github.com/pdiddy/pdfmark/internal/plumber"
	"github.com/pdiddy/pdfmark/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <pdf>",
	Short: "Convert a PDF document to Markdown",
	Long: `Convert renders the PDF at the given path to Markdown. By default the
whole document is written to one .md file next to the input, with an
extracted-tables section appended when tables are found. With --chunks,
each page is written to its own file inside a <stem>_pages directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out", "", "output .md path (whole-document mode)")
	convertCmd.Flags().Bool("chunks", false, "write one .md file per page")
	convertCmd.Flags().Bool("no-ocr", false, "disable OCR assist")
	convertCmd.Flags().Bool("no-header", false, "drop repeating page headers")
	convertCmd.Flags().Bool("no-footer", false, "drop repeating page footers")
	convertCmd.Flags().Bool("no-tables", false, "skip explicit table extraction")
	convertCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter to each page file (with --chunks)")
	convertCmd.Flags().String("backend", "", "document engine: plumber or markitdown (default from config)")
	convertCmd.Flags().String("manifest", "", "record the run in a SQLite manifest at this path")

	rootCmd.AddCommand(convertCmd)
}

// optionsFromFlags resolves flags and config-file defaults into the
// immutable run options.
func optionsFromFlags(cmd *cobra.Command) types.Options {
	opts := types.DefaultOptions()

	opts.OutPath, _ = cmd.Flags().GetString("out")
	opts.Chunks, _ = cmd.Flags().GetBool("chunks")
	opts.Frontmatter, _ = cmd.Flags().GetBool("frontmatter")

	noOCR, _ := cmd.Flags().GetBool("no-ocr")
	noHeader, _ := cmd.Flags().GetBool("no-header")
	noFooter, _ := cmd.Flags().GetBool("no-footer")
	noTables, _ := cmd.Flags().GetBool("no-tables")
	opts.OCR = !noOCR
	opts.Header = !noHeader
	opts.Footer = !noFooter
	opts.Tables = !noTables

	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = viper.GetString("backend")
	}
	opts.Backend = types.Backend(backend)

	opts.ManifestPath, _ = cmd.Flags().GetString("manifest")
	if opts.ManifestPath == "" {
		opts.ManifestPath = viper.GetString("manifest")
	}

	return opts
}

// newEngine builds the document engine selected by the options.
func newEngine(backend types.Backend) (engine.Engine, error) {
	switch backend {
	case types.BackendPlumber:
		return plumber.New(), nil
	case types.BackendMarkitdown:
		return markitdown.New()
	default:
		return nil, fmt.Errorf("unknown backend %q (want plumber or markitdown)", backend)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := optionsFromFlags(cmd)

	if opts.Chunks && opts.Backend == types.BackendMarkitdown {
		return fmt.Errorf("--chunks is not supported by the markitdown backend")
	}

	eng, err := newEngine(opts.Backend)
	if err != nil {
		return err
	}

	caps := eng.Capabilities()
	if caps.Layout {
		fmt.Fprintln(os.Stderr, "Layout-aware extraction active")
	}
	if opts.OCR && !caps.OCR {
		fmt.Fprintln(os.Stderr, "OCR assist not available on this backend; continuing without it")
	}

	start := time.Now()

	var res convert.Result
	var mode string
	if opts.Chunks {
		mode = "chunked"
		res, err = convert.ConvertChunked(eng, path, opts, os.Stdout)
	} else {
		mode = "whole"
		res, err = convert.ConvertWhole(eng, path, opts, os.Stdout)
	}
	if err != nil {
		return err
	}

	if opts.ManifestPath != "" {
		if err := recordRun(opts.ManifestPath, path, mode, res, time.Since(start)); err != nil {
			// History is best-effort; the conversion itself succeeded.
			fmt.Fprintf(os.Stderr, "warning: recording manifest: %v\n", err)
		}
	}
	return nil
}

func recordRun(dbPath, input, mode string, res convert.Result, elapsed time.Duration) error {
	store, err := manifest.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(context.Background(), manifest.Run{
		Input:    input,
		Output:   res.OutputPath,
		Mode:     mode,
		Pages:    res.Pages,
		Tables:   res.Tables,
		Duration: elapsed,
	})
}
