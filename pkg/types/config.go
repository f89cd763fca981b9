package types

// Backend identifies the document engine used for a conversion.
type Backend string

const (
	// BackendPlumber extracts text and tables in-process via pdfplumber.
	BackendPlumber Backend = "plumber"
	// BackendMarkitdown pipes the PDF through a markitdown container.
	BackendMarkitdown Backend = "markitdown"
)

// Options holds the resolved settings for one conversion run. It is built
// once from CLI flags and config-file defaults, then read-only.
type Options struct {
	// OutPath is the output file for whole-document mode. Empty means the
	// input path with its extension replaced by .md.
	OutPath string `json:"out_path,omitempty" yaml:"out_path,omitempty"`

	// Chunks selects one-file-per-page output instead of a single file.
	Chunks bool `json:"chunks" yaml:"chunks"`

	// OCR requests OCR assist from the engine where supported.
	OCR bool `json:"ocr" yaml:"ocr"`

	// Header keeps running page headers in the rendered text.
	Header bool `json:"header" yaml:"header"`

	// Footer keeps running page footers in the rendered text.
	Footer bool `json:"footer" yaml:"footer"`

	// Tables enables explicit table extraction appended to the output.
	Tables bool `json:"tables" yaml:"tables"`

	// Frontmatter prepends YAML frontmatter to each chunked page file.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`

	// Backend selects the document engine: plumber or markitdown.
	Backend Backend `json:"backend" yaml:"backend"`

	// ManifestPath, when set, records the run in a SQLite manifest.
	ManifestPath string `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
}

// DefaultOptions returns the option set used when no flags are given:
// whole-document mode with OCR, headers, footers, and tables enabled.
func DefaultOptions() Options {
	return Options{
		OCR:     true,
		Header:  true,
		Footer:  true,
		Tables:  true,
		Backend: BackendPlumber,
	}
}
