// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// pageMeta is the YAML frontmatter written to each chunked page when
// frontmatter output is enabled.
type pageMeta struct {
	SourcePDF   string `yaml:"source_pdf"`
	Page        int    `yaml:"page"`
	PageCount   int    `yaml:"page_count"`
	ConvertedAt string `yaml:"converted_at"`
}

// pageFrontmatter renders the frontmatter block for one page, delimited
// by --- lines and followed by a blank line.
func pageFrontmatter(pdfPath string, page, pageCount int) (string, error) {
	meta := pageMeta{
		SourcePDF:   filepath.Base(pdfPath),
		Page:        page,
		PageCount:   pageCount,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}
