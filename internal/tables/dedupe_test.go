// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"testing"

	"github.com/pdiddy/pdfmark/internal/engine"
)

func TestIsDuplicate(t *testing.T) {
	base := engine.Rect{X0: 100, Y0: 200, X1: 300, Y1: 400}

	tests := []struct {
		name      string
		seen      []engine.Rect
		candidate engine.Rect
		want      bool
	}{
		{
			name:      "empty seen list",
			seen:      nil,
			candidate: base,
			want:      false,
		},
		{
			name:      "exact match",
			seen:      []engine.Rect{base},
			candidate: base,
			want:      true,
		},
		{
			name:      "all coordinates just inside tolerance",
			seen:      []engine.Rect{base},
			candidate: engine.Rect{X0: 101.9, Y0: 198.1, X1: 301.9, Y1: 398.1},
			want:      true,
		},
		{
			name:      "one coordinate exactly at tolerance is not a duplicate",
			seen:      []engine.Rect{base},
			candidate: engine.Rect{X0: 102, Y0: 200, X1: 300, Y1: 400},
			want:      false,
		},
		{
			name:      "one coordinate beyond tolerance",
			seen:      []engine.Rect{base},
			candidate: engine.Rect{X0: 100, Y0: 200, X1: 300, Y1: 403},
			want:      false,
		},
		{
			name: "duplicate of a later entry",
			seen: []engine.Rect{
				{X0: 0, Y0: 0, X1: 10, Y1: 10},
				base,
			},
			candidate: engine.Rect{X0: 100.5, Y0: 200.5, X1: 299.5, Y1: 399.5},
			want:      true,
		},
		{
			name:      "negative direction differences count too",
			seen:      []engine.Rect{base},
			candidate: engine.Rect{X0: 98.1, Y0: 198.1, X1: 298.1, Y1: 398.1},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicate(tt.seen, tt.candidate); got != tt.want {
				t.Errorf("isDuplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}
