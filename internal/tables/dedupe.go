// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"math"

	"github.com/pdiddy/pdfmark/internal/engine"
)

// dedupeTolerance is the page-unit slack under which two bounding boxes
// count as the same table. Fixed, not configurable: detection strategies
// re-find the same grid at fractionally different coordinates, and 2.0
// is the spread observed in practice.
const dedupeTolerance = 2.0

// isDuplicate reports whether r is a near-duplicate of some rectangle in
// seen: every coordinate-wise absolute difference strictly below the
// tolerance. A difference of exactly 2.0 is not a duplicate. Linear scan;
// per-page table counts are single digits.
func isDuplicate(seen []engine.Rect, r engine.Rect) bool {
	for _, s := range seen {
		if math.Abs(r.X0-s.X0) < dedupeTolerance &&
			math.Abs(r.Y0-s.Y0) < dedupeTolerance &&
			math.Abs(r.X1-s.X1) < dedupeTolerance &&
			math.Abs(r.Y1-s.Y1) < dedupeTolerance {
			return true
		}
	}
	return false
}
