// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Run{
		Input:    "report.pdf",
		Output:   "report.md",
		Mode:     "whole",
		Pages:    12,
		Tables:   3,
		Duration: 1500 * time.Millisecond,
	}))
	require.NoError(t, s.Record(ctx, Run{
		Input:  "slides.pdf",
		Output: "slides_pages",
		Mode:   "chunked",
		Pages:  40,
	}))

	runs, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "slides.pdf", runs[0].Input)
	assert.Equal(t, "chunked", runs[0].Mode)
	assert.Equal(t, "report.pdf", runs[1].Input)
	assert.Equal(t, 3, runs[1].Tables)
	assert.Equal(t, 1500*time.Millisecond, runs[1].Duration)
	assert.False(t, runs[1].CreatedAt.IsZero())
}

func TestListLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, Run{Input: "a.pdf", Output: "a.md", Mode: "whole"}))
	}

	runs, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "manifest.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Record(context.Background(), Run{Input: "x.pdf", Output: "x.md", Mode: "whole"}))
}
