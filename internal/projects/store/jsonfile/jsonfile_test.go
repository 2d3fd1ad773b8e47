package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio-labs/portfolio-backend/internal/projects/domain"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", "projects.json"))
}

func draft(title string) domain.Project {
	return domain.New(domain.Draft{Title: title, Description: "d", Category: "c"}, time.Now().UTC())
}

func TestListAbsentFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	projects, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		p, err := s.Append(ctx, draft("p"))
		require.NoError(t, err)
		assert.Equal(t, i, p.ID)
	}
}

func TestAppendAfterRemovingNonMaxID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Append(ctx, draft("p"))
		require.NoError(t, err)
	}

	_, err := s.Remove(ctx, 2)
	require.NoError(t, err)

	// max is still 3, so the freed id 2 is never handed out again
	p, err := s.Append(ctx, draft("p"))
	require.NoError(t, err)
	assert.Equal(t, 4, p.ID)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Append(ctx, draft(title))
		require.NoError(t, err)
	}

	projects, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "first", projects[0].Title)
	assert.Equal(t, "third", projects[2].Title)
}

func TestGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Append(ctx, draft("target"))
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		p, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Title, p.Title)
		assert.Equal(t, created.Slug, p.Slug)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get(ctx, 999)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestReplace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Append(ctx, draft("before"))
	require.NoError(t, err)

	created.Title = "after"
	updated, err := s.Replace(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, created.ID, updated.ID)

	_, err = s.Replace(ctx, 999, created)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoveMissingLeavesDocumentUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, draft("keeper"))
	require.NoError(t, err)

	before, err := os.ReadFile(s.path)
	require.NoError(t, err)

	_, err = s.Remove(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)

	after, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed delete must not rewrite the document")
}

func TestDocumentIsPrettyPrintedArray(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, draft("p"))
	require.NoError(t, err)

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {", "document should be indented")

	var projects []domain.Project
	require.NoError(t, json.Unmarshal(data, &projects))
	assert.Len(t, projects, 1)
}

func TestEmptyFileReadsAsEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := New(path)
	projects, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

// The original implementation could lose one of two racing read-modify-write
// cycles. The store now serializes mutations behind a lock, so concurrent
// appends all land and all ids stay unique.
func TestConcurrentAppendsAllPersist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Append(ctx, draft("concurrent"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	projects, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, n)

	seen := make(map[int]bool, n)
	for _, p := range projects {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}
