package scan

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/gotlmem/content"
	"github.com/ZaguanLabs/gotlmem/store"
)

func testEnv(t *testing.T) (*store.Store, *content.SQLRepository) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.Migrate(db))

	return store.New(db), content.NewRepository(db)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScanProducts(t *testing.T) {
	st, repo := testEnv(t)
	ctx := context.Background()

	_, err := repo.SaveProduct(ctx, content.Product{
		Slug:    "blue-widget",
		Title:   "Blue Widget",
		Body:    "<p>The best widget.</p>",
		Summary: "Best widget!",
	})
	require.NoError(t, err)
	_, err = repo.SaveProduct(ctx, content.Product{
		Slug: "hidden", Title: "Hidden", Status: "draft",
	})
	require.NoError(t, err)

	s := New(st, repo, "es", quietLogger())
	res, err := s.Products(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Scanned, "drafts are not scanned")
	assert.Equal(t, 3, res.Inserted)

	// Rerunning is idempotent.
	res, err = s.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Scanned)
	assert.Zero(t, res.Inserted)
}

func TestScanPages(t *testing.T) {
	st, repo := testEnv(t)
	ctx := context.Background()

	_, err := repo.SavePage(ctx, content.Page{
		Slug: "about",
		BuilderData: `[{"settings": {"title": "About Us", "title_color": "#333"}},
			{"settings": {"text": "We make widgets"}}]`,
	})
	require.NoError(t, err)
	_, err = repo.SavePage(ctx, content.Page{Slug: "empty"})
	require.NoError(t, err)

	s := New(st, repo, "es", quietLogger())
	res, err := s.Pages(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Scanned, "pages without builder data still count")
	assert.Equal(t, 2, res.Inserted, "style tokens are filtered out")

	pending, err := st.PendingStrings(ctx, "es", 10)
	require.NoError(t, err)
	texts := make([]string, 0, len(pending))
	for _, p := range pending {
		texts = append(texts, p.Original)
	}
	assert.ElementsMatch(t, []string{"About Us", "We make widgets"}, texts)
}

func TestScanSharedTextAcrossKinds(t *testing.T) {
	st, repo := testEnv(t)
	ctx := context.Background()

	_, err := repo.SaveProduct(ctx, content.Product{Slug: "w", Title: "Great Deal"})
	require.NoError(t, err)
	_, err = repo.SavePage(ctx, content.Page{
		Slug:        "promo",
		BuilderData: `[{"settings": {"title": "Great Deal"}}]`,
	})
	require.NoError(t, err)

	s := New(st, repo, "es", quietLogger())
	pres, err := s.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pres.Inserted)

	gres, err := s.Pages(ctx)
	require.NoError(t, err)
	assert.Zero(t, gres.Inserted, "same text shares one memory row")

	pending, err := st.PendingStrings(ctx, "es", 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	locs, err := st.LocationsByString(ctx, pending[0].ID)
	require.NoError(t, err)
	assert.Len(t, locs, 2)
}
