package content

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/store"
)

func testRepo(t *testing.T) *SQLRepository {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.Migrate(db))
	return NewRepository(db)
}

func TestSaveProductUpsertsBySlug(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	id, err := r.SaveProduct(ctx, Product{Slug: "blue-widget", Title: "Blue Widget"})
	require.NoError(t, err)

	id2, err := r.SaveProduct(ctx, Product{Slug: "blue-widget", Title: "Blue Widget v2"})
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	p, err := r.ProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Blue Widget v2", p.Title)
	assert.Equal(t, StatusPublish, p.Status)
}

func TestListProductsPublishedOnly(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	_, err := r.SaveProduct(ctx, Product{Slug: "live", Title: "Live"})
	require.NoError(t, err)
	_, err = r.SaveProduct(ctx, Product{Slug: "hidden", Title: "Hidden", Status: "draft"})
	require.NoError(t, err)

	products, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "live", products[0].Slug)
}

func TestPageRoundTrip(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	id, err := r.SavePage(ctx, Page{
		Slug:         "about",
		Title:        "About Us",
		BuilderData:  `[{"settings":{"title":"Hello"}}]`,
		RenderedHTML: "<h1>Hello</h1>",
	})
	require.NoError(t, err)

	p, err := r.PageBySlug(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "<h1>Hello</h1>", p.RenderedHTML)

	var nf *gotlmem.NotFoundError
	_, err = r.PageBySlug(ctx, "missing")
	require.ErrorAs(t, err, &nf)
}

func TestLiveStatusTransitions(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	id, err := r.SaveProduct(ctx, Product{Slug: "widget", Title: "Widget"})
	require.NoError(t, err)

	live, err := r.Live(ctx, gotlmem.KindProduct, id)
	require.NoError(t, err)
	assert.True(t, live)

	// Drafts still count as live; their strings stay in the memory.
	require.NoError(t, r.SetStatus(ctx, gotlmem.KindProduct, id, "draft"))
	live, err = r.Live(ctx, gotlmem.KindProduct, id)
	require.NoError(t, err)
	assert.True(t, live)

	require.NoError(t, r.SetStatus(ctx, gotlmem.KindProduct, id, "trash"))
	live, err = r.Live(ctx, gotlmem.KindProduct, id)
	require.NoError(t, err)
	assert.False(t, live)

	live, err = r.Live(ctx, gotlmem.KindProduct, 9999)
	require.NoError(t, err)
	assert.False(t, live, "unknown id is not live")
}
