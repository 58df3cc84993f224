package web

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/content"
)

func markEverythingTranslated(t *testing.T, app *testApp, prefix string) {
	t.Helper()
	ctx := context.Background()
	pending, err := app.memory.PendingStrings(ctx, "es", 100)
	require.NoError(t, err)
	for _, p := range pending {
		require.NoError(t, app.memory.MarkTranslated(ctx, p.ID, prefix+p.Original))
	}
}

func TestSiteServesSourceLanguage(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.repo.SaveProduct(ctx, content.Product{
		Slug: "blue-widget", Title: "Blue Widget", Summary: "The best.", Body: "<p>Body text</p>",
	})
	require.NoError(t, err)

	rec, _ := app.request(t, http.MethodGet, "/blue-widget", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<h1>Blue Widget</h1>")
	assert.Contains(t, body, `lang="en"`)
	assert.Contains(t, body, "gt-switcher", "switcher rendered")
	assert.Contains(t, body, `href="/es/blue-widget"`, "switcher links the translated variant")
}

func TestSiteServesTranslatedProduct(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	id, err := app.repo.SaveProduct(ctx, content.Product{
		Slug: "blue-widget", Title: "Blue Widget", Summary: "The best.", Body: "Body text",
	})
	require.NoError(t, err)
	for _, text := range []string{"Blue Widget", "The best.", "Body text"} {
		_, err := app.memory.Upsert(ctx, text, "product_title", gotlmem.KindProduct, id, "es")
		require.NoError(t, err)
	}
	markEverythingTranslated(t, app, "ES:")

	rec, _ := app.request(t, http.MethodGet, "/es/blue-widget", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "ES:Blue Widget")
	assert.Contains(t, body, "ES:The best.")
	assert.Contains(t, body, `lang="es"`)
}

func TestSiteServesTranslatedPageWithRewrite(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	id, err := app.repo.SavePage(ctx, content.Page{
		Slug:         "about",
		Title:        "About Us",
		BuilderData:  `[{"settings": {"title": "Our Story"}}]`,
		RenderedHTML: `<div><h2>Our Story</h2><a href="/contact">Contact</a></div>`,
	})
	require.NoError(t, err)
	_, err = app.memory.Upsert(ctx, "Our Story", "builder_title", gotlmem.KindPageBuilder, id, "es")
	require.NoError(t, err)
	markEverythingTranslated(t, app, "ES:")

	rec, _ := app.request(t, http.MethodGet, "/es/about", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "ES:Our Story", "bulk replacement applied")
	assert.Contains(t, body, `href="/es/contact"`, "internal links prefixed")
	assert.Contains(t, body, `href="/es/about"`, "switcher target link protected from double prefix")
	assert.NotContains(t, body, "/es/es/", "no double prefixing")
}

func TestSitePendingStringsDegradeGracefully(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.repo.SaveProduct(ctx, content.Product{
		Slug: "w", Title: "Untranslated Title", Summary: "", Body: "",
	})
	require.NoError(t, err)

	rec, _ := app.request(t, http.MethodGet, "/es/w", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Untranslated Title", "missing translation falls back to source")
}

func TestSiteUnknownSlugIs404(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.request(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
