package web

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/content"
	"github.com/ZaguanLabs/gotlmem/store"
)

// Site serves the public localized pages.
type Site struct {
	memory  *store.Store
	content content.Repository
	source  string
	target  string
	logger  *slog.Logger
}

// NewSite creates the public site handler.
func NewSite(memory *store.Store, repo content.Repository, source, target string, logger *slog.Logger) *Site {
	if logger == nil {
		logger = slog.Default()
	}
	return &Site{memory: memory, content: repo, source: source, target: target, logger: logger}
}

// ServeContent resolves the request path to a page or product and renders
// it in the active language. The language middleware has already unwrapped
// the prefix, so the path here is language-neutral.
func (s *Site) ServeContent(w http.ResponseWriter, r *http.Request) {
	res := ResolutionFrom(r.Context())
	slug := strings.Trim(r.URL.Path, "/")
	if slug == "" {
		slug = "home"
	}

	// The lookup map is built once per request and lives in this request's
	// context only.
	if res.Translated {
		raw, err := s.memory.TranslationMap(r.Context(), s.target)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		r = r.WithContext(WithTranslations(r.Context(), TranslationMap(raw)))
	}

	if page, err := s.content.PageBySlug(r.Context(), slug); err == nil {
		s.servePage(w, r, page, res)
		return
	}
	if product, err := s.content.ProductBySlug(r.Context(), slug); err == nil {
		s.serveProduct(w, r, product, res)
		return
	}

	http.NotFound(w, r)
}

func (s *Site) servePage(w http.ResponseWriter, r *http.Request, page *content.Page, res Resolution) {
	body := page.RenderedHTML
	title := page.Title

	if res.Translated {
		rm, err := s.memory.ReplacementMap(r.Context(), s.target, gotlmem.KindPageBuilder)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		// One pass over the rendered HTML; longer originals first so a
		// string that contains another is replaced as a whole.
		body = bulkReplace(body, rm)
		title = TranslationsFrom(r.Context()).Lookup(title)
	}

	s.respond(w, r, res, title, body)
}

func (s *Site) serveProduct(w http.ResponseWriter, r *http.Request, product *content.Product, res Resolution) {
	title, summary, body := product.Title, product.Summary, product.Body

	if res.Translated {
		tm := TranslationsFrom(r.Context())
		title = tm.Lookup(title)
		summary = tm.Lookup(summary)
		body = tm.Lookup(body)
	}

	rendered := fmt.Sprintf(`<article class="product"><h1>%s</h1><p class="summary">%s</p>%s</article>`,
		html.EscapeString(title), html.EscapeString(summary), body)
	s.respond(w, r, res, title, rendered)
}

// respond wraps the content in the document shell, injects the switcher and
// runs the final rewrite pass when serving translated.
func (s *Site) respond(w http.ResponseWriter, r *http.Request, res Resolution, title, body string) {
	style, err := s.memory.SwitcherStyle(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sw := NewSwitcher(s.source, s.target, style)

	currentPath := r.URL.Path
	doc := fmt.Sprintf(`<!DOCTYPE html>
<html lang=%q><head><meta charset="utf-8"><title>%s</title><style>%s</style></head>
<body>%s%s</body></html>`,
		res.Lang, html.EscapeString(title), sw.CSS(), sw.Render(currentPath, res.Lang), body)

	if res.Translated {
		doc, err = RewriteHTML(doc, s.target)
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}

func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("rendering failed", "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// bulkReplace applies every original-to-translated pair in a single pass,
// longest originals first.
func bulkReplace(text string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return text
	}

	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, replacements[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
