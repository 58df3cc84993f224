// Package web serves the localized site: language resolution, URL and HTML
// rewriting, the server-side switcher and the JSON admin API.
package web

import (
	"context"
	"net/http"
	"strings"
)

// CookieName stores the visitor's language choice.
const CookieName = "gt_language"

// cookieMaxAge keeps the choice for one year.
const cookieMaxAge = 365 * 24 * 60 * 60

type ctxKey int

const (
	langKey ctxKey = iota
	translationsKey
)

// Resolution is the outcome of language resolution for one request.
type Resolution struct {
	Lang       string
	Translated bool // serve translated content
}

// Resolver decides the active language for each request. The URL prefix is
// authoritative; the cookie follows the URL, not the other way around.
type Resolver struct {
	source string
	target string
}

// NewResolver creates a Resolver for a source/target language pair.
func NewResolver(source, target string) *Resolver {
	return &Resolver{source: source, target: target}
}

// Middleware resolves the language, syncs the cookie and unwraps the
// language prefix from the request path. Page URLs decide the language on
// their own; only system paths, which never carry a prefix, fall back to
// the cookie. A plain URL with a stale target cookie resets the cookie to
// the source language.
func (rv *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := rv.source

		if stripped, ok := stripLangPrefix(r.URL.Path, rv.target); ok {
			lang = rv.target
			r.URL.Path = stripped
		} else if isSystemPath(r.URL.Path) {
			if c, err := r.Cookie(CookieName); err == nil && c.Value == rv.target {
				lang = rv.target
			}
		}

		if c, err := r.Cookie(CookieName); err != nil || c.Value != lang {
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    lang,
				Path:     "/",
				MaxAge:   cookieMaxAge,
				SameSite: http.SameSiteLaxMode,
			})
		}

		res := Resolution{Lang: lang, Translated: lang == rv.target}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), langKey, res)))
	})
}

// ResolutionFrom returns the request's language resolution. Outside the
// middleware it reports the zero value.
func ResolutionFrom(ctx context.Context) Resolution {
	res, _ := ctx.Value(langKey).(Resolution)
	return res
}

// stripLangPrefix unwraps /{lang}/rest to /rest. A bare /{lang} maps to /.
func stripLangPrefix(path, lang string) (string, bool) {
	prefix := "/" + lang
	if path == prefix {
		return "/", true
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix):], true
	}
	return path, false
}
