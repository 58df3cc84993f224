package web

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/gotlmem"
)

// TranslationMap is the request-scoped hash-to-translation lookup. It is
// built once per request from the store and carried in the request context;
// it is never shared between requests.
type TranslationMap map[string]string

// Lookup returns the translation for original, or original itself when none
// exists. Missing translations degrade gracefully to the source text.
func (m TranslationMap) Lookup(original string) string {
	if len(m) == 0 {
		return original
	}
	if t, ok := m[gotlmem.HashText(strings.TrimSpace(original))]; ok && t != "" {
		return t
	}
	return original
}

// WithTranslations attaches a TranslationMap to the context.
func WithTranslations(ctx context.Context, m TranslationMap) context.Context {
	return context.WithValue(ctx, translationsKey, m)
}

// TranslationsFrom returns the context's TranslationMap, which may be nil.
func TranslationsFrom(ctx context.Context) TranslationMap {
	m, _ := ctx.Value(translationsKey).(TranslationMap)
	return m
}
