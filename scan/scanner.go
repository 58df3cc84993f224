// Package scan walks site content, extracts translatable strings and feeds
// them into the translation memory.
package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/content"
	"github.com/ZaguanLabs/gotlmem/extract"
	"github.com/ZaguanLabs/gotlmem/store"
)

// Result summarizes one scan pass.
type Result struct {
	Scanned  int // content items visited
	Inserted int // new strings added to the memory
}

// Scanner extracts strings from published content into the store for one
// target language. Scans are idempotent; rerunning one only picks up new
// text.
type Scanner struct {
	memory  *store.Store
	content content.Repository
	lang    string
	logger  *slog.Logger
}

// New creates a Scanner for one target language.
func New(memory *store.Store, repo content.Repository, lang string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{memory: memory, content: repo, lang: lang, logger: logger}
}

// Products scans every published product's title, description and summary.
func (s *Scanner) Products(ctx context.Context) (*Result, error) {
	products, err := s.content.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	res := &Result{}
	for _, p := range products {
		res.Scanned++
		for _, c := range extract.ExtractRecord(p.Title, p.Body, p.Summary) {
			inserted, err := s.memory.Upsert(ctx, c.Text, c.Context, gotlmem.KindProduct, p.ID, s.lang)
			if err != nil {
				return nil, fmt.Errorf("storing string from product %d: %w", p.ID, err)
			}
			if inserted {
				res.Inserted++
			}
		}
	}

	s.logger.Info("product scan finished",
		"lang", s.lang, "scanned", res.Scanned, "inserted", res.Inserted)
	return res, nil
}

// Pages scans every published page's page-builder tree. Pages without
// builder data are counted but contribute nothing.
func (s *Scanner) Pages(ctx context.Context) (*Result, error) {
	pages, err := s.content.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	res := &Result{}
	for _, p := range pages {
		res.Scanned++
		for _, c := range extract.ExtractTree([]byte(p.BuilderData)) {
			inserted, err := s.memory.Upsert(ctx, c.Text, c.Context, gotlmem.KindPageBuilder, p.ID, s.lang)
			if err != nil {
				return nil, fmt.Errorf("storing string from page %d: %w", p.ID, err)
			}
			if inserted {
				res.Inserted++
			}
		}
	}

	s.logger.Info("page scan finished",
		"lang", s.lang, "scanned", res.Scanned, "inserted", res.Inserted)
	return res, nil
}
