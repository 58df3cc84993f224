// Package content reads and writes the site content the translation
// pipeline scans: flat product records and page-builder pages.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ZaguanLabs/gotlmem"
)

// StatusPublish is the only status the scanner and renderer consider live.
const StatusPublish = "publish"

// Product is a flat content record with three translatable fields.
type Product struct {
	ID      int64
	Slug    string
	Title   string
	Body    string
	Summary string
	Status  string
}

// Page carries a raw page-builder JSON tree plus its rendered HTML.
type Page struct {
	ID           int64
	Slug         string
	Title        string
	BuilderData  string
	RenderedHTML string
	Status       string
}

// Repository is the content access surface the pipeline depends on.
// Scanning enumerates published items, rendering resolves slugs, and
// reconciliation asks whether a referenced item is still live.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListPages(ctx context.Context) ([]Page, error)
	ProductByID(ctx context.Context, id int64) (*Product, error)
	PageByID(ctx context.Context, id int64) (*Page, error)
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	PageBySlug(ctx context.Context, slug string) (*Page, error)
	Live(ctx context.Context, kind gotlmem.SourceKind, sourceID int64) (bool, error)
}

// SQLRepository implements Repository over the shared SQLite database.
type SQLRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLRepository)(nil)

// NewRepository creates a SQLRepository over an open database.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// ListProducts returns every published product, oldest-first.
func (r *SQLRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slug, title, body, summary, status
		FROM content_products
		WHERE status = ?
		ORDER BY id`, StatusPublish)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Summary, &p.Status); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPages returns every published page, oldest-first.
func (r *SQLRepository) ListPages(ctx context.Context) ([]Page, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slug, title, builder_data, rendered_html, status
		FROM content_pages
		WHERE status = ?
		ORDER BY id`, StatusPublish)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.BuilderData, &p.RenderedHTML, &p.Status); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProductByID fetches one product regardless of status.
func (r *SQLRepository) ProductByID(ctx context.Context, id int64) (*Product, error) {
	return r.scanProduct(r.db.QueryRowContext(ctx, `
		SELECT id, slug, title, body, summary, status
		FROM content_products WHERE id = ?`, id), id)
}

// ProductBySlug fetches one published product by slug.
func (r *SQLRepository) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.scanProduct(r.db.QueryRowContext(ctx, `
		SELECT id, slug, title, body, summary, status
		FROM content_products WHERE slug = ? AND status = ?`, slug, StatusPublish), 0)
}

// PageByID fetches one page regardless of status.
func (r *SQLRepository) PageByID(ctx context.Context, id int64) (*Page, error) {
	return r.scanPage(r.db.QueryRowContext(ctx, `
		SELECT id, slug, title, builder_data, rendered_html, status
		FROM content_pages WHERE id = ?`, id), id)
}

// PageBySlug fetches one published page by slug.
func (r *SQLRepository) PageBySlug(ctx context.Context, slug string) (*Page, error) {
	return r.scanPage(r.db.QueryRowContext(ctx, `
		SELECT id, slug, title, builder_data, rendered_html, status
		FROM content_pages WHERE slug = ? AND status = ?`, slug, StatusPublish), 0)
}

// Live reports whether a referenced content item still exists and is not
// trashed. Draft and private items count as live: their strings stay in the
// memory until the item is actually discarded.
func (r *SQLRepository) Live(ctx context.Context, kind gotlmem.SourceKind, sourceID int64) (bool, error) {
	var table string
	switch kind {
	case gotlmem.KindProduct:
		table = "content_products"
	case gotlmem.KindPageBuilder:
		table = "content_pages"
	default:
		return false, fmt.Errorf("unknown source kind %q", kind)
	}

	var status string
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT status FROM %s WHERE id = ?", table), sourceID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolving %s %d: %w", kind, sourceID, err)
	}
	return status != "trash", nil
}

// SaveProduct inserts or updates a product keyed on slug and returns its id.
func (r *SQLRepository) SaveProduct(ctx context.Context, p Product) (int64, error) {
	if p.Status == "" {
		p.Status = StatusPublish
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO content_products (slug, title, body, summary, status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title, body = excluded.body,
			summary = excluded.summary, status = excluded.status`,
		p.Slug, p.Title, p.Body, p.Summary, p.Status)
	if err != nil {
		return 0, fmt.Errorf("saving product %q: %w", p.Slug, err)
	}
	saved, err := r.ProductBySlugAnyStatus(ctx, p.Slug)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

// SavePage inserts or updates a page keyed on slug and returns its id.
func (r *SQLRepository) SavePage(ctx context.Context, p Page) (int64, error) {
	if p.Status == "" {
		p.Status = StatusPublish
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO content_pages (slug, title, builder_data, rendered_html, status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title, builder_data = excluded.builder_data,
			rendered_html = excluded.rendered_html, status = excluded.status`,
		p.Slug, p.Title, p.BuilderData, p.RenderedHTML, p.Status)
	if err != nil {
		return 0, fmt.Errorf("saving page %q: %w", p.Slug, err)
	}
	saved, err := r.pageBySlugAnyStatus(ctx, p.Slug)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

// SetStatus changes one item's status, used for trashing content.
func (r *SQLRepository) SetStatus(ctx context.Context, kind gotlmem.SourceKind, id int64, status string) error {
	var table string
	switch kind {
	case gotlmem.KindProduct:
		table = "content_products"
	case gotlmem.KindPageBuilder:
		table = "content_pages"
	default:
		return fmt.Errorf("unknown source kind %q", kind)
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET status = ? WHERE id = ?", table), status, id)
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", kind, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &gotlmem.NotFoundError{Entity: string(kind), ID: id}
	}
	return nil
}

// ProductBySlugAnyStatus fetches a product by slug without a status filter.
func (r *SQLRepository) ProductBySlugAnyStatus(ctx context.Context, slug string) (*Product, error) {
	return r.scanProduct(r.db.QueryRowContext(ctx, `
		SELECT id, slug, title, body, summary, status
		FROM content_products WHERE slug = ?`, slug), 0)
}

func (r *SQLRepository) pageBySlugAnyStatus(ctx context.Context, slug string) (*Page, error) {
	return r.scanPage(r.db.QueryRowContext(ctx, `
		SELECT id, slug, title, builder_data, rendered_html, status
		FROM content_pages WHERE slug = ?`, slug), 0)
}

func (r *SQLRepository) scanProduct(row *sql.Row, id int64) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Summary, &p.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &gotlmem.NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	return &p, nil
}

func (r *SQLRepository) scanPage(row *sql.Row, id int64) (*Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.BuilderData, &p.RenderedHTML, &p.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &gotlmem.NotFoundError{Entity: "page", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("scanning page: %w", err)
	}
	return &p, nil
}
