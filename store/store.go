package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/extract"
)

// Store is the translation memory. All writes go through it; the uniqueness
// constraints on (hash, lang) and (string_id, source_kind, source_id) are
// the concurrency-safety mechanism for racing scans.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Upsert records one extracted string for a target language. It trims and
// re-checks admissibility (the store is reachable without the extractor),
// then inserts a new pending row or attaches a location to the existing row
// for the same content hash. Returns true only when the string row itself
// was new. Safe to call repeatedly with identical arguments.
func (s *Store) Upsert(ctx context.Context, text, contextLabel string, kind gotlmem.SourceKind, sourceID int64, lang string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" || !extract.IsTranslatable(text) {
		return false, nil
	}

	hash := gotlmem.HashText(text)

	// INSERT OR IGNORE rides on the UNIQUE(hash, lang) constraint, so two
	// concurrent scans of different content cannot create duplicate rows.
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO strings (original, hash, lang, context, status)
		VALUES (?, ?, ?, ?, 'pending')`,
		text, hash, lang, contextLabel)
	if err != nil {
		return false, &gotlmem.StoreError{Op: "upsert", Cause: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, &gotlmem.StoreError{Op: "upsert", Cause: err}
	}
	inserted := affected > 0

	var stringID int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM strings WHERE hash = ? AND lang = ?`, hash, lang).Scan(&stringID)
	if err != nil {
		return false, &gotlmem.StoreError{Op: "upsert", Cause: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO string_locations (string_id, source_kind, source_id)
		VALUES (?, ?, ?)`,
		stringID, string(kind), sourceID)
	if err != nil {
		return false, &gotlmem.StoreError{Op: "upsert location", Cause: err}
	}

	return inserted, nil
}

// ClearBySourceKind deletes every location of the given kind, then sweeps
// strings left with zero locations. Strings still referenced from another
// kind survive. Returns the number of strings removed.
func (s *Store) ClearBySourceKind(ctx context.Context, kind gotlmem.SourceKind) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM string_locations WHERE source_kind = ?`, string(kind))
	if err != nil {
		return 0, &gotlmem.StoreError{Op: "clear kind", Cause: err}
	}
	return s.SweepOrphanStrings(ctx)
}

// PendingStrings returns up to limit pending rows for a language,
// oldest-first. The stable order makes repeated batches deterministic.
func (s *Store) PendingStrings(ctx context.Context, lang string, limit int) ([]gotlmem.TranslatableString, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, original, hash, lang, context, status,
		       COALESCE(translated, ''), created_at, updated_at
		FROM strings
		WHERE status = 'pending' AND lang = ?
		ORDER BY id
		LIMIT ?`, lang, limit)
	if err != nil {
		return nil, &gotlmem.StoreError{Op: "pending", Cause: err}
	}
	defer rows.Close()

	return scanStrings(rows)
}

// GetString fetches a single row by id.
func (s *Store) GetString(ctx context.Context, id int64) (*gotlmem.TranslatableString, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, original, hash, lang, context, status,
		       COALESCE(translated, ''), created_at, updated_at
		FROM strings WHERE id = ?`, id)

	ts, err := scanString(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &gotlmem.NotFoundError{Entity: "string", ID: id}
	}
	if err != nil {
		return nil, &gotlmem.StoreError{Op: "get", Cause: err}
	}
	return ts, nil
}

// MarkTranslated moves a pending row to translated. Rows that already left
// pending (including edited rows) are left untouched: edited is sticky and
// only the explicit human save path changes it.
func (s *Store) MarkTranslated(ctx context.Context, id int64, translated string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE strings
		SET translated = ?, status = 'translated', updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'pending'`,
		translated, id)
	if err != nil {
		return &gotlmem.StoreError{Op: "mark translated", Cause: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &gotlmem.StoreError{Op: "mark translated", Cause: err}
	}
	if affected == 0 {
		// Either the row vanished or its status moved on. Only the former
		// is an error.
		if _, err := s.GetString(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SaveEdited overwrites a row's translation and marks it edited,
// unconditionally on its current status.
func (s *Store) SaveEdited(ctx context.Context, id int64, translated string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE strings
		SET translated = ?, status = 'edited', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		translated, id)
	if err != nil {
		return &gotlmem.StoreError{Op: "save edited", Cause: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &gotlmem.StoreError{Op: "save edited", Cause: err}
	}
	if affected == 0 {
		return &gotlmem.NotFoundError{Entity: "string", ID: id}
	}
	return nil
}

// CountPending returns the number of pending rows for a language.
func (s *Store) CountPending(ctx context.Context, lang string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM strings WHERE status = 'pending' AND lang = ?`, lang).Scan(&n)
	if err != nil {
		return 0, &gotlmem.StoreError{Op: "count pending", Cause: err}
	}
	return n, nil
}

// TranslationMap loads every translated or edited row for a language as a
// content-hash to translated-text map. Callers build this once per request.
func (s *Store) TranslationMap(ctx context.Context, lang string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, translated FROM strings
		WHERE lang = ? AND status IN ('translated', 'edited') AND translated IS NOT NULL`,
		lang)
	if err != nil {
		return nil, &gotlmem.StoreError{Op: "translation map", Cause: err}
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var hash, translated string
		if err := rows.Scan(&hash, &translated); err != nil {
			return nil, &gotlmem.StoreError{Op: "translation map", Cause: err}
		}
		m[hash] = translated
	}
	return m, rows.Err()
}

// ReplacementMap loads original-to-translated pairs for one source kind,
// used for the bulk substring pass over rendered page-builder HTML.
func (s *Store) ReplacementMap(ctx context.Context, lang string, kind gotlmem.SourceKind) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT s.original, s.translated
		FROM strings s
		JOIN string_locations l ON l.string_id = s.id
		WHERE s.lang = ? AND l.source_kind = ?
		  AND s.status IN ('translated', 'edited') AND s.translated IS NOT NULL`,
		lang, string(kind))
	if err != nil {
		return nil, &gotlmem.StoreError{Op: "replacement map", Cause: err}
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var original, translated string
		if err := rows.Scan(&original, &translated); err != nil {
			return nil, &gotlmem.StoreError{Op: "replacement map", Cause: err}
		}
		if original != "" && translated != "" {
			m[original] = translated
		}
	}
	return m, rows.Err()
}

// StatRow is one (kind, status) bucket of the stats summary.
type StatRow struct {
	SourceKind gotlmem.SourceKind   `json:"source_kind"`
	Status     gotlmem.StringStatus `json:"status"`
	Count      int                  `json:"count"`
}

// Stats summarizes the memory per source kind and status.
func (s *Store) Stats(ctx context.Context) ([]StatRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.source_kind, s.status, COUNT(DISTINCT s.id)
		FROM strings s
		JOIN string_locations l ON l.string_id = s.id
		GROUP BY l.source_kind, s.status
		ORDER BY l.source_kind, s.status`)
	if err != nil {
		return nil, &gotlmem.StoreError{Op: "stats", Cause: err}
	}
	defer rows.Close()

	var out []StatRow
	for rows.Next() {
		var r StatRow
		if err := rows.Scan(&r.SourceKind, &r.Status, &r.Count); err != nil {
			return nil, &gotlmem.StoreError{Op: "stats", Cause: err}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SourceRef is one distinct content item referenced by the memory, with the
// number of locations pointing at it.
type SourceRef struct {
	SourceKind gotlmem.SourceKind
	SourceID   int64
	Locations  int
}

// SourceRefs lists every distinct (kind, source id) the memory references.
// The reconciler resolves each against the content repository.
func (s *Store) SourceRefs(ctx context.Context) ([]SourceRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_kind, source_id, COUNT(*)
		FROM string_locations
		GROUP BY source_kind, source_id
		ORDER BY source_kind, source_id`)
	if err != nil {
		return nil, &gotlmem.StoreError{Op: "source refs", Cause: err}
	}
	defer rows.Close()

	var out []SourceRef
	for rows.Next() {
		var r SourceRef
		if err := rows.Scan(&r.SourceKind, &r.SourceID, &r.Locations); err != nil {
			return nil, &gotlmem.StoreError{Op: "source refs", Cause: err}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteLocationsBySource removes every location pointing at one content
// item. Returns the number of locations removed.
func (s *Store) DeleteLocationsBySource(ctx context.Context, kind gotlmem.SourceKind, sourceID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM string_locations WHERE source_kind = ? AND source_id = ?`,
		string(kind), sourceID)
	if err != nil {
		return 0, &gotlmem.StoreError{Op: "delete locations", Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &gotlmem.StoreError{Op: "delete locations", Cause: err}
	}
	return n, nil
}

// SweepOrphanStrings deletes every string left with zero locations and
// returns how many were removed.
func (s *Store) SweepOrphanStrings(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM strings
		WHERE id NOT IN (SELECT DISTINCT string_id FROM string_locations)`)
	if err != nil {
		return 0, &gotlmem.StoreError{Op: "sweep", Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &gotlmem.StoreError{Op: "sweep", Cause: err}
	}
	return n, nil
}

// LocationsByString lists the locations attached to one string.
func (s *Store) LocationsByString(ctx context.Context, stringID int64) ([]gotlmem.StringLocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT string_id, source_kind, source_id
		FROM string_locations WHERE string_id = ?
		ORDER BY source_kind, source_id`, stringID)
	if err != nil {
		return nil, &gotlmem.StoreError{Op: "locations", Cause: err}
	}
	defer rows.Close()

	var out []gotlmem.StringLocation
	for rows.Next() {
		var l gotlmem.StringLocation
		if err := rows.Scan(&l.StringID, &l.SourceKind, &l.SourceID); err != nil {
			return nil, &gotlmem.StoreError{Op: "locations", Cause: err}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SwitcherStyle loads the persisted switcher presentation record, or the
// default when none was saved yet.
func (s *Store) SwitcherStyle(ctx context.Context) (gotlmem.SwitcherStyle, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT style FROM switcher_style WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return gotlmem.DefaultSwitcherStyle(), nil
	}
	if err != nil {
		return gotlmem.SwitcherStyle{}, &gotlmem.StoreError{Op: "switcher style", Cause: err}
	}

	var style gotlmem.SwitcherStyle
	if err := json.Unmarshal([]byte(raw), &style); err != nil {
		return gotlmem.SwitcherStyle{}, &gotlmem.StoreError{Op: "switcher style", Cause: fmt.Errorf("decoding: %w", err)}
	}
	return style.Sanitize(), nil
}

// SaveSwitcherStyle sanitizes and persists the switcher presentation record.
func (s *Store) SaveSwitcherStyle(ctx context.Context, style gotlmem.SwitcherStyle) error {
	raw, err := json.Marshal(style.Sanitize())
	if err != nil {
		return &gotlmem.StoreError{Op: "save switcher style", Cause: err}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO switcher_style (id, style) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET style = excluded.style`, string(raw))
	if err != nil {
		return &gotlmem.StoreError{Op: "save switcher style", Cause: err}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanString(row rowScanner) (*gotlmem.TranslatableString, error) {
	var ts gotlmem.TranslatableString
	err := row.Scan(&ts.ID, &ts.Original, &ts.Hash, &ts.Lang, &ts.Context,
		&ts.Status, &ts.Translated, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func scanStrings(rows *sql.Rows) ([]gotlmem.TranslatableString, error) {
	var out []gotlmem.TranslatableString
	for rows.Next() {
		ts, err := scanString(rows)
		if err != nil {
			return nil, &gotlmem.StoreError{Op: "scan", Cause: err}
		}
		out = append(out, *ts)
	}
	return out, rows.Err()
}
