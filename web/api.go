package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/batch"
	"github.com/ZaguanLabs/gotlmem/provider"
	"github.com/ZaguanLabs/gotlmem/reconcile"
	"github.com/ZaguanLabs/gotlmem/scan"
	"github.com/ZaguanLabs/gotlmem/store"
)

// API implements the JSON admin endpoints.
type API struct {
	memory     *store.Store
	provider   provider.Provider
	scanner    *scan.Scanner
	reconciler *reconcile.Reconciler
	lang       string
	batchDelay time.Duration
	logger     *slog.Logger
}

// NewAPI creates the admin API handler set.
func NewAPI(memory *store.Store, p provider.Provider, scanner *scan.Scanner, rec *reconcile.Reconciler, lang string, batchDelay time.Duration, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		memory:     memory,
		provider:   p,
		scanner:    scanner,
		reconciler: rec,
		lang:       lang,
		batchDelay: batchDelay,
		logger:     logger,
	}
}

// Routes mounts the API onto a chi router.
func (a *API) Routes(r chi.Router) {
	r.Post("/translate/batch", a.translateBatch)
	r.Post("/translate/all", a.translateAll)
	r.Post("/strings/{id}", a.saveString)
	r.Post("/scan/products", a.scanProducts)
	r.Post("/scan/pages", a.scanPages)
	r.Post("/clear/{kind}", a.clearKind)
	r.Get("/orphans", a.orphanCount)
	r.Post("/orphans/clear", a.orphanClear)
	r.Get("/stats", a.stats)
	r.Get("/provider/test", a.providerTest)
	r.Get("/switcher", a.getSwitcherStyle)
	r.Put("/switcher", a.putSwitcherStyle)
}

type batchResponse struct {
	Translated int      `json:"translated"`
	Remaining  int      `json:"remaining"`
	Errors     []string `json:"errors"`
	Stalled    bool     `json:"stalled,omitempty"`
}

func (a *API) engine(limit int) *batch.Engine {
	opts := []batch.Option{batch.WithDelay(a.batchDelay), batch.WithLogger(a.logger)}
	if limit > 0 {
		opts = append(opts, batch.WithBatchLimit(limit))
	}
	return batch.NewEngine(a.memory, a.provider, a.lang, opts...)
}

func (a *API) translateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BatchSize int `json:"batch_size"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	res, err := a.engine(req.BatchSize).RunBatch(r.Context())
	if err != nil {
		a.translationError(w, err)
		return
	}
	a.respond(w, http.StatusOK, batchResponse{
		Translated: res.Translated,
		Remaining:  res.Remaining,
		Errors:     dedupeErrors(res.Errors),
	})
}

func (a *API) translateAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BatchSize int `json:"batch_size"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	res, err := a.engine(req.BatchSize).RunAll(r.Context(), nil)
	stalled := errors.Is(err, batch.ErrStalled)
	if err != nil && !stalled {
		a.translationError(w, err)
		return
	}
	a.respond(w, http.StatusOK, batchResponse{
		Translated: res.Translated,
		Remaining:  res.Remaining,
		Errors:     dedupeErrors(res.Errors),
		Stalled:    stalled,
	})
}

func (a *API) saveString(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid string id")
		return
	}

	var req struct {
		Translated string `json:"translated"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.memory.SaveEdited(r.Context(), id, req.Translated); err != nil {
		var nf *gotlmem.NotFoundError
		if errors.As(err, &nf) {
			a.respondError(w, http.StatusNotFound, nf.Error())
			return
		}
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]any{"id": id, "status": gotlmem.StatusEdited})
}

func (a *API) scanProducts(w http.ResponseWriter, r *http.Request) {
	res, err := a.scanner.Products(r.Context())
	if err != nil {
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]int{"scanned": res.Scanned, "inserted": res.Inserted})
}

func (a *API) scanPages(w http.ResponseWriter, r *http.Request) {
	res, err := a.scanner.Pages(r.Context())
	if err != nil {
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]int{"scanned": res.Scanned, "inserted": res.Inserted})
}

func (a *API) clearKind(w http.ResponseWriter, r *http.Request) {
	kind := gotlmem.SourceKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		a.respondError(w, http.StatusBadRequest, "unknown source kind")
		return
	}
	removed, err := a.memory.ClearBySourceKind(r.Context(), kind)
	if err != nil {
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]int64{"strings_removed": removed})
}

func (a *API) orphanCount(w http.ResponseWriter, r *http.Request) {
	n, err := a.reconciler.Count(r.Context())
	if err != nil {
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]int{"count": n})
}

func (a *API) orphanClear(w http.ResponseWriter, r *http.Request) {
	res, err := a.reconciler.Clear(r.Context())
	if err != nil {
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, res)
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	rows, err := a.memory.Stats(r.Context())
	if err != nil {
		a.internalError(w, err)
		return
	}
	if rows == nil {
		rows = []store.StatRow{}
	}
	a.respond(w, http.StatusOK, map[string]any{"stats": rows})
}

func (a *API) providerTest(w http.ResponseWriter, r *http.Request) {
	if err := a.provider.TestConnection(r.Context()); err != nil {
		a.translationError(w, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) getSwitcherStyle(w http.ResponseWriter, r *http.Request) {
	style, err := a.memory.SwitcherStyle(r.Context())
	if err != nil {
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, style)
}

func (a *API) putSwitcherStyle(w http.ResponseWriter, r *http.Request) {
	var style gotlmem.SwitcherStyle
	if err := json.NewDecoder(r.Body).Decode(&style); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.memory.SaveSwitcherStyle(r.Context(), style); err != nil {
		a.internalError(w, err)
		return
	}
	a.respond(w, http.StatusOK, style.Sanitize())
}

// translationError maps provider failures onto HTTP statuses. A missing
// credential is the caller's problem to fix, reported as a conflict with an
// actionable message rather than a server error.
func (a *API) translationError(w http.ResponseWriter, err error) {
	if gotlmem.IsConfigError(err) {
		a.respondError(w, http.StatusConflict, "translation provider is not configured: set the API key")
		return
	}
	a.internalError(w, err)
}

func (a *API) internalError(w http.ResponseWriter, err error) {
	a.logger.Error("api request failed", "error", err)
	a.respondError(w, http.StatusInternalServerError, "internal error")
}

func (a *API) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encoding response", "error", err)
	}
}

func (a *API) respondError(w http.ResponseWriter, status int, msg string) {
	a.respond(w, status, map[string]string{"error": msg})
}

// dedupeErrors collapses repeated provider failure messages, preserving
// first-seen order.
func dedupeErrors(items []batch.ItemError) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, item := range items {
		msg := item.Err.Error()
		if !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	}
	return out
}
