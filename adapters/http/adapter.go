// Package http exposes the costing engine and quote store over a REST API.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"crewcost/adapters/storage"
	v1 "crewcost/api/v1"
	"crewcost/core/costing"
	"crewcost/internal/errors"
	"crewcost/internal/logging"
)

// Config holds HTTP adapter configuration
type Config struct {
	// Address to listen on
	Address string `json:"address"`

	// ReadTimeout for requests
	ReadTimeout time.Duration `json:"read_timeout"`

	// WriteTimeout for responses
	WriteTimeout time.Duration `json:"write_timeout"`

	// MaxBodySize limits request body size
	MaxBodySize int64 `json:"max_body_size"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Address:      ":8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		MaxBodySize:  1 << 20,
	}
}

// Adapter is the HTTP adapter
type Adapter struct {
	store  storage.Store
	config *Config
	server *http.Server
}

// New creates a new HTTP adapter
func New(store storage.Store, config *Config) *Adapter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Adapter{store: store, config: config}
}

// Router returns the HTTP handler
func (a *Adapter) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(a.recoveryMiddleware)
	r.Use(a.loggingMiddleware)

	r.Get("/health", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/quotes", a.handleCreateQuote)
		r.Post("/quotes/preview", a.handlePreviewQuote)
		r.Get("/quotes", a.handleListQuotes)
		r.Get("/quotes/latest", a.handleLatestQuote)
		r.Get("/quotes/{id}", a.handleGetQuote)
		r.Delete("/quotes/{id}", a.handleDeleteQuote)
		r.Get("/rates", a.handleGetRates)
		r.Put("/rates", a.handlePutRates)
	})

	return r
}

// Start starts the HTTP server
func (a *Adapter) Start() error {
	a.server = &http.Server{
		Addr:         a.config.Address,
		Handler:      a.Router(),
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
	}
	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *Adapter) Shutdown(ctx context.Context) error {
	if a.server != nil {
		return a.server.Shutdown(ctx)
	}
	return nil
}

func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// runQuote decodes a request, loads the current rates, and runs the engine.
func (a *Adapter) runQuote(w http.ResponseWriter, r *http.Request) (*storage.StoredQuote, bool) {
	var req v1.QuoteRequest
	body := http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, errors.Input("invalid request body"))
		return nil, false
	}

	job, err := v1.ToJobParameters(req.Job)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	entries, err := v1.ToExpenseEntries(req.Expenses)
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	rates, err := a.store.GetRates(r.Context())
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	result := costing.Calculate(job, rates, entries)

	return &storage.StoredQuote{
		Reference: req.Reference,
		Job:       job,
		Rates:     rates,
		Ledger:    result.Ledger,
		Costs:     result.Costs,
		Breakdown: result.BreakdownText(),
	}, true
}

func (a *Adapter) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := a.runQuote(w, r)
	if !ok {
		return
	}
	if err := a.store.SaveQuote(r.Context(), quote); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v1.FromQuote(quote))
}

func (a *Adapter) handlePreviewQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := a.runQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v1.QuoteResponse{
		Reference: quote.Reference,
		Costs:     v1.FromCosts(quote.Costs),
		Breakdown: quote.Breakdown,
	})
}

func (a *Adapter) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	filter := &storage.ListFilter{Reference: r.URL.Query().Get("reference")}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, errors.Input("limit must be a non-negative integer"))
			return
		}
		filter.Limit = limit
	}

	quotes, err := a.store.ListQuotes(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := v1.QuoteListResponse{Quotes: make([]v1.QuoteResponse, 0, len(quotes))}
	for _, q := range quotes {
		resp.Quotes = append(resp.Quotes, v1.FromQuote(q))
	}
	resp.Count = len(resp.Quotes)
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) handleLatestQuote(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		writeError(w, errors.Input("reference query parameter is required"))
		return
	}
	quote, err := a.store.LatestQuote(r.Context(), reference)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v1.FromQuote(quote))
}

func (a *Adapter) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := a.store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v1.FromQuote(quote))
}

func (a *Adapter) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteQuote(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Adapter) handleGetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := a.store.GetRates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v1.RatesResponse{Rates: rates})
}

func (a *Adapter) handlePutRates(w http.ResponseWriter, r *http.Request) {
	var req v1.RatesResponse
	body := http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, errors.Input("invalid request body"))
		return
	}
	if err := a.store.PutRates(r.Context(), req.Rates); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v1.RatesResponse{Rates: req.Rates})
}

func (a *Adapter) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (a *Adapter) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error("panic serving request",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				writeJSON(w, http.StatusInternalServerError, v1.ErrorResponse{Error: "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := v1.ErrorResponse{Error: err.Error()}

	if e, ok := err.(*errors.Error); ok {
		resp.Type = string(e.Type)
		switch e.Type {
		case errors.TypeInput, errors.TypeJobFile:
			status = http.StatusBadRequest
		case errors.TypeNotFound:
			status = http.StatusNotFound
		}
	}

	writeJSON(w, status, resp)
}
