// Package storage persists quotes and the current rate settings.
// Two backends exist: an in-memory store for tests and ephemeral use, and
// a SQLite store for the portal. The engine itself never touches storage.
package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"crewcost/core/types"
	"crewcost/internal/errors"
)

// StoredQuote is one persisted costing run.
type StoredQuote struct {
	// ID is the unique identifier, assigned on save when empty
	ID string `json:"id"`

	// Reference groups quotes for the same client or booking
	Reference string `json:"reference,omitempty"`

	// CreatedAt is when the quote was stored
	CreatedAt time.Time `json:"created_at"`

	// Job is the parameter record the quote was computed from
	Job types.JobParameters `json:"job"`

	// Rates is the settings snapshot used for the run
	Rates types.RateSettings `json:"rates"`

	// Ledger is the normalized expense ledger
	Ledger []types.ExpenseEntry `json:"ledger"`

	// Costs is the computed breakdown
	Costs types.CalculatedCosts `json:"costs"`

	// Breakdown is the formatted expense report stored with the quote
	Breakdown string `json:"breakdown"`
}

// ListFilter narrows quote listings.
type ListFilter struct {
	// Reference filters by exact reference
	Reference string

	// Limit caps the number of results; zero means no cap
	Limit int
}

// Store is the persistence interface for quotes and rate settings.
type Store interface {
	// SaveQuote stores a quote, assigning an ID when absent
	SaveQuote(ctx context.Context, quote *StoredQuote) error

	// GetQuote retrieves a quote by ID
	GetQuote(ctx context.Context, id string) (*StoredQuote, error)

	// ListQuotes lists quotes, newest first
	ListQuotes(ctx context.Context, filter *ListFilter) ([]*StoredQuote, error)

	// DeleteQuote removes a quote
	DeleteQuote(ctx context.Context, id string) error

	// LatestQuote returns the newest quote for a reference
	LatestQuote(ctx context.Context, reference string) (*StoredQuote, error)

	// GetRates returns the current rate settings, falling back to the
	// documented defaults when none were stored
	GetRates(ctx context.Context) (types.RateSettings, error)

	// PutRates replaces the current rate settings
	PutRates(ctx context.Context, rates types.RateSettings) error

	// Close releases backend resources
	Close() error
}

// MemoryStore is a Store kept entirely in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	quotes map[string]*StoredQuote
	rates  *types.RateSettings
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{quotes: make(map[string]*StoredQuote)}
}

// SaveQuote stores a quote
func (s *MemoryStore) SaveQuote(ctx context.Context, quote *StoredQuote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}

	copied := *quote
	s.quotes[quote.ID] = &copied
	return nil
}

// GetQuote retrieves a quote by ID
func (s *MemoryStore) GetQuote(ctx context.Context, id string) (*StoredQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[id]
	if !ok {
		return nil, errors.NotFound("quote", id)
	}
	copied := *q
	return &copied, nil
}

// ListQuotes lists quotes, newest first
func (s *MemoryStore) ListQuotes(ctx context.Context, filter *ListFilter) ([]*StoredQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*StoredQuote
	for _, q := range s.quotes {
		if filter != nil && filter.Reference != "" && !strings.EqualFold(q.Reference, filter.Reference) {
			continue
		}
		copied := *q
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter != nil && filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// DeleteQuote removes a quote
func (s *MemoryStore) DeleteQuote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quotes[id]; !ok {
		return errors.NotFound("quote", id)
	}
	delete(s.quotes, id)
	return nil
}

// LatestQuote returns the newest quote for a reference
func (s *MemoryStore) LatestQuote(ctx context.Context, reference string) (*StoredQuote, error) {
	quotes, err := s.ListQuotes(ctx, &ListFilter{Reference: reference, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errors.NotFound("quote", reference)
	}
	return quotes[0], nil
}

// GetRates returns the stored settings or the documented defaults
func (s *MemoryStore) GetRates(ctx context.Context) (types.RateSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rates == nil {
		return types.DefaultRateSettings(), nil
	}
	return *s.rates, nil
}

// PutRates replaces the current settings
func (s *MemoryStore) PutRates(ctx context.Context, rates types.RateSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rates = &rates
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
