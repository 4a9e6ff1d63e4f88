package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/saltybytes-mealsearch/internal/models"
)

// --- MockSearcher ---

// MockSearcher is a mock implementation of mealdb.Searcher that records
// every query it receives.
type MockSearcher struct {
	SearchFunc func(ctx context.Context, query string) ([]models.Meal, error)

	mu      sync.Mutex
	queries []string
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]models.Meal, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, fmt.Errorf("Search not configured")
}

// Queries returns a copy of the queries received so far.
func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// StaticSearcher returns a MockSearcher that answers every query with
// meals from the given table, keyed by query. Unknown queries get no
// results.
func StaticSearcher(table map[string][]models.Meal) *MockSearcher {
	return &MockSearcher{
		SearchFunc: func(ctx context.Context, query string) ([]models.Meal, error) {
			return table[query], nil
		},
	}
}
