package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/mealdb"
	"github.com/windoze95/saltybytes-mealsearch/internal/models"
	"github.com/windoze95/saltybytes-mealsearch/internal/search"
	"go.uber.org/zap"
)

// MaxQueryLength bounds the search text in runes.
const MaxQueryLength = 100

// ErrEmptyQuery is returned for a blank search.
var ErrEmptyQuery = errors.New("query cannot be empty")

// SearchService runs meal searches and creates search screen sessions.
type SearchService struct {
	Cfg      *config.Config
	Searcher mealdb.Searcher
}

// NewSearchService creates a new SearchService.
func NewSearchService(cfg *config.Config, searcher mealdb.Searcher) *SearchService {
	return &SearchService{
		Cfg:      cfg,
		Searcher: searcher,
	}
}

// ValidateQuery rejects blank and overlong queries.
func (s *SearchService) ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return fmt.Errorf("query cannot be longer than %d characters", MaxQueryLength)
	}
	return nil
}

// ClampQuery cuts screen input to MaxQueryLength runes. Unlike
// ValidateQuery it accepts blank text, since every keystroke on a screen
// replaces the query. The bool reports whether anything was cut.
func ClampQuery(query string) (string, bool) {
	if utf8.RuneCountInString(query) <= MaxQueryLength {
		return query, false
	}
	return string([]rune(query)[:MaxQueryLength]), true
}

// SearchMeals performs a single, undebounced search.
func (s *SearchService) SearchMeals(ctx context.Context, query string) ([]models.Meal, error) {
	if err := s.ValidateQuery(query); err != nil {
		return nil, err
	}
	return s.Searcher.Search(ctx, query)
}

// NewScreen creates the controller for one search screen, configured from
// the service config. The caller must Close it when the screen goes away.
func (s *SearchService) NewScreen(log *zap.Logger, onChange func(search.Screen)) *search.Controller {
	opts := []search.Option{
		search.WithLogger(log),
		search.WithOnChange(onChange),
	}
	if s.Cfg != nil {
		env := s.Cfg.EnvVars
		if env.SearchDebounce > 0 {
			opts = append(opts, search.WithDebounce(env.SearchDebounce))
		}
		if env.CollapsedLines > 0 {
			opts = append(opts, search.WithCollapsedLines(env.CollapsedLines))
		}
		if s.Cfg.ScreenText != nil {
			opts = append(opts, search.WithScreenText(s.Cfg.ScreenText))
		}
	}
	return search.NewController(s.Searcher, opts...)
}
