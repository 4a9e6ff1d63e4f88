package search

import (
	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/models"
)

// Status is the coarse state of the search screen.
type Status string

const (
	StatusIdle    Status = "idle"    // empty query
	StatusPending Status = "pending" // waiting on the debounce or the fetch
	StatusReady   Status = "ready"   // latest fetch completed
	StatusFailed  Status = "failed"  // latest fetch returned an error
)

// DefaultCollapsedLines is the description height of a collapsed row.
const DefaultCollapsedLines = 2

// Row is one rendered result.
type Row struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Description  string `json:"description"`
	Lines        int    `json:"lines"` // 0 means unlimited
	Expanded     bool   `json:"expanded"`
	Label        string `json:"label"`
}

// Screen is the full view model pushed to a surface.
type Screen struct {
	Version     uint64 `json:"version"`
	Query       string `json:"query"`
	Status      Status `json:"status"`
	Rows        []Row  `json:"rows"`
	Placeholder string `json:"placeholder,omitempty"`
}

// State is the controller state a Screen is rendered from.
type State struct {
	Version    uint64
	Query      string
	Meals      []models.Meal
	Expansions Expansions
	Status     Status
}

// Render maps state to a Screen. Rows are shown whenever there are results;
// otherwise a non-empty query shows the placeholder and an empty query
// shows nothing.
func Render(state State, text *config.ScreenText, collapsedLines int) Screen {
	if text == nil {
		text = config.DefaultScreenText()
	}

	screen := Screen{
		Version: state.Version,
		Query:   state.Query,
		Status:  state.Status,
		Rows:    []Row{},
	}

	if len(state.Meals) > 0 {
		for _, m := range state.Meals {
			row := Row{
				ID:           m.ID,
				Title:        m.Title,
				ThumbnailURL: m.ThumbnailURL,
				Description:  m.Instructions,
				Lines:        collapsedLines,
				Label:        text.SeeMore,
			}
			if state.Expansions.IsExpanded(m.ID) {
				row.Expanded = true
				row.Lines = 0
				row.Label = text.SeeLess
			}
			screen.Rows = append(screen.Rows, row)
		}
		return screen
	}

	if state.Query != "" {
		if state.Status == StatusFailed {
			screen.Placeholder = text.SearchFailed
		} else {
			screen.Placeholder = text.NoResults
		}
	}
	return screen
}
