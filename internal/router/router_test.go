package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/models"
	"github.com/windoze95/saltybytes-mealsearch/internal/testutil"
	"github.com/windoze95/saltybytes-mealsearch/internal/ws"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := ws.NewHub()
	go hub.Run(ctx)

	cfg := &config.Config{ScreenText: config.DefaultScreenText()}
	searcher := testutil.StaticSearcher(map[string][]models.Meal{
		"Arrabiata": {testutil.TestMeal()},
	})
	return SetupRouter(ctx, cfg, searcher, hub)
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestSearchRoute(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/meals/search?q=Arrabiata", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
}

func TestScreenRoute_RequiresUpgrade(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/screen/ws", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a plain GET", w.Code)
	}
}
