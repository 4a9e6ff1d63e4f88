package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/mealdb"
	"github.com/windoze95/saltybytes-mealsearch/internal/models"
	"github.com/windoze95/saltybytes-mealsearch/internal/service"
	"github.com/windoze95/saltybytes-mealsearch/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSearchRouter(searcher *testutil.MockSearcher) *gin.Engine {
	svc := service.NewSearchService(&config.Config{}, searcher)
	handler := NewSearchHandler(svc)

	r := gin.New()
	r.GET("/meals/search", handler.SearchMeals)
	return r
}

func TestSearchMeals_Valid(t *testing.T) {
	r := newSearchRouter(testutil.StaticSearcher(map[string][]models.Meal{
		"Arrabiata": {testutil.TestMeal()},
	}))

	req := httptest.NewRequest("GET", "/meals/search?q=Arrabiata", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Meals []models.Meal `json:"meals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Meals) != 1 || body.Meals[0].Title != "Arrabiata Sauce" {
		t.Errorf("meals = %+v", body.Meals)
	}
}

func TestSearchMeals_NoMatches(t *testing.T) {
	r := newSearchRouter(&testutil.MockSearcher{
		SearchFunc: func(ctx context.Context, query string) ([]models.Meal, error) {
			return []models.Meal{}, nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/meals/search?q=zzzzz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Body.String(); got != `{"meals":[]}` {
		t.Errorf("body = %s, want {\"meals\":[]}", got)
	}
}

func TestSearchMeals_MissingQuery(t *testing.T) {
	r := newSearchRouter(testutil.StaticSearcher(nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/meals/search", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSearchMeals_UpstreamFailure(t *testing.T) {
	r := newSearchRouter(&testutil.MockSearcher{
		SearchFunc: func(ctx context.Context, query string) ([]models.Meal, error) {
			return nil, &mealdb.NetworkError{StatusCode: http.StatusServiceUnavailable}
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/meals/search?q=soup", nil))

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}

func TestSearchMeals_InternalFailure(t *testing.T) {
	r := newSearchRouter(&testutil.MockSearcher{
		SearchFunc: func(ctx context.Context, query string) ([]models.Meal, error) {
			return nil, fmt.Errorf("boom")
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/meals/search?q=soup", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
