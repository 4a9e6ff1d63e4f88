package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"github.com/windoze95/saltybytes-mealsearch/internal/mealdb"
	"github.com/windoze95/saltybytes-mealsearch/internal/service"
	"go.uber.org/zap"
)

// SearchHandler handles meal search requests.
type SearchHandler struct {
	Service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{Service: searchService}
}

// SearchMeals handles GET /v1/meals/search?q=...
func (h *SearchHandler) SearchMeals(c *gin.Context) {
	query := c.Query("q")
	if err := h.Service.ValidateQuery(query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meals, err := h.Service.SearchMeals(c.Request.Context(), query)
	if err != nil {
		logger.FromContext(c).Error("failed to search meals", zap.String("query", query), zap.Error(err))
		c.JSON(upstreamStatus(err), gin.H{"error": "Failed to search meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// upstreamStatus maps MealDB failures to 502 and anything else to 500.
func upstreamStatus(err error) int {
	var netErr *mealdb.NetworkError
	var malformed *mealdb.MalformedResponseError
	if errors.As(err, &netErr) || errors.As(err, &malformed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
