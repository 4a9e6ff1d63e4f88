package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"github.com/windoze95/saltybytes-mealsearch/internal/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public v1 API with the shared test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// Searcher looks meals up by name.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Meal, error)
}

// Client calls the MealDB search endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a MealDB client. rps <= 0 disables outbound rate
// limiting.
func NewClient(baseURL string, timeout time.Duration, rps int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// Search issues GET search.php?s=<query> and returns the matching meals.
// No matches, including "meals": null, yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]models.Meal, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Err: err}
	}

	params := url.Values{}
	params.Set("s", query)

	reqURL := fmt.Sprintf("%s/search.php?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mealdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	logger.Get().Debug("mealdb search",
		zap.String("query", query),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", string(body)),
		}
	}

	var sResp models.SearchResponse
	if err := json.Unmarshal(body, &sResp); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	for i := range sResp.Meals {
		if !govalidator.IsURL(sResp.Meals[i].ThumbnailURL) {
			sResp.Meals[i].ThumbnailURL = ""
		}
	}
	return sResp.Meals, nil
}
