package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/handlers"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"github.com/windoze95/saltybytes-mealsearch/internal/mealdb"
	"github.com/windoze95/saltybytes-mealsearch/internal/middleware"
	"github.com/windoze95/saltybytes-mealsearch/internal/service"
	"github.com/windoze95/saltybytes-mealsearch/internal/ws"
)

// SetupRouter sets up the Gin router. ctx bounds the background work of
// the middleware.
func SetupRouter(ctx context.Context, cfg *config.Config, searcher mealdb.Searcher, hub *ws.Hub) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.EnvVars.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	searchService := service.NewSearchService(cfg, searcher)
	searchHandler := handlers.NewSearchHandler(searchService)
	screenHandler := ws.NewScreenHandler(hub, searchService, cfg.EnvVars.AllowedOrigins)

	rps := cfg.EnvVars.RateLimitRPS
	if rps <= 0 {
		rps = 10
	}

	api := r.Group("/v1")
	{
		// One-shot search proxy
		api.GET("/meals/search", middleware.RateLimitByIP(ctx, rps, time.Minute, 10*time.Minute), searchHandler.SearchMeals)

		// Live search screen
		api.GET("/screen/ws", screenHandler.HandleScreenSession)
	}

	return r
}
