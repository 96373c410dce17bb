package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RegisterRoutes configures all API routes, middleware, and error handlers
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	// Set custom error handler for consistent JSON responses
	e.HTTPErrorHandler = JSONErrorHandler(h)

	// Apply global middleware
	e.Use(SetNoCacheHeaders) // Prevent caching of API responses

	// The widget embeds on arbitrary pages; pre-flight requests get an
	// empty 204 from the CORS middleware itself.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, "X-Admin-Token"},
	}))

	// API v1 routes
	v1 := e.Group("/v1")
	v1.GET("/health", h.Health)   // Health check endpoint
	v1.GET("/presets", h.Presets) // Static market-view preset catalog

	// Chat endpoint with burst rate limiting; the daily quota is enforced
	// separately by the usage ledger.
	chatGroup := v1.Group("/chat")
	chatGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(0.5), // 1 request every 2 seconds
		Burst:     3,               // Allow burst of 3 requests
		ExpiresIn: 2 * time.Minute, // Rate limit window
	})))
	chatGroup.POST("", h.Chat)

	// Catch-all route for 404 responses
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
}
