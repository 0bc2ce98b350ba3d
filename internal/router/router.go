// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/experience-booking/internal/config"
    "github.com/iliyamo/experience-booking/internal/handler"
    "github.com/iliyamo/experience-booking/internal/middleware"
)

// RegisterRoutes registers routes that need no dependencies on the
// provided Echo instance. Currently it exposes only a health check
// for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterBrowse registers the public catalogue endpoints. Responses
// are cached in Redis for a short TTL; the middleware degrades to a
// no-op when rdb is nil.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
    g := e.Group("/v1", middleware.ResponseCache(cacheCfg, rdb))
    // List all experiences in catalogue order.
    g.GET("/experiences", b.ListExperiences)
    // Experience detail with upcoming slots and derived availability.
    g.GET("/experiences/:id", b.GetExperience)
}

// RegisterBooking registers promo validation and booking endpoints.
// The write endpoints sit behind the token-bucket rate limiter so a
// single client cannot hammer the reservation CAS path.
func RegisterBooking(e *echo.Echo, bk *handler.BookingHandler, p *handler.PromoHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
    limited := e.Group("/v1", middleware.RateLimit(rlCfg, rdb))
    // Validate a promo code against a subtotal.
    limited.POST("/promo/validate", p.Validate)
    // Create a booking: reserve capacity, persist, confirm.
    limited.POST("/bookings", bk.Create)
    // Booking lookup by human-readable reference, for confirmation
    // pages and support. Read-only, so it skips the limiter.
    e.GET("/v1/bookings/:ref", bk.GetByRef)
}
