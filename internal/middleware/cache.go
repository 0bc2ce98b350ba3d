// Package middleware provides Echo middleware for the booking API:
// a Redis response cache for browse endpoints and a Redis token-bucket
// rate limiter for the write endpoints.
package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/experience-booking/internal/config"
)

// bodyCapture buffers the response body while forwarding it to the
// client, up to a configured limit. Oversized responses are forwarded
// but not cached.
type bodyCapture struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    size     int
    limit    int
    overflow bool
}

func (b *bodyCapture) WriteHeader(code int) {
    b.status = code
    b.ResponseWriter.WriteHeader(code)
}

func (b *bodyCapture) Write(p []byte) (int, error) {
    b.size += len(p)
    if b.limit > 0 && b.size > b.limit {
        b.overflow = true
    } else {
        b.buf.Write(p)
    }
    return b.ResponseWriter.Write(p)
}

// cacheKey builds a stable key from the route and raw query, hashed so
// long querystrings do not produce unwieldy Redis keys.
func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// ResponseCache caches successful JSON GET responses in Redis for the
// configured TTL. Only status 200 bodies are stored; everything else
// passes through untouched. When rdb is nil or the cache is disabled
// the middleware is a no-op, so the service works without Redis.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c)
            ctx := c.Request().Context()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
                c.Response().Header().Set("X-Cache", "HIT")
                return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
            }

            cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if cw.status == http.StatusOK && !cw.overflow && cw.buf.Len() > 0 {
                // Best effort: a failed SET only means the next request
                // misses again.
                _ = rdb.Set(ctx, key, cw.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}
