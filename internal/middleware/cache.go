package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/uowclimb/society-seats/internal/config"
)

// captureWriter captures the response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

func detailKey(prefix, eventID string) string {
	return fmt.Sprintf("%s:event:%s", prefix, eventID)
}

// EventDetailCache caches successful GET /api/events?event=ID bodies
// in Redis for a short TTL.  The registration page polls this
// endpoint, so a few seconds of caching absorbs bursts right before
// popular events close.  Requests without an event parameter (the
// admin list) are never cached, and mutating handlers bust the entry
// via BustEventDetail so refetch-after-write stays accurate.
func EventDetailCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			eventID := c.QueryParam("event")
			if c.Request().Method != http.MethodGet || eventID == "" || eventID == "NaN" {
				return next(c)
			}

			ctx := c.Request().Context()
			key := detailKey(cfg.Prefix, eventID)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK {
				_ = rdb.SetEx(context.Background(), key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// BustEventDetail drops the cached detail for one event.  Handlers
// call it after any write that changes what the detail endpoint would
// return.  A nil client is a no-op.
func BustEventDetail(ctx context.Context, cfg config.CacheConfig, rdb *redis.Client, eventID int) {
	if rdb == nil || !cfg.Enabled {
		return
	}
	_ = rdb.Del(ctx, detailKey(cfg.Prefix, fmt.Sprint(eventID))).Err()
}
