package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uowclimb/society-seats/internal/config"
)

func setupCache(t *testing.T) (config.CacheConfig, *redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	cfg := config.CacheConfig{Enabled: true, TTL: 5 * time.Second, Prefix: "eventdetail"}
	return cfg, rdb, mr
}

func detailHandler(hits *int, status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		*hits++
		return c.JSON(status, map[string]any{
			"session_location": "Boulder Shack",
			"current_seats":    9,
		})
	}
}

func runCached(t *testing.T, mw echo.MiddlewareFunc, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(h)(c))
	return rec
}

func TestEventDetailCacheServesRepeatFromRedis(t *testing.T) {
	cfg, rdb, _ := setupCache(t)
	mw := EventDetailCache(cfg, rdb)

	hits := 0
	first := runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=7")
	second := runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=7")

	assert.Equal(t, 1, hits)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestEventDetailCacheSkipsListAndMissingID(t *testing.T) {
	cfg, rdb, mr := setupCache(t)
	mw := EventDetailCache(cfg, rdb)

	hits := 0
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events")
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events")
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=NaN")

	assert.Equal(t, 3, hits)
	assert.Empty(t, mr.Keys())
}

func TestEventDetailCacheIgnoresErrorResponses(t *testing.T) {
	cfg, rdb, mr := setupCache(t)
	mw := EventDetailCache(cfg, rdb)

	hits := 0
	runCached(t, mw, detailHandler(&hits, http.StatusNotFound), "/api/events?event=404")
	runCached(t, mw, detailHandler(&hits, http.StatusNotFound), "/api/events?event=404")

	assert.Equal(t, 2, hits)
	assert.Empty(t, mr.Keys())
}

func TestBustEventDetailForcesRefetch(t *testing.T) {
	cfg, rdb, _ := setupCache(t)
	mw := EventDetailCache(cfg, rdb)

	hits := 0
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=7")
	require.Equal(t, 1, hits)

	BustEventDetail(context.Background(), cfg, rdb, 7)

	again := runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=7")
	assert.Equal(t, 2, hits)
	assert.Equal(t, "MISS", again.Header().Get("X-Cache"))
}

func TestBustEventDetailOnlyTouchesItsEvent(t *testing.T) {
	cfg, rdb, _ := setupCache(t)
	mw := EventDetailCache(cfg, rdb)

	hits := 0
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=7")
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=8")

	BustEventDetail(context.Background(), cfg, rdb, 7)

	kept := runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=8")
	assert.Equal(t, 2, hits)
	assert.Equal(t, "HIT", kept.Header().Get("X-Cache"))
}

func TestEventDetailCacheDisabledIsPassThrough(t *testing.T) {
	cfg, rdb, mr := setupCache(t)
	cfg.Enabled = false
	mw := EventDetailCache(cfg, rdb)

	hits := 0
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=7")
	runCached(t, mw, detailHandler(&hits, http.StatusOK), "/api/events?event=7")

	assert.Equal(t, 2, hits)
	assert.Empty(t, mr.Keys())

	// a nil client must be safe to bust against
	BustEventDetail(context.Background(), cfg, nil, 7)
}
