package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"car-rental/pkg/ratelimit"
	"car-rental/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(limiter *ratelimit.Limiter) *gin.Engine {
	router := gin.New()
	router.POST("/requests", RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func post(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	req.RemoteAddr = ip + ":40000"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	defer client.Close()

	router := newRateLimitedRouter(ratelimit.New(client, "requests", 2, time.Hour))

	for i, wantRemaining := range []string{"1", "0"} {
		w := post(router, "203.0.113.7")
		assert.Equal(t, http.StatusCreated, w.Code, "request %d", i)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, wantRemaining, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := post(router, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")

	// other clients have their own window
	assert.Equal(t, http.StatusCreated, post(router, "198.51.100.1").Code)

	// the window resets once the key expires
	mr.FastForward(time.Hour)
	assert.Equal(t, http.StatusCreated, post(router, "203.0.113.7").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	defer client.Close()

	router := newRateLimitedRouter(ratelimit.New(client, "requests", 1, time.Hour))
	mr.Close()

	assert.Equal(t, http.StatusCreated, post(router, "203.0.113.7").Code)
	assert.Equal(t, http.StatusCreated, post(router, "203.0.113.7").Code)
}
