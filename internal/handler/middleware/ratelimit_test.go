//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(rl *RateLimiter, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != nil {
			SetIdentity(c, *userID, user.RoleViewer)
		}
		c.Next()
	})
	r.POST("/swap-request", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/swap-request", nil))
	return w
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{SwapPerMinute: 1, SwapBurst: 2})
	defer rl.Stop()
	alice := uuid.New()
	r := newLimitedRouter(rl, &alice)

	assert.Equal(t, http.StatusCreated, hit(r).Code)
	assert.Equal(t, http.StatusCreated, hit(r).Code)

	w := hit(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":{"message":"Too many requests. Please try again later."}}`, w.Body.String())
}

func TestRateLimiter_BucketsArePerUser(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{SwapPerMinute: 1, SwapBurst: 1})
	defer rl.Stop()
	alice, bob := uuid.New(), uuid.New()

	require.Equal(t, http.StatusCreated, hit(newLimitedRouter(rl, &alice)).Code)
	require.Equal(t, http.StatusTooManyRequests, hit(newLimitedRouter(rl, &alice)).Code)
	assert.Equal(t, http.StatusCreated, hit(newLimitedRouter(rl, &bob)).Code)
	assert.Equal(t, 2, rl.LimiterCount())
}

func TestRateLimiter_RequiresIdentity(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{SwapPerMinute: 60, SwapBurst: 5})
	defer rl.Stop()

	assert.Equal(t, http.StatusUnauthorized, hit(newLimitedRouter(rl, nil)).Code)
	assert.Zero(t, rl.LimiterCount())
}

func TestRateLimiter_CleanupDropsIdleEntries(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{SwapPerMinute: 60, SwapBurst: 5})
	defer rl.Stop()
	alice := uuid.New()
	hit(newLimitedRouter(rl, &alice))
	require.Equal(t, 1, rl.LimiterCount())

	rl.cleanup(time.Now())
	assert.Equal(t, 1, rl.LimiterCount(), "recently used entry survives")

	rl.cleanup(time.Now().Add(3 * defaultLimiterCleanupInterval))
	assert.Zero(t, rl.LimiterCount())
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{SwapPerMinute: 60, SwapBurst: 5})
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
