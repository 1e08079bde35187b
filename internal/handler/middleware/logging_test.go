//go:build unit

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	r := gin.New()
	r.Use(LoggingMiddleware(logger, config.LogConfig{}))
	r.GET("/api/events/:id", func(c *gin.Context) {
		SetIdentity(c, userID, user.RoleOperator)
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("inbound request id is echoed and logged with the route", func(t *testing.T) {
		var buf bytes.Buffer
		userID := uuid.New()
		r := newLoggedRouter(&buf, userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/events/abc", nil)
		req.Header.Set(requestIDHeader, "trace-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, "trace-1", w.Header().Get(requestIDHeader))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "trace-1", line["request_id"])
		assert.Equal(t, "/api/events/:id", line["route"])
		assert.Equal(t, userID.String(), line["user_id"])
		assert.Equal(t, "operator", line["role"])
		assert.EqualValues(t, http.StatusOK, line["status_code"])
	})

	t.Run("oversized request id is replaced", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf, uuid.New())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/events/abc", nil)
		req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
		r.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get(requestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("health checks stay below info", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf, uuid.New())

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Empty(t, buf.String())
	})
}
