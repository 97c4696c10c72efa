package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLevel(t *testing.T) {
	var buf bytes.Buffer
	log := WithLevel(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, zerolog.InfoLevel, WithLevel(&buf, "loud").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, WithLevel(&buf, "").GetLevel())
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := WithLevel(&buf, "debug")

	r := gin.New()
	r.Use(RequestLogger(log))
	var seenID string
	r.GET("/ping", func(c *gin.Context) {
		seenID = GetRequestID(c)
		FromContext(c).Info().Msg("inside handler")
		c.String(http.StatusOK, "pong")
	})

	t.Run("generates an id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Equal(t, id, seenID)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		for _, line := range lines {
			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &entry))
			assert.Equal(t, id, entry["request_id"])
		}
		assert.Contains(t, lines[2], `"status":200`)
	})

	t.Run("echoes a caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seenID)
	})
}
