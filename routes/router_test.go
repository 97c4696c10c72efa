package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/entity"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/internal/tournament"
	"github.com/DhavalSuthar-24/clubhouse/internal/user"
)

func setupRouter(t *testing.T, frontend string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenSQLite("file::memory:")
	require.NoError(t, err)
	registry := entity.Catalog()
	require.NoError(t, db.AutoMigrate(append(registry.Models(), &user.User{})...))

	cfg := &config.Config{Club: config.DefaultClub()}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = frontend
	cfg.JWT.Secret = "router-test"
	cfg.Scoring.BallsPerOver = 6

	return SetupRoutes(cfg, db, registry, middleware.NewIPRateLimiter(60, 5),
		tournament.NewMemoryStore(time.Hour), zerolog.Nop())
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(setupRouter(t, ""), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestClubSettings(t *testing.T) {
	w := get(setupRouter(t, ""), "/api/club")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			BallsPerOver int `json:"balls_per_over"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 6, body.Data.BallsPerOver)
}

func TestPackagesAreMounted(t *testing.T) {
	r := setupRouter(t, "")

	assert.Equal(t, http.StatusOK, get(r, "/api/entities").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/matches/42/overlay").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/tournaments/1/matches").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/tournaments/1/teams").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/auth/me").Code)
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter(t, "https://club.example")

	req := httptest.NewRequest(http.MethodOptions, "/api/entities/Team", nil)
	req.Header.Set("Origin", "https://club.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://club.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/entities/Team", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
