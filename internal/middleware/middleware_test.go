package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/user"
	"github.com/DhavalSuthar-24/clubhouse/pkg/token"
)

const secret = "middleware-secret"

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))
	return db
}

func authRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AuthMiddleware(secret, db), func(c *gin.Context) {
		id, err := GetUserIDFromContext(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "role": GetUserRoleFromContext(c)})
	})
	r.GET("/optional", OptionalAuth(secret), func(c *gin.Context) {
		_, err := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": err == nil})
	})
	return r
}

func get(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	db := testDB(t)
	u := user.User{Name: "Ada", Email: "ada@example.com", Role: user.RoleAdmin}
	require.NoError(t, db.Create(&u).Error)
	r := authRouter(db)

	valid, _, err := token.Generate(u.ID, user.RoleMember, secret, time.Hour)
	require.NoError(t, err)

	w := get(r, "/private", valid)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`, "role comes from the database")

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "garbage").Code)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Token "+valid)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ghost, _, err := token.Generate(u.ID+100, user.RoleMember, secret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", ghost).Code)

	require.NoError(t, db.Delete(&u).Error)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", valid).Code, "soft deleted users are rejected")
}

func TestOptionalAuth(t *testing.T) {
	r := authRouter(testDB(t))
	valid, _, err := token.Generate(9, user.RoleMember, secret, time.Hour)
	require.NoError(t, err)

	assert.JSONEq(t, `{"authenticated":true}`, get(r, "/optional", valid).Body.String())
	assert.JSONEq(t, `{"authenticated":false}`, get(r, "/optional", "bad").Body.String())
	assert.JSONEq(t, `{"authenticated":false}`, get(r, "/optional", "").Body.String())
}

func TestIPRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewIPRateLimiter(1, 2)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2"), "buckets are per IP")
}

func TestIPRateLimiterSweep(t *testing.T) {
	rl := NewIPRateLimiter(10, 1)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(5 * time.Minute)
	rl.Allow("b")

	assert.Equal(t, 1, rl.Sweep(3*time.Minute))
	assert.Equal(t, 0, rl.Sweep(3*time.Minute))
}
