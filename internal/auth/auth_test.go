package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/internal/user"
)

type harness struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	ac     *AuthController
}

func newHarness(t *testing.T, limiter *middleware.IPRateLimiter) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))

	cfg := &config.Config{}
	cfg.JWT.Secret = "auth-test-secret"
	cfg.JWT.ExpiryHours = 168
	cfg.App.FrontendURL = "http://localhost:3000"

	ac := NewAuthController(NewAuthRepository(db), cfg, zerolog.Nop())
	ac.hashCost = bcrypt.MinCost

	if limiter == nil {
		limiter = middleware.NewIPRateLimiter(1000, 1000)
	}
	r := gin.New()
	registerRoutes(r.Group("/api"), ac, db, cfg.JWT.Secret, limiter)
	return &harness{t: t, db: db, router: r, ac: ac}
}

func (h *harness) do(method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) register(email string) AuthResponse {
	h.t.Helper()
	w := h.do(http.MethodPost, "/api/auth/register", RegisterRequest{Name: "Jane", Email: email, Password: "password123"}, "")
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	h := newHarness(t, nil)

	reg := h.register("Jane@Example.com")
	assert.Equal(t, "Bearer", reg.TokenType)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "jane@example.com", reg.User.Email)
	assert.Equal(t, user.RoleMember, reg.User.Role)
	assert.False(t, reg.User.EmailVerified)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), reg.ExpiresAt, time.Minute)

	w := h.do(http.MethodPost, "/api/auth/register", RegisterRequest{Name: "Dup", Email: "jane@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodPost, "/api/auth/register", RegisterRequest{Name: "Short", Email: "s@example.com", Password: "short"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")

	w = h.do(http.MethodPost, "/api/auth/login", LoginRequest{Email: "jane@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotNil(t, login.User.LastLoginAt)

	w = h.do(http.MethodPost, "/api/auth/login", LoginRequest{Email: "jane@example.com", Password: "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = h.do(http.MethodPost, "/api/auth/login", LoginRequest{Email: "nobody@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "unknown users look like bad passwords")
}

func TestVerifyEmail(t *testing.T) {
	h := newHarness(t, nil)
	reg := h.register("v@example.com")

	var stored user.User
	require.NoError(t, h.db.First(&stored, reg.User.ID).Error)
	require.NotEmpty(t, stored.VerifyToken)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/auth/verify-email", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/auth/verify-email?token=nope", nil, "").Code)

	w := h.do(http.MethodGet, "/api/auth/verify-email?token="+stored.VerifyToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, h.db.First(&stored, reg.User.ID).Error)
	assert.True(t, stored.EmailVerified)
	assert.Empty(t, stored.VerifyToken)

	w = h.do(http.MethodPost, "/api/auth/resend-verification", ResendVerificationRequest{Email: "v@example.com"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	w = h.do(http.MethodPost, "/api/auth/resend-verification", ResendVerificationRequest{Email: "ghost@example.com"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyEmailExpired(t *testing.T) {
	h := newHarness(t, nil)
	reg := h.register("late@example.com")
	var stored user.User
	require.NoError(t, h.db.First(&stored, reg.User.ID).Error)

	h.ac.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	w := h.do(http.MethodGet, "/api/auth/verify-email?token="+stored.VerifyToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	h := newHarness(t, nil)
	reg := h.register("me@example.com")

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/auth/me", nil, "").Code)

	w := h.do(http.MethodGet, "/api/auth/me", nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"me@example.com"`)

	name := "Janet"
	w = h.do(http.MethodPut, "/api/auth/me", UpdateProfileRequest{Name: &name}, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Janet"`)

	w = h.do(http.MethodPost, "/api/auth/change-password", ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "newpassword1", PasswordConfirm: "newpassword1",
	}, reg.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodPost, "/api/auth/change-password", ChangePasswordRequest{
		OldPassword: "password123", NewPassword: "newpassword1", PasswordConfirm: "mismatch1",
	}, reg.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/auth/change-password", ChangePasswordRequest{
		OldPassword: "password123", NewPassword: "newpassword1", PasswordConfirm: "newpassword1",
	}, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodPost, "/api/auth/login", LoginRequest{Email: "me@example.com", Password: "newpassword1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckAndLogout(t *testing.T) {
	h := newHarness(t, nil)
	reg := h.register("c@example.com")

	w := h.do(http.MethodGet, "/api/auth/check", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = h.do(http.MethodGet, "/api/auth/check", nil, "not-a-token")
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = h.do(http.MethodGet, "/api/auth/check", nil, reg.Token)
	var check CheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.True(t, check.Authenticated)
	assert.Equal(t, reg.User.ID, check.UserID)

	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/auth/logout", nil, "").Code)
}

func TestLoginRateLimited(t *testing.T) {
	h := newHarness(t, middleware.NewIPRateLimiter(1, 2))
	creds := LoginRequest{Email: "x@example.com", Password: "password123"}

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/api/auth/login", creds, "").Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/api/auth/login", creds, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, h.do(http.MethodPost, "/api/auth/login", creds, "").Code)
}
