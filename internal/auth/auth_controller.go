package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/constants"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/internal/user"
	"github.com/DhavalSuthar-24/clubhouse/pkg/responses"
	"github.com/DhavalSuthar-24/clubhouse/pkg/token"
	"github.com/DhavalSuthar-24/clubhouse/pkg/utils"
)

type AuthController struct {
	repo     AuthRepository
	config   *config.Config
	log      zerolog.Logger
	hashCost int
	now      func() time.Time
}

func NewAuthController(repo AuthRepository, cfg *config.Config, log zerolog.Logger) *AuthController {
	return &AuthController{
		repo:     repo,
		config:   cfg,
		log:      log.With().Str("component", "auth").Logger(),
		hashCost: utils.HashCost,
		now:      time.Now,
	}
}

func (ac *AuthController) issueToken(u *user.User) (AuthResponse, error) {
	ttl := time.Duration(ac.config.JWT.ExpiryHours) * time.Hour
	signed, expiresAt, err := token.Generate(u.ID, u.Role, ac.config.JWT.Secret, ttl)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("token generation failed: %w", err)
	}
	return AuthResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      FilterUserRecord(u),
	}, nil
}

// sendVerification logs the verification link; there is no mail provider.
func (ac *AuthController) sendVerification(u *user.User) {
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", ac.config.App.FrontendURL, u.VerifyToken)
	ac.log.Info().
		Uint("user_id", u.ID).
		Str("to", u.Email).
		Str("link", link).
		Msg("verification email queued")
}

func (ac *AuthController) newVerifyToken(u *user.User) {
	expires := ac.now().Add(constants.VerifyTokenTTL)
	u.VerifyToken = utils.GenerateRandomToken(32)
	u.VerifyExpiresAt = &expires
}

// @Summary      Register a new member
// @Description  Creates a member account and returns a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body      RegisterRequest  true  "Registration details"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  responses.ErrorEnvelope
// @Failure      409   {object}  responses.ErrorEnvelope
// @Failure      429   {object}  responses.ErrorEnvelope
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := ac.repo.GetUserByEmail(ctx, email)
	if err != nil {
		ac.log.Error().Err(err).Msg("email lookup failed")
		responses.InternalServerError(c)
		return
	}
	if existing != nil {
		responses.ErrorResponse(c, http.StatusConflict, "User with this email already exists")
		return
	}

	hashed, err := utils.HashPasswordCost(req.Password, ac.hashCost)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Error hashing password")
		return
	}

	newUser := &user.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hashed,
		Phone:    req.Phone,
		Role:     user.RoleMember,
	}
	ac.newVerifyToken(newUser)

	if err := ac.repo.CreateUser(ctx, newUser); err != nil {
		ac.log.Error().Err(err).Str("email", email).Msg("create user failed")
		responses.InternalServerError(c)
		return
	}
	ac.sendVerification(newUser)

	resp, err := ac.issueToken(newUser)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary      Login
// @Description  Exchanges email and password for a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Login credentials"
// @Success      200          {object}  AuthResponse
// @Failure      400          {object}  responses.ErrorEnvelope
// @Failure      401          {object}  responses.ErrorEnvelope
// @Failure      429          {object}  responses.ErrorEnvelope
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	ctx := c.Request.Context()

	found, err := ac.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		ac.log.Error().Err(err).Msg("login lookup failed")
		responses.InternalServerError(c)
		return
	}
	if found == nil || !utils.CheckPassword(found.Password, req.Password) {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	now := ac.now()
	found.LastLoginAt = &now
	if err := ac.repo.UpdateUser(ctx, found); err != nil {
		ac.log.Warn().Err(err).Uint("user_id", found.ID).Msg("could not record last login")
	}

	resp, err := ac.issueToken(found)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Verify email
// @Tags         Auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  responses.Envelope
// @Failure      400    {object}  responses.ErrorEnvelope
// @Router       /auth/verify-email [get]
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	tok := c.Query("token")
	if tok == "" {
		responses.ErrorResponse(c, http.StatusBadRequest, "Verification token is required.")
		return
	}
	ctx := c.Request.Context()

	u, err := ac.repo.GetUserByVerifyToken(ctx, tok)
	if err != nil {
		responses.InternalServerError(c)
		return
	}
	if u == nil || u.VerifyExpiresAt == nil || ac.now().After(*u.VerifyExpiresAt) {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid or expired email verification token.")
		return
	}

	u.EmailVerified = true
	u.VerifyToken = ""
	u.VerifyExpiresAt = nil
	if err := ac.repo.UpdateUser(ctx, u); err != nil {
		responses.InternalServerError(c)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Email verified successfully."})
}

// @Summary      Resend verification email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      ResendVerificationRequest  true  "Account email"
// @Success      200      {object}  responses.Envelope
// @Failure      409      {object}  responses.ErrorEnvelope
// @Router       /auth/resend-verification [post]
func (ac *AuthController) ResendVerificationEmail(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	ctx := c.Request.Context()

	u, err := ac.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		responses.InternalServerError(c)
		return
	}
	// Unknown addresses get the same answer as known ones.
	if u == nil {
		responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "If the account exists, a verification email has been sent."})
		return
	}
	if u.EmailVerified {
		responses.ErrorResponse(c, http.StatusConflict, "Email already verified.")
		return
	}

	ac.newVerifyToken(u)
	if err := ac.repo.UpdateUser(ctx, u); err != nil {
		responses.InternalServerError(c)
		return
	}
	ac.sendVerification(u)
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "If the account exists, a verification email has been sent."})
}

// @Summary      Current user
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  responses.ErrorEnvelope
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	u, ok := ac.currentUser(c)
	if !ok {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, FilterUserRecord(u))
}

// @Summary      Update current user
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  responses.ErrorEnvelope
// @Router       /auth/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	u, ok := ac.currentUser(c)
	if !ok {
		return
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if err := ac.repo.UpdateUser(c.Request.Context(), u); err != nil {
		responses.InternalServerError(c)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, FilterUserRecord(u))
}

// @Summary      Change password
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ChangePasswordRequest  true  "Old and new password"
// @Success      200      {object}  responses.Envelope
// @Failure      401      {object}  responses.ErrorEnvelope
// @Router       /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	u, ok := ac.currentUser(c)
	if !ok {
		return
	}
	if !utils.CheckPassword(u.Password, req.OldPassword) {
		responses.Unauthorized(c, "Old password is incorrect")
		return
	}

	hashed, err := utils.HashPasswordCost(req.NewPassword, ac.hashCost)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Error hashing password")
		return
	}
	u.Password = hashed
	if err := ac.repo.UpdateUser(c.Request.Context(), u); err != nil {
		responses.InternalServerError(c)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// @Summary      Check authentication
// @Description  Reports whether the request carries a valid bearer token. Never returns 401.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  CheckResponse
// @Router       /auth/check [get]
func (ac *AuthController) Check(c *gin.Context) {
	id, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusOK, CheckResponse{})
		return
	}
	c.JSON(http.StatusOK, CheckResponse{Authenticated: true, UserID: id})
}

// @Summary      Logout
// @Description  Tokens are stateless; clients discard theirs.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  responses.Envelope
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ac *AuthController) currentUser(c *gin.Context) (*user.User, bool) {
	id, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "Unauthorized: "+err.Error())
		return nil, false
	}
	u, err := ac.repo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		responses.InternalServerError(c)
		return nil, false
	}
	if u == nil {
		responses.NotFound(c, "User")
		return nil, false
	}
	return u, true
}
