package handlers

import (
	"errors"
	"time"

	"careconnect-backend/internal/adapters/http/middleware"
	"careconnect-backend/internal/config"
	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/core/services"
	"careconnect-backend/internal/pkg/response"
	"careconnect-backend/internal/pkg/sanitize"
	"careconnect-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	DateOfBirth string  `json:"dateOfBirth"`
	BloodType   *string `json:"bloodType"`
	Allergies   *string `json:"allergies"`
	Address     *string `json:"address"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivateRequest represents doctor invitation redemption body
type ActivateRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
// @Summary Register new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var issues validation.Issues
	email := validation.Email(&issues, req.Email)
	validation.Password(&issues, req.Password)
	validation.Name(&issues, "name", req.Name)

	// Self-registration only covers PATIENT and DOCTOR
	role := domain.RolePatient
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok || parsed == domain.RoleAdmin {
			issues = append(issues, validation.Issue{Field: "role", Message: "Role must be PATIENT or DOCTOR"})
		} else {
			role = parsed
		}
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		if dob, ok := validation.Date(&issues, "dateOfBirth", req.DateOfBirth); ok {
			dateOfBirth = &dob
		}
	}

	if !issues.Empty() {
		return response.ValidationFailed(c, issues)
	}

	input := &services.RegisterInput{
		Email:       email,
		Password:    req.Password,
		Name:        sanitize.String(req.Name),
		Role:        role,
		DateOfBirth: dateOfBirth,
		BloodType:   req.BloodType,
		Allergies:   sanitize.StringPtr(req.Allergies),
		Address:     sanitize.StringPtr(req.Address),
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return response.BadRequest(c, "User already exists")
		}
		return response.InternalServerError(c, "Failed to register user")
	}

	return response.Created(c, "Registration successful", result)
}

// Login handles user login
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	return response.Success(c, "Login successful", result)
}

// RefreshToken handles token rotation
// @Summary Refresh access token
// @Tags Auth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token required")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUserNotFound):
			return response.Unauthorized(c, "Invalid refresh token")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	return response.Success(c, "Token refreshed", result)
}

// Logout revokes the refresh token and clears cookies
// @Summary Logout
// @Tags Auth
// @Success 200 {object} response.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := c.Cookies("refresh_token"); refreshToken != "" {
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Logged out", nil)
}

// LogoutAll revokes every refresh token the current user holds,
// signing out all of their sessions.
// @Summary Logout everywhere
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), principal.UserID); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Logged out everywhere", nil)
}

// Activate redeems a doctor invitation token
// @Summary Activate doctor account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ActivateRequest true "Invitation redemption"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/auth/activate [post]
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	var req ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var issues validation.Issues
	email := validation.Email(&issues, req.Email)
	validation.Password(&issues, req.Password)
	if req.Token == "" {
		issues = append(issues, validation.Issue{Field: "token", Message: "Invitation token is required"})
	}
	if !issues.Empty() {
		return response.ValidationFailed(c, issues)
	}

	user, err := h.authService.Activate(c.Context(), &services.ActivateInput{
		Token:    req.Token,
		Email:    email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvitationInvalid):
			return response.BadRequest(c, "Invalid invitation token")
		case errors.Is(err, domain.ErrInvitationExpired):
			return response.BadRequest(c, "Invitation token expired")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.BadRequest(c, "User already exists")
		default:
			return response.InternalServerError(c, "Failed to activate account")
		}
	}

	return response.Success(c, "Account activated", user)
}

// Me returns the current principal's user record
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), principal.UserID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "", user.ToResponse())
}

// setAuthCookies attaches the token pair as HTTP-only cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.RefreshTokenDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
}

// clearAuthCookies expires both auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   h.cfg.Cookie.Secure,
			SameSite: h.cfg.Cookie.SameSite,
			Domain:   h.cfg.Cookie.Domain,
			Path:     "/",
		})
	}
}
