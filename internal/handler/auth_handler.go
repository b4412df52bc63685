package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"carlog/internal/auth"
	apperrors "carlog/internal/errors"
	"carlog/internal/service"
	"carlog/internal/validation"
)

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
	debug       bool
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, logger *zap.Logger, debug bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		debug:       debug,
		sessionTTL:  sessionTTL,
	}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response.
type LoginResponse struct {
	Message string      `json:"message"`
	User    interface{} `json:"user"`
}

// MessageResponse represents a plain confirmation response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.RegisterUserInput true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	if c.Request().ContentLength == 0 {
		return writeError(c, h.logger, h.debug, apperrors.ErrNoInputData)
	}

	var in validation.RegisterUserInput
	if err := c.Bind(&in); err != nil {
		return writeError(c, h.logger, h.debug, apperrors.ErrNoInputData)
	}

	user, err := h.authService.Register(c.Request().Context(), &in)
	if err != nil {
		return writeError(c, h.logger, h.debug, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login and receive a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if c.Request().ContentLength == 0 {
		return writeError(c, h.logger, h.debug, apperrors.ErrNoInputData)
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, h.debug, apperrors.ErrNoInputData)
	}

	sessionID, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, h.debug, err)
	}

	c.SetCookie(h.sessionCookie(sessionID))

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    user,
	})
}

// Logout godoc
// @Summary Logout and destroy the session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := ""
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		sessionID = cookie.Value
	}

	// Logout never fails, whether or not a session existed.
	_ = h.authService.Logout(c.Request().Context(), sessionID)

	c.SetCookie(expiredSessionCookie())

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) sessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessionTTL.Seconds()),
	}
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}
