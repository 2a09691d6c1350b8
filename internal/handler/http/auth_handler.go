package httphandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"

	appauth "github.com/gatehouse-io/gatehouse/internal/application/auth"
	appuser "github.com/gatehouse-io/gatehouse/internal/application/user"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/httpserver"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// LoginRequest represents the login request body.
type LoginRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int     `json:"expires_in"`
	User         UserDTO `json:"user"`
}

// RefreshRequest represents the refresh token request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse represents the refresh token response.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// LogoutRequest represents the logout request body.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Use-case ports, declared on the consumer side.
type (
	// LoginExecutor completes a provider code exchange.
	LoginExecutor interface {
		Execute(ctx context.Context, cmd appauth.LoginCommand) (*appauth.LoginResult, error)
	}

	// LogoutExecutor revokes a refresh token.
	LogoutExecutor interface {
		Execute(ctx context.Context, cmd appauth.LogoutCommand) (appauth.LogoutResult, error)
	}

	// RefreshExecutor rotates a token set.
	RefreshExecutor interface {
		Execute(ctx context.Context, cmd appauth.RefreshTokenCommand) (*appauth.RefreshResult, error)
	}

	// CurrentUserProvider fetches the authenticated user's record.
	CurrentUserProvider interface {
		Execute(ctx context.Context, query appuser.GetUserQuery) (appuser.Result, error)
	}
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	loginUC   LoginExecutor
	logoutUC  LogoutExecutor
	refreshUC RefreshExecutor
	getUserUC CurrentUserProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	loginUC LoginExecutor,
	logoutUC LogoutExecutor,
	refreshUC RefreshExecutor,
	getUserUC CurrentUserProvider,
) *AuthHandler {
	return &AuthHandler{
		loginUC:   loginUC,
		logoutUC:  logoutUC,
		refreshUC: refreshUC,
		getUserUC: getUserUC,
	}
}

// RegisterRoutes registers auth routes with the router.
func (h *AuthHandler) RegisterRoutes(r *httpserver.Router) {
	// Public routes (no auth required)
	r.Public().POST("/auth/login", h.Login)
	r.Public().POST("/auth/refresh", h.Refresh)

	// Authenticated routes
	r.Auth().POST("/auth/logout", h.Logout)
	r.Auth().GET("/auth/me", h.Me)
}

// Login handles POST /api/v1/auth/login.
// Exchanges the provider authorization code for access + refresh tokens.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.loginUC.Execute(c.Request().Context(), appauth.LoginCommand{
		Code:        req.Code,
		RedirectURI: req.RedirectURI,
	})
	if err != nil {
		switch {
		case isValidationError(err):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusBadRequest,
				"VALIDATION_ERROR",
				err.Error(),
			)
		case errors.Is(err, appauth.ErrInvalidCredentials):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusUnauthorized,
				"INVALID_CREDENTIALS",
				"Invalid authorization code",
			)
		case errors.Is(err, appauth.ErrUserInactive):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusForbidden,
				"USER_INACTIVE",
				"User account is deactivated",
			)
		default:
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusInternalServerError,
				"LOGIN_FAILED",
				"Failed to complete login",
			)
		}
	}

	return httpserver.RespondOK(c, LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		User:         ToUserDTO(result.User),
	})
}

// Logout handles POST /api/v1/auth/logout.
// Revokes the submitted refresh token. A token that is absent or
// already revoked yields a conflict, not a silent success.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.logoutUC.Execute(c.Request().Context(), appauth.LogoutCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		if isValidationError(err) {
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusBadRequest,
				"VALIDATION_ERROR",
				err.Error(),
			)
		}
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusInternalServerError,
			"LOGOUT_FAILED",
			"Failed to complete logout",
		)
	}

	if !result.Success {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusConflict,
			"ALREADY_LOGGED_OUT",
			result.FailureReason,
		)
	}

	return httpserver.RespondOK(c, map[string]string{
		"message": "Logged out successfully",
	})
}

// Refresh handles POST /api/v1/auth/refresh.
// Rotates the access token using a valid refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.refreshUC.Execute(c.Request().Context(), appauth.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		switch {
		case isValidationError(err):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusBadRequest,
				"VALIDATION_ERROR",
				err.Error(),
			)
		case errors.Is(err, appauth.ErrRefreshTokenInvalid):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusUnauthorized,
				"INVALID_REFRESH_TOKEN",
				"Refresh token is invalid or expired",
			)
		default:
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusInternalServerError,
				"REFRESH_FAILED",
				"Failed to refresh token",
			)
		}
	}

	return httpserver.RespondOK(c, RefreshResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Me handles GET /api/v1/auth/me.
// Returns the current authenticated user's information.
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID.IsZero() {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusUnauthorized,
			"UNAUTHORIZED",
			"User not authenticated",
		)
	}

	result, err := h.getUserUC.Execute(c.Request().Context(), appuser.GetUserQuery{UserID: userID})
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusNotFound,
			"USER_NOT_FOUND",
			"User not found",
		)
	}

	return httpserver.RespondOK(c, ToUserDTO(result.Value))
}

// isValidationError reports whether a use case rejected its input.
func isValidationError(err error) bool {
	var validationErr *appcore.ValidationError
	return errors.As(err, &validationErr)
}
