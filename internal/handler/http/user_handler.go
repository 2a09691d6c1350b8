package httphandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appuser "github.com/gatehouse-io/gatehouse/internal/application/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/httpserver"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// UpdateProfileRequest represents the profile update request body.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
}

// RegisterUserRequest represents the manual user provisioning request body.
type RegisterUserRequest struct {
	ExternalID  string `json:"external_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// EmailCheckResponse reports whether an email address is taken.
type EmailCheckResponse struct {
	Exists bool `json:"exists"`
}

// User use-case ports, declared on the consumer side.
type (
	// UserRegistrar provisions a local account.
	UserRegistrar interface {
		Execute(ctx context.Context, cmd appuser.RegisterUserCommand) (appuser.Result, error)
	}

	// UserProvider fetches a user by ID.
	UserProvider interface {
		Execute(ctx context.Context, query appuser.GetUserQuery) (appuser.Result, error)
	}

	// UserLister pages through users.
	UserLister interface {
		Execute(ctx context.Context, query appuser.ListUsersQuery) (appuser.UsersListResult, error)
	}

	// UsernameLookup fetches a user by username.
	UsernameLookup interface {
		Execute(ctx context.Context, query appuser.GetUserByUsernameQuery) (appuser.Result, error)
	}

	// ProfileUpdater updates a user's own profile.
	ProfileUpdater interface {
		Execute(ctx context.Context, cmd appuser.UpdateProfileCommand) (appuser.Result, error)
	}

	// EmailChecker checks email availability.
	EmailChecker interface {
		Execute(ctx context.Context, query appuser.CheckEmailExistsQuery) (appuser.EmailExistsResult, error)
	}

	// AdminPromoter grants system administrator rights.
	AdminPromoter interface {
		Execute(ctx context.Context, cmd appuser.PromoteToAdminCommand) (appuser.Result, error)
	}

	// UserDeactivator soft-deletes an account.
	UserDeactivator interface {
		Execute(ctx context.Context, cmd appuser.DeactivateUserCommand) (appuser.Result, error)
	}
)

// UserHandler handles user management HTTP requests.
type UserHandler struct {
	registerUC   UserRegistrar
	getUC        UserProvider
	listUC       UserLister
	byUsernameUC UsernameLookup
	updateUC     ProfileUpdater
	emailCheckUC EmailChecker
	promoteUC    AdminPromoter
	deactivateUC UserDeactivator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	registerUC UserRegistrar,
	getUC UserProvider,
	listUC UserLister,
	byUsernameUC UsernameLookup,
	updateUC ProfileUpdater,
	emailCheckUC EmailChecker,
	promoteUC AdminPromoter,
	deactivateUC UserDeactivator,
) *UserHandler {
	return &UserHandler{
		registerUC:   registerUC,
		getUC:        getUC,
		listUC:       listUC,
		byUsernameUC: byUsernameUC,
		updateUC:     updateUC,
		emailCheckUC: emailCheckUC,
		promoteUC:    promoteUC,
		deactivateUC: deactivateUC,
	}
}

// RegisterRoutes registers user routes with the router.
func (h *UserHandler) RegisterRoutes(r *httpserver.Router) {
	r.Auth().GET("/users/:user_id", h.Get)
	r.Auth().GET("/users/by-username/:username", h.GetByUsername)
	r.Auth().PATCH("/users/me", h.UpdateProfile)
	r.Auth().GET("/users/email-check", h.CheckEmail)

	// Administration
	r.Admin().POST("/users", h.Register)
	r.Admin().GET("/users", h.List)
	r.Admin().POST("/users/:user_id/promote", h.Promote)
	r.Admin().POST("/users/:user_id/deactivate", h.Deactivate)
}

// Get handles GET /api/v1/users/:user_id.
func (h *UserHandler) Get(c echo.Context) error {
	userID, err := uuid.ParseUUID(c.Param("user_id"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_USER_ID",
			"Invalid user ID format",
		)
	}

	result, err := h.getUC.Execute(c.Request().Context(), appuser.GetUserQuery{UserID: userID})
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

// GetByUsername handles GET /api/v1/users/by-username/:username.
func (h *UserHandler) GetByUsername(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"VALIDATION_ERROR",
			"Username is required",
		)
	}

	result, err := h.byUsernameUC.Execute(c.Request().Context(), appuser.GetUserByUsernameQuery{
		Username: username,
	})
	if err != nil {
		if errors.Is(err, appuser.ErrUserNotFound) {
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusNotFound,
				"USER_NOT_FOUND",
				"User not found",
			)
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, ToUserDTO(result.Value))
}

// List handles GET /api/v1/admin/users.
func (h *UserHandler) List(c echo.Context) error {
	offset, limit := parsePagination(c)

	result, err := h.listUC.Execute(c.Request().Context(), appuser.ListUsersQuery{
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return httpserver.RespondError(c, err)
	}

	users := make([]UserDTO, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, ToUserDTO(u))
	}

	return httpserver.RespondOK(c, PageDTO[UserDTO]{
		Items:  users,
		Total:  result.TotalCount,
		Offset: result.Offset,
		Limit:  result.Limit,
	})
}

// UpdateProfile handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID.IsZero() {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusUnauthorized,
			"UNAUTHORIZED",
			"User not authenticated",
		)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.updateUC.Execute(c.Request().Context(), appuser.UpdateProfileCommand{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
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
		case errors.Is(err, appuser.ErrEmailAlreadyExists):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusConflict,
				"EMAIL_TAKEN",
				"Email address is already in use",
			)
		case errors.Is(err, appuser.ErrUserNotFound):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusNotFound,
				"USER_NOT_FOUND",
				"User not found",
			)
		default:
			return httpserver.RespondError(c, err)
		}
	}

	return httpserver.RespondOK(c, ToUserDTO(result.Value))
}

// CheckEmail handles GET /api/v1/users/email-check?email=...
func (h *UserHandler) CheckEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"VALIDATION_ERROR",
			"Query parameter 'email' is required",
		)
	}

	result, err := h.emailCheckUC.Execute(c.Request().Context(), appuser.CheckEmailExistsQuery{
		Email:         email,
		ExcludeUserID: middleware.GetUserID(c),
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
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, EmailCheckResponse{Exists: result.Exists})
}

// Register handles POST /api/v1/admin/users.
// Provisions a local account outside the login sync flow.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.registerUC.Execute(c.Request().Context(), appuser.RegisterUserCommand{
		ExternalID:  req.ExternalID,
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
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
		case errors.Is(err, appuser.ErrUsernameAlreadyExists),
			errors.Is(err, appuser.ErrEmailAlreadyExists):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusConflict,
				"USER_ALREADY_EXISTS",
				"A user with this username or email already exists",
			)
		default:
			return httpserver.RespondError(c, err)
		}
	}

	return httpserver.RespondCreated(c, ToUserDTO(result.Value))
}

// Promote handles POST /api/v1/admin/users/:user_id/promote.
func (h *UserHandler) Promote(c echo.Context) error {
	userID, err := uuid.ParseUUID(c.Param("user_id"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_USER_ID",
			"Invalid user ID format",
		)
	}

	result, err := h.promoteUC.Execute(c.Request().Context(), appuser.PromoteToAdminCommand{
		UserID:     userID,
		PromotedBy: middleware.GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, appuser.ErrUserNotFound) {
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusNotFound,
				"USER_NOT_FOUND",
				"User not found",
			)
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, ToUserDTO(result.Value))
}

// Deactivate handles POST /api/v1/admin/users/:user_id/deactivate.
func (h *UserHandler) Deactivate(c echo.Context) error {
	userID, err := uuid.ParseUUID(c.Param("user_id"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_USER_ID",
			"Invalid user ID format",
		)
	}

	result, err := h.deactivateUC.Execute(c.Request().Context(), appuser.DeactivateUserCommand{
		UserID:        userID,
		DeactivatedBy: middleware.GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, appuser.ErrUserNotFound) {
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusNotFound,
				"USER_NOT_FOUND",
				"User not found",
			)
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, ToUserDTO(result.Value))
}

// parsePagination reads offset/limit query params with safe defaults.
func parsePagination(c echo.Context) (offset, limit int) {
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	return offset, limit
}
