package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/session"
	"github.com/devtna/jlsfinder/core/user"
)

type userApi struct {
	store   *directory.Store
	session *session.Service
	logger  core.Logger
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, store *directory.Store, sess *session.Service, logger core.Logger) {
	api := userApi{
		store:   store,
		session: sess,
		logger:  logger,
	}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)
	ug.POST("/signup", api.signup)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.GET("/me", api.retrieveSelf)
	ag.PUT("/me", api.updateSelf)
	ag.GET("", api.query, adminMiddleware())
	ag.PUT("/:id/role", api.updateRole, adminMiddleware())
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(core.Validate); err != nil {
		return err
	}

	usr, err := api.session.Login(data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == session.ErrInvalidCredentials {
			return errAuthFailed
		}
		return errors.Wrap(err, "logging in")
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, AuthResponse{Token: token, User: usr.Public()})
}

func (api *userApi) signup(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(core.Validate); err != nil {
		return err
	}

	usr, err := api.session.SignUp(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "signing up")
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, AuthResponse{Token: token, User: usr.Public()})
}

func (api *userApi) retrieveSelf(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.store)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *userApi) updateSelf(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.store)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data user.ProfileUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProfileUpdate")
	}
	if err := data.Validate(core.Validate); err != nil {
		return err
	}

	updated := data.Merge(usr)
	if _, err := api.store.UpdateUser(ctx.Request().Context(), updated); err != nil {
		// already applied in memory; the failed mirror is diagnostic only
		api.logger.Error("mirroring profile update", err)
	}
	ctx.Set(contextUserKey, updated)
	return ctx.JSON(http.StatusOK, updated.Public())
}

func (api *userApi) query(ctx echo.Context) error {
	users := api.store.Users()
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return ctx.JSON(http.StatusOK, out)
}

func (api *userApi) updateRole(ctx echo.Context) error {
	var data RoleUpdateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RoleUpdateRequest")
	}
	if !user.ValidRole(data.Role) {
		return core.NewValidationError(nil, core.FieldError{Field: "role", Error: "unknown role"})
	}

	target, ok := api.store.GetUser(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	// demoting the last admin would lock the dashboard out
	if target.IsAdmin() && data.Role != user.RoleAdmin && api.store.AdminCount() <= 1 {
		return errLastAdmin
	}

	updated, err := api.store.UpdateUserRole(ctx.Request().Context(), target.ID, data.Role)
	if err != nil {
		if errors.Cause(err) == directory.ErrNotFound {
			return errHttpNotFound
		}
		api.logger.Error("mirroring role update", err)
	}
	return ctx.JSON(http.StatusOK, updated.Public())
}

func (api *userApi) destroy(ctx echo.Context) error {
	target, ok := api.store.GetUser(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	if target.IsAdmin() && api.store.AdminCount() <= 1 {
		return errLastAdmin
	}

	if err := api.store.DeleteUser(ctx.Request().Context(), target.ID); err != nil {
		api.logger.Error("mirroring user delete", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.store)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	RoleUpdateRequest struct {
		Role string `json:"role"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
