package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/review"
)

type reviewApi struct {
	store  *directory.Store
	logger core.Logger
}

func registerReviewAPI(g *echo.Group, jwt echo.MiddlewareFunc, store *directory.Store, logger core.Logger) {
	api := reviewApi{
		store:  store,
		logger: logger,
	}

	// nested under the school being reviewed
	g.POST("/schools/:id/reviews", api.create, jwt)

	rg := g.Group("/reviews", jwt)
	rg.GET("", api.query, adminMiddleware())
	rg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *reviewApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.store)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	sc, ok := api.store.GetSchool(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}

	var data review.NewReview
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReview")
	}
	if err := data.Validate(core.Validate); err != nil {
		return err
	}

	// the reviewer's display name is frozen into the record
	name := usr.Username
	if name == "" {
		name = usr.Email
	}
	rev, err := api.store.AddReview(ctx.Request().Context(), review.Review{
		SchoolID: sc.ID,
		UserID:   usr.ID,
		UserName: name,
		Rating:   data.Rating,
		Comment:  data.Comment,
	})
	if err != nil {
		// already applied in memory; the failed mirror is diagnostic only
		api.logger.Error("mirroring review insert", err)
	}
	return ctx.JSON(http.StatusCreated, rev)
}

func (api *reviewApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Reviews())
}

// destroy removes a review, allowed for its author or an admin. The removal
// is immediate; only the backend mirror is asynchronous-failure tolerant.
func (api *reviewApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.store)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	rev, ok := api.store.GetReview(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	if rev.UserID != usr.ID && !usr.IsAdmin() {
		return errHttpForbidden
	}

	if err := api.store.DeleteReview(ctx.Request().Context(), rev.ID); err != nil {
		api.logger.Error("mirroring review delete", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
