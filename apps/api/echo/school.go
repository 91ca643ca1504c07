package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
)

type schoolApi struct {
	store  *directory.Store
	logger core.Logger
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, store *directory.Store, logger core.Logger) {
	api := schoolApi{
		store:  store,
		logger: logger,
	}

	sg := g.Group("/schools")

	// the listing and detail pages are public; a same-prefix sub-group would
	// register catch-alls that shadow them, so admin routes take per-route
	// middleware instead
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.POST("", api.create, jwt, adminMiddleware())
	sg.PUT("/:id", api.update, jwt, adminMiddleware())
	sg.DELETE("/:id", api.destroy, jwt, adminMiddleware())
}

// Handlers

func (api *schoolApi) query(ctx echo.Context) error {
	filter := new(school.Filter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []school.School{})
	}
	filter.Clean()

	schools := filter.Apply(api.store.Schools())
	if schools == nil {
		schools = []school.School{}
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *schoolApi) retrieve(ctx echo.Context) error {
	sc, ok := api.store.GetSchool(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, SchoolDetailResponse{
		School:  sc,
		Reviews: api.store.SchoolReviews(sc.ID),
	})
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if err := data.Validate(core.Validate); err != nil {
		return err
	}

	sc, err := api.store.AddSchool(ctx.Request().Context(), data.School())
	if err != nil {
		// already applied in memory; the failed mirror is diagnostic only
		api.logger.Error("mirroring school insert", err)
	}
	return ctx.JSON(http.StatusCreated, sc)
}

func (api *schoolApi) update(ctx echo.Context) error {
	existing, ok := api.store.GetSchool(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}

	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if err := data.Validate(core.Validate); err != nil {
		return err
	}

	sc := data.School()
	sc.ID = existing.ID
	if _, err := api.store.UpdateSchool(ctx.Request().Context(), sc); err != nil {
		api.logger.Error("mirroring school update", err)
	}
	return ctx.JSON(http.StatusOK, sc)
}

func (api *schoolApi) destroy(ctx echo.Context) error {
	if _, ok := api.store.GetSchool(ctx.Param("id")); !ok {
		return errHttpNotFound
	}
	if err := api.store.DeleteSchool(ctx.Request().Context(), ctx.Param("id")); err != nil {
		api.logger.Error("mirroring school delete", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type SchoolDetailResponse struct {
	school.School
	Reviews []review.Review `json:"reviews"`
}
