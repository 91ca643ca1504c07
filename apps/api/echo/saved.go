package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core/session"
)

type savedApi struct {
	session *session.Service
}

func registerSavedAPI(g *echo.Group, jwt echo.MiddlewareFunc, sess *session.Service) {
	api := savedApi{session: sess}

	sg := g.Group("/saved", jwt)
	sg.GET("", api.query)
	sg.POST("", api.toggle)
	sg.DELETE("/:id", api.remove)
}

// Handlers

func (api *savedApi) query(ctx echo.Context) error {
	ids, err := api.session.SavedSchoolIDs()
	if err != nil {
		return errors.Wrap(err, "loading saved schools")
	}
	return ctx.JSON(http.StatusOK, SavedResponse{SchoolIDs: ids})
}

func (api *savedApi) toggle(ctx echo.Context) error {
	var data SavedRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SavedRequest")
	}
	if data.SchoolID == "" {
		return errHttpNotFound
	}

	ids, err := api.session.ToggleSaved(data.SchoolID)
	if err != nil {
		return errors.Wrap(err, "toggling saved school")
	}
	return ctx.JSON(http.StatusOK, SavedResponse{SchoolIDs: ids})
}

func (api *savedApi) remove(ctx echo.Context) error {
	ids, err := api.session.SavedSchoolIDs()
	if err != nil {
		return errors.Wrap(err, "loading saved schools")
	}
	for _, id := range ids {
		if id == ctx.Param("id") {
			// present; the toggle drops it
			if ids, err = api.session.ToggleSaved(id); err != nil {
				return errors.Wrap(err, "removing saved school")
			}
			break
		}
	}
	return ctx.JSON(http.StatusOK, SavedResponse{SchoolIDs: ids})
}

type (
	SavedRequest struct {
		SchoolID string `json:"schoolId"`
	}

	SavedResponse struct {
		SchoolIDs []string `json:"schoolIds"`
	}
)
