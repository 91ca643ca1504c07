package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
)

type adminApi struct {
	store *directory.Store
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, store *directory.Store) {
	api := adminApi{store: store}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/status", api.status)
	ag.GET("/export/seed", api.exportSeed)
	ag.GET("/export/xlsx", api.exportWorkbook)
	ag.POST("/seed", api.seed)
}

// Handlers

// status feeds the dashboard setup banner: the rolling last backend error
// plus collection counts.
func (api *adminApi) status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, StatusResponse{
		Remote:    api.store.Remote(),
		LastError: api.store.LastError(),
		Schools:   len(api.store.Schools()),
		Users:     len(api.store.Users()),
		Reviews:   len(api.store.Reviews()),
	})
}

func (api *adminApi) exportSeed(ctx echo.Context) error {
	src, err := api.store.ExportSeedSource()
	if err != nil {
		return errors.Wrap(err, "exporting seed source")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="seed_schools.go"`)
	return ctx.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(src))
}

func (api *adminApi) exportWorkbook(ctx echo.Context) error {
	f, err := api.store.ExportWorkbook()
	if err != nil {
		return errors.Wrap(err, "exporting workbook")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="schools.xlsx"`)
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)
	_, err = f.WriteTo(ctx.Response())
	return errors.Wrap(err, "writing workbook")
}

func (api *adminApi) seed(ctx echo.Context) error {
	if !api.store.Remote() {
		return core.NewValidationError(errors.New("seeding requires the hosted backend"))
	}
	if err := api.store.SeedBackend(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "seeding backend")
	}
	return ctx.JSON(http.StatusOK, StatusResponse{
		Remote:    api.store.Remote(),
		LastError: api.store.LastError(),
		Schools:   len(api.store.Schools()),
		Users:     len(api.store.Users()),
		Reviews:   len(api.store.Reviews()),
	})
}

type StatusResponse struct {
	Remote    bool   `json:"remote"`
	LastError string `json:"lastError"`
	Schools   int    `json:"schools"`
	Users     int    `json:"users"`
	Reviews   int    `json:"reviews"`
}
