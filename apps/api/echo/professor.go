package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/professor"
)

type professorApi struct {
	svc      *professor.Service
	validate *validator.Validate
}

func registerProfessorAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *professor.Service, validate *validator.Validate) {
	api := professorApi{
		svc:      svc,
		validate: validate,
	}

	pg := g.Group("/professors")

	// un-authed endpoints
	pg.GET("", api.query)
	pg.GET("/:id", api.retrieve)

	// authed endpoints
	pg.POST("", api.create, authed)
	pg.DELETE("/:id", api.destroy, authed)
}

// Handlers

func (api *professorApi) query(ctx echo.Context) error {
	profs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying professors")
	}
	return ctx.JSON(http.StatusOK, profs)
}

func (api *professorApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, "id", professor.ErrNotFound)
	if err != nil {
		return err
	}
	prof, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding professor")
	}
	return ctx.JSON(http.StatusOK, prof)
}

func (api *professorApi) create(ctx echo.Context) error {
	var data professor.NewProfessor
	if err := bind(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prof, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating professor")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":     "Professor added successfully",
		"professorId": prof.ID,
		"professor":   prof,
	})
}

func (api *professorApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, "id", professor.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting professor")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Professor deleted successfully"})
}
