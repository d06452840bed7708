package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/project"
)

// ProjectRequest accepts camelCase and snake_case dates. Lists may be sent as arrays or JSON strings.
type ProjectRequest struct {
	Title          string          `json:"title" form:"title"`
	Description    string          `json:"description" form:"description"`
	Type           string          `json:"type" form:"type"`
	Status         string          `json:"status" form:"status"`
	StartDate      string          `json:"startDate" form:"startDate"`
	StartDateAlt   string          `json:"start_date" form:"start_date"`
	EndDate        string          `json:"endDate" form:"endDate"`
	EndDateAlt     string          `json:"end_date" form:"end_date"`
	ProfessorID    flexInt         `json:"professor_id" form:"professor_id"`
	Technologies   core.StringList `json:"technologies" form:"technologies"`
	Members        core.StringList `json:"members" form:"members"`
	PublicationURL string          `json:"publication_url" form:"publication_url"`
}

func (req ProjectRequest) toNewProject() project.NewProject {
	return project.NewProject{
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		Status:         req.Status,
		StartDate:      firstString(req.StartDate, req.StartDateAlt),
		EndDate:        firstString(req.EndDate, req.EndDateAlt),
		ProfessorID:    int(req.ProfessorID),
		Technologies:   req.Technologies,
		Members:        req.Members,
		PublicationURL: req.PublicationURL,
	}
}

type projectApi struct {
	svc      *project.Service
	validate *validator.Validate
}

func registerProjectAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *project.Service, validate *validator.Validate) {
	api := projectApi{
		svc:      svc,
		validate: validate,
	}

	pg := g.Group("/projects")

	// un-authed endpoints
	pg.GET("", api.query)
	pg.GET("/:id", api.retrieve)

	// authed endpoints
	pg.POST("", api.create, authed)
	pg.DELETE("/:id", api.destroy, authed)
}

// Handlers

func (api *projectApi) query(ctx echo.Context) error {
	projs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	return ctx.JSON(http.StatusOK, projs)
}

func (api *projectApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, "id", project.ErrNotFound)
	if err != nil {
		return err
	}
	proj, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding project")
	}
	return ctx.JSON(http.StatusOK, proj)
}

func (api *projectApi) create(ctx echo.Context) error {
	var data ProjectRequest
	if err := bind(ctx, &data); err != nil {
		return err
	}
	np := data.toNewProject()
	if err := np.Validate(api.validate); err != nil {
		return err
	}

	proj, err := api.svc.Create(ctx.Request().Context(), np)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":   "Project created successfully",
		"projectId": proj.ID,
		"project":   proj,
	})
}

func (api *projectApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, "id", project.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Project deleted successfully"})
}
