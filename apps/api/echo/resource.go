package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/resource"
)

type ResourceRequest struct {
	Title       string          `json:"title" form:"title"`
	Description string          `json:"description" form:"description"`
	Type        string          `json:"type" form:"type"`
	URL         string          `json:"url" form:"url"`
	Tags        core.StringList `json:"tags" form:"tags"`
}

func (req ResourceRequest) toNewResource(createdBy int) resource.NewResource {
	return resource.NewResource{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		Tags:        req.Tags,
		CreatedBy:   createdBy,
	}
}

type resourceApi struct {
	svc      *resource.Service
	validate *validator.Validate
}

func registerResourceAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *resource.Service, validate *validator.Validate) {
	api := resourceApi{
		svc:      svc,
		validate: validate,
	}

	rg := g.Group("/resources")
	limit := uploadBodyLimit(svc.Policy().MaxSize)

	// un-authed endpoints
	rg.GET("", api.query)
	rg.GET("/type/:type", api.queryByType)
	rg.GET("/:id", api.retrieve)

	// authed endpoints
	rg.POST("", api.create, authed, limit)
	rg.POST("/upload", api.upload, authed, limit)
	rg.PUT("/:id", api.update, authed, limit)
	rg.DELETE("/:id", api.destroy, authed)
}

func (api *resourceApi) bindResource(ctx echo.Context, createdBy int) (resource.NewResource, error) {
	var data ResourceRequest
	if err := bind(ctx, &data); err != nil {
		return resource.NewResource{}, err
	}
	nr := data.toNewResource(createdBy)
	if err := nr.Validate(api.validate); err != nil {
		return resource.NewResource{}, err
	}
	return nr, nil
}

// Handlers

func (api *resourceApi) query(ctx echo.Context) error {
	resources, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *resourceApi) queryByType(ctx echo.Context) error {
	resources, err := api.svc.QueryByType(ctx.Request().Context(), ctx.Param("type"))
	if err != nil {
		return errors.Wrap(err, "querying resources by type")
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *resourceApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, "id", resource.ErrNotFound)
	if err != nil {
		return err
	}
	res, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding resource")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) create(ctx echo.Context) error {
	nr, err := api.bindResource(ctx, contextUserID(ctx))
	if err != nil {
		return err
	}
	upload, err := optionalFile(ctx, resource.FileField)
	if err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), nr, upload)
	if err != nil {
		return errors.Wrap(err, "creating resource")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":    "Resource added successfully",
		"resourceId": res.ID,
		"resource":   res,
	})
}

// upload stores a file without creating a resource and returns its public url.
func (api *resourceApi) upload(ctx echo.Context) error {
	upload, err := optionalFile(ctx, resource.FileField)
	if err != nil {
		return err
	}
	fd, err := api.svc.Upload(ctx.Request().Context(), upload)
	if err != nil {
		return errors.Wrap(err, "uploading file")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"message":   "File uploaded successfully",
		"url":       ctx.Scheme() + "://" + ctx.Request().Host + fd.URL,
		"file_path": fd.Path,
	})
}

func (api *resourceApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, "id", resource.ErrNotFoundForUpdate)
	if err != nil {
		return err
	}
	nr, err := api.bindResource(ctx, 0)
	if err != nil {
		return err
	}
	upload, err := optionalFile(ctx, resource.FileField)
	if err != nil {
		return err
	}

	res, err := api.svc.Update(ctx.Request().Context(), id, nr, upload)
	if err != nil {
		return errors.Wrap(err, "updating resource")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, "id", resource.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting resource")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Resource deleted successfully"})
}
