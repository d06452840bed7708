package echoapi

import (
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
)

type (
	// LectureRequest accepts the dashboard vocabulary (courseId, date) and the stored one (course_id, lecture_date).
	LectureRequest struct {
		CourseID    flexInt    `json:"courseId" form:"courseId"`
		CourseIDAlt flexInt    `json:"course_id" form:"course_id"`
		LectureNo   flexInt    `json:"lectureNo" form:"lectureNo"`
		Topic       string     `json:"topic" form:"topic"`
		Date        string     `json:"date" form:"date"`
		LectureDate string     `json:"lecture_date" form:"lecture_date"`
		Description string     `json:"description" form:"description"`
		Notes       notesParam `json:"notes" form:"notes"`
		SlidesURL   string     `json:"slides_url" form:"slides_url"`
		VideoURL    string     `json:"video_url" form:"video_url"`
	}

	LectureResponse struct {
		lecture.Lecture
		LectureNo int           `json:"lectureNo"`
		Topic     string        `json:"topic"`
		Notes     lecture.Notes `json:"notes"`
	}
)

func (req LectureRequest) toNewLecture(createdBy int) lecture.NewLecture {
	return lecture.NewLecture{
		CourseID:    firstInt(req.CourseID, req.CourseIDAlt),
		LectureNo:   int(req.LectureNo),
		Topic:       req.Topic,
		LectureDate: firstString(req.LectureDate, req.Date),
		Description: req.Description,
		Notes:       req.Notes.notes,
		SlidesURL:   req.SlidesURL,
		VideoURL:    req.VideoURL,
		CreatedBy:   createdBy,
	}
}

type lectureApi struct {
	svc      *lecture.Service
	validate *validator.Validate
}

func registerLectureAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *lecture.Service, validate *validator.Validate) {
	api := lectureApi{
		svc:      svc,
		validate: validate,
	}

	lg := g.Group("/lectures")
	limit := uploadBodyLimit(svc.Policy().MaxSize)

	// un-authed endpoints
	lg.GET("/download/:filename", api.download)

	// authed endpoints
	lg.GET("", api.query, authed)
	lg.POST("", api.create, authed, limit)
	lg.GET("/course/:courseId", api.queryByCourse, authed)
	lg.GET("/:id", api.retrieve, authed)
	lg.PUT("/:id", api.update, authed, limit)
	lg.DELETE("/:id", api.destroy, authed)
}

func (api *lectureApi) response(lec lecture.Lecture) LectureResponse {
	return LectureResponse{
		Lecture:   lec,
		LectureNo: lec.LectureNo(),
		Topic:     lec.Topic(),
		Notes:     api.svc.NotesOf(lec),
	}
}

func (api *lectureApi) responses(lectures []lecture.Lecture) []LectureResponse {
	resp := make([]LectureResponse, 0, len(lectures))
	for _, lec := range lectures {
		resp = append(resp, api.response(lec))
	}
	return resp
}

// bindLecture reads and validates the lecture fields and the optional pdf upload.
func (api *lectureApi) bindLecture(ctx echo.Context, createdBy int) (lecture.NewLecture, *multipart.FileHeader, error) {
	var data LectureRequest
	if err := bind(ctx, &data); err != nil {
		return lecture.NewLecture{}, nil, err
	}
	nl := data.toNewLecture(createdBy)
	if err := nl.Validate(api.validate); err != nil {
		return lecture.NewLecture{}, nil, err
	}
	upload, err := optionalFile(ctx, lecture.FileField)
	if err != nil {
		return lecture.NewLecture{}, nil, err
	}
	return nl, upload, nil
}

// Handlers

func (api *lectureApi) query(ctx echo.Context) error {
	lectures, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying lectures")
	}
	return ctx.JSON(http.StatusOK, api.responses(lectures))
}

func (api *lectureApi) queryByCourse(ctx echo.Context) error {
	courseID, err := idParam(ctx, "courseId", lecture.ErrNotFound)
	if err != nil {
		// an unknown course has no lectures
		return ctx.JSON(http.StatusOK, []LectureResponse{})
	}
	lectures, err := api.svc.QueryByCourse(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "querying course lectures")
	}
	return ctx.JSON(http.StatusOK, api.responses(lectures))
}

func (api *lectureApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, "id", lecture.ErrNotFound)
	if err != nil {
		return err
	}
	lec, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding lecture")
	}
	return ctx.JSON(http.StatusOK, api.response(lec))
}

func (api *lectureApi) create(ctx echo.Context) error {
	nl, upload, err := api.bindLecture(ctx, contextUserID(ctx))
	if err != nil {
		return err
	}

	lec, err := api.svc.Create(ctx.Request().Context(), nl, upload)
	if err != nil {
		return errors.Wrap(err, "creating lecture")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":   "Lecture created successfully",
		"lectureId": lec.ID,
		"lecture":   api.response(lec),
		"fileInfo":  api.svc.FileOf(lec),
	})
}

func (api *lectureApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, "id", lecture.ErrNotFound)
	if err != nil {
		return err
	}
	nl, upload, err := api.bindLecture(ctx, 0)
	if err != nil {
		return err
	}

	lec, err := api.svc.Update(ctx.Request().Context(), id, nl, upload)
	if err != nil {
		return errors.Wrap(err, "updating lecture")
	}
	return ctx.JSON(http.StatusOK, api.response(lec))
}

func (api *lectureApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, "id", lecture.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting lecture")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Lecture deleted successfully"})
}

// download streams a stored lecture file as an attachment named after the uploaded file.
func (api *lectureApi) download(ctx echo.Context) error {
	dl, err := api.svc.OpenFile(ctx.Request().Context(), ctx.Param("filename"))
	if err != nil {
		return err
	}
	defer func() { _ = dl.File.Close() }()

	info, err := dl.File.Stat()
	if err != nil {
		return errors.Wrap(err, "reading file info")
	}

	header := ctx.Response().Header()
	header.Set(echo.HeaderContentType, dl.ContentType)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": dl.OriginalName})
	if disposition == "" {
		disposition = "attachment"
	}
	header.Set(echo.HeaderContentDisposition, disposition)
	http.ServeContent(ctx.Response(), ctx.Request(), dl.OriginalName, info.ModTime(), dl.File)
	return nil
}
