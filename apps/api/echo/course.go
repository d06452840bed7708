package echoapi

import (
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
)

type (
	// CourseRequest accepts both the dashboard's `name` and the stored `title`.
	CourseRequest struct {
		Name        string  `json:"name" form:"name"`
		Title       string  `json:"title" form:"title"`
		Code        string  `json:"code" form:"code"`
		Description string  `json:"description" form:"description"`
		Semester    string  `json:"semester" form:"semester"`
		Year        flexInt `json:"year" form:"year"`
		ProfessorID flexInt `json:"professor_id" form:"professor_id"`
	}

	CourseLecture struct {
		ID        int           `json:"id"`
		LectureNo int           `json:"lectureNo"`
		Topic     string        `json:"topic"`
		Date      string        `json:"date"`
		Notes     lecture.Notes `json:"notes"`
	}

	CourseResponse struct {
		course.Course
		Name     string          `json:"name"`
		Lectures []CourseLecture `json:"lectures"`
	}
)

func (req CourseRequest) toNewCourse(createdBy int) course.NewCourse {
	return course.NewCourse{
		Title:       firstString(req.Title, req.Name),
		Code:        req.Code,
		Description: req.Description,
		Semester:    req.Semester,
		Year:        int(req.Year),
		ProfessorID: int(req.ProfessorID),
		CreatedBy:   createdBy,
	}
}

type courseApi struct {
	svc      *course.Service
	lectures *lecture.Service
	validate *validator.Validate
}

func registerCourseAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	svc *course.Service,
	lectures *lecture.Service,
	validate *validator.Validate,
) {
	api := courseApi{
		svc:      svc,
		lectures: lectures,
		validate: validate,
	}

	cg := g.Group("/courses", authed)
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *courseApi) courseLecture(lec lecture.Lecture) CourseLecture {
	var date string
	if lec.LectureDate.Valid {
		date = lec.LectureDate.Time.Format(core.DateLayout)
	}
	return CourseLecture{
		ID:        lec.ID,
		LectureNo: lec.LectureNo(),
		Topic:     lec.Topic(),
		Date:      date,
		Notes:     api.lectures.NotesOf(lec),
	}
}

func (api *courseApi) response(crs course.Course, lectures []lecture.Lecture) CourseResponse {
	resp := CourseResponse{
		Course:   crs,
		Name:     crs.Title,
		Lectures: make([]CourseLecture, 0, len(lectures)),
	}
	for _, lec := range lectures {
		resp.Lectures = append(resp.Lectures, api.courseLecture(lec))
	}
	sort.SliceStable(resp.Lectures, func(i, j int) bool { return resp.Lectures[i].LectureNo < resp.Lectures[j].LectureNo })
	return resp
}

func (api *courseApi) retrieveResponse(ctx echo.Context, crs course.Course) (CourseResponse, error) {
	lectures, err := api.lectures.QueryByCourse(ctx.Request().Context(), crs.ID)
	if err != nil {
		return CourseResponse{}, errors.Wrap(err, "querying course lectures")
	}
	return api.response(crs, lectures), nil
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	lectures, err := api.lectures.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying lectures")
	}

	byCourse := make(map[int][]lecture.Lecture, len(courses))
	for _, lec := range lectures {
		byCourse[lec.CourseID] = append(byCourse[lec.CourseID], lec)
	}
	resp := make([]CourseResponse, 0, len(courses))
	for _, crs := range courses {
		resp = append(resp, api.response(crs, byCourse[crs.ID]))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data CourseRequest
	if err := bind(ctx, &data); err != nil {
		return err
	}
	nc := data.toNewCourse(contextUserID(ctx))
	if err := nc.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Create(ctx.Request().Context(), nc)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":  "Course created successfully",
		"courseId": crs.ID,
		"course":   api.response(crs, nil),
	})
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, "id", course.ErrNotFound)
	if err != nil {
		return err
	}
	crs, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	resp, err := api.retrieveResponse(ctx, crs)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, "id", course.ErrNotFound)
	if err != nil {
		return err
	}
	var data CourseRequest
	if err = bind(ctx, &data); err != nil {
		return err
	}
	nc := data.toNewCourse(0)
	if err = nc.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Update(ctx.Request().Context(), id, nc)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	resp, err := api.retrieveResponse(ctx, crs)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, "id", course.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Course deleted successfully"})
}
