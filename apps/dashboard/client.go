// Package dashboard is the data layer of the administration dashboard: an API client and the
// per-tab view state it feeds.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// APIError is a non 2xx response of the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (err APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("api: %d %s", err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("api: %d %s", err.StatusCode, err.Message)
}

// StatusCode returns the http status of an APIError, 0 for any other error.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client calls the REST API. The token is sent as a bearer Authorization header.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, dest interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Message
		}
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrapf(err, "decoding %s %s", req.Method, req.URL.Path)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	var contentType string
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encoding payload")
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.send(req, dest)
}

// Login stores the returned token for the next requests.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var sess Session
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &sess); err != nil {
		return Session{}, err
	}
	c.token = sess.Token
	return sess, nil
}

// Professors

func (c *Client) ListProfessors(ctx context.Context) ([]Professor, error) {
	var profs []Professor
	err := c.do(ctx, http.MethodGet, "/api/professors", nil, &profs)
	return profs, err
}

func (c *Client) CreateProfessor(ctx context.Context, in ProfessorInput) (Professor, error) {
	var resp struct {
		ID        int       `json:"professorId"`
		Professor Professor `json:"professor"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/professors", in, &resp); err != nil {
		return Professor{}, err
	}
	resp.Professor.ID = resp.ID
	return resp.Professor, nil
}

func (c *Client) DeleteProfessor(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/professors/"+strconv.Itoa(id), nil, nil)
}

// Projects

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projs []Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projs)
	return projs, err
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	var resp struct {
		ID      int     `json:"projectId"`
		Project Project `json:"project"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/projects", in, &resp); err != nil {
		return Project{}, err
	}
	resp.Project.ID = resp.ID
	return resp.Project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+strconv.Itoa(id), nil, nil)
}

// Courses

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := c.do(ctx, http.MethodGet, "/api/courses", nil, &courses)
	return courses, err
}

func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (Course, error) {
	var resp struct {
		ID     int    `json:"courseId"`
		Course Course `json:"course"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/courses", in, &resp); err != nil {
		return Course{}, err
	}
	resp.Course.ID = resp.ID
	return resp.Course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id int, in CourseInput) (Course, error) {
	var crs Course
	err := c.do(ctx, http.MethodPut, "/api/courses/"+strconv.Itoa(id), in, &crs)
	return crs, err
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+strconv.Itoa(id), nil, nil)
}

// Lectures

func (c *Client) ListLectures(ctx context.Context) ([]Lecture, error) {
	var lectures []Lecture
	err := c.do(ctx, http.MethodGet, "/api/lectures", nil, &lectures)
	return lectures, err
}

func (c *Client) ListCourseLectures(ctx context.Context, courseID int) ([]Lecture, error) {
	var lectures []Lecture
	err := c.do(ctx, http.MethodGet, "/api/lectures/course/"+strconv.Itoa(courseID), nil, &lectures)
	return lectures, err
}

// lectureRequest sends a lecture as JSON, or as a multipart form when pdf is set.
func (c *Client) lectureRequest(ctx context.Context, method, path string, in LectureInput, pdf *File) (*http.Request, error) {
	if pdf == nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrap(err, "encoding payload")
		}
		return c.newRequest(ctx, method, path, bytes.NewReader(data), "application/json")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := [][2]string{
		{"course_id", strconv.Itoa(in.CourseID)},
		{"lectureNo", strconv.Itoa(in.LectureNo)},
		{"topic", in.Topic},
		{"lecture_date", in.LectureDate},
		{"description", in.Description},
		{"slides_url", in.SlidesURL},
		{"video_url", in.VideoURL},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, errors.Wrap(err, "writing form field")
		}
	}
	part, err := w.CreateFormFile("pdfFile", pdf.Name)
	if err != nil {
		return nil, errors.Wrap(err, "creating form file")
	}
	if _, err = io.Copy(part, pdf.Content); err != nil {
		return nil, errors.Wrap(err, "writing form file")
	}
	if err = w.Close(); err != nil {
		return nil, errors.Wrap(err, "closing form")
	}
	return c.newRequest(ctx, method, path, &body, w.FormDataContentType())
}

// CreateLecture uploads pdf as the lecture notes when it is not nil.
func (c *Client) CreateLecture(ctx context.Context, in LectureInput, pdf *File) (Lecture, error) {
	req, err := c.lectureRequest(ctx, http.MethodPost, "/api/lectures", in, pdf)
	if err != nil {
		return Lecture{}, err
	}
	var resp struct {
		ID      int     `json:"lectureId"`
		Lecture Lecture `json:"lecture"`
	}
	if err = c.send(req, &resp); err != nil {
		return Lecture{}, err
	}
	resp.Lecture.ID = resp.ID
	return resp.Lecture, nil
}

func (c *Client) UpdateLecture(ctx context.Context, id int, in LectureInput, pdf *File) (Lecture, error) {
	req, err := c.lectureRequest(ctx, http.MethodPut, "/api/lectures/"+strconv.Itoa(id), in, pdf)
	if err != nil {
		return Lecture{}, err
	}
	var lec Lecture
	err = c.send(req, &lec)
	return lec, err
}

func (c *Client) DeleteLecture(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/lectures/"+strconv.Itoa(id), nil, nil)
}
