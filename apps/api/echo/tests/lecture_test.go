package tests

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type lectureRow struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	CourseID    int    `json:"course_id"`
	CourseTitle string `json:"course_title"`
	LectureDate string `json:"lecture_date"`
	LectureNo   int    `json:"lectureNo"`
	Topic       string `json:"topic"`
	FileName    string `json:"file_name"`
	Notes       struct {
		Type     string `json:"type"`
		Content  string `json:"content"`
		URL      string `json:"url"`
		FileInfo *struct {
			OriginalName string `json:"originalName"`
			Filename     string `json:"filename"`
			MimeType     string `json:"mimetype"`
			Size         int64  `json:"size"`
		} `json:"fileInfo"`
	} `json:"notes"`
}

func listLectures(t *testing.T, app testApp, path string) []lectureRow {
	t.Helper()
	rec := app.do(newAuthRequest(http.MethodGet, path, token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rows []lectureRow
	unmarshall(t, rec, &rows)
	return rows
}

func createLecture(t *testing.T, app testApp, body string) int {
	t.Helper()
	rec := app.do(newAuthRequest(http.MethodPost, "/api/lectures", token, []byte(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		LectureID int `json:"lectureId"`
	}
	unmarshall(t, rec, &resp)
	return resp.LectureID
}

func Test_lectureApi_pdfUploadAndDownload(t *testing.T) {
	app := setup(t)
	courseID := createCourse(t, app, `{"name":"Intro to Crypto","description":"desc"}`)

	req := newMultipartRequest(t, http.MethodPost, "/api/lectures", token, map[string]string{
		"courseId":  strconv.Itoa(courseID),
		"lectureNo": "1",
		"topic":     "Symmetric Key Cryptography",
		"date":      "2023-09-01",
	}, formFile{field: "pdfFile", name: "Week 1 notes.pdf", content: pdfContent})
	rec := app.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Message   string     `json:"message"`
		LectureID int        `json:"lectureId"`
		Lecture   lectureRow `json:"lecture"`
		FileInfo  struct {
			Filename string `json:"filename"`
			URL      string `json:"url"`
		} `json:"fileInfo"`
	}
	unmarshall(t, rec, &resp)
	assert.Equal(t, "Lecture created successfully", resp.Message)
	assert.Equal(t, "Lecture 1: Symmetric Key Cryptography", resp.Lecture.Title)
	assert.Equal(t, 1, resp.Lecture.LectureNo)
	assert.Equal(t, "Symmetric Key Cryptography", resp.Lecture.Topic)
	assert.Equal(t, "Intro to Crypto", resp.Lecture.CourseTitle)
	assert.Equal(t, "pdf", resp.Lecture.Notes.Type)
	assert.Equal(t, "Week 1 notes.pdf", resp.Lecture.Notes.Content)
	require.NotNil(t, resp.Lecture.Notes.FileInfo)
	assert.Equal(t, "application/pdf", resp.Lecture.Notes.FileInfo.MimeType)
	assert.Equal(t, int64(len(pdfContent)), resp.Lecture.Notes.FileInfo.Size)
	assert.Regexp(t, `^pdfFile-\d+-\d+\.pdf$`, resp.FileInfo.Filename)
	assert.Equal(t, "/api/lectures/download/"+resp.FileInfo.Filename, resp.Lecture.Notes.URL)
	assert.Equal(t, resp.Lecture.Notes.URL, resp.FileInfo.URL)

	// downloads need no token
	rec = app.do(newRequest(http.MethodGet, resp.Lecture.Notes.URL))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Week 1 notes.pdf")
	assert.Equal(t, pdfContent, rec.Body.Bytes())

	tests := []httpTest{
		{
			name:     "unknown file",
			method:   http.MethodGet,
			path:     "/api/lectures/download/pdfFile-1-1.pdf",
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"message":"File not found"}`),
		},
		{
			name:     "hidden file",
			method:   http.MethodGet,
			path:     "/api/lectures/download/.env",
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"message":"File not found"}`),
		},
	}
	runHTTPTests(t, app, tests)

	t.Run("replacing the file", func(t *testing.T) {
		req := newMultipartRequest(t, http.MethodPut, "/api/lectures/"+strconv.Itoa(resp.LectureID), token, map[string]string{
			"course_id": strconv.Itoa(courseID),
			"lectureNo": "1",
			"topic":     "Block Ciphers",
		}, formFile{field: "pdfFile", name: "v2.pdf", content: pdfContent})
		rec := app.do(req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var row lectureRow
		unmarshall(t, rec, &row)
		assert.Equal(t, "Lecture 1: Block Ciphers", row.Title)
		assert.Equal(t, "v2.pdf", row.Notes.Content)
		assert.NotEqual(t, resp.FileInfo.Filename, row.FileName)

		// the previous file is gone
		assert.Equal(t, http.StatusNotFound, app.do(newRequest(http.MethodGet, resp.Lecture.Notes.URL)).Code)
		assert.Equal(t, http.StatusOK, app.do(newRequest(http.MethodGet, row.Notes.URL)).Code)

		// deleting the lecture removes its file
		rec = app.do(newAuthRequest(http.MethodDelete, "/api/lectures/"+strconv.Itoa(row.ID), token))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Lecture deleted successfully"}`, rec.Body.String())
		assert.Equal(t, http.StatusNotFound, app.do(newRequest(http.MethodGet, row.Notes.URL)).Code)
	})
}

func Test_lectureApi_uploadTooLarge(t *testing.T) {
	app := setup(t)
	courseID := createCourse(t, app, `{"name":"Intro to Crypto"}`)

	big := bytes.Repeat([]byte("a"), 1<<20+1)
	req := newMultipartRequest(t, http.MethodPost, "/api/lectures", token, map[string]string{
		"courseId":  strconv.Itoa(courseID),
		"lectureNo": "1",
		"topic":     "Big",
	}, formFile{field: "pdfFile", name: "big.pdf", content: big})
	rec := app.do(req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"message":"File too large (max 1 MB)"}`, rec.Body.String())
	assert.Empty(t, listLectures(t, app, "/api/lectures"))
}

// countingReader records how much of the request body the server read.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func Test_lectureApi_streamedUploadTooLarge(t *testing.T) {
	app := setup(t)
	courseID := createCourse(t, app, `{"name":"Intro to Crypto"}`)

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	require.NoError(t, w.WriteField("courseId", strconv.Itoa(courseID)))
	require.NoError(t, w.WriteField("lectureNo", "1"))
	require.NoError(t, w.WriteField("topic", "Huge"))
	_, err := w.CreateFormFile("pdfFile", "huge.pdf")
	require.NoError(t, err)
	head := append([]byte(nil), form.Bytes()...)
	form.Reset()
	require.NoError(t, w.Close())

	// no Content-Length: the limit applies while the form is read
	body := &countingReader{r: io.MultiReader(
		bytes.NewReader(head),
		bytes.NewReader(make([]byte, 40<<20)),
		bytes.NewReader(form.Bytes()),
	)}
	req := httptest.NewRequest(http.MethodPost, "/api/lectures", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("x-auth-token", token)

	rec := app.do(req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"message":"Request Entity Too Large"}`, rec.Body.String())
	// lecture policy (1 MB) plus the form allowance, with some read-ahead
	assert.Less(t, body.n, int64(3<<20))
	assert.Empty(t, listLectures(t, app, "/api/lectures"))
}

func Test_lectureApi_validation(t *testing.T) {
	app := setup(t)
	courseID := createCourse(t, app, `{"name":"Intro to Crypto"}`)
	course := strconv.Itoa(courseID)

	tests := []httpTest{
		{
			name:     "missing topic",
			method:   http.MethodPost,
			path:     "/api/lectures",
			body:     []byte(`{"courseId":` + course + `,"lectureNo":1}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "Please provide all required fields",
				Errors:  map[string]string{"topic": "this field is required"},
			}),
		},
		{
			name:     "missing lectureNo",
			method:   http.MethodPost,
			path:     "/api/lectures",
			body:     []byte(`{"courseId":` + course + `,"topic":"AES"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "Please provide all required fields",
				Errors:  map[string]string{"lectureNo": "this field is required"},
			}),
		},
		{
			name:     "blank lectureNo",
			method:   http.MethodPost,
			path:     "/api/lectures",
			body:     []byte(`{"courseId":` + course + `,"lectureNo":"","topic":"AES"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "fractional lectureNo",
			method:   http.MethodPost,
			path:     "/api/lectures",
			body:     []byte(`{"courseId":` + course + `,"lectureNo":2.9,"topic":"AES"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"message":"2.9 is not a whole number"}`),
		},
		{
			name:     "bad date",
			method:   http.MethodPost,
			path:     "/api/lectures",
			body:     []byte(`{"courseId":` + course + `,"lectureNo":1,"topic":"AES","date":"01/02/2024"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "Please provide all required fields",
				Errors:  map[string]string{"lecture_date": "lecture_date must be a valid date (YYYY-MM-DD)"},
			}),
		},
		{
			name:     "pdf notes without a file",
			method:   http.MethodPost,
			path:     "/api/lectures",
			body:     []byte(`{"courseId":` + course + `,"lectureNo":1,"topic":"AES","notes":{"type":"pdf"}}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "a file is required for pdf notes",
				Errors:  map[string]string{"pdfFile": "a file is required for pdf notes"},
			}),
		},
		{
			name:     "unknown course",
			method:   http.MethodPost,
			path:     "/api/lectures",
			body:     []byte(`{"courseId":999,"lectureNo":1,"topic":"AES"}`),
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"message":"Course not found"}`),
		},
		{
			name:     "unknown lecture",
			method:   http.MethodGet,
			path:     "/api/lectures/999",
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"message":"Lecture not found"}`),
		},
	}
	runHTTPTests(t, app, tests)
	assert.Empty(t, listLectures(t, app, "/api/lectures"))

	t.Run("multipart without topic", func(t *testing.T) {
		req := newMultipartRequest(t, http.MethodPost, "/api/lectures", token, map[string]string{
			"courseId":  course,
			"lectureNo": "1",
		}, formFile{field: "pdfFile", name: "notes.pdf", content: pdfContent})
		assert.Equal(t, http.StatusBadRequest, app.do(req).Code)
		assert.Empty(t, listLectures(t, app, "/api/lectures"))
	})
}

func Test_lectureApi_byCourse(t *testing.T) {
	app := setup(t)
	crypto := createCourse(t, app, `{"name":"Intro to Crypto"}`)
	aes := createCourse(t, app, `{"name":"Advanced Encryption"}`)

	lecture := func(course, no int, topic, date string) string {
		return `{"courseId":` + strconv.Itoa(course) + `,"lectureNo":` + strconv.Itoa(no) +
			`,"topic":"` + topic + `","date":"` + date + `","notes":"https://notes.test/` + topic + `"}`
	}
	createLecture(t, app, lecture(crypto, 2, "Hashing", "2023-09-08"))
	createLecture(t, app, lecture(aes, 1, "AES", "2023-02-01"))
	createLecture(t, app, lecture(crypto, 1, "Ciphers", "2023-09-01"))
	createLecture(t, app, lecture(aes, 2, "Modes", ""))
	createLecture(t, app, lecture(crypto, 3, "PKI", "2023-09-15"))

	rows := listLectures(t, app, "/api/lectures/course/"+strconv.Itoa(crypto))
	require.Len(t, rows, 3)
	var topics []string
	for _, row := range rows {
		assert.Equal(t, crypto, row.CourseID)
		topics = append(topics, row.Topic)
	}
	assert.Equal(t, []string{"Ciphers", "Hashing", "PKI"}, topics)
	assert.Equal(t, "url", rows[0].Notes.Type)
	assert.Equal(t, "https://notes.test/Ciphers", rows[0].Notes.Content)

	rows = listLectures(t, app, "/api/lectures/course/"+strconv.Itoa(aes))
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, aes, row.CourseID)
		assert.Equal(t, "Advanced Encryption", row.CourseTitle)
	}

	assert.Empty(t, listLectures(t, app, "/api/lectures/course/999"))
	assert.Empty(t, listLectures(t, app, "/api/lectures/course/abc"))

	// most recent first, undated last
	rows = listLectures(t, app, "/api/lectures")
	require.Len(t, rows, 5)
	assert.Equal(t, "PKI", rows[0].Topic)
	assert.Equal(t, "Modes", rows[4].Topic)

	t.Run("courses embed their lectures", func(t *testing.T) {
		courses := listCourses(t, app)
		require.Len(t, courses, 2)
		for _, crs := range courses {
			if crs.ID != crypto {
				continue
			}
			require.Len(t, crs.Lectures, 3)
			for i, lec := range crs.Lectures {
				assert.Equal(t, i+1, lec.LectureNo)
			}
		}
	})

	t.Run("deleting a course deletes its lectures", func(t *testing.T) {
		rec := app.do(newAuthRequest(http.MethodDelete, "/api/courses/"+strconv.Itoa(crypto), token))
		require.Equal(t, http.StatusOK, rec.Code)
		rows := listLectures(t, app, "/api/lectures")
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, aes, row.CourseID)
		}
	})
}
