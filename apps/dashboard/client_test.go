package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLogin(t *testing.T) {
	client := newTestAPI(t)
	assert.NotEmpty(t, client.token)

	profs, err := client.ListProfessors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profs)
}

func TestClientUnauthorized(t *testing.T) {
	client := newTestAPI(t)
	client.SetToken("")

	_, err := client.ListCourses(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "No token, authorization denied", apiErr.Message)
}

func TestClientCourses(t *testing.T) {
	ctx := context.Background()
	client := newTestAPI(t)

	crs, err := client.CreateCourse(ctx, CourseInput{Title: "Advanced Encryption", Code: "crypt201", Semester: "Spring", Year: 2023})
	require.NoError(t, err)
	assert.NotZero(t, crs.ID)
	assert.Equal(t, "CRYPT201", crs.Code)

	crs, err = client.UpdateCourse(ctx, crs.ID, CourseInput{Title: "Advanced Encryption II", Code: "CRYPT202"})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Encryption II", crs.Title)

	courses, err := client.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CRYPT202", courses[0].Code)

	require.NoError(t, client.DeleteCourse(ctx, crs.ID))
	err = client.DeleteCourse(ctx, crs.ID)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestClientLectures(t *testing.T) {
	ctx := context.Background()
	client := newTestAPI(t)

	crs, err := client.CreateCourse(ctx, CourseInput{Title: "Introduction to Cryptography"})
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		lec, err := client.CreateLecture(ctx, LectureInput{
			CourseID: crs.ID, LectureNo: 1, Topic: "Symmetric Key Cryptography", LectureDate: "2023-09-05",
		}, nil)
		require.NoError(t, err)
		assert.NotZero(t, lec.ID)
		assert.Equal(t, crs.ID, lec.CourseID)
	})

	t.Run("with pdf", func(t *testing.T) {
		pdf := &File{Name: "pki.pdf", Content: strings.NewReader("%PDF-1.4 public key infrastructure")}
		lec, err := client.CreateLecture(ctx, LectureInput{
			CourseID: crs.ID, LectureNo: 2, Topic: "Public Key Infrastructure", LectureDate: "2023-09-12",
		}, pdf)
		require.NoError(t, err)

		lec, err = client.UpdateLecture(ctx, lec.ID, LectureInput{
			CourseID: crs.ID, LectureNo: 2, Topic: "PKI", LectureDate: "2023-09-12",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Lecture 2: PKI", lec.Title)
	})

	lectures, err := client.ListCourseLectures(ctx, crs.ID)
	require.NoError(t, err)
	assert.Len(t, lectures, 2)

	_, err = client.CreateLecture(ctx, LectureInput{CourseID: crs.ID, LectureNo: 3}, nil)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Server error"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "abc", nil)
	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Equal(t, "api: 500 Server error", err.Error())

	assert.Zero(t, StatusCode(errors.New("boom")))
}
