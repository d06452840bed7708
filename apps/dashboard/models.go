package dashboard

import (
	"io"

	"github.com/volatiletech/null/v8"
)

// Tab is a section of the dashboard. Each tab owns one list.
type Tab string

const (
	TabProfessors Tab = "professors"
	TabProjects   Tab = "projects"
	TabCourses    Tab = "courses"
	TabLectures   Tab = "lectures"
)

var Tabs = []Tab{TabProfessors, TabProjects, TabCourses, TabLectures}

type (
	Session struct {
		ID         int    `json:"id"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Email      string `json:"email"`
		Role       string `json:"role"`
		Token      string `json:"token"`
		RedirectTo string `json:"redirectTo"`
	}

	Professor struct {
		ID             int         `json:"id"`
		Name           string      `json:"name"`
		Title          string      `json:"title"`
		Email          string      `json:"email"`
		Specialization null.String `json:"specialization"`
		Website        null.String `json:"website"`
	}

	Project struct {
		ID             int         `json:"id"`
		Title          string      `json:"title"`
		Description    string      `json:"description"`
		Type           string      `json:"type"`
		Status         string      `json:"status"`
		StartDate      null.String `json:"start_date"`
		EndDate        null.String `json:"end_date"`
		ProfessorName  null.String `json:"professor_name"`
		Technologies   []string    `json:"technologies"`
		Members        []string    `json:"members"`
		PublicationURL null.String `json:"publication_url"`
	}

	Course struct {
		ID            int             `json:"id"`
		Title         string          `json:"title"`
		Code          string          `json:"code"`
		Description   string          `json:"description"`
		Semester      null.String     `json:"semester"`
		Year          null.Int        `json:"year"`
		ProfessorName null.String     `json:"professor_name"`
		Lectures      []CourseLecture `json:"lectures"`
	}

	// CourseLecture is the summary of a lecture listed inside its course.
	CourseLecture struct {
		ID        int    `json:"id"`
		LectureNo int    `json:"lectureNo"`
		Topic     string `json:"topic"`
		Date      string `json:"date"`
	}

	Lecture struct {
		ID          int         `json:"id"`
		LectureNo   int         `json:"lectureNo"`
		Topic       string      `json:"topic"`
		Title       string      `json:"title"`
		Description null.String `json:"description"`
		CourseID    int         `json:"course_id"`
		CourseTitle null.String `json:"course_title"`
		LectureDate null.String `json:"lecture_date"`
		SlidesURL   null.String `json:"slides_url"`
		VideoURL    null.String `json:"video_url"`
	}
)

// Inputs use the names the API persists.
type (
	ProfessorInput struct {
		Name           string `json:"name"`
		Title          string `json:"title"`
		Email          string `json:"email"`
		Specialization string `json:"specialization,omitempty"`
		Website        string `json:"website,omitempty"`
	}

	ProjectInput struct {
		Title          string   `json:"title"`
		Description    string   `json:"description,omitempty"`
		Type           string   `json:"type"`
		Status         string   `json:"status"`
		StartDate      string   `json:"start_date"`
		EndDate        string   `json:"end_date,omitempty"`
		ProfessorID    int      `json:"professor_id,omitempty"`
		Technologies   []string `json:"technologies"`
		Members        []string `json:"members"`
		PublicationURL string   `json:"publication_url,omitempty"`
	}

	CourseInput struct {
		Title       string `json:"title"`
		Code        string `json:"code,omitempty"`
		Description string `json:"description,omitempty"`
		Semester    string `json:"semester,omitempty"`
		Year        int    `json:"year,omitempty"`
		ProfessorID int    `json:"professor_id,omitempty"`
	}

	LectureInput struct {
		CourseID    int    `json:"course_id"`
		LectureNo   int    `json:"lectureNo"`
		Topic       string `json:"topic"`
		LectureDate string `json:"lecture_date,omitempty"`
		Description string `json:"description,omitempty"`
		SlidesURL   string `json:"slides_url,omitempty"`
		VideoURL    string `json:"video_url,omitempty"`
	}

	// File is an attachment sent along a lecture.
	File struct {
		Name    string
		Content io.Reader
	}
)

func placeholderCourses() []Course {
	return []Course{
		{
			ID:            1,
			Title:         "Introduction to Cryptography",
			Code:          "CRYPT101",
			Description:   "An introductory course to cryptography concepts",
			Semester:      null.StringFrom("Fall"),
			Year:          null.IntFrom(2023),
			ProfessorName: null.StringFrom("Dr. Smith"),
		},
		{
			ID:            2,
			Title:         "Advanced Encryption",
			Code:          "CRYPT201",
			Description:   "Advanced topics in modern encryption techniques",
			Semester:      null.StringFrom("Spring"),
			Year:          null.IntFrom(2023),
			ProfessorName: null.StringFrom("Dr. Johnson"),
		},
	}
}

func placeholderLectures() []Lecture {
	return []Lecture{
		{
			ID:          1,
			Title:       "Symmetric Key Cryptography",
			Description: null.StringFrom("Introduction to symmetric key algorithms"),
			CourseID:    1,
			CourseTitle: null.StringFrom("Introduction to Cryptography"),
			LectureDate: null.StringFrom("2023-09-15"),
			SlidesURL:   null.StringFrom("https://example.com/slides1.pdf"),
			VideoURL:    null.StringFrom("https://example.com/video1.mp4"),
		},
		{
			ID:          2,
			Title:       "Public Key Infrastructure",
			Description: null.StringFrom("Understanding PKI and its applications"),
			CourseID:    2,
			CourseTitle: null.StringFrom("Advanced Encryption"),
			LectureDate: null.StringFrom("2023-10-20"),
			SlidesURL:   null.StringFrom("https://example.com/slides2.pdf"),
			VideoURL:    null.StringFrom("https://example.com/video2.mp4"),
		},
	}
}
