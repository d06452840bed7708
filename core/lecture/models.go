package lecture

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

// NotesKind discriminates the two variants of lecture notes.
type NotesKind string

const (
	NotesURL NotesKind = "url"
	NotesPDF NotesKind = "pdf"
)

var titleRegex = regexp.MustCompile(`^Lecture (\d+): (.*)$`)

// Notes is either a plain URL reference or an uploaded file.
// Only the pdf variant carries URL and FileInfo.
type Notes struct {
	Type     NotesKind            `json:"type"`
	Content  string               `json:"content"`
	URL      string               `json:"url,omitempty"`
	FileInfo *core.FileDescriptor `json:"fileInfo,omitempty"`
}

func URLNotes(content string) Notes {
	return Notes{Type: NotesURL, Content: content}
}

func PDFNotes(fd core.FileDescriptor) Notes {
	return Notes{Type: NotesPDF, Content: fd.OriginalName, URL: fd.URL, FileInfo: &fd}
}

func (n Notes) IsZero() bool {
	return n.Type == "" && n.Content == ""
}

type Lecture struct {
	ID               int         `db:"id" json:"id"`
	Title            string      `db:"title" json:"title"`
	CourseID         int         `db:"course_id" json:"course_id"`
	CourseTitle      null.String `db:"course_title" json:"course_title"`
	LectureDate      null.Time   `db:"lecture_date" json:"lecture_date"`
	Description      null.String `db:"description" json:"description"`
	NotesType        null.String `db:"notes_type" json:"-"`
	NotesContent     null.String `db:"notes_content" json:"-"`
	SlidesURL        null.String `db:"slides_url" json:"slides_url"`
	VideoURL         null.String `db:"video_url" json:"video_url"`
	FileName         null.String `db:"file_name" json:"file_name"`
	FileOriginalName null.String `db:"file_original_name" json:"file_original_name"`
	FileMimeType     null.String `db:"file_mime_type" json:"file_mime_type"`
	FileSize         null.Int64  `db:"file_size" json:"file_size"`
	CreatedBy        null.Int    `db:"created_by" json:"created_by"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"` // UTC
}

// Title synthesizes the display title of a lecture.
func Title(lectureNo int, topic string) string {
	return fmt.Sprintf("Lecture %d: %s", lectureNo, topic)
}

// LectureNo is parsed from the title, falling back to the id.
func (l Lecture) LectureNo() int {
	if m := titleRegex.FindStringSubmatch(l.Title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return l.ID
}

func (l Lecture) Topic() string {
	if m := titleRegex.FindStringSubmatch(l.Title); m != nil {
		return m[2]
	}
	return l.Title
}

func (l Lecture) HasFile() bool {
	return l.FileName.Valid && l.FileName.String != ""
}

// File rebuilds the descriptor of the stored upload, if any.
func (l Lecture) File(policy core.UploadPolicy, root string) *core.FileDescriptor {
	if !l.HasFile() {
		return nil
	}
	return &core.FileDescriptor{
		OriginalName: l.FileOriginalName.String,
		Filename:     l.FileName.String,
		MimeType:     l.FileMimeType.String,
		Path:         path.Join(root, policy.Subdir, l.FileName.String),
		Size:         l.FileSize.Int64,
		URL:          policy.URLPrefix + l.FileName.String,
	}
}

// Notes returns the tagged notes variant of the lecture.
func (l Lecture) Notes(policy core.UploadPolicy, root string) Notes {
	if NotesKind(l.NotesType.String) == NotesPDF {
		if fd := l.File(policy, root); fd != nil {
			return PDFNotes(*fd)
		}
	}
	return URLNotes(l.NotesContent.String)
}

func (l *Lecture) setNotes(n Notes) {
	l.NotesType = null.StringFrom(string(n.Type))
	l.NotesContent = null.NewString(n.Content, n.Content != "")
}

func (l *Lecture) setFile(fd *core.FileDescriptor) {
	if fd == nil {
		l.FileName = null.String{}
		l.FileOriginalName = null.String{}
		l.FileMimeType = null.String{}
		l.FileSize = null.Int64{}
		return
	}
	l.FileName = null.StringFrom(fd.Filename)
	l.FileOriginalName = null.StringFrom(fd.OriginalName)
	l.FileMimeType = null.StringFrom(fd.MimeType)
	l.FileSize = null.Int64From(fd.Size)
}

// NewLecture is used both to create a lecture and to replace all its fields.
type NewLecture struct {
	CourseID    int    `json:"course_id" validate:"required,min=1"`
	LectureNo   int    `json:"lectureNo" validate:"required,min=1"`
	Topic       string `json:"topic" validate:"notblank,max=200"`
	LectureDate string `json:"lecture_date" validate:"date"`
	Description string `json:"description"`
	Notes       *Notes `json:"notes"`
	SlidesURL   string `json:"slides_url"`
	VideoURL    string `json:"video_url"`
	CreatedBy   int    `json:"-"`
}

func (nl NewLecture) Validate(validate *validator.Validate) error {
	if err := validate.Struct(nl); err != nil {
		return err
	}
	if nl.Notes != nil && !nl.Notes.IsZero() {
		switch nl.Notes.Type {
		case NotesURL, NotesPDF:
		default:
			return core.NewValidationError(
				errInvalidNotesType,
				core.FieldError{Field: "notes", Error: errInvalidNotesType.Error()},
			)
		}
	}
	return nil
}
