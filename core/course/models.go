package course

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

type Course struct {
	ID            int         `db:"id" json:"id"`
	Title         string      `db:"title" json:"title"`
	Code          string      `db:"code" json:"code"`
	Description   string      `db:"description" json:"description"`
	Semester      null.String `db:"semester" json:"semester"`
	Year          null.Int    `db:"year" json:"year"`
	ProfessorID   null.Int    `db:"professor_id" json:"professor_id"`
	ProfessorName null.String `db:"professor_name" json:"professor_name"`
	CreatedBy     null.Int    `db:"created_by" json:"created_by"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"` // UTC
}

// NewCourse is used both to create a course and to replace all its fields.
type NewCourse struct {
	Title       string `json:"title" validate:"notblank,max=255"`
	Code        string `json:"code" validate:"max=50"`
	Description string `json:"description"`
	Semester    string `json:"semester" validate:"max=50"`
	Year        int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	ProfessorID int    `json:"professor_id" validate:"min=0"`
	CreatedBy   int    `json:"-"`
}

func (nc NewCourse) Validate(validate *validator.Validate) error {
	return validate.Struct(nc)
}
