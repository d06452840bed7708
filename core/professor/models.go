package professor

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

type Professor struct {
	ID             int         `db:"id" json:"id"`
	Name           string      `db:"name" json:"name"`
	Title          string      `db:"title" json:"title"`
	Email          string      `db:"email" json:"email"`
	Specialization null.String `db:"specialization" json:"specialization"`
	Website        null.String `db:"website" json:"website"`
	ProfileImage   null.String `db:"profile_image" json:"profile_image"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"` // UTC
}

type NewProfessor struct {
	Name           string `json:"name" validate:"notblank"`
	Title          string `json:"title" validate:"notblank"`
	Email          string `json:"email" validate:"required,email"`
	Specialization string `json:"specialization"`
	Website        string `json:"website" validate:"omitempty,url"`
	ProfileImage   string `json:"profile_image"`
}

func (np NewProfessor) Validate(validate *validator.Validate) error {
	return validate.Struct(np)
}
