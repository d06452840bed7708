package project

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

// Types
const (
	TypeResearch    = "Research"
	TypeDevelopment = "Development"
	TypeIndustry    = "Industry"
	TypeAcademic    = "Academic"
)

// Statuses
const (
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
	StatusPlanned   = "Planned"
)

var (
	Types    = []string{TypeResearch, TypeDevelopment, TypeIndustry, TypeAcademic}
	Statuses = []string{StatusOngoing, StatusCompleted, StatusPlanned}
)

type Project struct {
	ID             int             `db:"id" json:"id"`
	Title          string          `db:"title" json:"title"`
	Description    string          `db:"description" json:"description"`
	Type           string          `db:"type" json:"type"`
	Status         string          `db:"status" json:"status"`
	StartDate      null.Time       `db:"start_date" json:"start_date"`
	EndDate        null.Time       `db:"end_date" json:"end_date"`
	ProfessorID    null.Int        `db:"professor_id" json:"professor_id"`
	ProfessorName  null.String     `db:"professor_name" json:"professor_name"`
	Technologies   core.StringList `db:"technologies" json:"technologies"`
	Members        core.StringList `db:"members" json:"members"`
	PublicationURL null.String     `db:"publication_url" json:"publication_url"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"` // UTC
}

type NewProject struct {
	Title          string          `json:"title" validate:"notblank"`
	Description    string          `json:"description"`
	Type           string          `json:"type" validate:"required,oneof=Research Development Industry Academic"`
	Status         string          `json:"status" validate:"required,oneof=Ongoing Completed Planned"`
	StartDate      string          `json:"start_date" validate:"required,date"`
	EndDate        string          `json:"end_date" validate:"date"`
	ProfessorID    int             `json:"professor_id" validate:"min=0"`
	Technologies   core.StringList `json:"technologies"`
	Members        core.StringList `json:"members"`
	PublicationURL string          `json:"publication_url" validate:"omitempty,url"`
}

func (np NewProject) Validate(validate *validator.Validate) error {
	return validate.Struct(np)
}
