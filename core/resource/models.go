package resource

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

type Resource struct {
	ID          int             `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description null.String     `db:"description" json:"description"`
	Type        string          `db:"type" json:"type"`
	URL         null.String     `db:"url" json:"url"`
	FilePath    null.String     `db:"file_path" json:"file_path"`
	CreatedBy   null.Int        `db:"created_by" json:"created_by"`
	CreatorName null.String     `db:"creator_name" json:"creator_name"`
	Tags        core.StringList `db:"tags" json:"tags"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"` // UTC
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"` // UTC
}

// NewResource is used both to create a resource and to replace all its fields.
type NewResource struct {
	Title       string          `json:"title" validate:"notblank,max=255"`
	Description string          `json:"description"`
	Type        string          `json:"type" validate:"notblank,max=50"`
	URL         string          `json:"url" validate:"max=2048"`
	Tags        core.StringList `json:"tags"`
	CreatedBy   int             `json:"-"`
}

func (nr NewResource) Validate(validate *validator.Validate) error {
	return validate.Struct(nr)
}
