package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobDescription holds either literal text or a reference to a stored
// document. Rows are never updated once created.
type JobDescription struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Description      *string   `gorm:"type:text" json:"description,omitempty"`
	Filename         *string   `gorm:"type:text" json:"filename,omitempty"`
	OriginalFilename *string   `gorm:"type:text" json:"original_filename,omitempty"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now();index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (j *JobDescription) TableName() string {
	return "job_descriptions"
}

// LiteralText returns the trimmed description, or "" when none was given.
func (j *JobDescription) LiteralText() string {
	if j.Description == nil {
		return ""
	}
	return strings.TrimSpace(*j.Description)
}

// StoredFilename returns the backing document name, or "" when none was stored.
func (j *JobDescription) StoredFilename() string {
	if j.Filename == nil {
		return ""
	}
	return *j.Filename
}
