package models

import (
	"time"

	"github.com/google/uuid"
)

// CVRecord points at one uploaded CV. OriginalFilename is unique; duplicate
// uploads are rejected before a record is created.
type CVRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text;not null" json:"filename"`
	OriginalFilename string    `gorm:"type:text;not null;uniqueIndex" json:"original_filename"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *CVRecord) TableName() string {
	return "cv_records"
}
